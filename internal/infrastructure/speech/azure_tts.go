package speech

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"strings"
	"time"

	"ai-calling-agent/config"
	"ai-calling-agent/internal/domain/apperr"
	"ai-calling-agent/internal/domain/entity"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

const azureService = "azure-tts"

// Neural voices matching the company voice persona.
const (
	VoiceFemale = "en-US-JennyNeural"
	VoiceMale   = "en-US-GuyNeural"
)

// VoiceFor picks the neural voice for a company's gender flag.
func VoiceFor(gender string) string {
	if strings.EqualFold(gender, entity.GenderMale) {
		return VoiceMale
	}
	return VoiceFemale
}

// AzureTTSClient synthesizes SSML through the Azure Cognitive Services REST API.
type AzureTTSClient struct {
	httpClient *resty.Client
	format     string
	log        *logrus.Logger
}

func NewAzureTTSClient(cfg config.SpeechConfig, log *logrus.Logger) (*AzureTTSClient, error) {
	if cfg.AzureKey == "" {
		return nil, ErrNotConfigured
	}

	baseURL := cfg.AzureBaseURL
	if baseURL == "" {
		if cfg.AzureRegion == "" {
			return nil, apperr.MissingField("azure_region")
		}
		baseURL = fmt.Sprintf("https://%s.tts.speech.microsoft.com", cfg.AzureRegion)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30*time.Second).
		SetHeader("Ocp-Apim-Subscription-Key", cfg.AzureKey).
		SetHeader("Content-Type", "application/ssml+xml").
		SetHeader("User-Agent", "ai-calling-agent")

	return &AzureTTSClient{
		httpClient: client,
		format:     cfg.AzureFormat,
		log:        log,
	}, nil
}

// Format is the X-Microsoft-OutputFormat requested for every synthesis.
func (c *AzureTTSClient) Format() string {
	return c.format
}

// Synthesize returns the encoded audio for text spoken by voice.
func (c *AzureTTSClient) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperr.MissingField("text")
	}
	if voice == "" {
		voice = VoiceFemale
	}

	ssml, err := BuildSSML(text, voice)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("X-Microsoft-OutputFormat", c.format).
		SetBody(ssml).
		Post("/cognitiveservices/v1")
	if err != nil {
		c.log.Warnf("Azure TTS request failed: %+v", err)
		return nil, apperr.Remote(azureService, 0, err)
	}
	if resp.IsError() {
		c.log.Warnf("Azure TTS returned status %d", resp.StatusCode())
		return nil, apperr.Remote(azureService, resp.StatusCode(), errors.New(resp.Status()))
	}
	return resp.Body(), nil
}

// BuildSSML wraps text in a single-voice SSML document.
func BuildSSML(text, voice string) (string, error) {
	var escaped strings.Builder
	if err := xml.EscapeText(&escaped, []byte(text)); err != nil {
		return "", fmt.Errorf("escape ssml text: %w", err)
	}
	lang := "en-US"
	if parts := strings.SplitN(voice, "-", 3); len(parts) == 3 {
		lang = parts[0] + "-" + parts[1]
	}
	return fmt.Sprintf(
		"<speak version='1.0' xml:lang='%s'><voice xml:lang='%s' name='%s'>%s</voice></speak>",
		lang, lang, voice, escaped.String(),
	), nil
}
