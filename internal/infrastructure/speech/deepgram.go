// Package speech holds the speech-to-text and text-to-speech vendor clients.
package speech

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ai-calling-agent/config"
	"ai-calling-agent/internal/domain/apperr"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

const deepgramService = "deepgram"

// ErrNotConfigured is returned when a speech client has no credential.
var ErrNotConfigured = errors.New("speech service not configured")

// Transcript is the best alternative of the first channel.
type Transcript struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

type deepgramResponse struct {
	Results struct {
		Channels []struct {
			Alternatives []struct {
				Transcript string  `json:"transcript"`
				Confidence float64 `json:"confidence"`
			} `json:"alternatives"`
		} `json:"channels"`
	} `json:"results"`
}

// DeepgramClient posts raw audio to the Deepgram pre-recorded /v1/listen API.
type DeepgramClient struct {
	httpClient *resty.Client
	model      string
	language   string
	log        *logrus.Logger
}

func NewDeepgramClient(cfg config.SpeechConfig, log *logrus.Logger) (*DeepgramClient, error) {
	if cfg.DeepgramAPIKey == "" {
		return nil, ErrNotConfigured
	}

	client := resty.New().
		SetBaseURL(cfg.DeepgramBaseURL).
		SetTimeout(60*time.Second).
		SetHeader("Authorization", "Token "+cfg.DeepgramAPIKey).
		SetHeader("Accept", "application/json")

	return &DeepgramClient{
		httpClient: client,
		model:      cfg.DeepgramModel,
		language:   cfg.DeepgramLanguage,
		log:        log,
	}, nil
}

// Transcribe sends audio as-is; language falls back to the configured one.
func (c *DeepgramClient) Transcribe(ctx context.Context, audio []byte, contentType, language string) (*Transcript, error) {
	if len(audio) == 0 {
		return nil, apperr.MissingField("audio")
	}
	if contentType == "" {
		contentType = "audio/wav"
	}
	if language == "" {
		language = c.language
	}

	var response deepgramResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Content-Type", contentType).
		SetQueryParams(map[string]string{
			"model":        c.model,
			"language":     language,
			"smart_format": "true",
		}).
		SetBody(audio).
		SetResult(&response).
		Post("/v1/listen")
	if err != nil {
		c.log.Warnf("Deepgram request failed: %+v", err)
		return nil, apperr.Remote(deepgramService, 0, err)
	}
	if resp.IsError() {
		c.log.Warnf("Deepgram returned status %d: %s", resp.StatusCode(), resp.String())
		return nil, apperr.Remote(deepgramService, resp.StatusCode(), errors.New(strings.TrimSpace(resp.String())))
	}

	if len(response.Results.Channels) == 0 || len(response.Results.Channels[0].Alternatives) == 0 {
		return nil, apperr.Remote(deepgramService, resp.StatusCode(), fmt.Errorf("response has no transcript"))
	}
	best := response.Results.Channels[0].Alternatives[0]
	return &Transcript{Text: strings.TrimSpace(best.Transcript), Confidence: best.Confidence}, nil
}
