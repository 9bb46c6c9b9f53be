// Package llm talks to OpenAI-compatible chat completion endpoints (Groq,
// Gemini) through go-openai.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ai-calling-agent/config"
	"ai-calling-agent/internal/domain/apperr"

	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

const (
	ProviderGroq   = "groq"
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

const callTimeout = 30 * time.Second

var providerBaseURLs = map[string]string{
	ProviderGroq:   "https://api.groq.com/openai/v1",
	ProviderGemini: "https://generativelanguage.googleapis.com/v1beta/openai",
	ProviderOpenAI: "https://api.openai.com/v1",
}

var defaultModels = map[string]string{
	ProviderGroq:   "llama-3.1-8b-instant",
	ProviderGemini: "gemini-1.5-flash",
	ProviderOpenAI: openai.GPT4oMini,
}

// ErrNoCredential is returned when a client is requested without an API key.
var ErrNoCredential = errors.New("no completion credential configured")

// Client is a chat completion client for one provider credential.
type Client struct {
	api      *openai.Client
	provider string
	log      *logrus.Logger
}

// BaseURL resolves the endpoint for provider; override wins when set.
func BaseURL(provider, override string) (string, error) {
	if override != "" {
		return strings.TrimRight(override, "/"), nil
	}
	url, ok := providerBaseURLs[strings.ToLower(provider)]
	if !ok {
		return "", fmt.Errorf("unknown completion provider %q", provider)
	}
	return url, nil
}

// DefaultModel is the model used when the configuration names none.
func DefaultModel(provider string) string {
	return defaultModels[strings.ToLower(provider)]
}

func NewClient(cfg config.LLMConfig, log *logrus.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrNoCredential
	}
	baseURL, err := BaseURL(cfg.Provider, cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = baseURL

	return &Client{
		api:      openai.NewClientWithConfig(clientCfg),
		provider: strings.ToLower(cfg.Provider),
		log:      log,
	}, nil
}

func (c *Client) Provider() string {
	return c.provider
}

// CreateChatCompletion sends one chat request. Every failure, including an
// empty choice list, comes back as *apperr.RemoteServiceError.
func (c *Client) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	callCtx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	start := time.Now()
	resp, err := c.api.CreateChatCompletion(callCtx, req)
	c.log.WithFields(logrus.Fields{
		"provider":   c.provider,
		"model":      req.Model,
		"latency_ms": time.Since(start).Milliseconds(),
	}).Debug("Chat completion finished")

	if err != nil {
		c.log.Warnf("Chat completion failed: %+v", err)
		return openai.ChatCompletionResponse{}, c.remoteError(err)
	}
	if len(resp.Choices) == 0 {
		return openai.ChatCompletionResponse{}, apperr.Remote(c.provider, 0, errors.New("no choices returned"))
	}
	return resp, nil
}

func (c *Client) remoteError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apperr.Remote(c.provider, apiErr.HTTPStatusCode, errors.New(apiErr.Message))
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return apperr.Remote(c.provider, reqErr.HTTPStatusCode, reqErr.Err)
	}
	return apperr.Remote(c.provider, 0, err)
}
