package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fadilmartias/resume-analyzer/internal/logger"
	"github.com/fadilmartias/resume-analyzer/internal/util"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const (
	openAITemperature = 0.7
	openAIMaxTokens   = 2000
	logPreviewLimit   = 300
)

// OpenAIOptions configures an OpenAI-compatible chat completions backend.
// Both the official API and OpenRouter are served by it.
type OpenAIOptions struct {
	Name    string
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
	Headers map[string]string
}

type OpenAIService struct {
	client *resty.Client
	name   string
	model  string
	logger *zap.Logger
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

func NewOpenAIService(opts OpenAIOptions, log *zap.Logger) (*OpenAIService, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, &ProviderError{Kind: ProviderInvalidConfiguration, Provider: opts.Name, Err: errors.New("API key is empty")}
	}
	if strings.TrimSpace(opts.Model) == "" {
		return nil, &ProviderError{Kind: ProviderInvalidConfiguration, Provider: opts.Name, Err: errors.New("model is empty")}
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(opts.BaseURL, "/")).
		SetAuthToken(opts.APIKey).
		SetHeader("Content-Type", "application/json")
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}
	for key, value := range opts.Headers {
		if value != "" {
			client.SetHeader(key, value)
		}
	}

	return &OpenAIService{
		client: client,
		name:   opts.Name,
		model:  opts.Model,
		logger: logger.WithCommonFields(log, opts.Name, opts.Model),
	}, nil
}

func (s *OpenAIService) Name() string  { return s.name }
func (s *OpenAIService) Model() string { return s.model }

func (s *OpenAIService) Complete(ctx context.Context, systemInstruction, userPrompt string) (string, error) {
	body := chatCompletionRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemInstruction},
			{Role: "user", Content: userPrompt},
		},
		Temperature: openAITemperature,
		MaxTokens:   openAIMaxTokens,
	}

	s.logger.Debug("sending chat completion",
		zap.Int("prompt_length", len(userPrompt)),
		zap.String("prompt_preview", util.TruncateForLog(userPrompt, logPreviewLimit)),
	)

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(body).
		Post("/chat/completions")
	if err != nil {
		return "", classifyError(s.name, 0, fmt.Errorf("send chat completion: %w", err))
	}

	raw := resp.String()
	if resp.IsError() {
		message := gjson.Get(raw, "error.message").String()
		if message == "" {
			message = util.TruncateForLog(raw, logPreviewLimit)
		}
		s.logger.Warn("chat completion failed",
			zap.Int("status", resp.StatusCode()),
			zap.String("error_message", message),
		)
		return "", classifyError(s.name, resp.StatusCode(), fmt.Errorf("status %d: %s", resp.StatusCode(), message))
	}

	content := gjson.Get(raw, "choices.0.message.content")
	if !content.Exists() {
		if message := gjson.Get(raw, "error.message").String(); message != "" {
			return "", classifyError(s.name, resp.StatusCode(), errors.New(message))
		}
		return "", classifyError(s.name, resp.StatusCode(), errors.New("response contained no choices"))
	}

	text := content.String()
	s.logger.Debug("chat completion received",
		zap.Int("status", resp.StatusCode()),
		zap.Int("response_length", len(text)),
		zap.String("response_preview", util.TruncateForLog(text, logPreviewLimit)),
	)
	return text, nil
}
