package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/fadilmartias/resume-analyzer/internal/config"
	"github.com/fadilmartias/resume-analyzer/internal/logger"
	"github.com/fadilmartias/resume-analyzer/internal/util"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const maxEmbeddingTextLength = 10000

// generativeModels is the subset of genai.Models used here.
type generativeModels interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	EmbedContent(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error)
}

type GeminiOptions struct {
	APIKey         string
	Model          string
	EmbeddingModel string
}

type GeminiService struct {
	models         generativeModels
	model          string
	embeddingModel string
	logger         *zap.Logger
}

func NewGeminiService(ctx context.Context, opts GeminiOptions, log *zap.Logger) (*GeminiService, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, &ProviderError{Kind: ProviderInvalidConfiguration, Provider: config.ProviderGemini, Err: errors.New("GEMINI_API_KEY not set")}
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, &ProviderError{Kind: ProviderInvalidConfiguration, Provider: config.ProviderGemini, Err: fmt.Errorf("create genai client: %w", err)}
	}

	return newGeminiService(client.Models, opts, log), nil
}

func newGeminiService(models generativeModels, opts GeminiOptions, log *zap.Logger) *GeminiService {
	return &GeminiService{
		models:         models,
		model:          opts.Model,
		embeddingModel: opts.EmbeddingModel,
		logger:         logger.WithCommonFields(log, config.ProviderGemini, opts.Model),
	}
}

func (s *GeminiService) Name() string  { return config.ProviderGemini }
func (s *GeminiService) Model() string { return s.model }

// Complete sends the system instruction and prompt as one text part.
func (s *GeminiService) Complete(ctx context.Context, systemInstruction, userPrompt string) (string, error) {
	prompt := systemInstruction + "\n\n" + userPrompt

	s.logger.Debug("sending generate content",
		zap.Int("prompt_length", len(prompt)),
		zap.String("prompt_preview", util.TruncateForLog(userPrompt, logPreviewLimit)),
	)

	resp, err := s.models.GenerateContent(ctx, s.model, genai.Text(prompt), nil)
	if err != nil {
		s.logger.Warn("generate content failed", zap.Error(err))
		return "", classifyError(config.ProviderGemini, apiErrorCode(err), fmt.Errorf("generate content: %w", err))
	}
	if err := validateGenerateResponse(resp); err != nil {
		return "", classifyError(config.ProviderGemini, 0, err)
	}

	text := resp.Text()
	s.logger.Debug("generate content received",
		zap.Int("response_length", len(text)),
		zap.String("response_preview", util.TruncateForLog(text, logPreviewLimit)),
	)
	return text, nil
}

// GenerateEmbedding embeds text with the configured embedding model.
func (s *GeminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, fmt.Errorf("text for embedding cannot be empty")
	}
	if runes := []rune(trimmed); len(runes) > maxEmbeddingTextLength {
		s.logger.Debug("truncating text for embedding", zap.Int("length", len(runes)))
		trimmed = string(runes[:maxEmbeddingTextLength])
	}

	content := []*genai.Content{genai.NewContentFromText(trimmed, genai.RoleUser)}
	resp, err := s.models.EmbedContent(ctx, s.embeddingModel, content, nil)
	if err != nil {
		return nil, classifyError(config.ProviderGemini, apiErrorCode(err), fmt.Errorf("embed content: %w", err))
	}

	values, err := validateEmbeddingResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("invalid embedding response: %w", err)
	}
	return values, nil
}

func apiErrorCode(err error) int {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code
	}
	return 0
}

func validateGenerateResponse(resp *genai.GenerateContentResponse) error {
	if resp == nil {
		return fmt.Errorf("response is nil")
	}
	if len(resp.Candidates) == 0 {
		return fmt.Errorf("no candidates in response")
	}
	if resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("candidate content is empty")
	}
	return nil
}

func validateEmbeddingResponse(resp *genai.EmbedContentResponse) ([]float32, error) {
	if resp == nil {
		return nil, fmt.Errorf("response is nil")
	}
	if len(resp.Embeddings) == 0 || resp.Embeddings[0] == nil {
		return nil, fmt.Errorf("no embeddings returned")
	}

	values := resp.Embeddings[0].Values
	if len(values) == 0 {
		return nil, fmt.Errorf("embedding vector is empty")
	}
	for i, val := range values {
		if math.IsNaN(float64(val)) || math.IsInf(float64(val), 0) {
			return nil, fmt.Errorf("invalid embedding value at index %d: %v", i, val)
		}
	}
	return values, nil
}
