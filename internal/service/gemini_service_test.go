package service

import (
	"context"
	"errors"
	"math"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

type fakeModels struct {
	prompts    []string
	models     []string
	response   *genai.GenerateContentResponse
	err        error
	embedding  *genai.EmbedContentResponse
	embedErr   error
	embedTexts []string
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.models = append(f.models, model)
	for _, c := range contents {
		for _, p := range c.Parts {
			f.prompts = append(f.prompts, p.Text)
		}
	}
	return f.response, f.err
}

func (f *fakeModels) EmbedContent(_ context.Context, _ string, contents []*genai.Content, _ *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error) {
	for _, c := range contents {
		for _, p := range c.Parts {
			f.embedTexts = append(f.embedTexts, p.Text)
		}
	}
	return f.embedding, f.embedErr
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: text}}},
		}},
	}
}

func newTestGemini(models *fakeModels) *GeminiService {
	return newGeminiService(models, GeminiOptions{Model: "gemini-2.5-flash", EmbeddingModel: "gemini-embedding-001"}, zap.NewNop())
}

func TestGeminiServiceComplete(t *testing.T) {
	models := &fakeModels{response: textResponse(`{"matchPercentage": 71}`)}
	svc := newTestGemini(models)

	text, err := svc.Complete(context.Background(), "You are a recruiter.", "Compare these.")
	require.NoError(t, err)
	assert.Equal(t, `{"matchPercentage": 71}`, text)
	assert.Equal(t, []string{"You are a recruiter.\n\nCompare these."}, models.prompts)
	assert.Equal(t, []string{"gemini-2.5-flash"}, models.models)
	assert.Equal(t, "gemini", svc.Name())
	assert.Equal(t, "gemini-2.5-flash", svc.Model())
}

func TestGeminiServiceErrors(t *testing.T) {
	tests := []struct {
		name   string
		models *fakeModels
		expect ProviderErrorKind
	}{
		{
			name:   "permission denied",
			models: &fakeModels{err: genai.APIError{Code: http.StatusForbidden, Status: "PERMISSION_DENIED", Message: "caller lacks access"}},
			expect: ProviderInvalidCredential,
		},
		{
			name:   "invalid key message",
			models: &fakeModels{err: genai.APIError{Code: http.StatusBadRequest, Status: "INVALID_ARGUMENT", Message: "API key not valid. Please pass a valid API key."}},
			expect: ProviderInvalidCredential,
		},
		{
			name:   "server error",
			models: &fakeModels{err: genai.APIError{Code: http.StatusInternalServerError, Status: "INTERNAL"}},
			expect: ProviderUpstream,
		},
		{
			name:   "plain error",
			models: &fakeModels{err: errors.New("connection reset by peer")},
			expect: ProviderUpstream,
		},
		{
			name:   "no candidates",
			models: &fakeModels{response: &genai.GenerateContentResponse{}},
			expect: ProviderUpstream,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestGemini(tt.models).Complete(context.Background(), "s", "u")
			require.Error(t, err)
			assert.True(t, IsProviderError(err, tt.expect), "got %v", err)
		})
	}
}

func TestGeminiServiceGenerateEmbedding(t *testing.T) {
	models := &fakeModels{embedding: &genai.EmbedContentResponse{
		Embeddings: []*genai.ContentEmbedding{{Values: []float32{0.1, 0.2, 0.3}}},
	}}
	svc := newTestGemini(models)

	values, err := svc.GenerateEmbedding(context.Background(), "  Senior Go engineer  ")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, values)
	assert.Equal(t, []string{"Senior Go engineer"}, models.embedTexts)

	_, err = svc.GenerateEmbedding(context.Background(), "   ")
	assert.Error(t, err)
}

func TestGeminiServiceGenerateEmbeddingRejectsInvalidValues(t *testing.T) {
	models := &fakeModels{embedding: &genai.EmbedContentResponse{
		Embeddings: []*genai.ContentEmbedding{{Values: []float32{0.1, float32(math.NaN())}}},
	}}

	_, err := newTestGemini(models).GenerateEmbedding(context.Background(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "index 1")
}
