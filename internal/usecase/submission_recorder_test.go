package usecase

import (
	"context"
	"testing"

	"github.com/fadilmartias/resume-analyzer/internal/extractor"
	"github.com/fadilmartias/resume-analyzer/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func analyzerResult(t *testing.T) *extractor.Result {
	t.Helper()
	result, err := extractor.Extract(`{"overallScore": 82}`, extractor.KindAnalyzer)
	require.NoError(t, err)
	return result
}

func TestRecorderAppliesFallbacks(t *testing.T) {
	repo := &fakeRepo{}
	recorder := NewSubmissionRecorder(repo, nil, zap.NewNop())

	recorder.Record(context.Background(), AnalysisRequest{ResumeText: validResume}, analyzerResult(t))
	recorder.Wait()

	created := repo.createdSubmissions()
	require.Len(t, created, 1)
	s := created[0]
	assert.Equal(t, "unknown.pdf", s.FileName)
	assert.Equal(t, model.FileTypePDF, s.FileType)
	assert.Equal(t, int64(0), s.FileSize)
	assert.Equal(t, "unknown", s.IPAddress)
	assert.Equal(t, "unknown", s.UserAgent)
	assert.Equal(t, model.AnalysisTypeAnalyzer, s.AnalysisType)
	assert.Equal(t, len([]rune(validResume)), s.ResumeTextLength)
	require.NotNil(t, s.AnalyzerResults)
	assert.JSONEq(t, `{"overallScore": 82}`, *s.AnalyzerResults)
	assert.Nil(t, s.MatcherResults)
	assert.Nil(t, s.JobDescriptionText)
}

func TestRecorderKeepsProvidedMetadata(t *testing.T) {
	repo := &fakeRepo{}
	recorder := NewSubmissionRecorder(repo, nil, zap.NewNop())

	size := int64(2048)
	result, err := extractor.Extract(`{"matchPercentage": 55}`, extractor.KindMatcher)
	require.NoError(t, err)

	recorder.Record(context.Background(), AnalysisRequest{
		ResumeText:     validResume,
		JobDescription: validJob,
		FileName:       "jane.docx",
		FileType:       "DOCX",
		FileSize:       &size,
		Context:        RequestContext{IPAddress: "10.0.0.1", UserAgent: "curl/8.0"},
	}, result)
	recorder.Wait()

	created := repo.createdSubmissions()
	require.Len(t, created, 1)
	s := created[0]
	assert.Equal(t, "jane.docx", s.FileName)
	assert.Equal(t, model.FileTypeDOCX, s.FileType)
	assert.Equal(t, int64(2048), s.FileSize)
	assert.Equal(t, "10.0.0.1", s.IPAddress)
	assert.Equal(t, "curl/8.0", s.UserAgent)
	require.NotNil(t, s.JobDescriptionText)
	assert.Equal(t, validJob, *s.JobDescriptionText)
	assert.Nil(t, s.AnalyzerResults)
	require.NotNil(t, s.MatcherResults)
}

func TestRecorderNormalizesBadInput(t *testing.T) {
	repo := &fakeRepo{}
	recorder := NewSubmissionRecorder(repo, nil, zap.NewNop())

	negative := int64(-5)
	recorder.Record(context.Background(), AnalysisRequest{
		ResumeText: validResume,
		FileType:   "txt",
		FileSize:   &negative,
	}, analyzerResult(t))
	recorder.Wait()

	created := repo.createdSubmissions()
	require.Len(t, created, 1)
	assert.Equal(t, model.FileTypePDF, created[0].FileType)
	assert.Equal(t, int64(0), created[0].FileSize)
}

func TestRecorderAbsorbsFailures(t *testing.T) {
	core, observed := observer.New(zapcore.ErrorLevel)
	repo := &fakeRepo{createErr: errStorage}
	recorder := NewSubmissionRecorder(repo, nil, zap.New(core))

	recorder.Record(context.Background(), AnalysisRequest{ResumeText: validResume}, analyzerResult(t))
	recorder.Wait()

	assert.Empty(t, repo.createdSubmissions())
	assert.Equal(t, 1, observed.FilterMessage("failed to record submission").Len())
}

func TestRecorderRecoversPanics(t *testing.T) {
	core, observed := observer.New(zapcore.ErrorLevel)
	recorder := NewSubmissionRecorder(&fakeRepo{panicCreate: true}, nil, zap.New(core))

	recorder.Record(context.Background(), AnalysisRequest{ResumeText: validResume}, analyzerResult(t))
	recorder.Wait()

	assert.Equal(t, 1, observed.FilterMessage("recovered panic while recording submission").Len())
}

func TestRecorderSurvivesCanceledRequest(t *testing.T) {
	repo := &fakeRepo{}
	recorder := NewSubmissionRecorder(repo, nil, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	recorder.Record(ctx, AnalysisRequest{ResumeText: validResume}, analyzerResult(t))
	recorder.Wait()

	assert.Len(t, repo.createdSubmissions(), 1)
}

func TestRecorderWithoutRepository(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	recorder := NewSubmissionRecorder(nil, nil, zap.New(core))

	recorder.Record(context.Background(), AnalysisRequest{ResumeText: validResume}, analyzerResult(t))
	recorder.Wait()

	assert.Equal(t, 1, observed.FilterMessage("storage unavailable, submission not recorded").Len())
}

func TestRecorderStoresEmbedding(t *testing.T) {
	repo := &fakeRepo{}
	recorder := NewSubmissionRecorder(repo, fakeEmbedder{values: []float32{0.5, 0.25}}, zap.NewNop())

	recorder.Record(context.Background(), AnalysisRequest{ResumeText: validResume}, analyzerResult(t))
	recorder.Wait()

	created := repo.createdSubmissions()
	require.Len(t, created, 1)
	assert.Equal(t, []float32{0.5, 0.25}, repo.embeddings[created[0].ID])
}

func TestRecorderEmbeddingFailureIsLogged(t *testing.T) {
	core, observed := observer.New(zapcore.WarnLevel)
	repo := &fakeRepo{}
	recorder := NewSubmissionRecorder(repo, fakeEmbedder{err: errStorage}, zap.New(core))

	recorder.Record(context.Background(), AnalysisRequest{ResumeText: validResume}, analyzerResult(t))
	recorder.Wait()

	assert.Len(t, repo.createdSubmissions(), 1)
	assert.Empty(t, repo.embeddings)
	assert.Equal(t, 1, observed.FilterMessage("failed to embed submission").Len())
}

func TestAnalyzeSucceedsWhenRecordingFails(t *testing.T) {
	provider := &fakeProvider{response: `{"overallScore": 82}`}
	recorder := NewSubmissionRecorder(&fakeRepo{createErr: errStorage}, nil, zap.NewNop())
	uc := NewAnalysisUsecase(provider, recorder, AnalysisOptions{}, zap.NewNop())

	result, err := uc.Analyze(context.Background(), AnalysisRequest{ResumeText: validResume, Prompt: "{{RESUME_TEXT}}"})
	recorder.Wait()

	require.NoError(t, err)
	assert.Equal(t, float64(82), result.Fields["overallScore"])
}
