package usecase

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/fadilmartias/resume-analyzer/internal/extractor"
	"github.com/fadilmartias/resume-analyzer/internal/logger"
	"github.com/fadilmartias/resume-analyzer/internal/prompt"
	"github.com/fadilmartias/resume-analyzer/internal/service"
	"go.uber.org/zap"
)

// MinTextLength is the minimum trimmed length, in characters, of resume and
// job description text.
const MinTextLength = 50

// ValidationError is a client fault detected before any provider call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

var (
	ErrInvalidResume = &ValidationError{
		Field:   "resumeText",
		Message: "Resume text is too short or empty. Please provide at least 50 characters.",
	}
	ErrInvalidJobDescription = &ValidationError{
		Field:   "jobDescription",
		Message: "Job description is too short or empty. Please provide at least 50 characters.",
	}
	ErrPromptRequired = &ValidationError{
		Field:   "prompt",
		Message: "Prompt is required.",
	}
)

// IsClientFault reports whether err was caused by the request rather than by
// the provider, the extractor or the server.
func IsClientFault(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve) || errors.Is(err, extractor.ErrUpstreamReported)
}

// RequestContext describes the caller of a request.
type RequestContext struct {
	IPAddress string
	UserAgent string
	RequestID string
}

type AnalysisRequest struct {
	ResumeText     string
	JobDescription string
	Prompt         string
	FileName       string
	FileType       string
	FileSize       *int64
	Context        RequestContext
}

// Recorder persists a successful analysis. Implementations must not block the
// caller on storage and never report failures.
type Recorder interface {
	Record(ctx context.Context, req AnalysisRequest, result *extractor.Result)
}

type AnalysisOptions struct {
	RecordMatches bool
}

type AnalysisUsecase struct {
	provider      service.Provider
	recorder      Recorder
	recordMatches bool
	logger        *zap.Logger
}

func NewAnalysisUsecase(provider service.Provider, recorder Recorder, opts AnalysisOptions, log *zap.Logger) *AnalysisUsecase {
	if provider == nil {
		provider = service.UnconfiguredProvider{}
	}
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &AnalysisUsecase{
		provider:      provider,
		recorder:      recorder,
		recordMatches: opts.RecordMatches,
		logger:        logger.WithCommonFields(log, provider.Name(), provider.Model()),
	}
}

// Analyze reviews a resume on its own. A blank prompt selects the built-in template.
func (uc *AnalysisUsecase) Analyze(ctx context.Context, req AnalysisRequest) (*extractor.Result, error) {
	if !hasMinLength(req.ResumeText) {
		return nil, ErrInvalidResume
	}

	template := req.Prompt
	if strings.TrimSpace(template) == "" {
		template = prompt.DefaultAnalyzerTemplate
	}

	result, err := uc.run(ctx, extractor.KindAnalyzer, prompt.AnalyzerSystemInstruction, template, map[string]string{
		prompt.MarkerResumeText: req.ResumeText,
	}, req.Context)
	if err != nil {
		return nil, err
	}

	uc.recorder.Record(ctx, req, result)
	return result, nil
}

// Match compares a resume against a job description.
func (uc *AnalysisUsecase) Match(ctx context.Context, req AnalysisRequest) (*extractor.Result, error) {
	if !hasMinLength(req.JobDescription) {
		return nil, ErrInvalidJobDescription
	}
	if !hasMinLength(req.ResumeText) {
		return nil, ErrInvalidResume
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, ErrPromptRequired
	}

	result, err := uc.run(ctx, extractor.KindMatcher, prompt.MatcherSystemInstruction, req.Prompt, map[string]string{
		prompt.MarkerResumeText:     req.ResumeText,
		prompt.MarkerJobDescription: req.JobDescription,
	}, req.Context)
	if err != nil {
		return nil, err
	}

	if uc.recordMatches {
		uc.recorder.Record(ctx, req, result)
	}
	return result, nil
}

func (uc *AnalysisUsecase) run(ctx context.Context, kind extractor.Kind, systemInstruction, template string, subs map[string]string, rc RequestContext) (*extractor.Result, error) {
	log := uc.logger.With(
		zap.String(logger.FieldAnalysisType, string(kind)),
		zap.String(logger.FieldRequestID, rc.RequestID),
	)

	if missing := prompt.Unconsumed(template, subs); len(missing) > 0 {
		log.Debug("prompt template has unknown markers", zap.Strings("markers", missing))
	}
	userPrompt := prompt.Render(template, subs)

	raw, err := uc.provider.Complete(ctx, systemInstruction, userPrompt)
	if err != nil {
		log.Error("provider call failed", zap.Error(err))
		return nil, err
	}

	result, err := extractor.Extract(raw, kind)
	if err != nil {
		log.Warn("could not extract result from provider response",
			zap.Error(err),
			zap.Int("response_length", len(raw)),
		)
		return nil, err
	}

	log.Info("analysis completed", zap.Int("fields", len(result.Fields)))
	return result, nil
}

func hasMinLength(text string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(text)) >= MinTextLength
}

type noopRecorder struct{}

func (noopRecorder) Record(context.Context, AnalysisRequest, *extractor.Result) {}
