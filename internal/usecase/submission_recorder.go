package usecase

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/fadilmartias/resume-analyzer/internal/extractor"
	"github.com/fadilmartias/resume-analyzer/internal/model"
	"github.com/fadilmartias/resume-analyzer/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultFileName     = "unknown.pdf"
	unknownClientValue  = "unknown"
	defaultWriteTimeout = 30 * time.Second
)

// Embedder turns text into a vector for similarity search.
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// SubmissionRecorder writes submissions in the background. Storage failures
// are logged and never reach the request.
type SubmissionRecorder struct {
	repo         repository.SubmissionRepository
	embedder     Embedder
	writeTimeout time.Duration
	logger       *zap.Logger
	wg           sync.WaitGroup
}

// NewSubmissionRecorder accepts a nil repo, in which case Record only logs.
// embedder is optional.
func NewSubmissionRecorder(repo repository.SubmissionRepository, embedder Embedder, log *zap.Logger) *SubmissionRecorder {
	if log == nil {
		log = zap.NewNop()
	}
	return &SubmissionRecorder{
		repo:         repo,
		embedder:     embedder,
		writeTimeout: defaultWriteTimeout,
		logger:       log,
	}
}

func (r *SubmissionRecorder) Record(ctx context.Context, req AnalysisRequest, result *extractor.Result) {
	if result == nil {
		return
	}
	if r.repo == nil {
		r.logger.Debug("storage unavailable, submission not recorded",
			zap.String("analysis_type", string(result.Kind)))
		return
	}

	submission := r.buildSubmission(req, result)

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer func() {
			if p := recover(); p != nil {
				r.logger.Error("recovered panic while recording submission", zap.Any("panic", p))
			}
		}()

		writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.writeTimeout)
		defer cancel()

		if err := r.repo.Create(writeCtx, submission); err != nil {
			r.logger.Error("failed to record submission",
				zap.Error(err),
				zap.String("analysis_type", string(submission.AnalysisType)),
			)
			return
		}
		r.logger.Info("submission recorded",
			zap.String("submission_id", submission.ID.String()),
			zap.String("analysis_type", string(submission.AnalysisType)),
		)

		if r.embedder != nil {
			r.storeEmbedding(writeCtx, submission)
		}
	}()
}

// Wait blocks until every pending write has finished.
func (r *SubmissionRecorder) Wait() {
	r.wg.Wait()
}

func (r *SubmissionRecorder) storeEmbedding(ctx context.Context, s *model.Submission) {
	embedding, err := r.embedder.GenerateEmbedding(ctx, s.ResumeText)
	if err != nil {
		r.logger.Warn("failed to embed submission", zap.Error(err), zap.String("submission_id", s.ID.String()))
		return
	}
	if err := r.repo.SaveEmbedding(ctx, s.ID, embedding); err != nil {
		r.logger.Warn("failed to store submission embedding", zap.Error(err), zap.String("submission_id", s.ID.String()))
	}
}

func (r *SubmissionRecorder) buildSubmission(req AnalysisRequest, result *extractor.Result) *model.Submission {
	fileType := model.FileType(strings.ToLower(strings.TrimSpace(req.FileType)))
	if !fileType.Valid() {
		if fileType != "" {
			r.logger.Debug("normalizing unsupported file type", zap.String("file_type", string(fileType)))
		}
		fileType = model.FileTypePDF
	}

	var fileSize int64
	if req.FileSize != nil && *req.FileSize > 0 {
		fileSize = *req.FileSize
	}

	s := &model.Submission{
		ID:               uuid.New(),
		FileName:         orDefault(req.FileName, defaultFileName),
		FileType:         fileType,
		FileSize:         fileSize,
		AnalysisType:     model.AnalysisType(result.Kind),
		ResumeText:       req.ResumeText,
		ResumeTextLength: utf8.RuneCountInString(req.ResumeText),
		IPAddress:        orDefault(req.Context.IPAddress, unknownClientValue),
		UserAgent:        orDefault(req.Context.UserAgent, unknownClientValue),
	}
	if strings.TrimSpace(req.JobDescription) != "" {
		jd := req.JobDescription
		s.JobDescriptionText = &jd
	}

	raw := result.Raw
	switch result.Kind {
	case extractor.KindMatcher:
		s.MatcherResults = &raw
	default:
		s.AnalyzerResults = &raw
	}
	return s
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}
