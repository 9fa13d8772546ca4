package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fadilmartias/resume-analyzer/internal/model"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrEmbeddingNotFound  = errors.New("submission has no embedding")
)

type SubmissionFilter struct {
	AnalysisType model.AnalysisType
	Page         int
	PageSize     int
}

func (f SubmissionFilter) Offset() int {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// SimilarSubmission is a row of SearchSimilar, ordered by ascending distance.
type SimilarSubmission struct {
	ID           uuid.UUID
	FileName     string
	AnalysisType model.AnalysisType
	CreatedAt    time.Time
	Distance     float64
}

type SubmissionRepository interface {
	Create(ctx context.Context, submission *model.Submission) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Submission, error)
	List(ctx context.Context, filter SubmissionFilter) ([]model.Submission, int64, error)
	Count(ctx context.Context) (int64, error)
	CountByType(ctx context.Context) (map[model.AnalysisType]int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SaveEmbedding(ctx context.Context, id uuid.UUID, embedding []float32) error
	SearchSimilar(ctx context.Context, id uuid.UUID, limit int) ([]SimilarSubmission, error)
	Ping(ctx context.Context) error
}

type submissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db}
}

func (r *submissionRepository) Create(ctx context.Context, submission *model.Submission) error {
	if err := r.db.WithContext(ctx).Create(submission).Error; err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}
	return nil
}

func (r *submissionRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Submission, error) {
	var s model.Submission
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSubmissionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find submission %s: %w", id, err)
	}
	return &s, nil
}

func (r *submissionRepository) List(ctx context.Context, filter SubmissionFilter) ([]model.Submission, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Submission{})
	if filter.AnalysisType != "" {
		query = query.Where("analysis_type = ?", filter.AnalysisType)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count submissions: %w", err)
	}

	var submissions []model.Submission
	err := query.
		Order("created_at DESC").
		Limit(filter.PageSize).
		Offset(filter.Offset()).
		Find(&submissions).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list submissions: %w", err)
	}
	return submissions, total, nil
}

func (r *submissionRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Submission{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count submissions: %w", err)
	}
	return total, nil
}

func (r *submissionRepository) CountByType(ctx context.Context) (map[model.AnalysisType]int64, error) {
	var rows []struct {
		AnalysisType model.AnalysisType
		Total        int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.Submission{}).
		Select("analysis_type, COUNT(*) AS total").
		Group("analysis_type").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count submissions by type: %w", err)
	}

	counts := make(map[model.AnalysisType]int64, len(rows))
	for _, row := range rows {
		counts[row.AnalysisType] = row.Total
	}
	return counts, nil
}

func (r *submissionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if tx.Migrator().HasTable(&model.SubmissionEmbedding{}) {
			if err := tx.Delete(&model.SubmissionEmbedding{}, "submission_id = ?", id).Error; err != nil {
				return fmt.Errorf("delete embedding %s: %w", id, err)
			}
		}
		res := tx.Delete(&model.Submission{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("delete submission %s: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrSubmissionNotFound
		}
		return nil
	})
}

func (r *submissionRepository) SaveEmbedding(ctx context.Context, id uuid.UUID, embedding []float32) error {
	row := model.SubmissionEmbedding{
		SubmissionID: id,
		Embedding:    pgvector.NewVector(embedding),
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "submission_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"embedding"}),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("save embedding %s: %w", id, err)
	}
	return nil
}

func (r *submissionRepository) SearchSimilar(ctx context.Context, id uuid.UUID, limit int) ([]SimilarSubmission, error) {
	var ref model.SubmissionEmbedding
	err := r.db.WithContext(ctx).First(&ref, "submission_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEmbeddingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find embedding %s: %w", id, err)
	}

	var results []SimilarSubmission
	err = r.db.WithContext(ctx).Raw(`
        SELECT s.id, s.file_name, s.analysis_type, s.created_at, e.embedding <-> ? AS distance
        FROM submission_embeddings e
        JOIN submissions s ON s.id = e.submission_id
        WHERE e.submission_id <> ?
        ORDER BY e.embedding <-> ?
        LIMIT ?
    `, ref.Embedding, id, ref.Embedding, limit).Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("search similar submissions: %w", err)
	}
	return results, nil
}

func (r *submissionRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
