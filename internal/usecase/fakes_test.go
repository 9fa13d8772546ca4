package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/fadilmartias/resume-analyzer/internal/extractor"
	"github.com/fadilmartias/resume-analyzer/internal/model"
	"github.com/fadilmartias/resume-analyzer/internal/repository"
	"github.com/google/uuid"
)

type providerCall struct {
	system string
	user   string
}

type fakeProvider struct {
	mu       sync.Mutex
	response string
	err      error
	calls    []providerCall
}

func (f *fakeProvider) Complete(_ context.Context, system, user string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, providerCall{system: system, user: user})
	return f.response, f.err
}

func (f *fakeProvider) Name() string  { return "fake" }
func (f *fakeProvider) Model() string { return "fake-model" }

func (f *fakeProvider) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type recordedCall struct {
	req    AnalysisRequest
	result *extractor.Result
}

type fakeRecorder struct {
	mu    sync.Mutex
	calls []recordedCall
}

func (f *fakeRecorder) Record(_ context.Context, req AnalysisRequest, result *extractor.Result) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, recordedCall{req: req, result: result})
}

type fakeRepo struct {
	mu          sync.Mutex
	created     []*model.Submission
	embeddings  map[uuid.UUID][]float32
	createErr   error
	panicCreate bool
	pingErr     error

	findResult *model.Submission
	findErr    error
	listRows   []model.Submission
	listTotal  int64
	lastFilter repository.SubmissionFilter
	counts     map[model.AnalysisType]int64
	deleteErr  error
	similar    []repository.SimilarSubmission
}

func (f *fakeRepo) Create(_ context.Context, s *model.Submission) error {
	if f.panicCreate {
		panic("boom")
	}
	if f.createErr != nil {
		return f.createErr
	}
	if err := s.BeforeCreate(nil); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, s)
	return nil
}

func (f *fakeRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Submission, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	if f.findResult == nil || f.findResult.ID != id {
		return nil, repository.ErrSubmissionNotFound
	}
	return f.findResult, nil
}

func (f *fakeRepo) List(_ context.Context, filter repository.SubmissionFilter) ([]model.Submission, int64, error) {
	f.lastFilter = filter
	return f.listRows, f.listTotal, nil
}

func (f *fakeRepo) Count(context.Context) (int64, error) {
	var total int64
	for _, n := range f.counts {
		total += n
	}
	return total, nil
}

func (f *fakeRepo) CountByType(context.Context) (map[model.AnalysisType]int64, error) {
	return f.counts, nil
}

func (f *fakeRepo) Delete(context.Context, uuid.UUID) error { return f.deleteErr }

func (f *fakeRepo) SaveEmbedding(_ context.Context, id uuid.UUID, embedding []float32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.embeddings == nil {
		f.embeddings = map[uuid.UUID][]float32{}
	}
	f.embeddings[id] = embedding
	return nil
}

func (f *fakeRepo) SearchSimilar(context.Context, uuid.UUID, int) ([]repository.SimilarSubmission, error) {
	return f.similar, nil
}

func (f *fakeRepo) Ping(context.Context) error { return f.pingErr }

func (f *fakeRepo) createdSubmissions() []*model.Submission {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*model.Submission(nil), f.created...)
}

type fakeEmbedder struct {
	values []float32
	err    error
}

func (f fakeEmbedder) GenerateEmbedding(context.Context, string) ([]float32, error) {
	return f.values, f.err
}

var errStorage = errors.New("connection refused")
