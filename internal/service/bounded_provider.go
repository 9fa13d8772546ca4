package service

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// BoundedProvider caps the number of concurrent calls to the wrapped provider.
type BoundedProvider struct {
	Provider
	sem *semaphore.Weighted
}

func NewBoundedProvider(p Provider, limit int) *BoundedProvider {
	if limit < 1 {
		limit = 1
	}
	return &BoundedProvider{Provider: p, sem: semaphore.NewWeighted(int64(limit))}
}

func (b *BoundedProvider) Complete(ctx context.Context, systemInstruction, userPrompt string) (string, error) {
	if err := b.sem.Acquire(ctx, 1); err != nil {
		return "", classifyError(b.Name(), 0, err)
	}
	defer b.sem.Release(1)

	return b.Provider.Complete(ctx, systemInstruction, userPrompt)
}
