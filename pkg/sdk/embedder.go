package unbubble

import (
	"context"
	"errors"
	"fmt"

	"github.com/UnbubbleHub/sources/internal/domain"
)

// EmbeddingResult carries one vector per input text plus token usage.
type EmbeddingResult struct {
	Embeddings   [][]float32
	PromptTokens int
	TotalTokens  int
}

// Embedder is the pluggable embedding provider interface.
// EmbedBatch must return one vector per input text, in input order.
type Embedder interface {
	EmbedBatch(ctx context.Context, texts []string) (EmbeddingResult, error)
}

// embedderAdapter wraps the public Embedder to satisfy domain.BatchEmbedder.
type embedderAdapter struct {
	inner Embedder
}

func (a *embedderAdapter) EmbedBatch(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	r, err := a.inner.EmbedBatch(ctx, texts)
	if err != nil {
		return domain.BatchEmbeddingResult{}, fmt.Errorf("embed: %w", err)
	}
	return domain.BatchEmbeddingResult{
		Embeddings:   r.Embeddings,
		PromptTokens: r.PromptTokens,
		TotalTokens:  r.TotalTokens,
	}, nil
}

// noopEmbedder returns an error on EmbedBatch (used when no embedder is
// configured). Aggregation of small query sets never reaches it.
type noopEmbedder struct{}

func (noopEmbedder) EmbedBatch(_ context.Context, _ []string) (domain.BatchEmbeddingResult, error) {
	return domain.BatchEmbeddingResult{}, errors.New(
		"unbubble: embedder not configured (use WithOpenAIEmbedder or WithEmbedder)",
	)
}
