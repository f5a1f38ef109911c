package aggregate

import (
	"context"

	"github.com/UnbubbleHub/sources/internal/domain"
)

// Embedder vectorizes query texts for diversity selection.
type Embedder interface {
	EmbedBatch(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error)
}

// Aggregator reduces a set of candidate queries to a diverse subset.
// Implementations never mutate the input and return a subset of it.
type Aggregator interface {
	Aggregate(ctx context.Context, queries []domain.SearchQuery) ([]domain.SearchQuery, error)
}
