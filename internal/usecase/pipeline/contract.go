package pipeline

import (
	"context"

	"github.com/UnbubbleHub/sources/internal/domain"
)

// QueryGenerator produces candidate search queries for an event.
// Implementations are external collaborators (typically LLM-backed).
type QueryGenerator interface {
	Generate(ctx context.Context, event domain.NewsEvent, numQueries int) ([]domain.SearchQuery, domain.Usage, error)
}

// SearchOptions bound a searcher invocation.
type SearchOptions struct {
	FromDate           string
	ToDate             string
	MaxResultsPerQuery int
}

// SourceSearcher retrieves sources for a set of queries.
// Implementations are external collaborators (search providers).
type SourceSearcher interface {
	Search(ctx context.Context, queries []domain.SearchQuery, opts SearchOptions) ([]domain.Source, domain.Usage, error)
}

// Aggregator reduces the combined query set to a diverse subset.
type Aggregator interface {
	Aggregate(ctx context.Context, queries []domain.SearchQuery) ([]domain.SearchQuery, error)
}

// Annotator attaches perspective metadata and a relevance score to sources.
// Failed annotation must degrade to the zero-value annotation with
// relevance 0.0, never to a missing entry.
type Annotator interface {
	Annotate(ctx context.Context, sources []domain.Source, eventDescription string) ([]domain.AnnotatedSource, domain.Usage, error)
}

// Ranker orders annotated sources by relevance/diversity trade-off.
type Ranker interface {
	Rank(ctx context.Context, sources []domain.AnnotatedSource, topK int) []domain.AnnotatedSource
}
