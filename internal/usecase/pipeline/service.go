package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/UnbubbleHub/sources/internal/domain"
)

// Default stage limits.
const (
	DefaultNumQueriesPerGenerator = 5
	DefaultMaxResultsPerSearcher  = 10
)

// Result is the outcome of a pipeline run.
type Result struct {
	RunID   string
	Sources []domain.Source
	// Ranked is populated only when an annotator and ranker are configured.
	Ranked []domain.AnnotatedSource
	Usage  domain.Usage
}

// Service orchestrates discovery: generators fan out, the combined query set
// is aggregated, searchers fan out over the reduced queries, results are
// deduplicated by URL, then optionally annotated and ranked.
//
// A failing generator or searcher never fails the run; its output is dropped
// and the rest proceeds. Aggregation failures abort the run, since losing the
// query set leaves nothing to search.
type Service struct {
	generators []QueryGenerator
	aggregator Aggregator
	searchers  []SourceSearcher
	annotator  Annotator
	ranker     Ranker

	numQueries int
	maxResults int
	topK       int

	logger *zap.Logger
}

// New creates a pipeline service.
func New(generators []QueryGenerator, aggregator Aggregator, searchers []SourceSearcher, logger *zap.Logger) *Service {
	return &Service{
		generators: generators,
		aggregator: aggregator,
		searchers:  searchers,
		numQueries: DefaultNumQueriesPerGenerator,
		maxResults: DefaultMaxResultsPerSearcher,
		logger:     logger,
	}
}

// WithLimits overrides per-generator query count and per-searcher result cap.
func (s *Service) WithLimits(numQueries, maxResults int) *Service {
	if numQueries > 0 {
		s.numQueries = numQueries
	}
	if maxResults > 0 {
		s.maxResults = maxResults
	}
	return s
}

// WithRanking enables the annotate + rank tail of the pipeline.
func (s *Service) WithRanking(annotator Annotator, ranker Ranker, topK int) *Service {
	s.annotator = annotator
	s.ranker = ranker
	s.topK = topK
	return s
}

// Run executes the pipeline for one event.
func (s *Service) Run(ctx context.Context, event domain.NewsEvent, fromDate, toDate string) (Result, error) {
	res := Result{RunID: uuid.NewString()}
	logger := s.logger.With(zap.String("run_id", res.RunID))

	queries := s.generateQueries(ctx, logger, event, &res.Usage)
	if len(queries) == 0 {
		logger.Warn("no queries generated, finishing run empty")
		return res, nil
	}

	start := time.Now()
	aggregated, err := s.aggregator.Aggregate(ctx, queries)
	if err != nil {
		return Result{}, fmt.Errorf("aggregate queries: %w", err)
	}
	logger.Info("queries aggregated",
		zap.Int("in", len(queries)),
		zap.Int("out", len(aggregated)),
		zap.Duration("took", time.Since(start)),
	)

	res.Sources = s.searchSources(ctx, logger, aggregated, fromDate, toDate, &res.Usage)

	if s.annotator != nil && s.ranker != nil {
		annotated, usage, err := s.annotator.Annotate(ctx, res.Sources, event.Description)
		if err != nil {
			return Result{}, fmt.Errorf("annotate sources: %w", err)
		}
		res.Usage = res.Usage.Add(usage)
		res.Ranked = s.ranker.Rank(ctx, annotated, s.topK)
		logger.Info("sources ranked",
			zap.Int("annotated", len(annotated)),
			zap.Int("ranked", len(res.Ranked)),
		)
	}

	return res, nil
}

// generateQueries fans out over all generators and collects successful
// outputs in generator order. Failures are logged and skipped.
func (s *Service) generateQueries(
	ctx context.Context, logger *zap.Logger, event domain.NewsEvent, usage *domain.Usage,
) []domain.SearchQuery {
	type genResult struct {
		queries []domain.SearchQuery
		usage   domain.Usage
		err     error
	}

	results := make([]genResult, len(s.generators))
	var wg sync.WaitGroup
	for i, gen := range s.generators {
		wg.Add(1)
		go func(i int, gen QueryGenerator) {
			defer wg.Done()
			q, u, err := gen.Generate(ctx, event, s.numQueries)
			results[i] = genResult{queries: q, usage: u, err: err}
		}(i, gen)
	}
	wg.Wait()

	var all []domain.SearchQuery
	for i, r := range results {
		if r.err != nil {
			logger.Warn("query generation failed",
				zap.Int("generator", i), zap.Error(r.err))
			continue
		}
		*usage = usage.Add(r.usage)
		all = append(all, r.queries...)
	}
	return all
}

// searchSources fans out over all searchers, then deduplicates by URL
// keeping the first occurrence in searcher order.
func (s *Service) searchSources(
	ctx context.Context, logger *zap.Logger,
	queries []domain.SearchQuery, fromDate, toDate string, usage *domain.Usage,
) []domain.Source {
	type searchResult struct {
		sources []domain.Source
		usage   domain.Usage
		err     error
	}

	opts := SearchOptions{
		FromDate:           fromDate,
		ToDate:             toDate,
		MaxResultsPerQuery: s.maxResults,
	}

	results := make([]searchResult, len(s.searchers))
	var wg sync.WaitGroup
	for i, searcher := range s.searchers {
		wg.Add(1)
		go func(i int, searcher SourceSearcher) {
			defer wg.Done()
			src, u, err := searcher.Search(ctx, queries, opts)
			results[i] = searchResult{sources: src, usage: u, err: err}
		}(i, searcher)
	}
	wg.Wait()

	seen := make(map[string]bool)
	var sources []domain.Source
	preDedup := 0
	for i, r := range results {
		if r.err != nil {
			logger.Warn("search failed", zap.Int("searcher", i), zap.Error(r.err))
			continue
		}
		*usage = usage.Add(r.usage)
		preDedup += len(r.sources)
		for _, src := range r.sources {
			if seen[src.SourceURL()] {
				continue
			}
			seen[src.SourceURL()] = true
			sources = append(sources, src)
		}
	}

	logger.Info("sources retrieved",
		zap.Int("raw", preDedup),
		zap.Int("deduplicated", len(sources)),
	)
	return sources
}
