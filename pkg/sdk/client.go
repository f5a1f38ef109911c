package unbubble

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/UnbubbleHub/sources/internal/db"
	dbRedis "github.com/UnbubbleHub/sources/internal/db/redis"
	"github.com/UnbubbleHub/sources/internal/domain"
	"github.com/UnbubbleHub/sources/internal/metrics"
	"github.com/UnbubbleHub/sources/internal/repository/embcache"
	anthropicTransport "github.com/UnbubbleHub/sources/internal/transport/anthropic"
	openaiEmb "github.com/UnbubbleHub/sources/internal/transport/openai"
	"github.com/UnbubbleHub/sources/internal/usecase/aggregate"
	healthuc "github.com/UnbubbleHub/sources/internal/usecase/health"
	"github.com/UnbubbleHub/sources/internal/usecase/pipeline"
	"github.com/UnbubbleHub/sources/internal/usecase/rank"
)

const defaultReadinessTimeout = 10 * time.Second

// Client is the unbubble SDK entry point.
type Client struct {
	store      db.Store
	aggregator aggregate.Aggregator
	annotator  pipeline.Annotator
	ranker     pipeline.Ranker
	healthSvc  *healthuc.Service
	obs        *observer
}

// New creates an unbubble Client. A zero-option client supports ranking
// only; aggregation of large query sets needs an embedder, annotation
// needs an Anthropic API key. The provided context is used for the cache
// readiness check when a cache is configured.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := defaultClientConfig()
	for _, o := range opts {
		o.apply(cfg)
	}

	var store db.Store
	if len(cfg.cacheAddrs) > 0 {
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.cacheAddrs,
			Password: cfg.cachePassword,
		})
		if err != nil {
			return nil, fmt.Errorf("unbubble: create cache store: %w", err)
		}
		if err := s.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
			s.Close()
			return nil, fmt.Errorf("unbubble: cache not ready: %w", err)
		}
		store = s
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, err
	}

	return wireClient(store, cfg, obs), nil
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) *Client {
	embedder := buildEmbedder(cfg, store)
	aggregator := aggregate.NewPCA(cfg.nComponents, embedder)

	var annotator pipeline.Annotator
	if cfg.anthropicAPIKey != "" {
		annotator = anthropicTransport.NewAnnotator(&anthropicTransport.Config{
			APIKey:    cfg.anthropicAPIKey,
			BaseURL:   cfg.anthropicURL,
			Model:     cfg.annotatorModel,
			BatchSize: cfg.batchSize,
			Logger:    zap.NewNop(),
		})
	}

	ranker := rank.NewMMR(cfg.lambda)

	var dbPinger healthuc.DBPinger
	if store != nil {
		dbPinger = store
	}
	var embChecker healthuc.ProviderChecker
	if hc, ok := embedder.(domain.HealthChecker); ok {
		embChecker = hc
	}

	return &Client{
		store:      store,
		aggregator: aggregator,
		annotator:  annotator,
		ranker:     ranker,
		healthSvc:  healthuc.New(dbPinger, embChecker),
		obs:        obs,
	}
}

func buildEmbedder(cfg *clientConfig, store db.Store) domain.BatchEmbedder {
	var base domain.BatchEmbedder
	switch {
	case cfg.embedder != nil:
		base = &embedderAdapter{inner: cfg.embedder}
	case cfg.openaiAPIKey != "":
		base = openaiEmb.NewEmbedder(&openaiEmb.Config{
			APIKey:     cfg.openaiAPIKey,
			BaseURL:    cfg.openaiBaseURL,
			Model:      cfg.embeddingModel,
			Dimensions: cfg.embeddingDims,
			Provider:   "openai",
			Logger:     zap.NewNop(),
		})
	default:
		base = noopEmbedder{}
	}

	if store != nil {
		return embcache.New(base, store, metrics.EmbeddingCacheTotal, zap.NewNop())
	}
	return base
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// AggregateQueries reduces a query set to a diverse subset. Inputs at or
// below the configured component count pass through unchanged without
// touching the embedding provider.
func (c *Client) AggregateQueries(ctx context.Context, queries []Query) (_ []Query, err error) {
	start := time.Now()
	defer func() { c.obs.observe("aggregate_queries", start, err) }()

	in := make([]domain.SearchQuery, len(queries))
	for i, q := range queries {
		in[i] = queryToDomain(q)
	}

	selected, err := c.aggregator.Aggregate(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("aggregate queries: %w", err)
	}

	out := make([]Query, len(selected))
	for i, q := range selected {
		out[i] = queryFromDomain(q)
	}
	return out, nil
}

// AnnotateSources attaches perspective metadata and relevance scores to
// sources. Individual batch failures degrade to default annotations with
// relevance 0.0 rather than failing the call.
func (c *Client) AnnotateSources(ctx context.Context, sources []Source, eventDescription string) (_ []AnnotatedSource, _ Usage, err error) {
	start := time.Now()
	defer func() { c.obs.observe("annotate_sources", start, err) }()

	if c.annotator == nil {
		err = errors.New("unbubble: annotator not configured (use WithAnnotator)")
		return nil, Usage{}, err
	}

	in := make([]domain.Source, len(sources))
	for i, s := range sources {
		src, convErr := sourceToDomain(s)
		if convErr != nil {
			err = fmt.Errorf("source %d: %w", i, convErr)
			return nil, Usage{}, err
		}
		in[i] = src
	}

	annotated, usage, err := c.annotator.Annotate(ctx, in, eventDescription)
	if err != nil {
		return nil, Usage{}, fmt.Errorf("annotate sources: %w", err)
	}

	out := make([]AnnotatedSource, len(annotated))
	for i, as := range annotated {
		out[i] = annotatedFromDomain(as)
	}
	return out, usageFromDomain(usage), nil
}

// RankSources orders annotated sources by the relevance/diversity
// trade-off and returns the top topK. Non-positive topK uses the default.
func (c *Client) RankSources(ctx context.Context, sources []AnnotatedSource, topK int) (_ []AnnotatedSource, err error) {
	start := time.Now()
	defer func() { c.obs.observe("rank_sources", start, err) }()

	if topK <= 0 {
		topK = rank.DefaultTopK
	}

	in := make([]domain.AnnotatedSource, len(sources))
	for i, s := range sources {
		as, convErr := annotatedToDomain(s)
		if convErr != nil {
			err = fmt.Errorf("source %d: %w", i, convErr)
			return nil, err
		}
		in[i] = as
	}

	ranked := c.ranker.Rank(ctx, in, topK)

	out := make([]AnnotatedSource, len(ranked))
	for i, as := range ranked {
		out[i] = annotatedFromDomain(as)
	}
	return out, nil
}
