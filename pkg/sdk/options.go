package unbubble

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/UnbubbleHub/sources/internal/usecase/aggregate"
	"github.com/UnbubbleHub/sources/internal/usecase/rank"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	embedder        Embedder
	openaiAPIKey    string
	openaiBaseURL   string
	embeddingModel  string
	embeddingDims   int
	anthropicAPIKey string
	anthropicURL    string
	annotatorModel  string
	batchSize       int

	cacheAddrs    []string
	cachePassword string

	nComponents int
	lambda      float64

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithEmbedder sets a custom embedding provider.
// Takes precedence over WithOpenAIEmbedder.
func WithEmbedder(e Embedder) Option {
	return optionFunc(func(c *clientConfig) {
		c.embedder = e
	})
}

// WithOpenAIEmbedder configures an OpenAI-compatible embedding provider.
// Pass an empty model to use the provider default.
func WithOpenAIEmbedder(apiKey, model string) Option {
	return optionFunc(func(c *clientConfig) {
		c.openaiAPIKey = apiKey
		c.embeddingModel = model
	})
}

// WithEmbeddingBaseURL points the embedding provider at a non-default
// endpoint (proxies, self-hosted OpenAI-compatible servers).
func WithEmbeddingBaseURL(baseURL string) Option {
	return optionFunc(func(c *clientConfig) {
		c.openaiBaseURL = baseURL
	})
}

// WithEmbeddingDimensions requests reduced-dimension embeddings.
// Only models that support the dimensions parameter honor it.
func WithEmbeddingDimensions(dim int) Option {
	return optionFunc(func(c *clientConfig) {
		c.embeddingDims = dim
	})
}

// WithAnnotator configures the Anthropic perspective annotator.
// Pass an empty model to use the default.
func WithAnnotator(apiKey, model string) Option {
	return optionFunc(func(c *clientConfig) {
		c.anthropicAPIKey = apiKey
		c.annotatorModel = model
	})
}

// WithAnnotatorBaseURL points the annotator at a non-default endpoint.
func WithAnnotatorBaseURL(baseURL string) Option {
	return optionFunc(func(c *clientConfig) {
		c.anthropicURL = baseURL
	})
}

// WithAnnotationBatchSize sets how many sources go into one annotation
// request. Default: 20.
func WithAnnotationBatchSize(size int) Option {
	return optionFunc(func(c *clientConfig) {
		c.batchSize = size
	})
}

// WithRedisCache enables embedding caching in a Redis instance.
func WithRedisCache(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheAddrs = []string{addr}
		c.cachePassword = password
	})
}

// WithComponents sets how many diverse queries aggregation keeps.
// Default: 5.
func WithComponents(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.nComponents = n
	})
}

// WithLambda sets the ranking relevance/diversity trade-off in [0, 1];
// higher favors relevance. Default: 0.5.
func WithLambda(lambda float64) Option {
	return optionFunc(func(c *clientConfig) {
		c.lambda = lambda
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}

func defaultClientConfig() *clientConfig {
	return &clientConfig{
		nComponents: aggregate.DefaultNComponents,
		lambda:      rank.DefaultLambda,
	}
}
