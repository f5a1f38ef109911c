package domain

import "context"

// BatchEmbedder vectorizes a batch of texts in a single call.
// The returned matrix has one row per input text, in input order;
// dimensionality is fixed per embedder instance but opaque to callers.
type BatchEmbedder interface {
	EmbedBatch(ctx context.Context, texts []string) (BatchEmbeddingResult, error)
}

// BatchEmbeddingResult carries embedding vectors and token usage.
type BatchEmbeddingResult struct {
	Embeddings   [][]float32
	PromptTokens int
	TotalTokens  int
}

// HealthChecker verifies embedding provider availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
