package domain

import "errors"

// Sentinel errors shared across layers. Transport maps them to status codes.
var (
	ErrEmbeddingProviderError  = errors.New("embedding provider error")
	ErrAnnotationProviderError = errors.New("annotation provider error")
	ErrInvalidRequest          = errors.New("invalid request")
)
