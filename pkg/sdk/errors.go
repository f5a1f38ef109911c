package unbubble

import "github.com/UnbubbleHub/sources/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidRequest          = domain.ErrInvalidRequest
	ErrEmbeddingProviderError  = domain.ErrEmbeddingProviderError
	ErrAnnotationProviderError = domain.ErrAnnotationProviderError
)
