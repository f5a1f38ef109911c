package aggregate

import (
	"context"

	"github.com/UnbubbleHub/sources/internal/domain"
)

// NoOp is a pass-through aggregator that returns queries unchanged.
type NoOp struct{}

// NewNoOp creates a pass-through aggregator.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Aggregate returns the input unchanged.
func (*NoOp) Aggregate(_ context.Context, queries []domain.SearchQuery) ([]domain.SearchQuery, error) {
	return queries, nil
}
