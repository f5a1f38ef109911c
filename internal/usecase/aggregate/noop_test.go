package aggregate

import (
	"context"
	"testing"
)

func TestNoOp_ReturnsInputUnchanged(t *testing.T) {
	agg := NewNoOp()

	queries := makeQueries("a", "b", "c")
	got, err := agg.Aggregate(context.Background(), queries)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if len(got) != len(queries) {
		t.Fatalf("expected %d queries, got %d", len(queries), len(got))
	}
	for i := range queries {
		if got[i] != queries[i] {
			t.Errorf("query %d changed", i)
		}
	}
}

func TestNoOp_EmptyInput(t *testing.T) {
	agg := NewNoOp()

	got, err := agg.Aggregate(context.Background(), nil)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty output, got %d", len(got))
	}
}

var _ Aggregator = (*PCA)(nil)
var _ Aggregator = (*NoOp)(nil)
