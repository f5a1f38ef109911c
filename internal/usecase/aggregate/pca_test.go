package aggregate

import (
	"context"
	"errors"
	"testing"

	"github.com/UnbubbleHub/sources/internal/domain"
)

type fakeEmbedder struct {
	calls      int
	embeddings [][]float32
	err        error
}

func (f *fakeEmbedder) EmbedBatch(_ context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	f.calls++
	if f.err != nil {
		return domain.BatchEmbeddingResult{}, f.err
	}
	if f.embeddings != nil {
		return domain.BatchEmbeddingResult{Embeddings: f.embeddings}, nil
	}
	// One-hot fallback so every text gets a distinct direction.
	embs := make([][]float32, len(texts))
	for i := range texts {
		vec := make([]float32, len(texts))
		vec[i] = 1
		embs[i] = vec
	}
	return domain.BatchEmbeddingResult{Embeddings: embs}, nil
}

func makeQueries(texts ...string) []domain.SearchQuery {
	qs := make([]domain.SearchQuery, len(texts))
	for i, t := range texts {
		qs[i] = domain.SearchQuery{Text: t, Intent: "intent-" + t}
	}
	return qs
}

func TestPCA_PassThroughSmallInput(t *testing.T) {
	emb := &fakeEmbedder{}
	agg := NewPCA(5, emb)

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
			t.Errorf("query %d changed: %+v != %+v", i, got[i], queries[i])
		}
	}
	if emb.calls != 0 {
		t.Errorf("embedder called %d times for trivial input, want 0", emb.calls)
	}
}

func TestPCA_PassThroughExactBoundary(t *testing.T) {
	emb := &fakeEmbedder{}
	agg := NewPCA(3, emb)

	queries := makeQueries("a", "b", "c")
	got, err := agg.Aggregate(context.Background(), queries)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if len(got) != 3 || emb.calls != 0 {
		t.Errorf("boundary input: len=%d calls=%d", len(got), emb.calls)
	}
}

func TestPCA_EmptyInput(t *testing.T) {
	emb := &fakeEmbedder{}
	agg := NewPCA(5, emb)

	got, err := agg.Aggregate(context.Background(), nil)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty output, got %d", len(got))
	}
	if emb.calls != 0 {
		t.Errorf("embedder called for empty input")
	}
}

func TestPCA_ReducesToNComponents(t *testing.T) {
	// Fixture from three orthogonal axes plus two in-between points.
	emb := &fakeEmbedder{embeddings: [][]float32{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
		{0.5, 0.5, 0},
		{0, 0.5, 0.5},
	}}
	agg := NewPCA(3, emb)

	queries := makeQueries("q0", "q1", "q2", "q3", "q4")
	got, err := agg.Aggregate(context.Background(), queries)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("expected 3 queries, got %d", len(got))
	}
	if emb.calls != 1 {
		t.Errorf("embedder calls = %d, want 1", emb.calls)
	}

	byValue := make(map[domain.SearchQuery]bool)
	input := make(map[domain.SearchQuery]bool)
	for _, q := range queries {
		input[q] = true
	}
	for _, q := range got {
		if byValue[q] {
			t.Errorf("duplicate query in output: %+v", q)
		}
		byValue[q] = true
		if !input[q] {
			t.Errorf("synthesized query in output: %+v", q)
		}
	}
}

func TestPCA_OutputIsSubsetAndUnique(t *testing.T) {
	emb := &fakeEmbedder{}
	agg := NewPCA(4, emb)

	queries := makeQueries("a", "b", "c", "d", "e", "f", "g", "h")
	got, err := agg.Aggregate(context.Background(), queries)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 queries, got %d", len(got))
	}

	seen := make(map[domain.SearchQuery]bool)
	input := make(map[domain.SearchQuery]bool)
	for _, q := range queries {
		input[q] = true
	}
	for _, q := range got {
		if seen[q] {
			t.Errorf("duplicate output query %+v", q)
		}
		seen[q] = true
		if !input[q] {
			t.Errorf("output query %+v not in input", q)
		}
	}
}

func TestPCA_EmbedderErrorPropagates(t *testing.T) {
	wantErr := errors.New("model unavailable")
	emb := &fakeEmbedder{err: wantErr}
	agg := NewPCA(2, emb)

	_, err := agg.Aggregate(context.Background(), makeQueries("a", "b", "c"))
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected wrapped embedder error, got %v", err)
	}
}

func TestPCA_EmbeddingCountMismatch(t *testing.T) {
	emb := &fakeEmbedder{embeddings: [][]float32{{1, 0}}}
	agg := NewPCA(2, emb)

	_, err := agg.Aggregate(context.Background(), makeQueries("a", "b", "c"))
	if !errors.Is(err, domain.ErrEmbeddingProviderError) {
		t.Fatalf("expected ErrEmbeddingProviderError, got %v", err)
	}
}

func TestPCA_RaggedEmbeddings(t *testing.T) {
	emb := &fakeEmbedder{embeddings: [][]float32{
		{1, 0, 0},
		{0, 1},
		{0, 0, 1},
	}}
	agg := NewPCA(2, emb)

	_, err := agg.Aggregate(context.Background(), makeQueries("a", "b", "c"))
	if !errors.Is(err, domain.ErrEmbeddingProviderError) {
		t.Fatalf("expected ErrEmbeddingProviderError, got %v", err)
	}
}

func TestPCA_ZeroDimensionalEmbeddings(t *testing.T) {
	emb := &fakeEmbedder{embeddings: [][]float32{{}, {}, {}}}
	agg := NewPCA(2, emb)

	got, err := agg.Aggregate(context.Background(), makeQueries("a", "b", "c"))
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no picks from degenerate embeddings, got %d", len(got))
	}
}

func TestPCA_IdenticalEmbeddingsUnderfill(t *testing.T) {
	// All rows identical: after centering the matrix is zero and the
	// principal directions carry no signal. Which rows get picked is
	// arbitrary, but the result stays unique, bounded, and error-free.
	emb := &fakeEmbedder{embeddings: [][]float32{
		{1, 1, 1},
		{1, 1, 1},
		{1, 1, 1},
		{1, 1, 1},
	}}
	agg := NewPCA(2, emb)

	got, err := agg.Aggregate(context.Background(), makeQueries("a", "b", "c", "d"))
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if len(got) > 2 {
		t.Errorf("expected at most 2 picks, got %d", len(got))
	}
	seen := make(map[domain.SearchQuery]bool)
	for _, q := range got {
		if seen[q] {
			t.Errorf("duplicate pick %+v", q)
		}
		seen[q] = true
	}
}

func TestPCA_DefaultNComponents(t *testing.T) {
	agg := NewPCA(0, &fakeEmbedder{})
	if agg.nComponents != DefaultNComponents {
		t.Errorf("nComponents = %d, want %d", agg.nComponents, DefaultNComponents)
	}
}
