package aggregate

import (
	"context"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/UnbubbleHub/sources/internal/domain"
)

// cosineEpsilon guards cosine denominators against zero-norm vectors.
const cosineEpsilon = 1e-10

// DefaultNComponents is the default number of diverse queries to keep.
const DefaultNComponents = 5

// PCA selects a maximally diverse subset of queries via principal
// component analysis of their embeddings.
//
// Each principal component is a direction of semantic variation; for each
// component, in descending order of explained variance, the not-yet-selected
// query whose embedding has the highest absolute cosine similarity to that
// direction is picked. The output is always a subset of the input.
type PCA struct {
	nComponents int
	embedder    Embedder
}

// NewPCA creates a PCA aggregator targeting nComponents queries.
// Non-positive nComponents falls back to the default.
func NewPCA(nComponents int, embedder Embedder) *PCA {
	if nComponents <= 0 {
		nComponents = DefaultNComponents
	}
	return &PCA{nComponents: nComponents, embedder: embedder}
}

// Aggregate selects up to nComponents diverse queries.
//
// Inputs of nComponents or fewer queries are returned unchanged without
// calling the embedder. Embedder failures propagate to the caller untouched
// apart from wrapping; there are no retries here.
func (a *PCA) Aggregate(ctx context.Context, queries []domain.SearchQuery) ([]domain.SearchQuery, error) {
	if len(queries) <= a.nComponents {
		return queries, nil
	}

	texts := make([]string, len(queries))
	for i, q := range queries {
		texts[i] = q.Text
	}

	res, err := a.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed queries: %w", err)
	}
	if len(res.Embeddings) != len(queries) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d queries",
			domain.ErrEmbeddingProviderError, len(res.Embeddings), len(queries))
	}

	indices, err := a.selectIndices(res.Embeddings)
	if err != nil {
		return nil, err
	}

	selected := make([]domain.SearchQuery, len(indices))
	for i, idx := range indices {
		selected[i] = queries[idx]
	}
	return selected, nil
}

// selectIndices runs the PCA selection over the embedding matrix and returns
// the chosen row indices in principal-component order.
func (a *PCA) selectIndices(embeddings [][]float32) ([]int, error) {
	n := len(embeddings)
	d := len(embeddings[0])
	if d == 0 {
		return nil, nil
	}

	raw := mat.NewDense(n, d, nil)
	for i, row := range embeddings {
		if len(row) != d {
			return nil, fmt.Errorf("%w: ragged embedding matrix (row %d has %d dims, want %d)",
				domain.ErrEmbeddingProviderError, i, len(row), d)
		}
		for j, v := range row {
			raw.Set(i, j, float64(v))
		}
	}

	// Center columns; PCA requires mean-zero data.
	centered := mat.NewDense(n, d, nil)
	for j := 0; j < d; j++ {
		var mean float64
		for i := 0; i < n; i++ {
			mean += raw.At(i, j)
		}
		mean /= float64(n)
		for i := 0; i < n; i++ {
			centered.Set(i, j, raw.At(i, j)-mean)
		}
	}

	var svd mat.SVD
	if !svd.Factorize(centered, mat.SVDThin) {
		return nil, fmt.Errorf("svd on %dx%d embedding matrix did not converge", n, d)
	}
	var v mat.Dense
	svd.VTo(&v)

	// Columns of V are the principal directions, strongest first.
	_, nComps := v.Dims()
	k := a.nComponents
	if nComps < k {
		k = nComps
	}

	norms := make([]float64, n)
	for i := 0; i < n; i++ {
		norms[i] = mat.Norm(raw.RowView(i), 2)
	}

	var picked []int
	selected := make(map[int]bool, k)

	for c := 0; c < k; c++ {
		pc := v.ColView(c)
		pcNorm := mat.Norm(pc, 2)
		if pcNorm == 0 {
			continue
		}

		// Absolute cosine similarity: a component and its negation describe
		// the same axis of variation.
		sims := make([]float64, n)
		for i := 0; i < n; i++ {
			dot := mat.Dot(raw.RowView(i), pc)
			sims[i] = math.Abs(dot) / (norms[i]*pcNorm + cosineEpsilon)
		}

		order := make([]int, n)
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(x, y int) bool {
			return sims[order[x]] > sims[order[y]]
		})

		// Fall through ranked candidates until an unselected one is found;
		// a component whose candidates are all taken yields no pick.
		for _, idx := range order {
			if !selected[idx] {
				selected[idx] = true
				picked = append(picked, idx)
				break
			}
		}
	}

	return picked, nil
}
