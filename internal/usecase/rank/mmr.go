package rank

import (
	"context"
	"math"

	"github.com/UnbubbleHub/sources/internal/domain"
)

// DefaultLambda gives relevance and diversity equal weight.
const DefaultLambda = 0.5

// DefaultTopK is the default ranking size.
const DefaultTopK = 10

// Ranker selects an ordered subset of annotated sources.
type Ranker interface {
	Rank(ctx context.Context, sources []domain.AnnotatedSource, topK int) []domain.AnnotatedSource
}

// MMR ranks sources by Maximal Marginal Relevance
// (Carbonell & Goldstein, SIGIR '98):
//
//	MMR(d) = lambda * relevance(d) - (1-lambda) * max_sim(d, selected)
//
// where similarity is 1 - PerspectiveDistance. Higher lambda favors
// relevance, lower lambda favors perspective diversity.
type MMR struct {
	lambda float64
}

// NewMMR creates an MMR ranker. lambda is clamped to [0, 1]:
// 0 orders purely by diversity, 1 purely by relevance.
func NewMMR(lambda float64) *MMR {
	if lambda < 0 {
		lambda = 0
	}
	if lambda > 1 {
		lambda = 1
	}
	return &MMR{lambda: lambda}
}

// Rank selects min(topK, len(sources)) sources in selection order:
// the most relevant source first, then greedy MMR picks. Ties break toward
// the earlier input position. The input is never modified; topK <= 0 yields
// an empty result.
func (m *MMR) Rank(_ context.Context, sources []domain.AnnotatedSource, topK int) []domain.AnnotatedSource {
	if len(sources) == 0 || topK <= 0 {
		return nil
	}

	k := topK
	if len(sources) < k {
		k = len(sources)
	}

	remaining := make([]int, len(sources))
	for i := range remaining {
		remaining[i] = i
	}

	// First pick: stable argmax over relevance.
	best := 0
	for _, i := range remaining {
		if sources[i].RelevanceScore > sources[best].RelevanceScore {
			best = i
		}
	}
	selected := []int{best}
	remaining = removeIndex(remaining, best)

	for len(selected) < k && len(remaining) > 0 {
		bestMMR := math.Inf(-1)
		bestCandidate := remaining[0]

		for _, ci := range remaining {
			candidate := sources[ci]

			maxSim := math.Inf(-1)
			for _, si := range selected {
				sim := 1 - PerspectiveDistance(candidate.Annotation, sources[si].Annotation)
				if sim > maxSim {
					maxSim = sim
				}
			}

			score := m.lambda*candidate.RelevanceScore - (1-m.lambda)*maxSim
			if score > bestMMR {
				bestMMR = score
				bestCandidate = ci
			}
		}

		selected = append(selected, bestCandidate)
		remaining = removeIndex(remaining, bestCandidate)
	}

	ranked := make([]domain.AnnotatedSource, len(selected))
	for i, idx := range selected {
		ranked[i] = sources[idx]
	}
	return ranked
}

// removeIndex drops value v from the index slice, preserving order.
func removeIndex(indices []int, v int) []int {
	out := indices[:0]
	for _, i := range indices {
		if i != v {
			out = append(out, i)
		}
	}
	return out
}
