package rank

import (
	"math"

	"github.com/UnbubbleHub/sources/internal/domain"
)

// Perspective distance weights. They sum to 1.0 so the combined distance
// stays in [0, 1]; political lean and framing dominate.
const (
	weightPoliticalLean = 0.30
	weightPolicyFrames  = 0.25
	weightStakeholder   = 0.20
	weightGeography     = 0.15
	weightTopic         = 0.10
)

// unknownLeanDistance is the fixed distance for any pairing involving an
// unknown political lean, including unknown vs unknown.
const unknownLeanDistance = 0.5

// PerspectiveDistance combines five weighted sub-distances into a single
// symmetric metric in [0, 1]; 1.0 means maximally different perspectives.
func PerspectiveDistance(a, b domain.PerspectiveAnnotation) float64 {
	return weightPoliticalLean*politicalDistance(a.PoliticalLean, b.PoliticalLean) +
		weightPolicyFrames*frameDistance(a.PolicyFrames, b.PolicyFrames) +
		weightStakeholder*categoricalDistance(string(a.StakeholderType), string(b.StakeholderType)) +
		weightGeography*categoricalDistance(a.GeographicFocus, b.GeographicFocus) +
		weightTopic*categoricalDistance(a.Topic, b.Topic)
}

// politicalDistance is the normalized ordinal distance on the 7-point scale.
func politicalDistance(a, b domain.PoliticalLean) float64 {
	idxA, okA := a.ScaleIndex()
	idxB, okB := b.ScaleIndex()
	if !okA || !okB {
		return unknownLeanDistance
	}
	if a == b {
		return 0
	}
	return math.Abs(float64(idxA-idxB)) / 6
}

// frameDistance is the Jaccard distance between two policy frame sets.
// Two empty sets are identical, not maximally different.
func frameDistance(a, b []domain.PolicyFrame) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}

	setA := make(map[domain.PolicyFrame]struct{}, len(a))
	for _, f := range a {
		setA[f] = struct{}{}
	}
	setB := make(map[domain.PolicyFrame]struct{}, len(b))
	for _, f := range b {
		setB[f] = struct{}{}
	}

	intersection := 0
	for f := range setA {
		if _, ok := setB[f]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return 1 - float64(intersection)/float64(union)
}

// categoricalDistance is 0 for equal values, 1 otherwise.
func categoricalDistance(a, b string) float64 {
	if a == b {
		return 0
	}
	return 1
}
