package rank

import (
	"context"
	"testing"

	"github.com/UnbubbleHub/sources/internal/domain"
)

var _ Ranker = (*MMR)(nil)

func annotatedSource(url string, relevance float64, ann domain.PerspectiveAnnotation) domain.AnnotatedSource {
	return domain.AnnotatedSource{
		Source:         domain.Article{Title: url, URL: url, Domain: "example.com"},
		Annotation:     ann,
		RelevanceScore: relevance,
	}
}

func sourceURL(s domain.AnnotatedSource) string {
	return s.Source.SourceURL()
}

func TestMMR_EmptyInput(t *testing.T) {
	ranker := NewMMR(0.5)
	if got := ranker.Rank(context.Background(), nil, 5); len(got) != 0 {
		t.Errorf("expected empty result, got %d", len(got))
	}
}

func TestMMR_SizeContract(t *testing.T) {
	ranker := NewMMR(0.5)
	sources := []domain.AnnotatedSource{
		annotatedSource("a", 0.9, domain.PerspectiveAnnotation{Topic: "t1"}),
		annotatedSource("b", 0.8, domain.PerspectiveAnnotation{Topic: "t2"}),
		annotatedSource("c", 0.7, domain.PerspectiveAnnotation{Topic: "t3"}),
	}

	tests := []struct {
		topK, want int
	}{
		{0, 0},
		{-1, 0},
		{1, 1},
		{2, 2},
		{3, 3},
		{10, 3}, // clamped to input size
	}
	for _, tt := range tests {
		if got := ranker.Rank(context.Background(), sources, tt.topK); len(got) != tt.want {
			t.Errorf("Rank(topK=%d) returned %d sources, want %d", tt.topK, len(got), tt.want)
		}
	}
}

func TestMMR_FirstPickIsMostRelevant(t *testing.T) {
	ranker := NewMMR(0.5)
	sources := []domain.AnnotatedSource{
		annotatedSource("a", 0.3, domain.PerspectiveAnnotation{}),
		annotatedSource("b", 0.95, domain.PerspectiveAnnotation{}),
		annotatedSource("c", 0.7, domain.PerspectiveAnnotation{}),
	}

	got := ranker.Rank(context.Background(), sources, 2)
	if sourceURL(got[0]) != "b" {
		t.Errorf("first pick = %s, want b", sourceURL(got[0]))
	}
}

func TestMMR_FirstPickTieBreaksToFirstOccurrence(t *testing.T) {
	ranker := NewMMR(0.5)
	sources := []domain.AnnotatedSource{
		annotatedSource("a", 0.9, domain.PerspectiveAnnotation{Topic: "t1"}),
		annotatedSource("b", 0.9, domain.PerspectiveAnnotation{Topic: "t2"}),
	}

	got := ranker.Rank(context.Background(), sources, 1)
	if sourceURL(got[0]) != "a" {
		t.Errorf("tie broke to %s, want a", sourceURL(got[0]))
	}
}

func TestMMR_LambdaOneIsPureRelevance(t *testing.T) {
	// Annotations are wildly different, but lambda=1 ignores diversity.
	ranker := NewMMR(1.0)
	sources := []domain.AnnotatedSource{
		annotatedSource("mid", 0.5, domain.PerspectiveAnnotation{PoliticalLean: domain.LeanLeft}),
		annotatedSource("top", 0.9, domain.PerspectiveAnnotation{PoliticalLean: domain.LeanRight}),
		annotatedSource("low", 0.1, domain.PerspectiveAnnotation{PoliticalLean: domain.LeanCenter}),
		annotatedSource("high", 0.7, domain.PerspectiveAnnotation{PoliticalLean: domain.LeanFarLeft}),
	}

	got := ranker.Rank(context.Background(), sources, 4)
	wantOrder := []string{"top", "high", "mid", "low"}
	for i, want := range wantOrder {
		if sourceURL(got[i]) != want {
			t.Errorf("position %d = %s, want %s", i, sourceURL(got[i]), want)
		}
	}
}

func TestMMR_LambdaZeroPrefersOutlier(t *testing.T) {
	// A cluster of near-identical high-relevance sources and one
	// low-relevance but maximally distant outlier: with lambda=0 the
	// outlier must beat the duplicates once the cluster is represented.
	cluster := domain.PerspectiveAnnotation{
		PoliticalLean:   domain.LeanLeft,
		PolicyFrames:    []domain.PolicyFrame{domain.FrameEconomic},
		StakeholderType: domain.StakeholderJournalist,
		GeographicFocus: "US",
		Topic:           "tariffs",
	}
	outlier := domain.PerspectiveAnnotation{
		PoliticalLean:   domain.LeanRight,
		PolicyFrames:    []domain.PolicyFrame{domain.FrameMorality},
		StakeholderType: domain.StakeholderCitizen,
		GeographicFocus: "EU",
		Topic:           "trade",
	}

	ranker := NewMMR(0.0)
	sources := []domain.AnnotatedSource{
		annotatedSource("c1", 0.9, cluster),
		annotatedSource("c2", 0.89, cluster),
		annotatedSource("c3", 0.88, cluster),
		annotatedSource("out", 0.1, outlier),
	}

	got := ranker.Rank(context.Background(), sources, 2)
	if sourceURL(got[0]) != "c1" {
		t.Fatalf("first pick = %s, want c1", sourceURL(got[0]))
	}
	if sourceURL(got[1]) != "out" {
		t.Errorf("second pick = %s, want out", sourceURL(got[1]))
	}
}

func TestMMR_PrefersDistinctAnnotationsOverDuplicate(t *testing.T) {
	// Five sources; the 0.85 source duplicates the 0.9 source's annotation.
	// With lambda=0.5 the duplicate must lose both remaining slots to
	// sources with distinct annotations.
	dup := domain.PerspectiveAnnotation{
		PoliticalLean:   domain.LeanFarLeft,
		PolicyFrames:    []domain.PolicyFrame{domain.FrameEconomic},
		StakeholderType: domain.StakeholderGovernment,
		GeographicFocus: "US",
		Topic:           "climate",
	}
	ranker := NewMMR(0.5)
	sources := []domain.AnnotatedSource{
		annotatedSource("s1", 0.9, dup),
		annotatedSource("s2", 0.8, domain.PerspectiveAnnotation{
			PoliticalLean:   domain.LeanRight,
			PolicyFrames:    []domain.PolicyFrame{domain.FrameMorality},
			StakeholderType: domain.StakeholderJournalist,
			GeographicFocus: "EU",
			Topic:           "economy",
		}),
		annotatedSource("s3", 0.7, domain.PerspectiveAnnotation{
			PoliticalLean:   domain.LeanCenter,
			PolicyFrames:    []domain.PolicyFrame{domain.FramePolitical},
			StakeholderType: domain.StakeholderAcademic,
			GeographicFocus: "Asia",
			Topic:           "energy",
		}),
		annotatedSource("s4", 0.85, dup),
		annotatedSource("s5", 0.6, domain.PerspectiveAnnotation{
			PoliticalLean:   domain.LeanCenterLeft,
			PolicyFrames:    []domain.PolicyFrame{domain.FrameHealthSafety},
			StakeholderType: domain.StakeholderCitizen,
			GeographicFocus: "global",
			Topic:           "health",
		}),
	}

	got := ranker.Rank(context.Background(), sources, 3)
	if sourceURL(got[0]) != "s1" {
		t.Fatalf("first pick = %s, want s1", sourceURL(got[0]))
	}
	for _, s := range got {
		if sourceURL(s) == "s4" {
			t.Errorf("duplicate-annotation source s4 selected over distinct sources")
		}
	}
}

func TestMMR_TieBreaksToEarlierCandidate(t *testing.T) {
	// Identical relevance and identical annotations: every MMR score ties,
	// so selection must follow input order.
	ann := domain.PerspectiveAnnotation{Topic: "same"}
	ranker := NewMMR(0.5)
	sources := []domain.AnnotatedSource{
		annotatedSource("a", 0.5, ann),
		annotatedSource("b", 0.5, ann),
		annotatedSource("c", 0.5, ann),
	}

	got := ranker.Rank(context.Background(), sources, 3)
	wantOrder := []string{"a", "b", "c"}
	for i, want := range wantOrder {
		if sourceURL(got[i]) != want {
			t.Errorf("position %d = %s, want %s", i, sourceURL(got[i]), want)
		}
	}
}

func TestMMR_DoesNotMutateInput(t *testing.T) {
	ranker := NewMMR(0.5)
	sources := []domain.AnnotatedSource{
		annotatedSource("a", 0.2, domain.PerspectiveAnnotation{Topic: "t1"}),
		annotatedSource("b", 0.9, domain.PerspectiveAnnotation{Topic: "t2"}),
		annotatedSource("c", 0.5, domain.PerspectiveAnnotation{Topic: "t3"}),
	}
	wantOrder := []string{"a", "b", "c"}

	_ = ranker.Rank(context.Background(), sources, 3)

	for i, want := range wantOrder {
		if sourceURL(sources[i]) != want {
			t.Errorf("input position %d = %s, want %s", i, sourceURL(sources[i]), want)
		}
	}
}

func TestNewMMR_ClampsLambda(t *testing.T) {
	if m := NewMMR(-0.3); m.lambda != 0 {
		t.Errorf("negative lambda = %v, want 0", m.lambda)
	}
	if m := NewMMR(1.7); m.lambda != 1 {
		t.Errorf("oversized lambda = %v, want 1", m.lambda)
	}
	if m := NewMMR(0); m.lambda != 0 {
		t.Errorf("zero lambda = %v, want 0 (pure diversity)", m.lambda)
	}
}
