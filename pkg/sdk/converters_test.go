package unbubble

import (
	"errors"
	"testing"

	"github.com/UnbubbleHub/sources/internal/domain"
)

func TestSourceToDomain_Article(t *testing.T) {
	src, err := sourceToDomain(Source{
		Type:        SourceArticle,
		URL:         "https://reuters.com/a",
		Domain:      "reuters.com",
		PublishedAt: "2026-08-20",
		Title:       "Senate votes",
		Description: "The bill passed.",
	})
	if err != nil {
		t.Fatalf("sourceToDomain: %v", err)
	}

	article, ok := src.(domain.Article)
	if !ok {
		t.Fatalf("expected Article, got %T", src)
	}
	if article.Title != "Senate votes" {
		t.Errorf("title = %q", article.Title)
	}
	if article.Published != "2026-08-20" {
		t.Errorf("published = %q", article.Published)
	}
}

func TestSourceToDomain_Tweet(t *testing.T) {
	src, err := sourceToDomain(Source{
		Type:         SourceTweet,
		URL:          "https://x.com/reporter/status/1",
		Domain:       "x.com",
		TweetID:      "1",
		AuthorHandle: "reporter",
		AuthorName:   "A Reporter",
		Text:         "Breaking: vote passed",
	})
	if err != nil {
		t.Fatalf("sourceToDomain: %v", err)
	}

	tweet, ok := src.(domain.Tweet)
	if !ok {
		t.Fatalf("expected Tweet, got %T", src)
	}
	if tweet.AuthorHandle != "reporter" {
		t.Errorf("handle = %q", tweet.AuthorHandle)
	}
}

func TestSourceToDomain_EmptyTypeDefaultsToArticle(t *testing.T) {
	src, err := sourceToDomain(Source{URL: "https://example.com/a"})
	if err != nil {
		t.Fatalf("sourceToDomain: %v", err)
	}
	if _, ok := src.(domain.Article); !ok {
		t.Errorf("expected Article, got %T", src)
	}
}

func TestSourceToDomain_MissingURL(t *testing.T) {
	_, err := sourceToDomain(Source{Type: SourceArticle})
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestSourceToDomain_UnknownType(t *testing.T) {
	_, err := sourceToDomain(Source{Type: "podcast", URL: "https://example.com/p"})
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestSourceRoundTrip(t *testing.T) {
	in := Source{
		Type:         SourceTweet,
		URL:          "https://x.com/u/status/2",
		Domain:       "x.com",
		PublishedAt:  "2026-08-21",
		TweetID:      "2",
		AuthorHandle: "u",
		AuthorName:   "U",
		Text:         "hot take",
	}

	src, err := sourceToDomain(in)
	if err != nil {
		t.Fatalf("sourceToDomain: %v", err)
	}
	out := sourceFromDomain(src)
	if out != in {
		t.Errorf("round trip changed source:\n in: %+v\nout: %+v", in, out)
	}
}

func TestAnnotationToDomain_ParsesEnums(t *testing.T) {
	a := annotationToDomain(Annotation{
		PoliticalLean:   "center_left",
		PolicyFrames:    []string{"economic", "not_a_frame", "security_and_defense"},
		StakeholderType: "academic",
		StanceSummary:   "supports the bill",
	})

	if a.PoliticalLean != domain.LeanCenterLeft {
		t.Errorf("lean = %q", a.PoliticalLean)
	}
	if len(a.PolicyFrames) != 2 {
		t.Errorf("frames = %v, invalid values must be dropped", a.PolicyFrames)
	}
	if a.StakeholderType != domain.StakeholderAcademic {
		t.Errorf("stakeholder = %q", a.StakeholderType)
	}
}

func TestAnnotationToDomain_UnknownValuesFallBack(t *testing.T) {
	a := annotationToDomain(Annotation{
		PoliticalLean:   "radical-centrist",
		StakeholderType: "time traveler",
	})

	if a.PoliticalLean != domain.LeanUnknown {
		t.Errorf("lean = %q, want unknown", a.PoliticalLean)
	}
	if a.StakeholderType != domain.StakeholderOther {
		t.Errorf("stakeholder = %q, want other", a.StakeholderType)
	}
}

func TestAnnotatedToDomain_ClampsRelevance(t *testing.T) {
	as, err := annotatedToDomain(AnnotatedSource{
		Source:         Source{Type: SourceArticle, URL: "https://example.com/a"},
		RelevanceScore: 1.8,
	})
	if err != nil {
		t.Fatalf("annotatedToDomain: %v", err)
	}
	if as.RelevanceScore != 1.0 {
		t.Errorf("relevance = %v, want clamped to 1.0", as.RelevanceScore)
	}
}

func TestUsageFromDomain(t *testing.T) {
	u := usageFromDomain(domain.Usage{
		APICalls: []domain.APICallUsage{
			{Model: "claude-sonnet-4-20250514", InputTokens: 100, OutputTokens: 50, WebSearches: 2},
		},
		SearchRequests:  3,
		EmbeddingTokens: 42,
	})

	if len(u.APICalls) != 1 {
		t.Fatalf("api calls = %d, want 1", len(u.APICalls))
	}
	if u.APICalls[0].InputTokens != 100 || u.APICalls[0].OutputTokens != 50 {
		t.Errorf("tokens = %+v", u.APICalls[0])
	}
	if u.APICalls[0].WebSearches != 2 {
		t.Errorf("web searches = %d, want 2", u.APICalls[0].WebSearches)
	}
	if u.SearchRequests != 3 || u.EmbeddingTokens != 42 {
		t.Errorf("usage = %+v", u)
	}
}
