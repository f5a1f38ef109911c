package unbubble

import (
	"fmt"

	"github.com/UnbubbleHub/sources/internal/domain"
)

// Query is a search query with an optional intent label.
type Query struct {
	Text   string
	Intent string
}

// SourceType discriminates between source kinds.
type SourceType string

const (
	// SourceArticle is a news article.
	SourceArticle SourceType = "article"
	// SourceTweet is a post from X.
	SourceTweet SourceType = "tweet"
)

// Source is a retrieved news source. Type selects which fields apply:
// articles use Title and Description, tweets use TweetID, AuthorHandle,
// AuthorName and Text. URL is required for both.
type Source struct {
	Type        SourceType
	URL         string
	Domain      string
	PublishedAt string

	// Article fields
	Title       string
	Description string

	// Tweet fields
	TweetID      string
	AuthorHandle string
	AuthorName   string
	Text         string
}

// Annotation is the perspective metadata attached to a source.
// Enum fields carry the string taxonomy values; unrecognized values fall
// back to their defaults when converting to domain types.
type Annotation struct {
	PoliticalLean   string
	PolicyFrames    []string
	StakeholderType string
	StanceSummary   string
	Topic           string
	GeographicFocus string
}

// AnnotatedSource pairs a source with its annotation and relevance score.
type AnnotatedSource struct {
	Source         Source
	Annotation     Annotation
	RelevanceScore float64
}

// APICallUsage is the token usage of a single provider API call.
type APICallUsage struct {
	Model                    string
	InputTokens              int
	OutputTokens             int
	CacheCreationInputTokens int
	CacheReadInputTokens     int
	WebSearches              int
}

// Usage is accumulated provider usage across an operation.
type Usage struct {
	APICalls        []APICallUsage
	SearchRequests  int
	EmbeddingTokens int
}

func queryToDomain(q Query) domain.SearchQuery {
	return domain.SearchQuery{Text: q.Text, Intent: q.Intent}
}

func queryFromDomain(q domain.SearchQuery) Query {
	return Query{Text: q.Text, Intent: q.Intent}
}

func sourceToDomain(s Source) (domain.Source, error) {
	if s.URL == "" {
		return nil, fmt.Errorf("%w: source url is required", domain.ErrInvalidRequest)
	}
	switch s.Type {
	case SourceArticle, "":
		return domain.Article{
			Title:       s.Title,
			URL:         s.URL,
			Domain:      s.Domain,
			Published:   s.PublishedAt,
			Description: s.Description,
		}, nil
	case SourceTweet:
		return domain.Tweet{
			TweetID:      s.TweetID,
			URL:          s.URL,
			Domain:       s.Domain,
			Published:    s.PublishedAt,
			AuthorHandle: s.AuthorHandle,
			AuthorName:   s.AuthorName,
			Text:         s.Text,
		}, nil
	default:
		return nil, fmt.Errorf("%w: unknown source type %q", domain.ErrInvalidRequest, s.Type)
	}
}

func sourceFromDomain(s domain.Source) Source {
	switch v := s.(type) {
	case domain.Article:
		return Source{
			Type:        SourceArticle,
			URL:         v.URL,
			Domain:      v.Domain,
			PublishedAt: v.Published,
			Title:       v.Title,
			Description: v.Description,
		}
	case domain.Tweet:
		return Source{
			Type:         SourceTweet,
			URL:          v.URL,
			Domain:       v.Domain,
			PublishedAt:  v.Published,
			TweetID:      v.TweetID,
			AuthorHandle: v.AuthorHandle,
			AuthorName:   v.AuthorName,
			Text:         v.Text,
		}
	default:
		return Source{URL: s.SourceURL(), Domain: s.SourceDomain(), PublishedAt: s.PublishedAt()}
	}
}

func annotationToDomain(a Annotation) domain.PerspectiveAnnotation {
	var frames []domain.PolicyFrame
	for _, f := range a.PolicyFrames {
		if frame, ok := domain.ParsePolicyFrame(f); ok {
			frames = append(frames, frame)
		}
	}
	return domain.PerspectiveAnnotation{
		PoliticalLean:   domain.ParsePoliticalLean(a.PoliticalLean),
		PolicyFrames:    frames,
		StakeholderType: domain.ParseStakeholderType(a.StakeholderType),
		StanceSummary:   a.StanceSummary,
		Topic:           a.Topic,
		GeographicFocus: a.GeographicFocus,
	}
}

func annotationFromDomain(a domain.PerspectiveAnnotation) Annotation {
	frames := make([]string, len(a.PolicyFrames))
	for i, f := range a.PolicyFrames {
		frames[i] = string(f)
	}
	return Annotation{
		PoliticalLean:   string(a.PoliticalLean),
		PolicyFrames:    frames,
		StakeholderType: string(a.StakeholderType),
		StanceSummary:   a.StanceSummary,
		Topic:           a.Topic,
		GeographicFocus: a.GeographicFocus,
	}
}

func annotatedToDomain(as AnnotatedSource) (domain.AnnotatedSource, error) {
	src, err := sourceToDomain(as.Source)
	if err != nil {
		return domain.AnnotatedSource{}, err
	}
	return domain.AnnotatedSource{
		Source:         src,
		Annotation:     annotationToDomain(as.Annotation),
		RelevanceScore: domain.ClampScore(as.RelevanceScore),
	}, nil
}

func annotatedFromDomain(as domain.AnnotatedSource) AnnotatedSource {
	return AnnotatedSource{
		Source:         sourceFromDomain(as.Source),
		Annotation:     annotationFromDomain(as.Annotation),
		RelevanceScore: as.RelevanceScore,
	}
}

func usageFromDomain(u domain.Usage) Usage {
	calls := make([]APICallUsage, len(u.APICalls))
	for i, c := range u.APICalls {
		calls[i] = APICallUsage{
			Model:                    c.Model,
			InputTokens:              c.InputTokens,
			OutputTokens:             c.OutputTokens,
			CacheCreationInputTokens: c.CacheCreationInputTokens,
			CacheReadInputTokens:     c.CacheReadInputTokens,
			WebSearches:              c.WebSearches,
		}
	}
	return Usage{
		APICalls:        calls,
		SearchRequests:  u.SearchRequests,
		EmbeddingTokens: u.EmbeddingTokens,
	}
}
