package chi

import (
	"fmt"

	"github.com/UnbubbleHub/sources/internal/domain"
)

// Error codes returned in ErrorResponse.Code.
const (
	codeBadRequest              = "bad_request"
	codeValidationFailed        = "validation_failed"
	codeEmbeddingProviderError  = "embedding_provider_error"
	codeAnnotationProviderError = "annotation_provider_error"
	codeInternalError           = "internal_error"
)

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// QueryDTO is the wire form of a search query.
type QueryDTO struct {
	Text   string `json:"text"`
	Intent string `json:"intent,omitempty"`
}

// SourceDTO is the wire form of a source. Type discriminates the variant.
type SourceDTO struct {
	Type        string    `json:"type"` // "article" | "tweet"
	URL         string    `json:"url"`
	Domain      string    `json:"domain,omitempty"`
	PublishedAt string    `json:"published_at,omitempty"`
	Query       *QueryDTO `json:"query,omitempty"`

	// Article fields.
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`

	// Tweet fields.
	TweetID      string `json:"tweet_id,omitempty"`
	AuthorHandle string `json:"author_handle,omitempty"`
	AuthorName   string `json:"author_name,omitempty"`
	Text         string `json:"text,omitempty"`
	RetweetCount int    `json:"retweet_count,omitempty"`
	LikeCount    int    `json:"like_count,omitempty"`
	ReplyCount   int    `json:"reply_count,omitempty"`
}

// AnnotationDTO is the wire form of a perspective annotation.
type AnnotationDTO struct {
	PoliticalLean   string   `json:"political_lean,omitempty"`
	PolicyFrames    []string `json:"policy_frames,omitempty"`
	StakeholderType string   `json:"stakeholder_type,omitempty"`
	StanceSummary   string   `json:"stance_summary,omitempty"`
	Topic           string   `json:"topic,omitempty"`
	GeographicFocus string   `json:"geographic_focus,omitempty"`
}

// AnnotatedSourceDTO pairs a source with its annotation and relevance.
type AnnotatedSourceDTO struct {
	Source         SourceDTO     `json:"source"`
	Annotation     AnnotationDTO `json:"annotation"`
	RelevanceScore float64       `json:"relevance_score"`
}

// APICallUsageDTO is the wire form of one provider API call's usage.
type APICallUsageDTO struct {
	Model                    string `json:"model"`
	InputTokens              int    `json:"input_tokens"`
	OutputTokens             int    `json:"output_tokens"`
	CacheCreationInputTokens int    `json:"cache_creation_input_tokens,omitempty"`
	CacheReadInputTokens     int    `json:"cache_read_input_tokens,omitempty"`
	WebSearches              int    `json:"web_searches,omitempty"`
}

// UsageDTO is the wire form of accumulated usage.
type UsageDTO struct {
	APICalls        []APICallUsageDTO `json:"api_calls,omitempty"`
	SearchRequests  int               `json:"search_requests,omitempty"`
	EmbeddingTokens int               `json:"embedding_tokens,omitempty"`
	InputTokens     int               `json:"input_tokens"`
	OutputTokens    int               `json:"output_tokens"`
}

// AggregateQueriesRequest is the body of POST /v1/queries/aggregate.
type AggregateQueriesRequest struct {
	Queries []QueryDTO `json:"queries"`
}

// AggregateQueriesResponse is the reply of POST /v1/queries/aggregate.
type AggregateQueriesResponse struct {
	Queries []QueryDTO `json:"queries"`
}

// AnnotateSourcesRequest is the body of POST /v1/sources/annotate.
type AnnotateSourcesRequest struct {
	EventDescription string      `json:"event_description"`
	Sources          []SourceDTO `json:"sources"`
}

// AnnotateSourcesResponse is the reply of POST /v1/sources/annotate.
type AnnotateSourcesResponse struct {
	Sources []AnnotatedSourceDTO `json:"sources"`
	Usage   UsageDTO             `json:"usage"`
}

// RankSourcesRequest is the body of POST /v1/sources/rank.
type RankSourcesRequest struct {
	Sources []AnnotatedSourceDTO `json:"sources"`
	TopK    *int                 `json:"top_k,omitempty"`
}

// RankSourcesResponse is the reply of POST /v1/sources/rank.
type RankSourcesResponse struct {
	Sources []AnnotatedSourceDTO `json:"sources"`
}

// HealthResponse is the reply of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func queryFromDTO(q QueryDTO) domain.SearchQuery {
	return domain.SearchQuery{Text: q.Text, Intent: q.Intent}
}

func queryToDTO(q domain.SearchQuery) QueryDTO {
	return QueryDTO{Text: q.Text, Intent: q.Intent}
}

func sourceFromDTO(s SourceDTO) (domain.Source, error) {
	if s.URL == "" {
		return nil, fmt.Errorf("source url is required")
	}

	var query domain.SearchQuery
	if s.Query != nil {
		query = queryFromDTO(*s.Query)
	}

	switch s.Type {
	case "article":
		return domain.Article{
			Title:       s.Title,
			URL:         s.URL,
			Domain:      s.Domain,
			Published:   s.PublishedAt,
			Description: s.Description,
			Query:       query,
		}, nil
	case "tweet":
		return domain.Tweet{
			TweetID:      s.TweetID,
			URL:          s.URL,
			Domain:       s.Domain,
			Published:    s.PublishedAt,
			AuthorHandle: s.AuthorHandle,
			AuthorName:   s.AuthorName,
			Text:         s.Text,
			RetweetCount: s.RetweetCount,
			LikeCount:    s.LikeCount,
			ReplyCount:   s.ReplyCount,
			Query:        query,
		}, nil
	default:
		return nil, fmt.Errorf("source type must be \"article\" or \"tweet\", got %q", s.Type)
	}
}

func sourceToDTO(src domain.Source) SourceDTO {
	dto := SourceDTO{
		URL:         src.SourceURL(),
		Domain:      src.SourceDomain(),
		PublishedAt: src.PublishedAt(),
	}
	if q := src.OriginQuery(); q.Text != "" {
		qd := queryToDTO(q)
		dto.Query = &qd
	}

	switch s := src.(type) {
	case domain.Article:
		dto.Type = "article"
		dto.Title = s.Title
		dto.Description = s.Description
	case domain.Tweet:
		dto.Type = "tweet"
		dto.TweetID = s.TweetID
		dto.AuthorHandle = s.AuthorHandle
		dto.AuthorName = s.AuthorName
		dto.Text = s.Text
		dto.RetweetCount = s.RetweetCount
		dto.LikeCount = s.LikeCount
		dto.ReplyCount = s.ReplyCount
	}
	return dto
}

func annotationFromDTO(a AnnotationDTO) domain.PerspectiveAnnotation {
	var frames []domain.PolicyFrame
	for _, f := range a.PolicyFrames {
		if frame, ok := domain.ParsePolicyFrame(f); ok {
			frames = append(frames, frame)
		}
	}
	ann := domain.PerspectiveAnnotation{
		PolicyFrames:    frames,
		StanceSummary:   a.StanceSummary,
		Topic:           a.Topic,
		GeographicFocus: a.GeographicFocus,
	}
	if a.PoliticalLean != "" {
		ann.PoliticalLean = domain.ParsePoliticalLean(a.PoliticalLean)
	}
	if a.StakeholderType != "" {
		ann.StakeholderType = domain.ParseStakeholderType(a.StakeholderType)
	}
	return ann
}

func annotationToDTO(a domain.PerspectiveAnnotation) AnnotationDTO {
	var frames []string
	for _, f := range a.PolicyFrames {
		frames = append(frames, string(f))
	}
	return AnnotationDTO{
		PoliticalLean:   string(a.PoliticalLean),
		PolicyFrames:    frames,
		StakeholderType: string(a.StakeholderType),
		StanceSummary:   a.StanceSummary,
		Topic:           a.Topic,
		GeographicFocus: a.GeographicFocus,
	}
}

func annotatedFromDTO(dto AnnotatedSourceDTO) (domain.AnnotatedSource, error) {
	src, err := sourceFromDTO(dto.Source)
	if err != nil {
		return domain.AnnotatedSource{}, err
	}
	return domain.AnnotatedSource{
		Source:         src,
		Annotation:     annotationFromDTO(dto.Annotation),
		RelevanceScore: domain.ClampScore(dto.RelevanceScore),
	}, nil
}

func annotatedToDTO(as domain.AnnotatedSource) AnnotatedSourceDTO {
	return AnnotatedSourceDTO{
		Source:         sourceToDTO(as.Source),
		Annotation:     annotationToDTO(as.Annotation),
		RelevanceScore: as.RelevanceScore,
	}
}

func usageToDTO(u domain.Usage) UsageDTO {
	var calls []APICallUsageDTO
	for _, c := range u.APICalls {
		calls = append(calls, APICallUsageDTO{
			Model:                    c.Model,
			InputTokens:              c.InputTokens,
			OutputTokens:             c.OutputTokens,
			CacheCreationInputTokens: c.CacheCreationInputTokens,
			CacheReadInputTokens:     c.CacheReadInputTokens,
			WebSearches:              c.WebSearches,
		})
	}
	return UsageDTO{
		APICalls:        calls,
		SearchRequests:  u.SearchRequests,
		EmbeddingTokens: u.EmbeddingTokens,
		InputTokens:     u.InputTokens(),
		OutputTokens:    u.OutputTokens(),
	}
}
