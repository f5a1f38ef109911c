package anthropic

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"

	"github.com/UnbubbleHub/sources/internal/domain"
	"github.com/UnbubbleHub/sources/internal/metrics"
)

// DefaultBatchSize is the max number of sources per API call.
const DefaultBatchSize = 20

const maxTokens = 4096

// Annotator extracts perspective metadata from sources using the Claude
// Messages API. Sources are split into batches; batches run concurrently.
// A failed batch degrades to zero-value annotations with relevance 0.0 so
// one bad API call never loses the whole set.
type Annotator struct {
	client    anthropic.Client
	model     string
	batchSize int
	logger    *zap.Logger
}

// Config holds the annotation provider settings.
type Config struct {
	APIKey    string
	BaseURL   string
	Model     string
	BatchSize int
	Logger    *zap.Logger
}

// NewAnnotator creates a Claude-backed annotator.
func NewAnnotator(cfg *Config) *Annotator {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &Annotator{
		client:    anthropic.NewClient(opts...),
		model:     cfg.Model,
		batchSize: batchSize,
		logger:    cfg.Logger,
	}
}

// Annotate returns one annotated source per input source, in input order.
func (a *Annotator) Annotate(
	ctx context.Context,
	sources []domain.Source,
	eventDescription string,
) ([]domain.AnnotatedSource, domain.Usage, error) {
	if len(sources) == 0 {
		return nil, domain.Usage{}, nil
	}

	var batches [][]domain.Source
	for i := 0; i < len(sources); i += a.batchSize {
		end := min(i+a.batchSize, len(sources))
		batches = append(batches, sources[i:end])
	}

	type batchResult struct {
		annotated []domain.AnnotatedSource
		usage     domain.Usage
		err       error
	}

	results := make([]batchResult, len(batches))
	var wg sync.WaitGroup
	for i, batch := range batches {
		wg.Add(1)
		go func() {
			defer wg.Done()
			annotated, usage, err := a.annotateBatch(ctx, batch, eventDescription)
			results[i] = batchResult{annotated: annotated, usage: usage, err: err}
		}()
	}
	wg.Wait()

	annotated := make([]domain.AnnotatedSource, 0, len(sources))
	var usage domain.Usage
	for i, res := range results {
		if res.err != nil {
			a.logger.Warn("Annotation batch failed, using default annotations",
				zap.Int("batch", i), zap.Error(res.err))
			for _, src := range batches[i] {
				annotated = append(annotated, domain.AnnotatedSource{
					Source:         src,
					Annotation:     domain.PerspectiveAnnotation{},
					RelevanceScore: 0.0,
				})
			}
			continue
		}
		annotated = append(annotated, res.annotated...)
		usage = usage.Add(res.usage)
	}

	return annotated, usage, nil
}

func (a *Annotator) annotateBatch(
	ctx context.Context,
	sources []domain.Source,
	eventDescription string,
) ([]domain.AnnotatedSource, domain.Usage, error) {
	texts := make([]string, len(sources))
	for i, src := range sources {
		texts[i] = sourceToPromptText(src, i)
	}
	userPrompt := fmt.Sprintf("News event: %s\n\nAnnotate these %d sources:\n\n%s",
		eventDescription, len(sources), strings.Join(texts, "\n\n"))

	start := time.Now()

	resp, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	})

	duration := time.Since(start)

	if err != nil {
		metrics.AnnotationRequestsTotal.WithLabelValues(a.model, "error").Inc()
		return nil, domain.Usage{}, fmt.Errorf("annotation request: %w: %v", domain.ErrAnnotationProviderError, err)
	}

	metrics.AnnotationRequestsTotal.WithLabelValues(a.model, "success").Inc()
	metrics.AnnotationRequestDuration.WithLabelValues(a.model).Observe(duration.Seconds())
	metrics.AnnotationTokensTotal.WithLabelValues(a.model, "input").Add(float64(resp.Usage.InputTokens))
	metrics.AnnotationTokensTotal.WithLabelValues(a.model, "output").Add(float64(resp.Usage.OutputTokens))

	usage := domain.Usage{
		APICalls: []domain.APICallUsage{{
			Model:                    a.model,
			InputTokens:              int(resp.Usage.InputTokens),
			OutputTokens:             int(resp.Usage.OutputTokens),
			CacheCreationInputTokens: int(resp.Usage.CacheCreationInputTokens),
			CacheReadInputTokens:     int(resp.Usage.CacheReadInputTokens),
			WebSearches:              int(resp.Usage.ServerToolUse.WebSearchRequests),
		}},
	}

	var responseText strings.Builder
	for _, block := range resp.Content {
		responseText.WriteString(block.Text)
	}

	parsed := a.parseResponse(responseText.String(), len(sources))

	annotated := make([]domain.AnnotatedSource, len(sources))
	for i, src := range sources {
		annotated[i] = domain.AnnotatedSource{
			Source:         src,
			Annotation:     parsed[i].annotation,
			RelevanceScore: parsed[i].relevance,
		}
	}

	return annotated, usage, nil
}

// sourceToPromptText formats a source for inclusion in the annotation prompt.
func sourceToPromptText(src domain.Source, index int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Source %d:\n", index+1)
	fmt.Fprintf(&b, "  URL: %s\n", src.SourceURL())
	fmt.Fprintf(&b, "  Publisher: %s", src.SourceDomain())
	if published := src.PublishedAt(); published != "" {
		fmt.Fprintf(&b, "\n  Published: %s", published)
	}

	switch s := src.(type) {
	case domain.Article:
		if s.Title != "" {
			fmt.Fprintf(&b, "\n  Title: %s", s.Title)
		}
		if s.Description != "" {
			fmt.Fprintf(&b, "\n  Description: %s", s.Description)
		}
	case domain.Tweet:
		if s.AuthorHandle != "" {
			fmt.Fprintf(&b, "\n  Author: @%s (%s)", s.AuthorHandle, s.AuthorName)
		}
		if s.Text != "" {
			fmt.Fprintf(&b, "\n  Text: %s", s.Text)
		}
	}
	return b.String()
}

type parsedAnnotation struct {
	annotation domain.PerspectiveAnnotation
	relevance  float64
}

type rawAnnotation struct {
	PoliticalLean   string   `json:"political_lean"`
	PolicyFrames    []string `json:"policy_frames"`
	StakeholderType string   `json:"stakeholder_type"`
	StanceSummary   string   `json:"stance_summary"`
	Topic           string   `json:"topic"`
	GeographicFocus string   `json:"geographic_focus"`
	RelevanceScore  float64  `json:"relevance_score"`
}

// parseResponse parses the JSON array from the model response. Unparseable
// output degrades to zero-value annotations; the result always has exactly
// expectedCount entries.
func (a *Annotator) parseResponse(text string, expectedCount int) []parsedAnnotation {
	cleaned := stripFences(text)

	defaults := func() []parsedAnnotation {
		metrics.AnnotationParseFailuresTotal.WithLabelValues(a.model).Inc()
		return make([]parsedAnnotation, expectedCount)
	}

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &items); err != nil {
		a.logger.Warn("Failed to parse annotation JSON, using defaults", zap.Error(err))
		return defaults()
	}

	results := make([]parsedAnnotation, 0, expectedCount)
	for _, item := range items {
		var raw rawAnnotation
		if err := json.Unmarshal(item, &raw); err != nil {
			results = append(results, parsedAnnotation{})
			continue
		}
		results = append(results, parseAnnotation(raw))
	}

	// Pad or truncate to match expected count.
	for len(results) < expectedCount {
		results = append(results, parsedAnnotation{})
	}
	return results[:expectedCount]
}

func parseAnnotation(raw rawAnnotation) parsedAnnotation {
	var frames []domain.PolicyFrame
	for _, f := range raw.PolicyFrames {
		if frame, ok := domain.ParsePolicyFrame(f); ok {
			frames = append(frames, frame)
		}
	}

	return parsedAnnotation{
		annotation: domain.PerspectiveAnnotation{
			PoliticalLean:   domain.ParsePoliticalLean(raw.PoliticalLean),
			PolicyFrames:    frames,
			StakeholderType: domain.ParseStakeholderType(raw.StakeholderType),
			StanceSummary:   raw.StanceSummary,
			Topic:           raw.Topic,
			GeographicFocus: raw.GeographicFocus,
		},
		relevance: domain.ClampScore(raw.RelevanceScore),
	}
}

// stripFences removes markdown code fence lines the model sometimes adds
// despite instructions.
func stripFences(text string) string {
	cleaned := strings.TrimSpace(text)
	if !strings.HasPrefix(cleaned, "```") {
		return cleaned
	}
	lines := strings.Split(cleaned, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
