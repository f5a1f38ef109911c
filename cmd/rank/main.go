// Command rank is a one-shot CLI over the unbubble SDK.
//
// rank mode (default) reads a JSON array of annotated sources and prints
// the MMR-ranked selection. aggregate mode reads a JSON array of queries
// and prints the diverse subset; it needs OPENAI_API_KEY when the input
// is larger than the component count.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	unbubble "github.com/UnbubbleHub/sources/pkg/sdk"
)

var (
	mode       = flag.String("mode", "rank", "Operation: rank or aggregate")
	inputPath  = flag.String("input", "-", "Path to the input JSON array (- for stdin)")
	lambda     = flag.Float64("lambda", 0.5, "Relevance/diversity trade-off in [0,1]; higher favors relevance")
	topK       = flag.Int("top-k", 10, "Number of sources to select (rank mode)")
	components = flag.Int("components", 5, "Number of diverse queries to keep (aggregate mode)")
	jsonOutput = flag.Bool("json", false, "Emit results as JSON instead of a table")
)

// inputQuery mirrors the API wire format for one query.
type inputQuery struct {
	Text   string `json:"text"`
	Intent string `json:"intent"`
}

// inputSource mirrors the API wire format for one annotated source.
type inputSource struct {
	Source struct {
		Type         string `json:"type"`
		URL          string `json:"url"`
		Domain       string `json:"domain"`
		PublishedAt  string `json:"published_at"`
		Title        string `json:"title"`
		Description  string `json:"description"`
		TweetID      string `json:"tweet_id"`
		AuthorHandle string `json:"author_handle"`
		AuthorName   string `json:"author_name"`
		Text         string `json:"text"`
	} `json:"source"`
	Annotation struct {
		PoliticalLean   string   `json:"political_lean"`
		PolicyFrames    []string `json:"policy_frames"`
		StakeholderType string   `json:"stakeholder_type"`
		StanceSummary   string   `json:"stance_summary"`
		Topic           string   `json:"topic"`
		GeographicFocus string   `json:"geographic_focus"`
	} `json:"annotation"`
	RelevanceScore float64 `json:"relevance_score"`
}

func main() {
	flag.Parse()

	ctx := context.Background()
	var err error
	switch *mode {
	case "rank":
		err = runRank(ctx)
	case "aggregate":
		err = runAggregate(ctx)
	default:
		err = fmt.Errorf("unknown mode %q (want rank or aggregate)", *mode)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runRank(ctx context.Context) error {
	var items []inputSource
	if err := readInput(*inputPath, &items); err != nil {
		return err
	}

	sources := make([]unbubble.AnnotatedSource, len(items))
	for i, item := range items {
		sources[i] = unbubble.AnnotatedSource{
			Source: unbubble.Source{
				Type:         unbubble.SourceType(item.Source.Type),
				URL:          item.Source.URL,
				Domain:       item.Source.Domain,
				PublishedAt:  item.Source.PublishedAt,
				Title:        item.Source.Title,
				Description:  item.Source.Description,
				TweetID:      item.Source.TweetID,
				AuthorHandle: item.Source.AuthorHandle,
				AuthorName:   item.Source.AuthorName,
				Text:         item.Source.Text,
			},
			Annotation: unbubble.Annotation{
				PoliticalLean:   item.Annotation.PoliticalLean,
				PolicyFrames:    item.Annotation.PolicyFrames,
				StakeholderType: item.Annotation.StakeholderType,
				StanceSummary:   item.Annotation.StanceSummary,
				Topic:           item.Annotation.Topic,
				GeographicFocus: item.Annotation.GeographicFocus,
			},
			RelevanceScore: item.RelevanceScore,
		}
	}

	client, err := unbubble.New(ctx, unbubble.WithLambda(*lambda))
	if err != nil {
		return err
	}
	defer client.Close()

	ranked, err := client.RankSources(ctx, sources, *topK)
	if err != nil {
		return err
	}

	if *jsonOutput {
		return writeJSON(rankedOutput(ranked))
	}
	printRanked(ranked)
	return nil
}

func runAggregate(ctx context.Context) error {
	var items []inputQuery
	if err := readInput(*inputPath, &items); err != nil {
		return err
	}

	queries := make([]unbubble.Query, len(items))
	for i, q := range items {
		queries[i] = unbubble.Query{Text: q.Text, Intent: q.Intent}
	}

	opts := []unbubble.Option{unbubble.WithComponents(*components)}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		opts = append(opts, unbubble.WithOpenAIEmbedder(key, os.Getenv("EMBEDDING_MODEL")))
	}

	client, err := unbubble.New(ctx, opts...)
	if err != nil {
		return err
	}
	defer client.Close()

	selected, err := client.AggregateQueries(ctx, queries)
	if err != nil {
		return err
	}

	if *jsonOutput {
		out := make([]inputQuery, len(selected))
		for i, q := range selected {
			out[i] = inputQuery{Text: q.Text, Intent: q.Intent}
		}
		return writeJSON(out)
	}

	boldGreen := color.New(color.FgGreen, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	fmt.Printf("%s %d of %d queries kept\n", boldGreen("Aggregated:"), len(selected), len(queries))
	for i, q := range selected {
		fmt.Printf("%2d. %s", i+1, q.Text)
		if q.Intent != "" {
			fmt.Printf(" %s", dim("["+q.Intent+"]"))
		}
		fmt.Println()
	}
	return nil
}

func readInput(path string, v any) error {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		r = f
	}
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("parse input: %w", err)
	}
	return nil
}

func writeJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type outputSource struct {
	Rank           int     `json:"rank"`
	URL            string  `json:"url"`
	Domain         string  `json:"domain"`
	PoliticalLean  string  `json:"political_lean"`
	Stakeholder    string  `json:"stakeholder_type"`
	Topic          string  `json:"topic,omitempty"`
	RelevanceScore float64 `json:"relevance_score"`
}

func rankedOutput(ranked []unbubble.AnnotatedSource) []outputSource {
	out := make([]outputSource, len(ranked))
	for i, as := range ranked {
		out[i] = outputSource{
			Rank:           i + 1,
			URL:            as.Source.URL,
			Domain:         as.Source.Domain,
			PoliticalLean:  as.Annotation.PoliticalLean,
			Stakeholder:    as.Annotation.StakeholderType,
			Topic:          as.Annotation.Topic,
			RelevanceScore: as.RelevanceScore,
		}
	}
	return out
}

func printRanked(ranked []unbubble.AnnotatedSource) {
	boldGreen := color.New(color.FgGreen, color.Bold).SprintFunc()
	boldCyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	fmt.Println(boldGreen("Ranked sources"))
	for i, as := range ranked {
		fmt.Printf("%s %s %s\n",
			boldCyan(fmt.Sprintf("%2d.", i+1)),
			as.Source.URL,
			dim(fmt.Sprintf("(relevance %.2f)", as.RelevanceScore)),
		)
		fmt.Printf("    lean=%s stakeholder=%s", as.Annotation.PoliticalLean, as.Annotation.StakeholderType)
		if as.Annotation.Topic != "" {
			fmt.Printf(" topic=%q", as.Annotation.Topic)
		}
		fmt.Println()
		if as.Annotation.StanceSummary != "" {
			fmt.Printf("    %s\n", dim(as.Annotation.StanceSummary))
		}
	}
	if len(ranked) == 0 {
		fmt.Println(dim("no sources selected"))
	}
}
