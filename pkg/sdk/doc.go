// Package unbubble provides an embedded Go client for the unbubble sources
// pipeline: query diversity aggregation, perspective annotation, and
// relevance/diversity ranking, without going through the HTTP API.
//
//	client, _ := unbubble.New(ctx,
//	    unbubble.WithOpenAIEmbedder(os.Getenv("OPENAI_API_KEY"), "text-embedding-3-small"),
//	    unbubble.WithAnnotator(os.Getenv("ANTHROPIC_API_KEY"), "claude-sonnet-4-20250514"),
//	)
//	defer client.Close()
//
//	diverse, _ := client.AggregateQueries(ctx, queries)
//	annotated, usage, _ := client.AnnotateSources(ctx, sources, "Senate votes on tariff bill")
//	ranked := client.RankSources(ctx, annotated, 10)
//
// Ranking is pure computation and works with a zero-config client; query
// aggregation above the component count needs an embedder, and annotation
// needs an Anthropic API key.
package unbubble
