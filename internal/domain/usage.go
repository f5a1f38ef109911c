package domain

// APICallUsage is the token usage of a single provider API call.
// The model name is carried so callers can attribute cost per model.
type APICallUsage struct {
	Model                    string
	InputTokens              int
	OutputTokens             int
	CacheCreationInputTokens int
	CacheReadInputTokens     int
	WebSearches              int
}

// Usage is accumulated API usage across pipeline components.
// It is combined with Add; neither operand is modified.
type Usage struct {
	APICalls        []APICallUsage
	SearchRequests  int
	EmbeddingTokens int
}

// Add returns the combination of two usage records.
func (u Usage) Add(other Usage) Usage {
	calls := make([]APICallUsage, 0, len(u.APICalls)+len(other.APICalls))
	calls = append(calls, u.APICalls...)
	calls = append(calls, other.APICalls...)
	return Usage{
		APICalls:        calls,
		SearchRequests:  u.SearchRequests + other.SearchRequests,
		EmbeddingTokens: u.EmbeddingTokens + other.EmbeddingTokens,
	}
}

// InputTokens sums input tokens across all API calls.
func (u Usage) InputTokens() int {
	var n int
	for _, c := range u.APICalls {
		n += c.InputTokens
	}
	return n
}

// OutputTokens sums output tokens across all API calls.
func (u Usage) OutputTokens() int {
	var n int
	for _, c := range u.APICalls {
		n += c.OutputTokens
	}
	return n
}

// WebSearches sums server-side web searches across all API calls.
func (u Usage) WebSearches() int {
	var n int
	for _, c := range u.APICalls {
		n += c.WebSearches
	}
	return n
}
