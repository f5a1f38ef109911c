package domain

// SearchQuery is a search query generated from a news event.
// Immutable value type: equality is by value (text + intent).
type SearchQuery struct {
	Text   string
	Intent string
}
