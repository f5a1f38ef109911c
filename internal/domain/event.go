package domain

// NewsEvent is a news event or factual claim to investigate.
type NewsEvent struct {
	Description string
	Date        string
	Context     string
}
