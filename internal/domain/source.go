package domain

// Source is a retrieved item about an event: an Article or a Tweet.
// Variants share a common accessor surface; variant-specific payloads are
// reached via a type switch on the concrete type.
type Source interface {
	// SourceURL is the stable identity used for deduplication upstream.
	SourceURL() string
	// SourceDomain is the publishing domain (e.g. "reuters.com", "x.com").
	SourceDomain() string
	// PublishedAt is the publication timestamp as reported by the provider,
	// empty when unknown.
	PublishedAt() string
	// OriginQuery is the search query that found this source.
	OriginQuery() SearchQuery

	isSource()
}

// Article is a news article retrieved from search.
type Article struct {
	Title       string
	URL         string
	Domain      string
	Published   string
	Description string
	Query       SearchQuery
}

// SourceURL implements Source.
func (a Article) SourceURL() string { return a.URL }

// SourceDomain implements Source.
func (a Article) SourceDomain() string { return a.Domain }

// PublishedAt implements Source.
func (a Article) PublishedAt() string { return a.Published }

// OriginQuery implements Source.
func (a Article) OriginQuery() SearchQuery { return a.Query }

func (Article) isSource() {}

// Tweet is a post retrieved from X.
type Tweet struct {
	TweetID      string
	URL          string
	Domain       string
	Published    string
	AuthorHandle string
	AuthorName   string
	Text         string
	RetweetCount int
	LikeCount    int
	ReplyCount   int
	Query        SearchQuery
}

// SourceURL implements Source.
func (t Tweet) SourceURL() string { return t.URL }

// SourceDomain implements Source.
func (t Tweet) SourceDomain() string { return t.Domain }

// PublishedAt implements Source.
func (t Tweet) PublishedAt() string { return t.Published }

// OriginQuery implements Source.
func (t Tweet) OriginQuery() SearchQuery { return t.Query }

func (Tweet) isSource() {}
