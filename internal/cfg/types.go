package cfg

type Cfg struct {
	// HTTP server configuration
	Port string

	// Source configuration
	Lang          string
	UserAgent     string
	SourceTimeout int     // seconds, per outbound call
	RateLimit     float64 // outbound requests per second
	ThumbSize     int     // preferred thumbnail width in pixels

	// Feed configuration
	MaxCount      int    // upper bound for the count query parameter
	CacheTTL      int    // popularity cache TTL in minutes
	TagsFile      string // optional YAML override for the tag/category map
	RelatedLimit  int    // related topics kept per card
	MinExtractLen int    // quality filter stub threshold

	// Application metadata
	Timezone string
	Debug    bool
	Version  string
}
