package feed

import (
	"wikifeed/internal/wiki"
)

// Item is a display-ready feed card. Every emitted card has a non-empty
// title and extract; image and categories depend on the active quality policy.
type Item struct {
	Title         string              `json:"title"`
	Extract       string              `json:"extract"`
	Categories    []string            `json:"categories"`
	RelatedTopics []wiki.RelatedTopic `json:"relatedTopics,omitempty"`
	Source        string              `json:"source"`
	Image         string              `json:"image,omitempty"`
}

// PageResult is one page of assembled cards. An absent NextCursor means the
// feed is exhausted for this query; its presence only means another page
// request is meaningful, not that more distinct items exist.
type PageResult struct {
	Items      []Item `json:"items"`
	NextCursor string `json:"nextCursor,omitempty"`
}

// PageRequest carries everything needed to assemble one feed page.
type PageRequest struct {
	Lang   string
	Count  int
	Offset int
	Tag    string
	Seed   int64
	Cursor string
}

// Candidates is a selection strategy's output: raw titles to detail-expand,
// an optional corpus continuation token, and whether the strategy claims more
// content beyond this batch.
type Candidates struct {
	Titles   []string
	Continue string
	More     bool
}
