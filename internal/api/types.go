package api

import (
	"context"

	"wikifeed/internal/feed"
)

// FeedPager assembles feed pages; satisfied by feed.Assembler.
type FeedPager interface {
	GetFeedPage(ctx context.Context, req feed.PageRequest) *feed.PageResult
}

// Handler handles HTTP requests for the feed API.
type Handler struct {
	pager       FeedPager
	tags        *feed.TagSet
	cache       *feed.PopularityCache
	maxCount    int
	defaultLang string
}
