package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"wikifeed/internal/cfg"
	"wikifeed/internal/feed"
)

func NewHandler(pager FeedPager, tags *feed.TagSet, cache *feed.PopularityCache,
	maxCount int, defaultLang string) *Handler {
	return &Handler{
		pager:       pager,
		tags:        tags,
		cache:       cache,
		maxCount:    maxCount,
		defaultLang: defaultLang,
	}
}

// GetFeed handles the main feed endpoint.
func (h *Handler) GetFeed(c *gin.Context) {
	count := feed.DefaultCount
	if raw := c.Query("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'count' parameter"})
			return
		}
		count = min(parsed, h.maxCount)
	}

	offset := 0
	if raw := c.Query("offset"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'offset' parameter"})
			return
		}
		offset = parsed
	}

	var seed int64
	if raw := c.Query("seed"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'seed' parameter"})
			return
		}
		seed = parsed
	}

	lang := c.Query("lang")
	if lang == "" {
		lang = h.defaultLang
	}

	req := feed.PageRequest{
		Lang:   lang,
		Count:  count,
		Offset: offset,
		Tag:    c.Query("tag"),
		Seed:   seed,
		Cursor: c.Query("cursor"),
	}

	started := time.Now()
	result := h.pager.GetFeedPage(c.Request.Context(), req)

	slog.Info("Feed page served",
		"lang", lang,
		"tag", req.Tag,
		"count", count,
		"items", len(result.Items),
		"duration", time.Since(started))

	// Always fresh: the shuffle seed makes repeated requests differ by design.
	c.Header("Cache-Control", "no-store")
	c.Header("X-Feed-Items", strconv.Itoa(len(result.Items)))
	c.JSON(http.StatusOK, result)
}

// GetTags returns the tag list the presentation layer renders.
func (h *Handler) GetTags(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tags": h.tags.Names()})
}

// GetHealth handles the health check endpoint.
func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"version":   cfg.GetVersion(),
		"tags":      h.tags.Count(),
	}

	if h.cache != nil {
		health["popularity_cache"] = map[string]interface{}{
			"titles": h.cache.Size(),
			"age":    h.cache.Age().String(),
		}
	}

	c.JSON(http.StatusOK, health)
}
