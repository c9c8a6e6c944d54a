package feed

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"wikifeed/internal/wiki"
)

const (
	// DefaultCount is used when a request does not specify one.
	DefaultCount = 8

	// Concurrent detail lookups per page request.
	expandConcurrency = 8

	// Seed bucket width: repeated requests within the window reuse a seed.
	seedBucket = 5 * time.Minute

	// Largest 31-bit seed, matching the cursor envelope's seed range.
	maxSeed = 2_147_483_647
)

// Assembler orchestrates strategy selection, detail expansion, quality
// filtering, deduplication and shuffling into one page of results.
type Assembler struct {
	source       Source
	selector     *Selector
	policy       QualityPolicy
	relatedLimit int
	extractLimit int
	now          func() time.Time
}

// NewAssembler wires the pipeline. A nil clock defaults to time.Now.
func NewAssembler(source Source, selector *Selector, policy QualityPolicy, relatedLimit int, now func() time.Time) *Assembler {
	if now == nil {
		now = time.Now
	}
	if relatedLimit <= 0 {
		relatedLimit = 3
	}
	return &Assembler{
		source:       source,
		selector:     selector,
		policy:       policy,
		relatedLimit: relatedLimit,
		extractLimit: DefaultExtractLimit,
		now:          now,
	}
}

// GetFeedPage assembles one feed page. Source failures below this level are
// absorbed: a page is empty only when every fallback tier came up dry.
func (a *Assembler) GetFeedPage(ctx context.Context, req PageRequest) *PageResult {
	count := req.Count
	if count <= 0 {
		count = DefaultCount
	}

	now := a.now()
	category := a.selector.tags.Category(req.Lang, req.Tag)
	if category == "" {
		return a.blendPage(ctx, req, count, now)
	}
	return a.categoryPage(ctx, req, category, count, now)
}

func (a *Assembler) blendPage(ctx context.Context, req PageRequest, count int, now time.Time) *PageResult {
	seed := a.effectiveSeed(req, now)
	if req.Cursor != "" {
		if cursor, err := DecodeCursor(req.Cursor, StrategyBlend); err != nil {
			slog.Debug("Ignoring unusable cursor", "error", err)
		} else if cursor.Seed != 0 {
			seed = cursor.Seed
		}
	}

	candidates := a.selector.Blend(ctx, req.Lang, count, seed, now)
	items := a.finalize(a.expand(ctx, req.Lang, candidates.Titles), seed+3000, count)

	result := &PageResult{Items: items}
	if len(items) >= count {
		// Infinite-style strategy: another page is always meaningful. A fresh
		// time-derived seed makes it a different permutation.
		result.NextCursor = Cursor{
			Strategy: StrategyBlend,
			Seed:     now.UnixMilli() % maxSeed,
		}.Encode()
	}
	return result
}

func (a *Assembler) categoryPage(ctx context.Context, req PageRequest, category string, count int, now time.Time) *PageResult {
	seed := a.effectiveSeed(req, now)

	continueToken := ""
	if req.Cursor != "" {
		if cursor, err := DecodeCursor(req.Cursor, StrategyCategory); err != nil {
			slog.Debug("Ignoring unusable cursor", "error", err)
		} else {
			continueToken = cursor.Continue
		}
	}

	candidates, err := a.selector.CategoryMembers(ctx, req.Lang, category, count, continueToken)
	if err != nil {
		slog.Warn("Category selection failed", "category", category, "error", err)
		return &PageResult{Items: []Item{}}
	}

	items := a.finalize(a.expand(ctx, req.Lang, candidates.Titles), seed, count)

	result := &PageResult{Items: items}
	if candidates.Continue != "" {
		result.NextCursor = Cursor{
			Strategy: StrategyCategory,
			Continue: candidates.Continue,
		}.Encode()
	}
	return result
}

// effectiveSeed prefers a caller-supplied seed; otherwise wall-clock time
// bucketed to a coarse interval combined with the request offset, so repeats
// within the window are stable.
func (a *Assembler) effectiveSeed(req PageRequest, now time.Time) int64 {
	if req.Seed != 0 {
		return req.Seed
	}
	return now.Unix()/int64(seedBucket/time.Second) + int64(req.Offset)
}

// expand turns candidate titles into cards: concurrent per-title summary and
// related lookups, one batched category lookup, and a batched image fill for
// cards the summary left bare. A failed title is skipped, never fatal.
func (a *Assembler) expand(ctx context.Context, lang string, titles []string) []Item {
	if len(titles) == 0 {
		return nil
	}

	type detail struct {
		summary *wiki.Summary
		related []wiki.RelatedTopic
	}

	details := make([]*detail, len(titles))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(expandConcurrency)
	for i, title := range titles {
		g.Go(func() error {
			summary, err := a.source.GetSummary(gctx, lang, title)
			if err != nil {
				slog.Debug("Summary lookup failed, skipping title", "title", title, "error", err)
				return nil
			}

			related, err := a.source.GetRelated(gctx, lang, title)
			if err != nil {
				// Enrichment only; absence is fine.
				related = nil
			}
			if len(related) > a.relatedLimit {
				related = related[:a.relatedLimit]
			}

			details[i] = &detail{summary: summary, related: related}
			return nil
		})
	}
	g.Wait()

	categories, err := a.source.GetCategories(ctx, lang, titles)
	if err != nil {
		slog.Debug("Category lookup failed", "error", err)
		categories = nil
	}

	items := make([]Item, 0, len(titles))
	for _, d := range details {
		if d == nil {
			continue
		}
		image := d.summary.OriginalImageURL
		if image == "" {
			image = d.summary.ThumbnailURL
		}
		cats := categories[d.summary.Title]
		if cats == nil {
			cats = []string{}
		}
		items = append(items, Item{
			Title:         d.summary.Title,
			Extract:       SanitizeExtract(d.summary.Extract, a.extractLimit),
			Categories:    cats,
			RelatedTopics: d.related,
			Source:        lang + ".wikipedia.org",
			Image:         image,
		})
	}

	return a.fillImages(ctx, lang, items)
}

func (a *Assembler) fillImages(ctx context.Context, lang string, items []Item) []Item {
	var missing []string
	for _, item := range items {
		if item.Image == "" {
			missing = append(missing, item.Title)
		}
	}
	if len(missing) == 0 {
		return items
	}

	images, err := a.source.GetImages(ctx, lang, missing)
	if err != nil {
		slog.Debug("Image fill failed", "titles", len(missing), "error", err)
		return items
	}
	for i := range items {
		if items[i].Image == "" {
			items[i].Image = images[items[i].Title]
		}
	}
	return items
}

// finalize applies the quality policy, deduplicates by title (first
// occurrence wins), shuffles with the effective seed and truncates.
func (a *Assembler) finalize(items []Item, seed int64, count int) []Item {
	kept := make([]Item, 0, len(items))
	for _, item := range items {
		if a.policy.Acceptable(item) {
			kept = append(kept, item)
		}
	}

	kept = dedupeItems(kept)
	kept = Shuffle(kept, seed)
	if len(kept) > count {
		kept = kept[:count]
	}
	return kept
}

func dedupeItems(items []Item) []Item {
	seen := make(map[string]struct{}, len(items))
	out := make([]Item, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.Title]; ok {
			continue
		}
		seen[item.Title] = struct{}{}
		out = append(out, item)
	}
	return out
}
