package feed

import (
	"context"
	"log/slog"
	"time"
)

const (
	// A popularity day is usable when it yields more than this many titles.
	minUsableRanking = 10

	// Days walked backward from today before falling back to ranked metrics.
	popularityWindowDays = 7

	// Pages of a category walked forward when earlier pages filter to empty.
	categoryAttempts = 5

	// Candidate cap for popularity selections.
	maxPopularCandidates = 40

	// Ranked-list metric used when recency-based popularity is unavailable.
	importanceMetric = "Mostlinked"
)

// Selector chooses which titles to request for a page: most popular recently,
// members of a category, or a blend of popular and diverse categories.
type Selector struct {
	source Source
	cache  *PopularityCache
	tags   *TagSet
}

func NewSelector(source Source, cache *PopularityCache, tags *TagSet) *Selector {
	return &Selector{
		source: source,
		cache:  cache,
		tags:   tags,
	}
}

// PopularityRecent returns up to min(2*count, 40) recently popular titles,
// seeded-shuffled so repeated calls within a cache window surface different
// items. An empty result means no popular data is available, not a failure.
func (s *Selector) PopularityRecent(ctx context.Context, lang string, count int, seed int64, now time.Time) Candidates {
	titles, err := s.cache.GetOrRefresh(ctx, func(ctx context.Context) ([]string, error) {
		return s.refreshPopular(ctx, lang, now)
	})
	if err != nil {
		slog.Debug("Popularity sources exhausted", "lang", lang, "error", err)
		return Candidates{}
	}
	if len(titles) == 0 {
		return Candidates{}
	}

	shuffled := Shuffle(titles, seed)
	limit := min(count*2, maxPopularCandidates)
	if len(shuffled) > limit {
		shuffled = shuffled[:limit]
	}
	return Candidates{Titles: shuffled, More: true}
}

// refreshPopular walks backward from today through the most-read rankings,
// then falls back to the pageviews metrics for yesterday, then to a ranked
// importance metric. Each tier is consulted only when the previous one fails
// or comes up short.
func (s *Selector) refreshPopular(ctx context.Context, lang string, now time.Time) ([]string, error) {
	for daysAgo := 0; daysAgo < popularityWindowDays; daysAgo++ {
		day := now.UTC().AddDate(0, 0, -daysAgo)
		titles, err := s.source.GetMostRead(ctx, lang, day)
		if err != nil {
			slog.Debug("Most-read lookup failed, advancing to previous day",
				"lang", lang, "days_ago", daysAgo, "error", err)
			continue
		}
		if len(titles) > minUsableRanking {
			slog.Debug("Popularity snapshot refreshed", "lang", lang, "source", "most-read", "days_ago", daysAgo, "titles", len(titles))
			return titles, nil
		}
	}

	yesterday := now.UTC().AddDate(0, 0, -1)
	titles, err := s.source.GetTopPageviews(ctx, lang, yesterday)
	if err == nil && len(titles) > minUsableRanking {
		slog.Debug("Popularity snapshot refreshed", "lang", lang, "source", "pageviews", "titles", len(titles))
		return titles, nil
	}

	titles, err = s.source.GetTopByMetric(ctx, lang, importanceMetric, maxPopularCandidates*3)
	if err == nil && len(titles) > minUsableRanking {
		slog.Debug("Popularity snapshot refreshed", "lang", lang, "source", "querypage", "titles", len(titles))
		return titles, nil
	}

	// No popular data available anywhere; callers degrade, never crash.
	return nil, nil
}

// CategoryMembers pages through a category's membership, advancing the
// corpus cursor past pages that filter down to nothing.
func (s *Selector) CategoryMembers(ctx context.Context, lang, category string, count int, cursor string) (Candidates, error) {
	current := cursor
	for attempt := 0; attempt < categoryAttempts; attempt++ {
		page, err := s.source.GetCategoryMembers(ctx, lang, category, count*2, current)
		if err != nil {
			return Candidates{}, err
		}
		if len(page.Titles) > 0 {
			return Candidates{
				Titles:   page.Titles,
				Continue: page.Continue,
				More:     page.Continue != "",
			}, nil
		}
		if page.Continue == "" {
			break
		}
		current = page.Continue
	}
	return Candidates{}, nil
}

// Blend fills roughly half the request from recent popularity and tops up
// by round-robining across a shuffled set of domain categories until the
// safety margin is met or categories are exhausted.
func (s *Selector) Blend(ctx context.Context, lang string, count int, seed int64, now time.Time) Candidates {
	half := (count + 1) / 2
	titles := s.PopularityRecent(ctx, lang, half, seed, now).Titles

	// 1.5x the requested count to survive filtering losses.
	target := count + count/2
	if len(titles) < target {
		categories := Shuffle(s.tags.DomainCategories(lang), seed+1000)
		rounds := min(3, len(categories))
		if rounds > 0 {
			perCategory := (target - len(titles) + rounds - 1) / rounds
			for i := 0; i < rounds && len(titles) < target; i++ {
				page, err := s.source.GetCategoryMembers(ctx, lang, categories[i], perCategory*2, "")
				if err != nil {
					slog.Debug("Category draw failed, advancing to next category",
						"category", categories[i], "error", err)
					continue
				}
				drawn := Shuffle(page.Titles, seed+int64(i)+2000)
				if len(drawn) > perCategory {
					drawn = drawn[:perCategory]
				}
				titles = append(titles, drawn...)
			}
		}
	}

	return Candidates{Titles: dedupeTitles(titles), More: true}
}

// dedupeTitles removes duplicate titles, first occurrence wins, preserving
// the priority order of the sources that supplied them.
func dedupeTitles(titles []string) []string {
	seen := make(map[string]struct{}, len(titles))
	out := make([]string, 0, len(titles))
	for _, title := range titles {
		if _, ok := seen[title]; ok {
			continue
		}
		seen[title] = struct{}{}
		out = append(out, title)
	}
	return out
}
