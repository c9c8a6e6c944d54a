package feed

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"wikifeed/internal/wiki"
)

var errFakeOutage = errors.New("source outage")

// fakeSource implements Source through overridable functions; any operation
// without an override fails, simulating an outage.
type fakeSource struct {
	summaryFn   func(lang, title string) (*wiki.Summary, error)
	categoryFn  func(lang string, titles []string) (map[string][]string, error)
	imagesFn    func(lang string, titles []string) (map[string]string, error)
	membersFn   func(lang, category string, limit int, cursor string) (*wiki.CategoryPage, error)
	relatedFn   func(lang, title string) ([]wiki.RelatedTopic, error)
	mostReadFn  func(lang string, date time.Time) ([]string, error)
	pageviewsFn func(lang string, date time.Time) ([]string, error)
	topMetricFn func(lang, metric string, limit int) ([]string, error)
}

var _ Source = (*fakeSource)(nil)

func (f *fakeSource) GetSummary(ctx context.Context, lang, title string) (*wiki.Summary, error) {
	if f.summaryFn == nil {
		return nil, errFakeOutage
	}
	return f.summaryFn(lang, title)
}

func (f *fakeSource) GetCategories(ctx context.Context, lang string, titles []string) (map[string][]string, error) {
	if f.categoryFn == nil {
		return nil, errFakeOutage
	}
	return f.categoryFn(lang, titles)
}

func (f *fakeSource) GetImages(ctx context.Context, lang string, titles []string) (map[string]string, error) {
	if f.imagesFn == nil {
		return nil, errFakeOutage
	}
	return f.imagesFn(lang, titles)
}

func (f *fakeSource) GetCategoryMembers(ctx context.Context, lang, category string, limit int, cursor string) (*wiki.CategoryPage, error) {
	if f.membersFn == nil {
		return nil, errFakeOutage
	}
	return f.membersFn(lang, category, limit, cursor)
}

func (f *fakeSource) GetRelated(ctx context.Context, lang, title string) ([]wiki.RelatedTopic, error) {
	if f.relatedFn == nil {
		return nil, errFakeOutage
	}
	return f.relatedFn(lang, title)
}

func (f *fakeSource) GetMostRead(ctx context.Context, lang string, date time.Time) ([]string, error) {
	if f.mostReadFn == nil {
		return nil, errFakeOutage
	}
	return f.mostReadFn(lang, date)
}

func (f *fakeSource) GetTopPageviews(ctx context.Context, lang string, date time.Time) ([]string, error) {
	if f.pageviewsFn == nil {
		return nil, errFakeOutage
	}
	return f.pageviewsFn(lang, date)
}

func (f *fakeSource) GetTopByMetric(ctx context.Context, lang, metric string, limit int) ([]string, error) {
	if f.topMetricFn == nil {
		return nil, errFakeOutage
	}
	return f.topMetricFn(lang, metric, limit)
}

// healthySummaries makes every title resolve to a solid, image-bearing card.
func healthySummaries(f *fakeSource) {
	f.summaryFn = func(lang, title string) (*wiki.Summary, error) {
		return &wiki.Summary{
			Title:            title,
			Extract:          fmt.Sprintf("%s. %s", title, strings.Repeat("Treść artykułu. ", 20)),
			OriginalImageURL: "https://upload.example.org/" + title + ".jpg",
		}, nil
	}
	f.categoryFn = func(lang string, titles []string) (map[string][]string, error) {
		result := make(map[string][]string, len(titles))
		for _, title := range titles {
			result[title] = []string{"Nauka"}
		}
		return result, nil
	}
	f.relatedFn = func(lang, title string) ([]wiki.RelatedTopic, error) {
		return nil, errFakeOutage // enrichment unavailable, must be tolerated
	}
	f.imagesFn = func(lang string, titles []string) (map[string]string, error) {
		return map[string]string{}, nil
	}
}

func fakeTitles(n int) []string {
	titles := make([]string, n)
	for i := range titles {
		titles[i] = fmt.Sprintf("Artykuł %02d", i)
	}
	return titles
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
