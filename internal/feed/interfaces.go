package feed

import (
	"context"
	"time"

	"wikifeed/internal/wiki"
)

// Source is the read surface of the encyclopedia API consumed by the
// selection and assembly pipeline.
type Source interface {
	GetSummary(ctx context.Context, lang, title string) (*wiki.Summary, error)
	GetCategories(ctx context.Context, lang string, titles []string) (map[string][]string, error)
	GetImages(ctx context.Context, lang string, titles []string) (map[string]string, error)
	GetCategoryMembers(ctx context.Context, lang, category string, limit int, cursor string) (*wiki.CategoryPage, error)
	GetRelated(ctx context.Context, lang, title string) ([]wiki.RelatedTopic, error)
	GetMostRead(ctx context.Context, lang string, date time.Time) ([]string, error)
	GetTopPageviews(ctx context.Context, lang string, date time.Time) ([]string, error)
	GetTopByMetric(ctx context.Context, lang, metric string, limit int) ([]string, error)
}

var _ Source = (*wiki.Client)(nil)
