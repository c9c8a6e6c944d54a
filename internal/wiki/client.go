package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/time/rate"
)

const (
	defaultRestBase    = "https://{lang}.wikipedia.org/api/rest_v1"
	defaultActionBase  = "https://{lang}.wikipedia.org/w/api.php"
	defaultMetricsBase = "https://wikimedia.org/api/rest_v1"

	// Category names at or above this length are maintenance noise.
	maxCategoryNameLen = 30
)

// badTitlePrefixes mark non-article namespaces, localized and English forms.
var badTitlePrefixes = []string{
	"Portal:", "Wikiprojekt:", "Wikipedia:",
	"Kategoria:", "Category:",
	"Pomoc:", "Help:",
	"Plik:", "File:",
	"Szablon:", "Template:",
}

// unwantedMostRead are synthetic entries the most-read rankings always carry.
var unwantedMostRead = []string{
	"Main_Page", "Strona_główna",
	"Specjalna:", "Special:",
	"Plik:", "File:",
}

// Client issues read requests against the encyclopedia's REST, action and
// metrics APIs. All operations are pure network I/O.
type Client struct {
	httpClient *http.Client
	userAgent  string
	timeout    time.Duration
	thumbSize  int
	limiter    *rate.Limiter

	restBase    string
	actionBase  string
	metricsBase string
}

func NewClient(httpClient *http.Client, userAgent string, timeout time.Duration, thumbSize int, requestsPerSecond float64) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if requestsPerSecond <= 0 {
		requestsPerSecond = 10
	}
	return &Client{
		httpClient:  httpClient,
		userAgent:   userAgent,
		timeout:     timeout,
		thumbSize:   thumbSize,
		limiter:     rate.NewLimiter(rate.Limit(requestsPerSecond), int(requestsPerSecond)+1),
		restBase:    defaultRestBase,
		actionBase:  defaultActionBase,
		metricsBase: defaultMetricsBase,
	}
}

// SetBaseURLs overrides the upstream endpoints. Base URLs may contain a
// {lang} placeholder for the language edition.
func (c *Client) SetBaseURLs(restBase, actionBase, metricsBase string) {
	c.restBase = restBase
	c.actionBase = actionBase
	c.metricsBase = metricsBase
}

// GetSummary fetches a single page's canonical summary, following redirects.
func (c *Client) GetSummary(ctx context.Context, lang, title string) (*Summary, error) {
	endpoint := fmt.Sprintf("%s/page/summary/%s?redirect=true",
		c.resolveBase(c.restBase, lang), url.PathEscape(title))

	var resp summaryResponse
	if err := c.getJSON(ctx, "summary", endpoint, &resp); err != nil {
		return nil, err
	}

	summary := &Summary{
		Title:       resp.Title,
		Description: resp.Description,
		Extract:     resp.Extract,
	}
	if resp.Thumbnail != nil {
		summary.ThumbnailURL = resp.Thumbnail.Source
	}
	if resp.OriginalImage != nil {
		summary.OriginalImageURL = resp.OriginalImage.Source
	}
	return summary, nil
}

// GetCategories performs a batched category lookup. Namespace prefixes are
// stripped and overlong names discarded.
func (c *Client) GetCategories(ctx context.Context, lang string, titles []string) (map[string][]string, error) {
	if len(titles) == 0 {
		return map[string][]string{}, nil
	}

	params := url.Values{
		"action":  {"query"},
		"format":  {"json"},
		"origin":  {"*"},
		"prop":    {"categories"},
		"clshow":  {"!hidden"},
		"cllimit": {"max"},
		"titles":  {strings.Join(titles, "|")},
	}

	var resp categoriesResponse
	if err := c.getJSON(ctx, "categories", c.actionURL(lang, params), &resp); err != nil {
		return nil, err
	}

	result := make(map[string][]string)
	if resp.Query == nil {
		return result, nil
	}
	for _, page := range resp.Query.Pages {
		if page.Title == "" || len(page.Categories) == 0 {
			continue
		}
		categories := make([]string, 0, len(page.Categories))
		for _, category := range page.Categories {
			name := stripCategoryPrefix(category.Title)
			if name == "" || utf8.RuneCountInString(name) >= maxCategoryNameLen {
				continue
			}
			categories = append(categories, name)
		}
		result[page.Title] = categories
	}
	return result, nil
}

// GetImages performs a batched page image lookup, preferring the original
// resolution over the thumbnail when both exist.
func (c *Client) GetImages(ctx context.Context, lang string, titles []string) (map[string]string, error) {
	if len(titles) == 0 {
		return map[string]string{}, nil
	}

	params := url.Values{
		"action":      {"query"},
		"format":      {"json"},
		"origin":      {"*"},
		"prop":        {"pageimages"},
		"piprop":      {"thumbnail|original"},
		"pithumbsize": {strconv.Itoa(c.thumbSize)},
		"titles":      {strings.Join(titles, "|")},
	}

	var resp pageImagesResponse
	if err := c.getJSON(ctx, "pageimages", c.actionURL(lang, params), &resp); err != nil {
		return nil, err
	}

	result := make(map[string]string)
	if resp.Query == nil {
		return result, nil
	}
	for _, page := range resp.Query.Pages {
		if page.Title == "" {
			continue
		}
		switch {
		case page.Original != nil && page.Original.Source != "":
			result[page.Title] = page.Original.Source
		case page.Thumbnail != nil && page.Thumbnail.Source != "":
			result[page.Title] = page.Thumbnail.Source
		}
	}
	return result, nil
}

// GetCategoryMembers lists member pages of a category, restricted to the main
// article namespace. Titles in non-article namespaces are dropped.
func (c *Client) GetCategoryMembers(ctx context.Context, lang, category string, limit int, cursor string) (*CategoryPage, error) {
	limit = min(max(limit, 1), 50)

	params := url.Values{
		"action":      {"query"},
		"format":      {"json"},
		"origin":      {"*"},
		"list":        {"categorymembers"},
		"cmtitle":     {category},
		"cmtype":      {"page"},
		"cmnamespace": {"0"},
		"cmprop":      {"title"},
		"cmlimit":     {strconv.Itoa(limit)},
	}
	if cursor != "" {
		params.Set("cmcontinue", cursor)
	}

	var resp categoryMembersResponse
	if err := c.getJSON(ctx, "categorymembers", c.actionURL(lang, params), &resp); err != nil {
		return nil, err
	}

	page := &CategoryPage{}
	if resp.Query != nil {
		for _, member := range resp.Query.CategoryMembers {
			if hasBadPrefix(member.Title) {
				continue
			}
			page.Titles = append(page.Titles, member.Title)
		}
	}
	if resp.Continue != nil {
		page.Continue = resp.Continue.CmContinue
	}
	return page, nil
}

// GetRelated fetches related pages for a title. Related topics are a
// non-essential enrichment; callers are expected to tolerate failure.
func (c *Client) GetRelated(ctx context.Context, lang, title string) ([]RelatedTopic, error) {
	endpoint := fmt.Sprintf("%s/page/related/%s",
		c.resolveBase(c.restBase, lang), url.PathEscape(title))

	var resp relatedResponse
	if err := c.getJSON(ctx, "related", endpoint, &resp); err != nil {
		return nil, err
	}
	return resp.Pages, nil
}

// GetMostRead returns one calendar day's most-viewed article titles, with
// synthetic entries (home page, special and file pages) excluded.
func (c *Client) GetMostRead(ctx context.Context, lang string, date time.Time) ([]string, error) {
	day := date.UTC()
	endpoint := fmt.Sprintf("%s/feed/most-read/%04d/%02d/%02d",
		c.resolveBase(c.restBase, lang), day.Year(), day.Month(), day.Day())

	var resp mostReadResponse
	if err := c.getJSON(ctx, "most-read", endpoint, &resp); err != nil {
		return nil, err
	}

	titles := make([]string, 0, len(resp.Articles))
	for _, article := range resp.Articles {
		title := article.NormalizedTitle
		if title == "" {
			title = article.Title
		}
		if title == "" || containsAny(title, unwantedMostRead) {
			continue
		}
		titles = append(titles, title)
	}
	return titles, nil
}

// GetTopPageviews returns one day's top articles from the pageviews metrics
// API, used as a secondary popularity source.
func (c *Client) GetTopPageviews(ctx context.Context, lang string, date time.Time) ([]string, error) {
	day := date.UTC()
	endpoint := fmt.Sprintf("%s/metrics/pageviews/top/%s.wikipedia/all-access/%04d/%02d/%02d",
		c.metricsBase, lang, day.Year(), day.Month(), day.Day())

	var resp pageviewsResponse
	if err := c.getJSON(ctx, "pageviews", endpoint, &resp); err != nil {
		return nil, err
	}

	var titles []string
	if len(resp.Items) > 0 {
		for _, article := range resp.Items[0].Articles {
			raw := article.Article
			if raw == "-" || containsAny(raw, unwantedMostRead) {
				continue
			}
			if utf8.RuneCountInString(raw) <= 3 || strings.Contains(raw, ":") {
				continue
			}
			if decoded, err := url.QueryUnescape(raw); err == nil {
				raw = decoded
			}
			titles = append(titles, strings.ReplaceAll(raw, "_", " "))
		}
	}
	return titles, nil
}

// GetTopByMetric runs a ranked-list query (e.g. Mostlinked), a proxy for
// historical importance when recency-based popularity is unavailable.
func (c *Client) GetTopByMetric(ctx context.Context, lang, metric string, limit int) ([]string, error) {
	params := url.Values{
		"action":  {"query"},
		"format":  {"json"},
		"list":    {"querypage"},
		"qppage":  {metric},
		"qplimit": {strconv.Itoa(limit)},
	}

	var resp queryPageResponse
	if err := c.getJSON(ctx, "querypage", c.actionURL(lang, params), &resp); err != nil {
		return nil, err
	}

	var titles []string
	if resp.Query != nil && resp.Query.QueryPage != nil {
		for _, result := range resp.Query.QueryPage.Results {
			if result.NS != 0 || !isRealArticle(result.Title) {
				continue
			}
			titles = append(titles, result.Title)
		}
	}
	return titles, nil
}

func (c *Client) getJSON(ctx context.Context, operation, endpoint string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &SourceUnavailableError{Endpoint: operation, Err: err}
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &SourceUnavailableError{Endpoint: operation, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &SourceUnavailableError{Endpoint: operation, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &SourceUnavailableError{Endpoint: operation, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &SourceUnavailableError{Endpoint: operation, Err: fmt.Errorf("malformed payload: %w", err)}
	}
	return nil
}

func (c *Client) actionURL(lang string, params url.Values) string {
	return c.resolveBase(c.actionBase, lang) + "?" + params.Encode()
}

func (c *Client) resolveBase(base, lang string) string {
	return strings.ReplaceAll(base, "{lang}", lang)
}

func stripCategoryPrefix(title string) string {
	for _, prefix := range []string{"Kategoria:", "Category:"} {
		if strings.HasPrefix(title, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(title, prefix))
		}
	}
	return strings.TrimSpace(title)
}

func hasBadPrefix(title string) bool {
	for _, prefix := range badTitlePrefixes {
		if strings.HasPrefix(title, prefix) {
			return true
		}
	}
	return false
}

func containsAny(s string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(s, needle) {
			return true
		}
	}
	return false
}

// isRealArticle drops rankings noise: non-article namespaces, maintenance
// date categories and the home page itself.
func isRealArticle(title string) bool {
	normalized := strings.ReplaceAll(title, " ", "_")
	if hasBadPrefix(normalized) {
		return false
	}
	if strings.HasPrefix(normalized, "Specjalna:") || strings.HasPrefix(normalized, "Special:") {
		return false
	}
	if strings.Contains(normalized, "Zmarli_w_") || strings.Contains(normalized, "Urodzeni_w_") {
		return false
	}
	if normalized == "Strona_główna" || normalized == "Main_Page" {
		return false
	}
	return utf8.RuneCountInString(title) > 2
}
