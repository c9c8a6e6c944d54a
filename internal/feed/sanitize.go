package feed

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultExtractLimit bounds card extract length in runes, ellipsis included.
const DefaultExtractLimit = 500

var whitespaceRe = regexp.MustCompile(`\s+`)

// badKeywords mark disambiguation, list, template and redirect pages,
// localized and English forms. Matched case-insensitively.
var badKeywords = []string{
	"ujednoznacznienie",
	"disambiguation",
	"may refer to",
	"może odnosić się do",
	"lista",
	"list of",
	"kategoria",
	"category",
	"szablon",
	"template",
	"redirect",
	"przekierowanie",
}

// SanitizeExtract collapses runs of whitespace, trims the ends, and truncates
// the text to max runes. A truncated result ends with an ellipsis that counts
// against the bound.
func SanitizeExtract(text string, max int) string {
	if max <= 0 {
		return ""
	}
	clean := strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
	runes := []rune(clean)
	if len(runes) <= max {
		return clean
	}
	cut := strings.TrimRight(string(runes[:max-1]), " ")
	return cut + "…"
}

// QualityPolicy decides whether a fetched card is fit to display. The checks
// are independent; a strategy chooses which to require.
type QualityPolicy struct {
	MinExtractLen     int
	RequireCategories bool
	RequireImage      bool
}

func DefaultQualityPolicy(minExtractLen int) QualityPolicy {
	return QualityPolicy{
		MinExtractLen:     minExtractLen,
		RequireCategories: true,
		RequireImage:      true,
	}
}

// Acceptable rejects stubs, marker-word pages, and cards missing required
// enrichments.
func (p QualityPolicy) Acceptable(item Item) bool {
	title := strings.ToLower(item.Title)
	extract := strings.ToLower(item.Extract)

	for _, keyword := range badKeywords {
		if strings.Contains(title, keyword) || strings.Contains(extract, keyword) {
			return false
		}
	}

	if item.Title == "" || item.Extract == "" {
		return false
	}
	if utf8.RuneCountInString(item.Extract) < p.MinExtractLen {
		return false
	}
	if p.RequireCategories && len(item.Categories) == 0 {
		return false
	}
	if p.RequireImage && item.Image == "" {
		return false
	}
	return true
}
