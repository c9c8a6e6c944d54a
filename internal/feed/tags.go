package feed

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// TagAll routes to the diverse blend strategy instead of a single category.
const TagAll = "Wszystkie"

// Tag maps a feed tag to its category name per language edition.
type Tag struct {
	Name string `yaml:"name"`
	PL   string `yaml:"pl"`
	EN   string `yaml:"en"`
}

// TagSet holds the tag/category map in display order.
type TagSet struct {
	tags  []Tag
	index map[string]Tag
}

// defaultTags is the compiled-in tag/category map.
var defaultTags = []Tag{
	{Name: "Historia", PL: "Kategoria:Historia", EN: "Category:History"},
	{Name: "Technologia", PL: "Kategoria:Technologia", EN: "Category:Technology"},
	{Name: "Informatyka", PL: "Kategoria:Informatyka", EN: "Category:Computer_science"},
	{Name: "Matematyka", PL: "Kategoria:Matematyka", EN: "Category:Mathematics"},
	{Name: "Fizyka", PL: "Kategoria:Fizyka", EN: "Category:Physics"},
	{Name: "Biologia", PL: "Kategoria:Biologia", EN: "Category:Biology"},
	{Name: "Medycyna", PL: "Kategoria:Medycyna", EN: "Category:Medicine"},
	{Name: "Kultura", PL: "Kategoria:Kultura", EN: "Category:Culture"},
	{Name: "Kosmos", PL: "Kategoria:Astronomia", EN: "Category:Astronomy"},
	{Name: "Ekologia", PL: "Kategoria:Ekologia", EN: "Category:Ecology"},
	{Name: "Psychologia", PL: "Kategoria:Psychologia", EN: "Category:Psychology"},
	{Name: "Sztuka", PL: "Kategoria:Sztuka", EN: "Category:Art"},
	{Name: "Kulinaria", PL: "Kategoria:Gastronomia", EN: "Category:Gastronomy"},
}

func DefaultTagSet() *TagSet {
	return newTagSet(defaultTags)
}

// LoadTagSet reads a tag/category map override from a YAML file.
func LoadTagSet(path string) (*TagSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var parsed struct {
		Tags []Tag `yaml:"tags"`
	}
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if len(parsed.Tags) == 0 {
		return nil, fmt.Errorf("no tags defined in %s", path)
	}

	for i, tag := range parsed.Tags {
		if tag.Name == "" {
			return nil, fmt.Errorf("tag at index %d has no name", i)
		}
		if tag.PL == "" && tag.EN == "" {
			return nil, fmt.Errorf("tag %q has no category for any language", tag.Name)
		}
	}

	return newTagSet(parsed.Tags), nil
}

func newTagSet(tags []Tag) *TagSet {
	index := make(map[string]Tag, len(tags))
	for _, tag := range tags {
		index[tag.Name] = tag
	}
	return &TagSet{tags: tags, index: index}
}

// Category resolves a tag to a category name for the given language edition.
// Empty, all-domains and unknown tags resolve to "", routing to the blend
// strategy.
func (ts *TagSet) Category(lang, tag string) string {
	key := strings.TrimSpace(tag)
	if key == "" || key == TagAll {
		return ""
	}
	rec, ok := ts.index[key]
	if !ok {
		return ""
	}
	if strings.HasPrefix(lang, "pl") {
		return rec.PL
	}
	return rec.EN
}

// DomainCategories returns every tag's category for the language edition, in
// display order, used by the diverse blend strategy.
func (ts *TagSet) DomainCategories(lang string) []string {
	isPL := strings.HasPrefix(lang, "pl")
	categories := make([]string, 0, len(ts.tags))
	for _, tag := range ts.tags {
		category := tag.EN
		if isPL {
			category = tag.PL
		}
		if category != "" {
			categories = append(categories, category)
		}
	}
	return categories
}

// Names returns the tag list the presentation layer renders, the all-domains
// tag first.
func (ts *TagSet) Names() []string {
	names := make([]string, 0, len(ts.tags)+1)
	names = append(names, TagAll)
	for _, tag := range ts.tags {
		names = append(names, tag.Name)
	}
	return names
}

func (ts *TagSet) Count() int {
	return len(ts.tags)
}
