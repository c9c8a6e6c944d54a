package feed

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTagSet_CategoryRouting(t *testing.T) {
	tags := DefaultTagSet()

	if got := tags.Category("pl", "Historia"); got != "Kategoria:Historia" {
		t.Errorf("Expected Polish history category, got %q", got)
	}
	if got := tags.Category("en", "Historia"); got != "Category:History" {
		t.Errorf("Expected English history category, got %q", got)
	}
}

func TestTagSet_AllAndUnknownRouteToBlend(t *testing.T) {
	tags := DefaultTagSet()

	for _, tag := range []string{"", TagAll, "  Wszystkie  ", "NieistniejącyTag"} {
		if got := tags.Category("pl", tag); got != "" {
			t.Errorf("Tag %q should route to the blend strategy, got category %q", tag, got)
		}
	}
}

func TestTagSet_DomainCategoriesOrdered(t *testing.T) {
	tags := DefaultTagSet()

	categories := tags.DomainCategories("pl")
	if len(categories) != tags.Count() {
		t.Fatalf("Expected %d categories, got %d", tags.Count(), len(categories))
	}
	if categories[0] != "Kategoria:Historia" {
		t.Errorf("Expected history first, got %q", categories[0])
	}
}

func TestTagSet_NamesIncludeAllFirst(t *testing.T) {
	names := DefaultTagSet().Names()

	if len(names) == 0 || names[0] != TagAll {
		t.Errorf("Expected %q as first tag name, got %v", TagAll, names)
	}
}

func TestLoadTagSet_ValidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tags.yml")

	content := `tags:
  - name: Muzyka
    pl: "Kategoria:Muzyka"
    en: "Category:Music"
  - name: Sport
    pl: "Kategoria:Sport"
    en: "Category:Sports"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	tags, err := LoadTagSet(path)
	if err != nil {
		t.Fatalf("Failed to load tag set: %v", err)
	}
	if tags.Count() != 2 {
		t.Errorf("Expected 2 tags, got %d", tags.Count())
	}
	if got := tags.Category("en", "Muzyka"); got != "Category:Music" {
		t.Errorf("Expected music category, got %q", got)
	}
}

func TestLoadTagSet_InvalidFiles(t *testing.T) {
	dir := t.TempDir()

	cases := map[string]string{
		"empty.yml":   `tags: []`,
		"no_name.yml": "tags:\n  - pl: \"Kategoria:Muzyka\"\n",
		"no_cats.yml": "tags:\n  - name: Muzyka\n",
		"broken.yml":  `{{{`,
	}

	for name, content := range cases {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write test file: %v", err)
		}
		if _, err := LoadTagSet(path); err == nil {
			t.Errorf("Expected error loading %s", name)
		}
	}

	if _, err := LoadTagSet(filepath.Join(dir, "missing.yml")); err == nil {
		t.Errorf("Expected error for missing file")
	}
}
