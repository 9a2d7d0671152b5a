package domain

import (
	"sort"
	"strings"
)

// KeywordRule maps a tag to the substrings that trigger it.
type KeywordRule struct {
	// Tag is emitted when any trigger matches.
	Tag string `yaml:"tag" json:"tag"`

	// Triggers are matched case-insensitively as substrings of the text.
	// Matches are not word-bounded: "ui" fires inside "build".
	Triggers []string `yaml:"triggers" json:"triggers"`
}

// Matches reports whether any trigger occurs in lowered text.
// The caller lowercases text once for the whole rule set.
func (r KeywordRule) Matches(lowered string) bool {
	for _, t := range r.Triggers {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" && strings.Contains(lowered, t) {
			return true
		}
	}
	return false
}

// DefaultKeywordRules returns the built-in tagging rules.
func DefaultKeywordRules() []KeywordRule {
	return []KeywordRule{
		{Tag: "Marketing", Triggers: []string{"marketing", "campaign", "social media", "ads", "email campaign"}},
		{Tag: "Design", Triggers: []string{"design", "creative", "illustration", "figma", "photoshop", "ux", "ui"}},
		{Tag: "Product", Triggers: []string{"release", "product", "launch", "feature", "roadmap"}},
		{Tag: "SEO", Triggers: []string{"seo", "keyword", "backlink", "organic"}},
		{Tag: "Sales", Triggers: []string{"pricing", "discount", "sale", "offer"}},
	}
}

// SortedUnique returns tags sorted ascending with duplicates removed.
func SortedUnique(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
