package services

import (
	"strings"

	"github.com/custodia-labs/docshelf/internal/core/domain"
	"github.com/custodia-labs/docshelf/internal/core/ports/driving"
)

// Ensure Tagger implements the interface.
var _ driving.TaggingService = (*Tagger)(nil)

// Tagger assigns tags by case-insensitive substring match against a fixed
// rule table. It is a pure function of its input and rules.
type Tagger struct {
	rules []domain.KeywordRule
}

// NewTagger creates a tagger. Nil or empty rules select the built-in table.
func NewTagger(rules []domain.KeywordRule) *Tagger {
	if len(rules) == 0 {
		rules = domain.DefaultKeywordRules()
	}
	return &Tagger{rules: rules}
}

// Tag returns the sorted, comma-joined set of tags whose triggers occur in text.
// Empty text yields "".
func (t *Tagger) Tag(text string) string {
	if text == "" {
		return ""
	}
	lowered := strings.ToLower(text)

	var tags []string
	for _, r := range t.rules {
		if r.Matches(lowered) {
			tags = append(tags, r.Tag)
		}
	}
	return domain.JoinTags(domain.SortedUnique(tags))
}

// Rules returns the active rule table.
func (t *Tagger) Rules() []domain.KeywordRule {
	out := make([]domain.KeywordRule, len(t.rules))
	copy(out, t.rules)
	return out
}
