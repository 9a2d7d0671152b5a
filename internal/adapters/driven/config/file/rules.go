package file

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/docshelf/internal/core/domain"
)

type rulesFile struct {
	Rules []domain.KeywordRule `yaml:"rules"`
}

// LoadKeywordRules reads a YAML tagging rule table:
//
//	rules:
//	  - tag: Legal
//	    triggers: [contract, nda]
func LoadKeywordRules(path string) ([]domain.KeywordRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules file: %w", err)
	}

	var f rulesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: parsing rules file: %v", domain.ErrInvalidInput, err)
	}
	if len(f.Rules) == 0 {
		return nil, fmt.Errorf("%w: rules file %s has no rules", domain.ErrInvalidInput, path)
	}

	for i, r := range f.Rules {
		if strings.TrimSpace(r.Tag) == "" {
			return nil, fmt.Errorf("%w: rule %d has no tag", domain.ErrInvalidInput, i+1)
		}
		if len(r.Triggers) == 0 {
			return nil, fmt.Errorf("%w: rule %q has no triggers", domain.ErrInvalidInput, r.Tag)
		}
	}
	return f.Rules, nil
}
