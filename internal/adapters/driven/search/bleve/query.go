package bleve

import (
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/custodia-labs/docshelf/internal/core/domain"
	"github.com/custodia-labs/docshelf/internal/logger"
)

type parseFunc func(q string) (query.Query, error)

// parseQueryString parses q with bleve's query string syntax.
// Bare terms match the _all field, which spans title, content and tags.
func parseQueryString(q string) (query.Query, error) {
	return bleve.NewQueryStringQuery(q).Parse()
}

// quoteLiteral turns q into a single phrase with inner quotes removed.
func quoteLiteral(q string) string {
	return `"` + strings.ReplaceAll(q, `"`, "") + `"`
}

// buildQuery parses q, retrying once as a quoted literal when the
// syntax is invalid. It returns domain.ErrQueryParse when both fail.
func buildQuery(q string, parse parseFunc) (query.Query, error) {
	parsed, err := parse(q)
	if err == nil {
		return parsed, nil
	}
	logger.Warn("Query parse failed for %q: %v. Trying quoted literal.", q, err)

	parsed, err2 := parse(quoteLiteral(q))
	if err2 == nil {
		return parsed, nil
	}
	logger.Warn("Quoted literal parse also failed for %q: %v", q, err2)
	return nil, domain.ErrQueryParse
}
