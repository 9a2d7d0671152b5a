package bleve

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/single"
	"github.com/blevesearch/bleve/v2/mapping"
)

// Stored field names.
const (
	fieldID      = "id"
	fieldTitle   = "title"
	fieldContent = "content"
	fieldTags    = "tags"
)

// tagAnalyzer keeps each tag as one lower-cased token.
const tagAnalyzer = "keyword_lc"

// buildIndexMapping returns the document mapping:
// id is an untokenised key, title and content are analysed text,
// tags are whole lower-cased keywords. All but id feed _all, the
// default field of query string queries.
func buildIndexMapping() (mapping.IndexMapping, error) {
	m := bleve.NewIndexMapping()
	m.DefaultAnalyzer = standard.Name

	err := m.AddCustomAnalyzer(tagAnalyzer, map[string]interface{}{
		"type":          custom.Name,
		"tokenizer":     single.Name,
		"token_filters": []string{lowercase.Name},
	})
	if err != nil {
		return nil, err
	}

	docMapping := bleve.NewDocumentMapping()
	docMapping.Dynamic = false

	idField := bleve.NewKeywordFieldMapping()
	idField.Analyzer = keyword.Name
	idField.Store = true
	idField.IncludeInAll = false
	docMapping.AddFieldMappingsAt(fieldID, idField)

	titleField := bleve.NewTextFieldMapping()
	titleField.Analyzer = standard.Name
	titleField.Store = true
	docMapping.AddFieldMappingsAt(fieldTitle, titleField)

	contentField := bleve.NewTextFieldMapping()
	contentField.Analyzer = standard.Name
	contentField.Store = true
	contentField.IncludeTermVectors = true
	docMapping.AddFieldMappingsAt(fieldContent, contentField)

	tagsField := bleve.NewTextFieldMapping()
	tagsField.Analyzer = tagAnalyzer
	tagsField.Store = true
	docMapping.AddFieldMappingsAt(fieldTags, tagsField)

	m.DefaultMapping = docMapping
	return m, nil
}

func indexConfig() map[string]interface{} {
	return map[string]interface{}{
		"create_if_missing": true,
		"error_if_exists":   false,
		"unsafe_batch":      false,
	}
}
