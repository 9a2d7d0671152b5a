package bleve

import (
	"fmt"
	"math"
	"sync"

	"github.com/blevesearch/bleve/v2"
	htmlformatter "github.com/blevesearch/bleve/v2/search/highlight/format/html"
	simplefragmenter "github.com/blevesearch/bleve/v2/search/highlight/fragmenter/simple"
	simplehighlighter "github.com/blevesearch/bleve/v2/search/highlight/highlighter/simple"
)

// unlimitedFragment is the fragment size used when snippets are unbounded.
const unlimitedFragment = math.MaxInt32

var (
	highlightMu      sync.Mutex
	highlightDefined = map[string]bool{}
)

// highlightStyle registers, once per size, a highlighter that wraps
// matched terms in <mark> and cuts fragments of at most size bytes.
// A size of zero means unlimited.
func highlightStyle(size int) (string, error) {
	if size <= 0 {
		size = unlimitedFragment
	}
	name := fmt.Sprintf("docshelf_mark_%d", size)

	highlightMu.Lock()
	defer highlightMu.Unlock()
	if highlightDefined[name] {
		return name, nil
	}

	fragName := name + "_fragmenter"
	_, err := bleve.Config.Cache.DefineFragmenter(fragName, map[string]interface{}{
		"type": simplefragmenter.Name,
		"size": float64(size),
	})
	if err != nil {
		return "", fmt.Errorf("define fragmenter: %w", err)
	}
	_, err = bleve.Config.Cache.DefineHighlighter(name, map[string]interface{}{
		"type":       simplehighlighter.Name,
		"fragmenter": fragName,
		"formatter":  htmlformatter.Name,
		"separator":  " ... ",
	})
	if err != nil {
		return "", fmt.Errorf("define highlighter: %w", err)
	}
	highlightDefined[name] = true
	return name, nil
}
