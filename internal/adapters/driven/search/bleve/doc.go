// Package bleve provides the bleve-backed search index.
// It implements the driven.SearchIndex interface.
//
// The index root holds one generation directory per build
// (gen-<nanos>.bleve) and a CURRENT file naming the live one.
// Searches go through a bleve.IndexAlias so a rebuild can build a new
// generation beside the live one and swap it in atomically.
package bleve
