// Package normalisers turns uploaded files into plain text for indexing.
//
// Each subpackage decodes one family of formats and implements
// driven.Extractor. The Registry dispatches on file extension and
// implements driven.TextExtractor, absorbing every decoder failure.
package normalisers
