// Package html extracts readable text from HTML files. Scripts, styles
// and markup are dropped and entities decoded.
package html
