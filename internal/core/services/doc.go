// Package services holds the application core of docshelf: the upload and
// delete pipelines, search coordination with its substring fallback, index
// rebuilds, keyword tagging and settings. Services depend only on ports.
package services
