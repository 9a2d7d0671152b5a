package domain

import "fmt"

// Settings holds runtime configuration resolved from file and environment.
type Settings struct {
	// DataDir holds the record database, blobs and index generations.
	DataDir string

	Search  SearchSettings
	HTTP    HTTPSettings
	Tagging TaggingSettings
	Watch   WatchSettings

	// LogFormat is "console" or "json".
	LogFormat string
}

// SearchSettings configures the query engine and fallback scanner.
type SearchSettings struct {
	DefaultLimit  int
	FallbackLimit int

	// SnippetChars bounds highlighted fragments. Zero means unlimited.
	SnippetChars int

	FallbackSnippetChars int
}

// HTTPSettings configures the HTTP API.
type HTTPSettings struct {
	Addr            string
	ReadTimeoutSec  int
	WriteTimeoutSec int
	MaxUploadMB     int
}

// TaggingSettings configures the auto-tagger.
type TaggingSettings struct {
	// RulesFile is an optional YAML file replacing the built-in rules.
	RulesFile string
}

// WatchSettings configures the import folder watcher.
type WatchSettings struct {
	Dir        string
	RatePerSec float64
}

// DefaultSettings returns settings with every default applied.
func DefaultSettings() Settings {
	return Settings{
		Search: SearchSettings{
			DefaultLimit:         DefaultSearchLimit,
			FallbackLimit:        DefaultFallbackLimit,
			SnippetChars:         0,
			FallbackSnippetChars: DefaultFallbackSnippetChars,
		},
		HTTP: HTTPSettings{
			Addr:            ":8000",
			ReadTimeoutSec:  15,
			WriteTimeoutSec: 30,
			MaxUploadMB:     50,
		},
		Watch:     WatchSettings{RatePerSec: 2},
		LogFormat: "console",
	}
}

// Validate checks settings for values the services cannot work with.
func (s Settings) Validate() error {
	if s.Search.DefaultLimit <= 0 {
		return fmt.Errorf("%w: search.default_limit must be positive", ErrInvalidInput)
	}
	if s.Search.FallbackLimit <= 0 {
		return fmt.Errorf("%w: search.fallback_limit must be positive", ErrInvalidInput)
	}
	if s.Search.SnippetChars < 0 || s.Search.FallbackSnippetChars < 0 {
		return fmt.Errorf("%w: snippet sizes must not be negative", ErrInvalidInput)
	}
	if s.HTTP.MaxUploadMB <= 0 {
		return fmt.Errorf("%w: http.max_upload_mb must be positive", ErrInvalidInput)
	}
	if s.Watch.RatePerSec <= 0 {
		return fmt.Errorf("%w: watch.rate_per_sec must be positive", ErrInvalidInput)
	}
	switch s.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("%w: logging.format must be console or json", ErrInvalidInput)
	}
	return nil
}
