package services

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/docshelf/internal/core/domain"
	"github.com/custodia-labs/docshelf/internal/core/ports/driven"
	"github.com/custodia-labs/docshelf/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyDataDir              = "data_dir"
	keySearchDefaultLimit   = "search.default_limit"
	keySearchFallbackLimit  = "search.fallback_limit"
	keySearchSnippetChars   = "search.snippet_chars"
	keySearchFallbackChars  = "search.fallback_snippet_chars"
	keyHTTPAddr             = "http.addr"
	keyHTTPReadTimeoutSec   = "http.read_timeout_sec"
	keyHTTPWriteTimeoutSec  = "http.write_timeout_sec"
	keyHTTPMaxUploadMB      = "http.max_upload_mb"
	keyTaggingRulesFile     = "tagging.rules_file"
	keyWatchDir             = "watch.dir"
	keyWatchRatePerSec      = "watch.rate_per_sec"
	keyLoggingFormat        = "logging.format"
	defaultDataDirComponent = "data"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	configDir   string
}

// NewSettingsService creates a new settings service.
// configDir anchors the default data directory; empty means ~/.docshelf.
func NewSettingsService(configStore driven.ConfigStore, configDir string) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		configDir:   configDir,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := s.GetDefaults()

	settings := &domain.Settings{
		DataDir: s.getString(keyDataDir, defaults.DataDir),
		Search: domain.SearchSettings{
			DefaultLimit:         s.getInt(keySearchDefaultLimit, defaults.Search.DefaultLimit),
			FallbackLimit:        s.getInt(keySearchFallbackLimit, defaults.Search.FallbackLimit),
			SnippetChars:         s.getInt(keySearchSnippetChars, defaults.Search.SnippetChars),
			FallbackSnippetChars: s.getInt(keySearchFallbackChars, defaults.Search.FallbackSnippetChars),
		},
		HTTP: domain.HTTPSettings{
			Addr:            s.getString(keyHTTPAddr, defaults.HTTP.Addr),
			ReadTimeoutSec:  s.getInt(keyHTTPReadTimeoutSec, defaults.HTTP.ReadTimeoutSec),
			WriteTimeoutSec: s.getInt(keyHTTPWriteTimeoutSec, defaults.HTTP.WriteTimeoutSec),
			MaxUploadMB:     s.getInt(keyHTTPMaxUploadMB, defaults.HTTP.MaxUploadMB),
		},
		Tagging: domain.TaggingSettings{
			RulesFile: s.configStore.GetString(keyTaggingRulesFile), // No default - built-in rules
		},
		Watch: domain.WatchSettings{
			Dir:        s.configStore.GetString(keyWatchDir),
			RatePerSec: s.getFloat(keyWatchRatePerSec, defaults.Watch.RatePerSec),
		},
		LogFormat: s.getString(keyLoggingFormat, defaults.LogFormat),
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("settings from %s: %w", s.configStore.Path(), err)
	}
	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	values := []struct {
		key string
		val any
	}{
		{keyDataDir, settings.DataDir},
		{keySearchDefaultLimit, settings.Search.DefaultLimit},
		{keySearchFallbackLimit, settings.Search.FallbackLimit},
		{keySearchSnippetChars, settings.Search.SnippetChars},
		{keySearchFallbackChars, settings.Search.FallbackSnippetChars},
		{keyHTTPAddr, settings.HTTP.Addr},
		{keyHTTPReadTimeoutSec, settings.HTTP.ReadTimeoutSec},
		{keyHTTPWriteTimeoutSec, settings.HTTP.WriteTimeoutSec},
		{keyHTTPMaxUploadMB, settings.HTTP.MaxUploadMB},
		{keyTaggingRulesFile, settings.Tagging.RulesFile},
		{keyWatchDir, settings.Watch.Dir},
		{keyWatchRatePerSec, settings.Watch.RatePerSec},
		{keyLoggingFormat, settings.LogFormat},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.val); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// GetDefaults returns the built-in defaults with the data directory resolved.
func (s *SettingsService) GetDefaults() domain.Settings {
	defaults := domain.DefaultSettings()
	dir := s.configDir
	if dir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, ".docshelf")
		}
	}
	defaults.DataDir = filepath.Join(dir, defaultDataDirComponent)
	return defaults
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}
