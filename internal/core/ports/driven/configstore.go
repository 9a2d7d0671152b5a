package driven

// ConfigStore is a flat key/value view of the configuration, keyed by
// dotted names such as "search.default_limit". Typed getters return the
// zero value for missing or mistyped keys.
type ConfigStore interface {
	// Get returns the raw value and whether key is set.
	Get(key string) (any, bool)
	GetString(key string) string
	GetInt(key string) int
	GetFloat(key string) float64

	// Set changes the in-memory value; Save persists it.
	Set(key string, value any) error
	Save() error
	Load() error

	// Path names the backing file, for error messages.
	Path() string
}
