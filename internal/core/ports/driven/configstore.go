package driven

// ConfigStore reads and writes persisted configuration under
// dot-notation keys, e.g. "search.topk". The typed getters return the
// zero value when a key is absent or holds a different type; callers
// layer their own defaults on top.
type ConfigStore interface {
	// Get returns the raw value for a key and whether it exists.
	Get(key string) (any, bool)

	// GetString returns a string value, or "".
	GetString(key string) string

	// GetInt returns an integer value, or 0.
	GetInt(key string) int

	// GetFloat returns a numeric value, or 0.
	GetFloat(key string) float64

	// GetBool returns a boolean value, or false.
	GetBool(key string) bool

	// Set stores a value and persists it immediately.
	Set(key string, value any) error

	// Save persists the current configuration.
	Save() error

	// Load re-reads configuration from storage.
	Load() error

	// Path locates the backing file, for display to the user.
	Path() string
}
