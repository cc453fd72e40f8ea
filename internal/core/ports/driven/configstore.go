package driven

// ConfigStore provides access to application configuration.
// Keys use dot notation ("search.strategy"); implementations handle
// persistence and type conversion.
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetString returns "" if the key is missing or not a string.
	GetString(key string) string

	// GetInt returns 0 if the key is missing or not an integer.
	GetInt(key string) int

	// GetBool returns false if the key is missing or not a boolean.
	GetBool(key string) bool

	// GetStringSlice returns nil if the key is missing or not a list.
	GetStringSlice(key string) []string

	// Set stores a value and persists immediately.
	Set(key string, value any) error

	// SetMany stores several values with a single write.
	SetMany(values map[string]any) error

	// Load re-reads configuration from storage, discarding unsaved values.
	Load() error

	// Path returns the configuration file path.
	Path() string
}
