package driven

// ConfigStore reads and writes persisted tool configuration: backend
// connection settings, default verbosity, and ingestion defaults.
// Implementations own persistence and type coercion; keys use
// dot-notation regardless of the storage format's nesting.
type ConfigStore interface {
	// Get retrieves a raw configuration value by key.
	// The boolean reports whether the key exists.
	Get(key string) (any, bool)

	// GetString retrieves a string value, or "" when the key is
	// missing or holds another type.
	GetString(key string) string

	// GetInt retrieves an integer value, or 0 when the key is missing
	// or holds another type.
	GetInt(key string) int

	// GetBool retrieves a boolean value, or false when the key is
	// missing or holds another type.
	GetBool(key string) bool

	// GetStringSlice retrieves a string slice value, or nil when the
	// key is missing or holds another type.
	GetStringSlice(key string) []string

	// Set stores a value and persists it immediately.
	Set(key string, value any) error

	// Path returns the location of the backing store, for display.
	Path() string
}
