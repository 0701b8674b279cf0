package driven

// ConfigStore is a flat key/value view over the configuration file, with
// nested tables addressed by dotted keys such as "search.debounce_ms".
// Typed getters return the zero value for missing or mistyped keys.
type ConfigStore interface {
	Get(key string) (any, bool)
	GetString(key string) string
	GetInt(key string) int
	GetBool(key string) bool

	// Set stores value and persists the file immediately.
	Set(key string, value any) error

	// Load re-reads the backing file.
	Load() error

	// Path is the backing file, or ":memory:" for the in-memory store.
	Path() string
}
