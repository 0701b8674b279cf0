// Package driven declares what the core needs from the outside world.
//
// DatasetLoader yields raw city records (JSON file, HTTP or SQLite) and
// ConfigStore holds the flat dotted configuration keys. Adapters under
// internal/adapters/driven implement them; this package imports only domain.
package driven
