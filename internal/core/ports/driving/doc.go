// Package driving declares what the CLI and the TUI may ask of the core:
// loading the dataset, searching it, debouncing typed queries and reading
// settings. internal/core/services implements every interface here.
package driving
