// Package domain holds the city finder's value types: City and the RawCity a
// loader produces, the immutable Snapshot of a loaded dataset, the
// SearchState a view renders and the typed Settings.
//
// Everything else depends on domain. It imports only the standard library.
package domain
