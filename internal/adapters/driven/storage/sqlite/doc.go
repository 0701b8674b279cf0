// Package sqlite stores the city dataset in a SQLite database.
//
// The Store owns the schema (embedded migrations) and the write path used by
// "cityfinder import". Loader is the read-only driven.DatasetLoader that
// opens the database per load so an external writer can replace the file
// between reloads.
package sqlite
