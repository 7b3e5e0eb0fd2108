// Package history persists scan and rename runs in SQLite.
//
// Each run gets a UUID row plus one row per processed file, so past runs can
// be replayed from the CLI without keeping reports around. The database is a
// convenience archive, not a source of truth: schema changes bump the version
// in schema.go and users clear the database to adopt the new schema.
package history
