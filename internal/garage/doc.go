// Package garage persists vehicles, maintenance events, parts, and service
// intervals in SQLite and exposes the queries the CLI and advisor need.
//
// The Store manages the database connection, schema initialization, CRUD for
// the four tables, cost aggregation, and due-service calculation. The database
// is a long-lived personal record; schema changes bump the version in
// schema.go and are applied behind an advisory file lock so two concurrent
// invocations cannot race the migration.
//
// Treat this package as the single source of truth for garage semantics; when
// you add columns, update schema.sql and bump schemaVersion.
package garage
