// Package history persists completed batch runs and their per-file results
// to a SQLite database so past runs can be inspected after the fact.
package history
