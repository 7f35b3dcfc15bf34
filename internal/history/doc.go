// Package history provides an optional SQLite log of conversions.
//
// Each successful conversion appends one record holding the direction, the
// input path, group and term counts, and a content hash of the equation.
// The hash lets a user see that two table edits produced the same query.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - busy_timeout=5000: parallel CLI runs wait for the lock instead of failing
//
// Records are ordered by seq, an autoincrement column, never by timestamp.
package history
