// Package history persists a ledger of render stage runs in SQLite.
//
// Every stage execution, including skips of already-rendered artifacts, is
// recorded with its status, output path, duration, and error message so the
// CLI can show what happened to a project across runs. The database lives in
// the log directory and uses WAL mode with busy retries so a render and a
// concurrent `history` query do not trip over each other.
package history
