// Package archive keeps a SQLite history of generated decks.
//
// Each deck generation becomes one row in runs plus one row per phrase and
// word card, so past decks can be listed and compared without re-reading the
// JSON files. The database runs in WAL mode and retries SQLITE_BUSY with a
// bounded backoff, so concurrent CLI invocations do not fail on contention.
package archive
