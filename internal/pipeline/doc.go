// Package pipeline turns a primary and a secondary subtitle document into
// phrase cards, word cards and deck metadata.
//
// Run is synchronous and deterministic: it parses both tracks, keeps the
// leading time window, optionally merges adjacent primary lines, aligns the
// secondary track onto the primary one, and builds both decks. Malformed
// subtitle blocks and primary lines without a translation are absorbed and
// only reported through the metadata counts. The only failures are invalid
// Options and unreadable input files (InputError).
package pipeline
