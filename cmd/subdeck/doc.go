// Package main hosts the subdeck CLI entrypoint and command graph.
//
// The Cobra-based command tree reads a primary and a secondary subtitle file,
// runs the card pipeline, writes the phrase and word decks, and optionally
// records each run in the SQLite archive. Supporting commands inspect a single
// subtitle file, browse archived runs, and scaffold configuration.
//
// Keep this package lean: the parsing, alignment, and card logic live in the
// internal packages; commands here only resolve configuration, apply flag
// overrides, and render results.
package main
