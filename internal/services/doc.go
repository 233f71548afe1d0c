// Package services defines shared utilities consumed by the deck pipeline and
// the CLI boundary around it.
//
// Key responsibilities:
//   - Context helpers that stamp run identifiers and stage names for logging.
//   - Structured error markers plus the Wrap helper that classify failures
//     (configuration, validation, missing input) so the CLI can report them
//     consistently.
//
// Use these helpers when wiring new stages so error handling and observability
// stay uniform across the pipeline.
package services
