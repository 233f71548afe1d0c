// Package textutil provides the text helpers shared by the card builders and
// the deck writer.
//
// The primary use cases are:
//   - Splitting subtitle text into lower-cased word tokens for a language
//   - Sanitizing language codes and labels for safe file names
//
// Tokenization normalizes to NFC, folds typographic apostrophes to ASCII,
// lower-cases with the language's case rules and keeps runs of the
// language's letter class.
package textutil
