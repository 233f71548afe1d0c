// Package subtitles decodes SRT timed-text documents into ordered segments.
//
// Parsing tolerates real-world files: blocks without a timing
// line, with unparseable timestamps, or with no text left after markup
// stripping are skipped and counted rather than reported as errors. The
// package also owns the optional merge pass that fuses adjacent segments of
// one track into longer utterances, and the byte-level decoding of legacy
// charsets and byte-order marks.
package subtitles
