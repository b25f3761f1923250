// Package psplib decodes project scheduling problem instances from the
// PSPLIB text format.
//
// PSPLIB files are fixed-layout, whitespace-delimited documents with a
// fixed sequence of labeled sections: a header, an info block, project
// information, precedence relations, per-job durations and resource
// requests, and resource availabilities. [Decode] walks those sections with
// a line scanner and a regex-driven record parser and assembles an
// [github.com/psptools/psplib/pkg/instance.Instance].
//
// The decoder is deliberately narrow: single-project, single-mode
// instances with renewable and non-renewable resources only. Inputs
// requesting anything beyond that fail with an UNSUPPORTED_OPERATION
// error; malformed lines and count mismatches fail with PARSE_ERROR. All
// errors carry the source name and 1-based line number.
//
// Decoding is a bounded, synchronous scan of one stream. Scanners own
// mutable position state and must not be shared across goroutines.
package psplib
