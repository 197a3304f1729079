// Package checker validates transaction export CSV files against the
// store-amount rule and the slip date rules.
//
// The validator is a single forward pass over the uploaded bytes:
//
//  1. Decode: the file is converted from the legacy Shift_JIS (cp932)
//     encoding to UTF-8. Decoding is all-or-nothing; an undecodable
//     byte sequence aborts the run with a *DecodeError.
//  2. Read: a RecordReader streams logical CSV records while tracking
//     physical line numbers, so a record whose quoted cells contain
//     embedded line breaks is still reported at the line a text editor
//     would show. A configurable ceiling on physical lines aborts the
//     run with a *LimitError.
//  3. Evaluate: each data record (everything after the header) is run
//     through the amount rule and the date rule. Rule hits are
//     findings, collected into the Result; they never stop the scan.
//
// All tunables (line ceiling, byte ceiling, encoding, column indices,
// the flagged store code and the allowed amounts) live in Config and
// are fixed at construction time.
//
// Service wraps the pure validator with a concurrency limiter, an
// in-memory run registry, and Prometheus metrics for the HTTP front
// end. Nothing is persisted: a finished run lives in memory until its
// TTL expires or the process exits.
package checker
