// Package cdf implements record-oriented typed array access over a
// majority-aware storage engine, in the style of scientific data
// containers.
//
// A variable is a typed array with fixed non-record axes and an unbounded
// leading record axis. Callers address elements with indexing expressions
// built from At, Span, From, To, All and Ellipsis, with Python slice
// semantics: negative offsets count from the end, negative steps walk
// descending, out-of-range slice endpoints clip, and scalar-indexed axes
// are dropped from the result. Assignment through a plain ascending
// record-axis slice stretches or shrinks the variable to fit the data.
//
// Storage engines hold each variable as a flat native buffer addressed by
// hyperslab (per-axis start, count, interval); the package translates
// between that layout and nested Go values, handling majority, axis
// reversal and element encoding. MemoryEngine is the in-process engine;
// Epoch timestamps round-trip through the TimeToEpoch family.
package cdf
