// Package spantree models the SevenMark AST produced by the external markup
// engine.
//
// A tree is a read-only snapshot: every text change yields a fresh tree and
// nothing here mutates one in place. Offsets are UTF-16 code units, half-open
// [Start, End), matching the engine's JSON output. Source maps them onto Go
// strings.
package spantree
