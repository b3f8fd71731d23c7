// Package edf tokenises EDF ("dotenv") text into entries with byte-exact
// key and value spans.
//
// The tokeniser never copies the input: every [Entry.Key] and [Entry.Value]
// is a slice borrowing the caller's input bytes. This lets callers upstream
// (such as package engine) treat positions as stable offsets into a single
// owned buffer without a parse-time allocation for each field.
//
// # Grammar
//
// Each line is one of: blank, a comment (optionally carrying a KEY=VALUE
// shaped remainder), or an assignment of the form
//
//	[export] KEY = VALUE
//
// KEY matches [A-Za-z_][A-Za-z0-9_]*; the "=" is required and may be
// flanked by spaces or tabs. VALUE is unquoted, single-quoted, or
// double-quoted; double-quoted values may span multiple lines. Malformed
// lines never produce an error -- they simply produce no [Entry]. The only
// hard failure is invalid UTF-8 in the input, reported as a [*ParseError].
//
// # Line offsets
//
// [Parse] computes, in the same pass, the byte offset at which each
// 1-indexed line begins ([ParseResult.LineOffsets]), enabling O(1)
// byte-offset-to-(line, column) conversion downstream.
package edf
