package edf

import (
	"bytes"
	"unicode/utf8"
)

var bomBytes = []byte{0xEF, 0xBB, 0xBF}

// Parse tokenises input into a [ParseResult]. It never fails on malformed
// EDF syntax -- a malformed line simply produces no entry. The only
// failure mode is invalid UTF-8, reported as a [*ParseError].
//
// Parse does not allocate a copy of input: every [Entry.Key] and
// [Entry.Value] borrows a slice of input.
func Parse(input []byte, opts Options) (*ParseResult, error) {
	if !utf8.Valid(input) {
		return nil, &ParseError{Offset: firstInvalidUTF8(input), Err: ErrInvalidEncoding}
	}

	s := &scanner{
		input:       input,
		lineOffsets: computeLineOffsets(input),
		opts:        opts,
	}

	if bytes.HasPrefix(input, bomBytes) {
		s.pos = len(bomBytes)
	}

	for s.pos < len(input) {
		s.scanLine()
	}

	return &ParseResult{Entries: s.entries, LineOffsets: s.lineOffsets}, nil
}

// computeLineOffsets returns the byte offset at which each 1-indexed line
// begins. computeLineOffsets(x)[1] is always 0.
func computeLineOffsets(input []byte) []int {
	offsets := []int{0, 0}

	for i, b := range input {
		if b == '\n' {
			offsets = append(offsets, i+1)
		}
	}

	return offsets
}

// firstInvalidUTF8 returns the byte offset of the first invalid UTF-8
// sequence in b, or -1 if b is valid.
func firstInvalidUTF8(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}

		i += size
	}

	return -1
}

type scanner struct {
	input       []byte
	lineOffsets []int
	opts        Options
	pos         int
	entries     []Entry
}

func isLineWS(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r'
}

func isKeyStartByte(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || b == '_'
}

func isKeyByte(b byte) bool {
	return isKeyStartByte(b) || (b >= '0' && b <= '9')
}

func (s *scanner) skipLineWS() {
	for s.pos < len(s.input) && isLineWS(s.input[s.pos]) {
		s.pos++
	}
}

// skipToNextLine advances pos to the byte just after the next '\n', or to
// len(input) if there is none.
func (s *scanner) skipToNextLine() {
	for s.pos < len(s.input) && s.input[s.pos] != '\n' {
		s.pos++
	}

	if s.pos < len(s.input) {
		s.pos++
	}
}

// lineAt returns the 1-indexed line number containing offset.
func (s *scanner) lineAt(offset int) int {
	return LineAt(s.lineOffsets, offset)
}

// matchExport reports whether "export" followed by mandatory whitespace
// begins at the current position, consuming it (and the whitespace) if so.
func (s *scanner) matchExport() bool {
	const kw = "export"

	end := s.pos + len(kw)
	if end >= len(s.input) || string(s.input[s.pos:end]) != kw {
		return false
	}

	if !isLineWS(s.input[end]) {
		return false
	}

	s.pos = end
	s.skipLineWS()

	return true
}

// scanLine processes one logical line of input, emitting at most one entry
// and leaving pos at the start of the next line.
func (s *scanner) scanLine() {
	s.skipLineWS()

	if s.pos >= len(s.input) || s.input[s.pos] == '\n' {
		s.skipToNextLine()

		return
	}

	isComment := false

	if s.input[s.pos] == '#' {
		isComment = true

		s.pos++
		s.skipLineWS()

		if s.pos >= len(s.input) || s.input[s.pos] == '\n' {
			s.skipToNextLine()

			return
		}
	}

	isExported := s.matchExport()

	keyStart := s.pos
	if s.pos >= len(s.input) || !isKeyStartByte(s.input[s.pos]) {
		s.skipToNextLine()

		return
	}

	s.pos++
	for s.pos < len(s.input) && isKeyByte(s.input[s.pos]) {
		s.pos++
	}

	keyEnd := s.pos

	s.skipLineWS()

	if s.pos >= len(s.input) || s.input[s.pos] != '=' {
		s.skipToNextLine()

		return
	}

	s.pos++
	s.skipLineWS()

	quoteType, valueStart, valueEnd := s.scanValue()

	if !isComment || s.opts.IncludeComments {
		lineNumber := s.lineAt(valueStart)

		endPos := valueStart
		if valueEnd > valueStart {
			endPos = valueEnd - 1
		}

		s.entries = append(s.entries, Entry{
			Key:          s.input[keyStart:keyEnd],
			Value:        s.input[valueStart:valueEnd],
			KeyStart:     keyStart,
			KeyEnd:       keyEnd,
			ValueStart:   valueStart,
			ValueEnd:     valueEnd,
			LineNumber:   lineNumber,
			ValueEndLine: s.lineAt(endPos),
			QuoteType:    quoteType,
			IsExported:   isExported,
			IsComment:    isComment,
		})
	}

	s.skipToNextLine()
}

// scanValue consumes a value (unquoted, single-quoted, or double-quoted)
// starting at pos, returning its quote kind and byte span. pos is left just
// past the value (and its closing quote, if any); the caller is
// responsible for skipping to the next line afterward.
func (s *scanner) scanValue() (QuoteType, int, int) {
	if s.pos < len(s.input) {
		switch s.input[s.pos] {
		case '\'':
			return s.scanSingleQuoted()
		case '"':
			return s.scanDoubleQuoted()
		}
	}

	return s.scanUnquoted()
}

func (s *scanner) scanUnquoted() (QuoteType, int, int) {
	start := s.pos
	lastNonWS := start - 1

	for s.pos < len(s.input) {
		b := s.input[s.pos]
		if b == '\n' {
			break
		}

		if b == '#' && s.pos > 0 && isLineWS(s.input[s.pos-1]) {
			break
		}

		if !isLineWS(b) {
			lastNonWS = s.pos
		}

		s.pos++
	}

	end := start
	if lastNonWS >= start {
		end = lastNonWS + 1
	}

	return QuoteNone, start, end
}

func (s *scanner) scanSingleQuoted() (QuoteType, int, int) {
	s.pos++ // consume opening '

	start := s.pos

	for s.pos < len(s.input) && s.input[s.pos] != '\'' && s.input[s.pos] != '\n' {
		s.pos++
	}

	end := s.pos

	if s.pos < len(s.input) && s.input[s.pos] == '\'' {
		s.pos++
	}

	return QuoteSingle, start, end
}

func (s *scanner) scanDoubleQuoted() (QuoteType, int, int) {
	s.pos++ // consume opening "

	start := s.pos

	for s.pos < len(s.input) {
		b := s.input[s.pos]

		if b == '\\' && s.pos+1 < len(s.input) {
			s.pos += 2

			continue
		}

		if b == '"' {
			break
		}

		s.pos++
	}

	end := s.pos

	if s.pos < len(s.input) && s.input[s.pos] == '"' {
		s.pos++
	}

	return QuoteDouble, start, end
}
