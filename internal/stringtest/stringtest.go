package stringtest

import "strings"

// Input dedents a raw (often backtick) string literal: a single leading
// and a single trailing newline are stripped, then the common leading
// whitespace shared by every non-blank line is removed from all lines.
// Blank and whitespace-only lines are reported as empty. Use this to
// write readable multi-line test fixtures without leaking source
// indentation into the expected value.
//
// Example:
//
//	got := stringtest.Input(`
//	    key: value
//	    nested:
//	      child: data`)
//	// -> "key: value\nnested:\n  child: data"
func Input(s string) string {
	s = strings.TrimPrefix(s, "\n")
	s = strings.TrimSuffix(s, "\n")

	if s == "" {
		return s
	}

	lines := strings.Split(s, "\n")

	indent := -1

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		n := leadingWhitespaceLen(line)
		if indent == -1 || n < indent {
			indent = n
		}
	}

	if indent < 0 {
		indent = 0
	}

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""

			continue
		}

		lines[i] = line[indent:]
	}

	return strings.Join(lines, "\n")
}

func leadingWhitespaceLen(s string) int {
	n := 0
	for n < len(s) && (s[n] == ' ' || s[n] == '\t') {
		n++
	}

	return n
}

// JoinLF joins multiple strings with LF line endings.
// Use this to construct expected test output with explicit line endings.
//
// Example:
//
//	want := stringtest.JoinLF(
//		"line1",
//		"line2",
//		"line3",
//	) // -> "line1\nline2\nline3"
func JoinLF(ss ...string) string {
	var sb strings.Builder
	for i, s := range ss {
		if i > 0 {
			sb.WriteByte('\n')
		}

		sb.WriteString(s)
	}

	return sb.String()
}

// JoinCRLF joins multiple strings with CRLF line endings.
// Use this to construct expected test output with explicit line endings on
// Windows.
//
// Example:
//
//	want := stringtest.JoinCRLF(
//		"line1",
//		"line2",
//		"line3",
//	) // -> "line1\r\nline2\r\nline3"
func JoinCRLF(ss ...string) string {
	var sb strings.Builder
	for i, s := range ss {
		if i > 0 {
			sb.WriteByte('\r')
			sb.WriteByte('\n')
		}

		sb.WriteString(s)
	}

	return sb.String()
}
