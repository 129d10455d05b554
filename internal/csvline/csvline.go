// Package csvline splits raw statement text into lines and quote-aware
// fields. The format dispatcher works line-at-a-time over ragged rows, which
// rules out encoding/csv's whole-stream reader.
package csvline

import "strings"

// Fields splits one CSV line on commas outside double-quoted spans. A doubled
// quote inside a quoted span is an escaped literal quote. Empty fields are
// preserved.
func Fields(line string) []string {
	var fields []string
	var b strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				b.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case c == ',' && !inQuotes:
			fields = append(fields, b.String())
			b.Reset()
		default:
			b.WriteByte(c)
		}
	}
	return append(fields, b.String())
}

// Lines splits file text on newlines, tolerating CRLF, and drops blank lines.
func Lines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
