// Package csvcodec reads and writes the single-line, comma separated records
// used by the order logs. Quoting follows a reduced RFC 4180: a field is
// quoted only when it contains a comma or a double quote, and embedded
// quotes are doubled. Records never span lines.
package csvcodec

import "strings"

const (
	separator = ','
	quote     = '"'
)

// ParseLine splits one line into fields. Commas inside a quoted section do
// not split; a doubled quote inside a quoted section yields one literal
// quote. An empty line yields a single empty field.
func ParseLine(line string) []string {
	fields := make([]string, 0, 4)
	var cur strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == quote:
			if inQuotes && i+1 < len(line) && line[i+1] == quote {
				cur.WriteByte(quote)
				i++
				continue
			}
			inQuotes = !inQuotes
		case c == separator && !inQuotes:
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}

	return append(fields, cur.String())
}

// EscapeField quotes v when it contains a comma or a quote, doubling the
// embedded quotes; other values are returned unchanged.
func EscapeField(v string) string {
	if !strings.ContainsAny(v, `,"`) {
		return v
	}
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}

// JoinFields escapes every field and joins them into one record line,
// without a trailing newline.
func JoinFields(fields ...string) string {
	escaped := make([]string, len(fields))
	for i, f := range fields {
		escaped[i] = EscapeField(f)
	}
	return strings.Join(escaped, string(separator))
}

// Encodable reports whether v survives a write/read cycle. Line breaks would
// split the record across lines.
func Encodable(v string) bool {
	return !strings.ContainsAny(v, "\r\n")
}
