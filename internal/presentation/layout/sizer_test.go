package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPadString(t *testing.T) {
	var z Sizer
	tests := []struct {
		name      string
		in        string
		width     int
		leftAlign bool
		want      string
	}{
		{name: "left", in: "abc", width: 5, leftAlign: true, want: "abc  "},
		{name: "right", in: "abc", width: 5, want: "  abc"},
		{name: "already wide", in: "abcdef", width: 3, leftAlign: true, want: "abcdef"},
		{name: "wide glyphs", in: "日本", width: 6, leftAlign: true, want: "日本  "},
		{name: "peso", in: "₱1.00", width: 7, want: "  ₱1.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, z.PadString(tt.in, tt.width, tt.leftAlign))
		})
	}
}

func TestTruncate(t *testing.T) {
	var z Sizer
	assert.Equal(t, "short", z.Truncate("short", 10))
	got := z.Truncate("a very long customer name", 10)
	assert.LessOrEqual(t, z.DisplayWidth(got), 10)
	assert.Contains(t, got, "…")
}

func TestTerminalWidth(t *testing.T) {
	assert.GreaterOrEqual(t, Sizer{}.TerminalWidth(), minWidth)
}
