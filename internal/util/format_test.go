package util

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "integer", input: "100", expected: "100.00"},
		{name: "one decimal", input: "12.5", expected: "12.50"},
		{name: "rounds half up", input: "0.125", expected: "0.13"},
		{name: "zero", input: "0", expected: "0.00"},
		{name: "large", input: "1234567.8", expected: "1234567.80"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatAmount(decimal.RequireFromString(tt.input)))
		})
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		prefix   string
		expected string
	}{
		{name: "below thousand", input: "999.99", prefix: "₱", expected: "₱999.99"},
		{name: "exactly thousand", input: "1000", prefix: "₱", expected: "₱1,000.00"},
		{name: "millions", input: "1234567.891", prefix: "$", expected: "$1,234,567.89"},
		{name: "six digits", input: "123456", prefix: "₱", expected: "₱123,456.00"},
		{name: "negative", input: "-4500.5", prefix: "₱", expected: "₱-4,500.50"},
		{name: "empty prefix", input: "50", prefix: "", expected: "50.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatCurrency(decimal.RequireFromString(tt.input), tt.prefix))
		})
	}
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "0", FormatCount(0))
	assert.Equal(t, "999", FormatCount(999))
	assert.Equal(t, "1,000", FormatCount(1000))
	assert.Equal(t, "12,345,678", FormatCount(12345678))
}
