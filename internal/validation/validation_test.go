package validation

import (
	"strings"
	"testing"
)

func TestNormalizeContent(t *testing.T) {
	long := strings.Repeat("x", 5000)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Trims whitespace", "  hello  ", "hello"},
		{"Only whitespace", "   \n\t ", ""},
		{"Empty string", "", ""},
		{"Long content is untouched", long, long},
		{"Multi-byte content is untouched", "  Здраво, свете é  ", "Здраво, свете é"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeContent(tt.input); got != tt.expected {
				t.Errorf("NormalizeContent(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParsePage(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected int
	}{
		{"Missing", "", 1},
		{"Valid", "3", 3},
		{"Zero", "0", 1},
		{"Negative", "-2", 1},
		{"Garbage", "two", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParsePage(tt.raw); got != tt.expected {
				t.Errorf("ParsePage(%q) = %d, want %d", tt.raw, got, tt.expected)
			}
		})
	}
}

func TestParsePageSize(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected int
	}{
		{"Missing falls back to default", "", 20},
		{"Valid", "10", 10},
		{"Clamped to max", "500", 100},
		{"Zero falls back to default", "0", 20},
		{"Garbage falls back to default", "many", 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParsePageSize(tt.raw, 20, 100); got != tt.expected {
				t.Errorf("ParsePageSize(%q, 20, 100) = %d, want %d", tt.raw, got, tt.expected)
			}
		})
	}
}
