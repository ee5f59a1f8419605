package validation

import (
	"strconv"
	"strings"
)

// NormalizeContent trims surrounding whitespace from message content. Length
// is deliberately not capped; only presence is validated at the send path.
func NormalizeContent(s string) string {
	return strings.TrimSpace(s)
}

// ParsePage parses a 1-based page query value. Anything missing or invalid
// falls back to page 1; out-of-range pages are the store's concern and yield
// empty pages, not errors.
func ParsePage(raw string) int {
	if raw == "" {
		return 1
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// ParsePageSize parses a page size query value clamped to [1, max], using
// def when missing or invalid.
func ParsePageSize(raw string, def, max int) int {
	if raw == "" {
		return def
	}
	size, err := strconv.Atoi(raw)
	if err != nil || size < 1 {
		return def
	}
	if size > max {
		return max
	}
	return size
}
