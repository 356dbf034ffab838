package validators

import (
	"net/http"
	"strings"
	"time"
)

// maxQueryTextLen caps free-text filters so a pathological query string
// cannot balloon log lines or upstream comparisons.
const maxQueryTextLen = 256

// QueryText returns a trimmed, length-capped query parameter. Filter
// parameters are forgiving by contract: there is no error path here.
func QueryText(r *http.Request, key string) string {
	trimmed := strings.TrimSpace(r.URL.Query().Get(key))
	if len(trimmed) > maxQueryTextLen {
		return trimmed[:maxQueryTextLen]
	}
	return trimmed
}

// QueryValues collects every occurrence of a repeatable parameter and
// splits comma-separated entries, so ?status=paid,pending and
// ?status=paid&status=pending read the same. Blank entries are dropped.
func QueryValues(r *http.Request, key string) []string {
	var values []string
	for _, raw := range r.URL.Query()[key] {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			values = append(values, part)
		}
	}
	return values
}

// QueryDate reads a date filter, accepting either a plain calendar date
// or a full RFC 3339 timestamp. Anything else means no filter: a typo in
// a date picker should widen the result set, not fail the request.
func QueryDate(r *http.Request, key string) *time.Time {
	return ParseDate(r.URL.Query().Get(key))
}

// ParseDate applies the date-filter leniency to a raw string, for callers
// that carry filters in a JSON body rather than the query string.
func ParseDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if parsed, err := time.Parse("2006-01-02", raw); err == nil {
		return &parsed
	}
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return &parsed
	}
	return nil
}
