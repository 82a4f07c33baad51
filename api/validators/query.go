package validators

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
)

// ClampQueryInt reads an integer query parameter. Like a lenient parseInt it
// reads the leading signed digits, so "2.5" is 2 and "10abc" is 10. Values
// without leading digits yield defaultVal; anything outside [min, max],
// including values too large for an int, is clamped to the nearest bound.
func ClampQueryInt(r *http.Request, key string, defaultVal, min, max int) int {
	digits := leadingInt(strings.TrimSpace(r.URL.Query().Get(key)))
	if digits == "" {
		return defaultVal
	}
	value, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		var numErr *strconv.NumError
		if !errors.As(err, &numErr) || !errors.Is(numErr.Err, strconv.ErrRange) {
			return defaultVal
		}
		if strings.HasPrefix(digits, "-") {
			return min
		}
		return max
	}
	switch {
	case value < int64(min):
		return min
	case value > int64(max):
		return max
	}
	return int(value)
}

// leadingInt returns the optional sign and digit run at the start of raw, or
// "" when raw does not start with a number.
func leadingInt(raw string) string {
	end := 0
	if end < len(raw) && (raw[end] == '-' || raw[end] == '+') {
		end++
	}
	start := end
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	if end == start {
		return ""
	}
	return raw[:end]
}

// QueryString returns the trimmed query parameter truncated to maxLen
// characters.
func QueryString(r *http.Request, key string, maxLen int) string {
	return SanitizeString(r.URL.Query().Get(key), maxLen)
}
