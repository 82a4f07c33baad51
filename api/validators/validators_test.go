package validators

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClampQueryInt(t *testing.T) {
	cases := []struct {
		query string
		want  int
	}{
		{"", 20},
		{"limit=", 20},
		{"limit=abc", 20},
		{"limit=12.5", 12},
		{"limit=10abc", 10},
		{"limit=x10", 20},
		{"limit=-", 20},
		{"limit=%2B7", 7},
		{"limit=0", 1},
		{"limit=-4", 1},
		{"limit=75", 50},
		{"limit=%2035%20", 35},
		{"limit=50", 50},
	}
	for _, tc := range cases {
		r := httptest.NewRequest("GET", "/products?"+tc.query, nil)
		require.Equal(t, tc.want, ClampQueryInt(r, "limit", 20, 1, 50), tc.query)
	}
}

func TestClampQueryIntOutOfRange(t *testing.T) {
	cases := []struct {
		query string
		want  int
	}{
		{"page=99999999999999999999", 5000},
		{"page=-99999999999999999999", 1},
		{"page=2.5", 2},
		{"page=9223372036854775807", 5000},
		{"page=5001", 5000},
	}
	for _, tc := range cases {
		r := httptest.NewRequest("GET", "/products?"+tc.query, nil)
		require.Equal(t, tc.want, ClampQueryInt(r, "page", 1, 1, 5000), tc.query)
	}
}

func TestSanitizeStringTruncatesByRune(t *testing.T) {
	require.Equal(t, "kush", SanitizeString("  kush  ", 100))
	require.Equal(t, "abc", SanitizeString("abcdef", 3))
	require.Equal(t, "ñañ", SanitizeString("ñañaña", 3))
	require.Equal(t, "unbounded", SanitizeString("unbounded", 0))

	long := strings.Repeat("é", 150)
	require.Equal(t, 100, len([]rune(SanitizeString(long, 100))))
}

func TestQueryString(t *testing.T) {
	r := httptest.NewRequest("GET", "/products?q=+Blue+Dream+", nil)
	require.Equal(t, "Blue Dream", QueryString(r, "q", 100))
}
