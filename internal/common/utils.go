package common

import (
	"strconv"
	"strings"
)

// HasAny reports whether s contains any of the substrings, ignoring case.
func HasAny(s string, subs ...string) bool {
	s = strings.ToLower(s)
	for _, sub := range subs {
		if strings.Contains(s, strings.ToLower(sub)) {
			return true
		}
	}
	return false
}

// FormatCoord renders a coordinate with the shortest exact representation,
// e.g. -90 or 41.8781.
func FormatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// JoinNonEmpty joins the non-blank parts with sep.
func JoinNonEmpty(sep string, parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
