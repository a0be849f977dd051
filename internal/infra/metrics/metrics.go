package metrics

import "strings"

// norm lowercases label values so dashboards do not split on case.
func norm(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return "unknown"
	}
	return s
}
