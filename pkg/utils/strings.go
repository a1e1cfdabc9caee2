package utils

import "strings"

// SplitAndTrim splits s on sep, trims each part and drops empty ones.
func SplitAndTrim(s, sep string) []string {
	var result []string

	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}

	return result
}
