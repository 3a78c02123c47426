package util

import "strings"

// StripCodeFences drops a surrounding markdown fence (``` or ```lang) that
// chat models like to wrap short answers in.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		// первая строка после ``` это язык
		if lang := strings.TrimSpace(s[:nl]); !strings.ContainsAny(lang, " \t") {
			s = s[nl+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
