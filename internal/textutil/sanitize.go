package textutil

import (
	"strings"
	"unicode"
)

// SanitizeToken lowercases value into a token safe for file names. ASCII
// letters, digits, '-' and '_' survive; any other rune maps to '_'. Leading
// and trailing separators are dropped and an empty result becomes "unknown".
func SanitizeToken(value string) string {
	token := strings.Map(func(r rune) rune {
		r = unicode.ToLower(r)
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_') {
			return r
		}
		return '_'
	}, strings.TrimSpace(value))
	if token = strings.Trim(token, "_-"); token == "" {
		return "unknown"
	}
	return token
}
