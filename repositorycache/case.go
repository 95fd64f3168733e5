package repositorycache

import (
	"strings"
	"unicode"
)

// toSnake turns a Go type name into a key tag: "CalendarItem" becomes
// "calendar_item" and "KinaUnaTextNumber" becomes "kina_una_text_number".
// Runs of capitals stay together ("URLLink" -> "url_link") and anything that
// is not a letter or digit collapses into a single underscore.
func toSnake(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(runes) + len(runes)/2)

	pendingUnderscore := false
	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			pendingUnderscore = b.Len() > 0
			continue
		}

		if unicode.IsUpper(r) && i > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				pendingUnderscore = b.Len() > 0
			}
		}

		if pendingUnderscore {
			b.WriteByte('_')
			pendingUnderscore = false
		}
		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}
