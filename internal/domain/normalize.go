package domain

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeText builds the lookup key for a phrase: NFC composed, lower
// case, with every run of Unicode whitespace collapsed to one space and
// the ends trimmed. Digits and apostrophes are significant in Arabizi and
// are kept.
func NormalizeText(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(norm.NFC.String(text))), " ")
}
