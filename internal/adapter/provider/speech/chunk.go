package speech

import (
	"strings"
	"unicode/utf8"
)

// splitChunks breaks text into pieces of at most maxRunes runes, cutting at
// whitespace where possible. A word longer than maxRunes is split by runes.
func splitChunks(text string, maxRunes int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var (
		chunks []string
		cur    strings.Builder
		curLen int
	)
	flush := func() {
		if curLen > 0 {
			chunks = append(chunks, cur.String())
			cur.Reset()
			curLen = 0
		}
	}

	for _, w := range words {
		n := utf8.RuneCountInString(w)

		if n > maxRunes {
			flush()
			runes := []rune(w)
			for len(runes) > maxRunes {
				chunks = append(chunks, string(runes[:maxRunes]))
				runes = runes[maxRunes:]
			}
			cur.WriteString(string(runes))
			curLen = len(runes)
			continue
		}

		if curLen > 0 && curLen+1+n > maxRunes {
			flush()
		}
		if curLen > 0 {
			cur.WriteByte(' ')
			curLen++
		}
		cur.WriteString(w)
		curLen += n
	}
	flush()

	return chunks
}
