// Package translit converts Arabizi (Arabic written with Latin letters and
// digits) into Arabic script and fixes a small set of known misspellings.
//
// Conversion runs in a fixed order:
//
//  1. The input is lowercased.
//  2. Multi-character rules ("sh", "kh", "3'" ...) are replaced globally,
//     one rule after another, over the whole string.
//  3. The result is split on whitespace. A token that is a special word
//     ("7abibi") is replaced as a whole.
//  4. Any other token is scanned rune by rune: substring exceptions ("7alk")
//     win first, Arabic runes pass through, mapped Latin runes are replaced
//     and everything else is kept verbatim.
//
// Step 2 is a blunt sequential rewrite. It ignores word boundaries, and
// overlapping patterns interact ("ssh" becomes "سش", not "سه").
//
// The lookup tables are initialised once and never modified, so all
// functions are safe for concurrent use by multiple goroutines.
// No input is rejected: unknown characters map to themselves.
package translit

import (
	"strings"
	"unicode/utf8"
)

// Result holds the output of both conversion stages.
type Result struct {
	Input     string `json:"input"`
	Raw       string `json:"arabic_raw"`
	Corrected string `json:"arabic_corrected"`
}

// Convert runs Transliterate followed by Correct.
func Convert(text string) Result {
	raw := Transliterate(text)
	return Result{
		Input:     text,
		Raw:       raw,
		Corrected: Correct(raw),
	}
}

// Transliterate converts Arabizi text into rough Arabic script.
// Tokens in the output are separated by single spaces.
func Transliterate(text string) string {
	if text == "" {
		return ""
	}

	s := rewrite(strings.ToLower(text), multiCharRules)

	tokens := strings.Fields(s)
	for i, tok := range tokens {
		tokens[i] = transliterateToken(tok)
	}

	return strings.Join(tokens, " ")
}

// rewrite applies each rule to the whole string in order.
func rewrite(s string, rules []rule) string {
	for _, r := range rules {
		s = strings.ReplaceAll(s, r.pattern, r.replacement)
	}
	return s
}

func transliterateToken(tok string) string {
	if word, ok := specialWords[tok]; ok {
		return word
	}

	runes := []rune(tok)

	var b strings.Builder
	b.Grow(len(tok) * 2)

	for i := 0; i < len(runes); {
		if repl, n, ok := matchException(runes[i:]); ok {
			b.WriteString(repl)
			i += n
			continue
		}

		b.WriteRune(mapRune(runes[i]))
		i++
	}

	return b.String()
}

func mapRune(r rune) rune {
	if isArabic(r) {
		return r
	}
	if ar, ok := singleChars[r]; ok {
		return ar
	}
	return r
}

// matchException reports whether rest starts with a substring exception.
// It returns the replacement and the number of runes consumed.
func matchException(rest []rune) (string, int, bool) {
	for _, ex := range substringExceptions {
		n := utf8.RuneCountInString(ex.pattern)
		if n > len(rest) {
			continue
		}
		if string(rest[:n]) == ex.pattern {
			return ex.replacement, n, true
		}
	}
	return "", 0, false
}

// Correct replaces whole tokens found in the correction table.
// The number and order of tokens are preserved.
func Correct(text string) string {
	if text == "" {
		return ""
	}

	tokens := strings.Fields(text)
	for i, tok := range tokens {
		if fixed, ok := corrections[tok]; ok {
			tokens[i] = fixed
		}
	}

	return strings.Join(tokens, " ")
}
