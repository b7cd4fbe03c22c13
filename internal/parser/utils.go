package parser

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// ContainsAny reports whether text contains any of the keywords
func ContainsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// foldLower composes accents (NFC) then lower-cases, so decomposed input
// (e + U+0301) matches the composed keywords
func foldLower(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}

// foldUpper composes accents (NFC) then upper-cases
func foldUpper(s string) string {
	return strings.ToUpper(norm.NFC.String(s))
}

// containsWord reports whether word appears as a whole token in text
func containsWord(text, word string) bool {
	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, tok := range tokens {
		if tok == word {
			return true
		}
	}
	return false
}
