// Package analyzer turns raw text into the normalized words the splitters
// and trainers work on.
package analyzer

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizeWord returns the NFC-composed, lowercased, trimmed form of a word.
func NormalizeWord(word string) string {
	return strings.ToLower(norm.NFC.String(strings.TrimSpace(word)))
}

// Words splits text into normalized words. Hyphens inside a word are kept
// so hyphenated compounds reach the splitter intact.
func Words(text string) []string {
	raw := splitWords(norm.NFC.String(text))
	words := make([]string, 0, len(raw))
	for _, w := range raw {
		w = strings.Trim(w, "-")
		if w == "" {
			continue
		}
		words = append(words, strings.ToLower(w))
	}
	return words
}

func splitWords(text string) []string {
	var words []string
	var current strings.Builder

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' {
			current.WriteRune(r)
		} else {
			if current.Len() > 0 {
				words = append(words, current.String())
				current.Reset()
			}
		}
	}
	if current.Len() > 0 {
		words = append(words, current.String())
	}

	return words
}

// Dedup drops empty and repeated words, keeping first-seen order.
func Dedup(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		if w == "" {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}
