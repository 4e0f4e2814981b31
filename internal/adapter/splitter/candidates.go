// Package splitter scores compound split candidates against trained
// n-gram tables.
package splitter

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"dslsplit/internal/domain"
)

// HyphenSplit short-circuits hyphenated words: everything before the last
// hyphen is the left part, the title-cased remainder the right part.
func HyphenSplit(word string) (domain.SplitResult, bool) {
	idx := strings.LastIndex(word, "-")
	if idx < 0 {
		return domain.SplitResult{}, false
	}
	// Casers are stateful and must not be shared between goroutines.
	right := cases.Title(language.Danish).String(word[idx+1:])
	return domain.SplitResult{
		Subtokens: []string{word[:idx], right},
		Fuge:      string(domain.JoinHyphen),
		Score:     domain.MaxScore,
	}, true
}

// isJoiner reports whether r can stand alone as a joining fragment.
func isJoiner(r rune) bool {
	return r == 's' || r == 'e' || r == '-'
}

// Candidates enumerates brute-force candidates for a word: one marker per
// interior boundary, plus a marked fragment around every interior joiner.
func Candidates(word string) []domain.Candidate {
	runes := []rune(word)
	if len(runes) < 2 {
		return nil
	}

	marker := []rune(domain.JoinMarker)[0]
	candidates := make([]domain.Candidate, 0, 2*len(runes))
	for i := 1; i < len(runes); i++ {
		candidates = append(candidates, domain.Candidate{
			Marked: string(runes[:i]) + domain.JoinMarker + string(runes[i:]),
		})
	}
	for i := 1; i < len(runes)-1; i++ {
		if !isJoiner(runes[i]) || runes[i-1] == marker || runes[i+1] == marker {
			continue
		}
		candidates = append(candidates, domain.Candidate{
			Marked: string(runes[:i]) + domain.JoinMarker + string(runes[i]) + domain.JoinMarker + string(runes[i+1:]),
		})
	}
	return candidates
}

// toResult converts a scored candidate into a split result. The first and
// last parts become the subtokens; a middle part becomes the fuge.
// Candidates carry at most one fuge today; Anomalous flags any wider shape
// so the arbitrator can log it.
func toResult(c domain.Candidate, score float64) domain.SplitResult {
	parts := c.Parts()
	fuge := ""
	if len(parts) > 2 {
		fuge = parts[1]
	}
	return domain.SplitResult{
		Subtokens: []string{parts[0], parts[len(parts)-1]},
		Fuge:      fuge,
		Score:     score,
		Anomalous: len(parts) > 3,
	}
}
