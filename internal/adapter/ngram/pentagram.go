package ngram

import (
	"fmt"

	"dslsplit/internal/domain"
)

const (
	// WindowSize is the width of a pentagram.
	WindowSize = 5

	StartSentinel = "$$"
	EndSentinel   = "__"
)

// Bracket surrounds a word with the sentinels used in training and scoring.
func Bracket(word string) []rune {
	return []rune(StartSentinel + word + EndSentinel)
}

// Windows calls fn for every pentagram of a bracketed word together with
// the index of its center rune.
func Windows(bracketed []rune, fn func(center int, window string)) {
	half := WindowSize / 2
	for i := half; i < len(bracketed)-half; i++ {
		fn(i, string(bracketed[i-half:i+half+1]))
	}
}

// TrainPentagram counts every pentagram of the bracketed lexicon words and
// normalizes by the total window count. Words may carry join markers.
func TrainPentagram(words []string, variant string, progress Progress) (*domain.PentagramTable, error) {
	if len(words) == 0 {
		return nil, fmt.Errorf("train pentagram %s: %w", variant, domain.ErrEmptyLexicon)
	}

	counts := make(map[string]int)
	for i, word := range words {
		Windows(Bracket(word), func(_ int, window string) {
			counts[window]++
		})
		if progress != nil {
			progress(i+1, len(words))
		}
	}

	return &domain.PentagramTable{
		Variant: variant,
		Probs:   normalize(counts),
	}, nil
}
