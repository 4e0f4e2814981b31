package ngram

import (
	"fmt"

	"dslsplit/internal/domain"
)

// MinN is the shortest n-gram counted by the affix scheme.
const MinN = 3

// Progress reports training progress over the lexicon.
type Progress func(done, total int)

// TrainAffix counts prefix, infix and suffix n-grams of length MinN up to
// the word length and normalizes each role by its own total.
//
// Every word contributes its leading n-grams to the prefix role, its
// trailing n-grams to the suffix role and every n-gram at any offset to
// the infix role. Edge n-grams count as infix too: the careful scorer
// probes the infix table with the start of the right part, which is a
// word-initial n-gram, and subtracts the fallback of 1 when it is absent.
// Leaving edges out would give every right part that begins a lexicon word
// the full penalty.
func TrainAffix(words []string, language, profile string, progress Progress) (*domain.AffixTable, error) {
	if len(words) == 0 {
		return nil, fmt.Errorf("train affix %s/%s: %w", language, profile, domain.ErrEmptyLexicon)
	}

	prefix := make(map[string]int)
	infix := make(map[string]int)
	suffix := make(map[string]int)

	for i, word := range words {
		runes := []rune(word)
		for n := MinN; n <= len(runes); n++ {
			prefix[string(runes[:n])]++
			suffix[string(runes[len(runes)-n:])]++
			for start := 0; start+n <= len(runes); start++ {
				infix[string(runes[start:start+n])]++
			}
		}
		if progress != nil {
			progress(i+1, len(words))
		}
	}

	table := &domain.AffixTable{
		Language: language,
		Profile:  profile,
		Prefix:   normalize(prefix),
		Infix:    normalize(infix),
		Suffix:   normalize(suffix),
	}
	if table.Len() == 0 {
		// every word was shorter than MinN
		return nil, fmt.Errorf("train affix %s/%s: no n-grams of length %d: %w", language, profile, MinN, domain.ErrEmptyLexicon)
	}
	return table, nil
}

// normalize turns counts into relative frequencies.
func normalize(counts map[string]int) map[string]float64 {
	total := 0
	for _, c := range counts {
		total += c
	}
	probs := make(map[string]float64, len(counts))
	if total == 0 {
		return probs
	}
	for k, c := range counts {
		probs[k] = float64(c) / float64(total)
	}
	return probs
}
