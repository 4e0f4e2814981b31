package splitter

import (
	"dslsplit/internal/domain"
	"dslsplit/internal/port"
)

func hasLemmas(l port.LemmaChecker) bool {
	if l == nil {
		return false
	}
	if set, ok := l.(domain.LemmaSet); ok {
		return len(set) > 0
	}
	return true
}

// inflectionalJoiner reports whether part ends in a joining "s" or "e"
// that belongs between the parts rather than to the lemma.
func inflectionalJoiner(part string, lemmas port.LemmaChecker) (string, string, bool) {
	runes := []rune(part)
	if len(runes) < 2 {
		return part, "", false
	}
	last := runes[len(runes)-1]
	if last != 's' && last != 'e' {
		return part, "", false
	}
	stem := string(runes[:len(runes)-1])
	if lemmas.IsKnownLemma(part) || !lemmas.IsKnownLemma(stem) {
		return part, "", false
	}
	return stem, string(last), true
}

// Verify moves a trailing "s" or "e" from a part into the fuge when the
// part itself is not a known lemma but the part without it is. Only parts
// followed by another part are considered.
func Verify(split domain.SplitResult, lemmas port.LemmaChecker) (domain.SplitResult, error) {
	if !hasLemmas(lemmas) {
		return domain.SplitResult{}, domain.ErrNoLemmas
	}
	if !split.IsSplit() {
		return split, nil
	}

	out := domain.SplitResult{
		Subtokens: make([]string, 0, len(split.Subtokens)),
		Fuge:      split.Fuge,
		Score:     split.Score,
	}
	last := len(split.Subtokens) - 1
	for i, part := range split.Subtokens {
		if i < last {
			if stem, letter, ok := inflectionalJoiner(part, lemmas); ok {
				part = stem
				out.Fuge = letter + out.Fuge
			}
		}
		out.Subtokens = append(out.Subtokens, part)
	}
	return out, nil
}
