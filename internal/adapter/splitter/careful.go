package splitter

import (
	"sort"
	"strings"

	"dslsplit/internal/adapter/ngram"
	"dslsplit/internal/domain"
	"dslsplit/internal/port"
)

// DefaultMinScore is the EasySplit threshold used by the service.
const DefaultMinScore = -0.2

// Fallbacks for n-grams missing from the affix tables. Prefix and suffix
// scores are added, so a miss costs 1. The infix score is subtracted, so a
// miss counts as the most common possible span and costs the most.
const (
	missingAffix = -1.0
	missingInfix = 1.0
)

// minFugeSlice is the shortest slice a fuge may be cut from.
const minFugeSlice = 4

var fugeEndings = map[string][]string{
	"da": {"teks", "ions", "ngs", "ms", "ns", "ds", "bs", "vs", "ls", "rs", "js"},
	"de": {"ts", "gs", "ks", "hls", "ns"},
}

var defaultFugeEndings = []string{"s"}

// Careful splits compounds with the affix (prefix/infix/suffix) tables.
type Careful struct {
	table    *domain.AffixTable
	language string
	endings  []string
	lemmas   port.LemmaChecker
}

// NewCareful creates a careful splitter. lemmas may be nil for callers that
// only use SplitCompound.
func NewCareful(table *domain.AffixTable, language string, lemmas port.LemmaChecker) *Careful {
	endings, ok := fugeEndings[language]
	if !ok {
		endings = defaultFugeEndings
	}
	return &Careful{
		table:    table,
		language: language,
		endings:  endings,
		lemmas:   lemmas,
	}
}

// cutFuge strips a trailing joining letter from a slice ending in one of
// the language's fuge patterns.
func (c *Careful) cutFuge(slice []rune) ([]rune, string) {
	if len(slice) < minFugeSlice {
		return slice, ""
	}
	s := string(slice)
	for _, end := range c.endings {
		if strings.HasSuffix(s, end) {
			return slice[:len(slice)-1], string(slice[len(slice)-1])
		}
	}
	return slice, ""
}

// preSliceScore is the best suffix probability of an n-gram ending at the
// right edge of the left part.
func (c *Careful) preSliceScore(pre []rune) (float64, bool) {
	best, ok := 0.0, false
	for k := len(pre); k >= ngram.MinN; k-- {
		p := c.table.SuffixProb(string(pre[len(pre)-k:])).Or(missingAffix)
		if !ok || p > best {
			best, ok = p, true
		}
	}
	return best, ok
}

// inSliceScore is the lowest infix probability of an n-gram starting at
// the boundary.
func (c *Careful) inSliceScore(right []rune) float64 {
	worst, ok := 0.0, false
	for k := ngram.MinN; k <= len(right); k++ {
		p := c.table.InfixProb(string(right[:k])).Or(missingInfix)
		if !ok || p < worst {
			worst, ok = p, true
		}
	}
	if !ok {
		return missingInfix
	}
	return worst
}

// startSliceScore is the prefix probability of the right part.
func (c *Careful) startSliceScore(right []rune) (float64, bool) {
	if len(right) < ngram.MinN {
		return 0, false
	}
	start, _ := c.cutFuge(right)
	return c.table.PrefixProb(string(start)).Or(missingAffix), true
}

// SplitCompound scores every boundary from the third to the third-last
// rune, best first. A word without a qualifying boundary comes back as the
// unsplit marker with score 0.
func (c *Careful) SplitCompound(word string) []domain.SplitResult {
	word = strings.ToLower(word)
	if r, ok := HyphenSplit(word); ok {
		return []domain.SplitResult{r}
	}

	runes := []rune(word)
	var scores []domain.SplitResult
	for n := 2; n < len(runes)-2; n++ {
		pre, fuge := c.cutFuge(runes[:n])
		right := runes[n:]

		preScore, ok := c.preSliceScore(pre)
		if !ok {
			continue
		}
		startScore, ok := c.startSliceScore(right)
		if !ok {
			continue
		}
		inScore := c.inSliceScore(right)

		scores = append(scores, domain.SplitResult{
			Subtokens: []string{string(pre), string(right)},
			Fuge:      fuge,
			Score:     startScore - inScore + preScore,
		})
	}

	if len(scores) == 0 {
		return []domain.SplitResult{domain.Unsplit(word, 0)}
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})
	return scores
}

// EasySplit keeps the splits scoring above minScore and passes each
// through the lemma verifier. When nothing survives the word is returned
// unsplit with score -1.
func (c *Careful) EasySplit(word string, minScore float64) ([]domain.SplitResult, error) {
	if !hasLemmas(c.lemmas) {
		return nil, domain.ErrNoLemmas
	}
	word = strings.ToLower(word)
	if r, ok := HyphenSplit(word); ok {
		return []domain.SplitResult{r}, nil
	}

	var verified []domain.SplitResult
	for _, split := range c.SplitCompound(word) {
		if split.Score <= minScore {
			continue
		}
		v, err := Verify(split, c.lemmas)
		if err != nil {
			return nil, err
		}
		verified = append(verified, v)
	}

	if len(verified) == 0 {
		return []domain.SplitResult{domain.Unsplit(word, -1)}, nil
	}
	return verified, nil
}
