package splitter

import (
	"math"
	"sort"
	"strings"

	"dslsplit/internal/adapter/ngram"
	"dslsplit/internal/domain"
)

// BruteOptions holds the fallback policy of the pentagram scorer.
type BruteOptions struct {
	// MissLimit zeroes a candidate once this many of its windows are absent
	// from the table. A candidate whose windows are all absent is always
	// zeroed.
	MissLimit int
	// SentinelMissProb scores absent windows touching a word edge.
	SentinelMissProb float64
	// MissProb scores any other absent window.
	MissProb float64
	// HyphenProb scores windows around a hyphen join.
	HyphenProb float64
}

func DefaultBruteOptions() BruteOptions {
	return BruteOptions{
		MissLimit:        5,
		SentinelMissProb: 1e-10,
		MissProb:         1e-8,
		HyphenProb:       1.0,
	}
}

// Brute scores every marked candidate of a word with a pentagram table.
type Brute struct {
	table *domain.PentagramTable
	opts  BruteOptions
}

func NewBrute(table *domain.PentagramTable, opts BruteOptions) *Brute {
	if opts.MissLimit <= 0 {
		opts.MissLimit = DefaultBruteOptions().MissLimit
	}
	return &Brute{table: table, opts: opts}
}

func (b *Brute) windowProb(window string) (float64, bool) {
	if strings.Contains(window, domain.JoinMarker+"-") || strings.Contains(window, "-"+domain.JoinMarker) {
		return b.opts.HyphenProb, true
	}
	if l := b.table.Prob(window); l.Found {
		return l.Prob, true
	}
	if strings.ContainsAny(window, ngram.StartSentinel+ngram.EndSentinel) {
		return b.opts.SentinelMissProb, false
	}
	return b.opts.MissProb, false
}

// Score multiplies the center-weighted probabilities of every window that
// contains a join marker.
func (b *Brute) Score(c domain.Candidate) float64 {
	bracketed := ngram.Bracket(c.Marked)
	center := float64(len(bracketed)) / 2

	score := 1.0
	scored, misses := 0, 0
	ngram.Windows(bracketed, func(i int, window string) {
		if !strings.Contains(window, domain.JoinMarker) {
			return
		}
		scored++
		p, found := b.windowProb(window)
		if !found {
			misses++
		}
		weight := 1 - math.Abs(float64(i)-center)/center
		score *= p * weight * weight
	})

	if scored == 0 || misses == scored || misses >= b.opts.MissLimit {
		return 0
	}
	return score
}

// Split returns the non-zero candidates of a word, best first.
func (b *Brute) Split(word string) []domain.SplitResult {
	word = strings.ToLower(word)
	if r, ok := HyphenSplit(word); ok {
		return []domain.SplitResult{r}
	}

	type scored struct {
		candidate domain.Candidate
		score     float64
	}
	var kept []scored
	for _, c := range Candidates(word) {
		if s := b.Score(c); s > 0 {
			kept = append(kept, scored{candidate: c, score: s})
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].score > kept[j].score
	})

	results := make([]domain.SplitResult, 0, len(kept))
	for _, k := range kept {
		results = append(results, toResult(k.candidate, k.score))
	}
	return results
}
