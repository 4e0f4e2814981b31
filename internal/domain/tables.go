package domain

// Lookup is the result of probing a probability table. Scorers decide what
// a miss is worth.
type Lookup struct {
	Prob  float64
	Found bool
}

// Or returns the probability, or fallback when the n-gram was absent.
func (l Lookup) Or(fallback float64) float64 {
	if !l.Found {
		return fallback
	}
	return l.Prob
}

func lookup(m map[string]float64, key string) Lookup {
	p, ok := m[key]
	return Lookup{Prob: p, Found: ok}
}

// AffixTable holds the three role tables of the careful scheme.
type AffixTable struct {
	Language string             `msgpack:"language"`
	Profile  string             `msgpack:"profile"`
	Prefix   map[string]float64 `msgpack:"prefix"`
	Infix    map[string]float64 `msgpack:"infix"`
	Suffix   map[string]float64 `msgpack:"suffix"`
}

func (t *AffixTable) PrefixProb(ngram string) Lookup { return lookup(t.Prefix, ngram) }
func (t *AffixTable) InfixProb(ngram string) Lookup  { return lookup(t.Infix, ngram) }
func (t *AffixTable) SuffixProb(ngram string) Lookup { return lookup(t.Suffix, ngram) }

// Len returns the total number of entries across roles.
func (t *AffixTable) Len() int {
	return len(t.Prefix) + len(t.Infix) + len(t.Suffix)
}

// PentagramTable maps 5-rune windows to their empirical probability for
// one lexicon variant.
type PentagramTable struct {
	Variant string             `msgpack:"variant"`
	Probs   map[string]float64 `msgpack:"probs"`
}

func (t *PentagramTable) Prob(window string) Lookup { return lookup(t.Probs, window) }

func (t *PentagramTable) Len() int { return len(t.Probs) }

// AffixKey names a careful table in a table store.
func AffixKey(language, profile string) string {
	return "affix/" + language + "/" + profile
}

// PentagramKey names a brute table in a table store.
func PentagramKey(variant string) string {
	return "pentagram/" + variant
}
