package domain

import (
	"fmt"
	"strings"
)

// JoinMarker separates parts inside a brute-force candidate.
const JoinMarker = "+"

// MaxScore is the fixed score of hyphen short-circuit splits.
const MaxScore = 1.0

type Method string

const (
	MethodCareful Method = "careful"
	MethodBrute   Method = "brute"
	MethodMixed   Method = "mixed"
)

// ParseMethod validates a method tag. Unknown tags are never coerced.
func ParseMethod(s string) (Method, error) {
	switch m := Method(s); m {
	case MethodCareful, MethodBrute, MethodMixed:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMethod, s)
}

// UsesBrute reports whether the method may consult a pentagram table.
func (m Method) UsesBrute() bool {
	return m == MethodBrute || m == MethodMixed
}

// JoinType is the joining fragment between two compound parts.
type JoinType string

const (
	JoinNone   JoinType = ""
	JoinS      JoinType = "s"
	JoinE      JoinType = "e"
	JoinHyphen JoinType = "-"
)

// Candidate is a word with join markers inserted, e.g. "bade+and" or
// "skrivebord+s+lampe".
type Candidate struct {
	Marked string
}

// Parts splits the candidate on its join markers.
func (c Candidate) Parts() []string {
	return strings.Split(c.Marked, JoinMarker)
}

// Word removes the join markers again.
func (c Candidate) Word() string {
	return strings.ReplaceAll(c.Marked, JoinMarker, "")
}

type SplitResult struct {
	Subtokens []string `json:"subtokens"`
	Fuge      string   `json:"fuge"`
	Score     float64  `json:"score"`

	// Anomalous marks brute candidates with more than one joining fragment.
	Anomalous bool `json:"-"`
}

// IsSplit reports whether the result holds two parts rather than the
// unsplit marker.
func (r SplitResult) IsSplit() bool {
	return len(r.Subtokens) == 2
}

// Joined concatenates the parts with the fuge in between.
func (r SplitResult) Joined() string {
	if !r.IsSplit() {
		return strings.Join(r.Subtokens, "")
	}
	return r.Subtokens[0] + r.Fuge + r.Subtokens[1]
}

// Unsplit builds the single-part marker for a word.
func Unsplit(word string, score float64) SplitResult {
	return SplitResult{Subtokens: []string{word}, Score: score}
}

type SplitResponse struct {
	Word        string        `json:"word"`
	Splits      []SplitResult `json:"splits"`
	Method      Method        `json:"method"`
	Description string        `json:"description"`
}

// LemmaSet is a set of known base forms.
type LemmaSet map[string]struct{}

func NewLemmaSet(words []string) LemmaSet {
	s := make(LemmaSet, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

func (s LemmaSet) IsKnownLemma(word string) bool {
	_, ok := s[word]
	return ok
}

// TrainingInfo describes a persisted table.
type TrainingInfo struct {
	Key         string `json:"key"`
	Words       int    `json:"words"`
	Entries     int    `json:"entries"`
	Fingerprint string `json:"fingerprint"`
	TrainedAt   int64  `json:"trained_at"`
}
