package usecase

import (
	"context"
	"errors"
	"slices"
	"strings"

	"dslsplit/internal/adapter/lexicon"
	"dslsplit/internal/domain"
)

// EvalOptions controls an evaluation run.
type EvalOptions struct {
	Method     string
	Variant    string
	TopN       int  // splits considered per word
	IgnoreFuge bool // compare "s+" and "+s+" as equal
	Size       int  // 0 evaluates every case
}

// EvalMiss records a word the splitter got wrong.
type EvalMiss struct {
	Query    string
	Expected string
	Actual   []string
	Method   domain.Method
}

type EvalReport struct {
	Options        EvalOptions
	TruePositives  int
	TrueNegatives  int
	FalsePositives int
	FalseNegatives int
	Misses         []EvalMiss
}

func (r *EvalReport) Total() int {
	return r.TruePositives + r.TrueNegatives + r.FalsePositives + r.FalseNegatives
}

func (r *EvalReport) Precision() float64 {
	if d := r.TruePositives + r.FalsePositives; d > 0 {
		return float64(r.TruePositives) / float64(d)
	}
	return 0
}

func (r *EvalReport) Recall() float64 {
	if d := r.TruePositives + r.FalseNegatives; d > 0 {
		return float64(r.TruePositives) / float64(d)
	}
	return 0
}

// FormatSplit renders a split with "+" markers around the fuge.
func FormatSplit(s domain.SplitResult) string {
	if !s.IsSplit() {
		return s.Joined()
	}
	if s.Fuge == "" {
		return s.Subtokens[0] + domain.JoinMarker + s.Subtokens[1]
	}
	return s.Subtokens[0] + domain.JoinMarker + s.Fuge + domain.JoinMarker + s.Subtokens[1]
}

func foldFuge(s string) string {
	s = strings.ReplaceAll(s, "+s+", "s+")
	return strings.ReplaceAll(s, "+e+", "e+")
}

// Evaluate runs every gold case through the splitter and counts hits.
// A word whose top splits contain the expected segmentation is a true
// positive; a word left unsplit whose expected value has no marker is a
// true negative.
func Evaluate(ctx context.Context, u *SplitUseCase, cases []lexicon.GoldCase, opts EvalOptions) (*EvalReport, error) {
	if opts.TopN <= 0 {
		opts.TopN = 1
	}
	report := &EvalReport{Options: opts}

	for i, c := range cases {
		if opts.Size > 0 && i >= opts.Size {
			break
		}

		var actual []string
		var method domain.Method
		resp, err := u.Split(ctx, SplitRequest{Word: c.Query, Method: opts.Method, Variant: opts.Variant})
		switch {
		case err == nil:
			method = resp.Method
			for _, s := range resp.Splits[:min(opts.TopN, len(resp.Splits))] {
				if s.IsSplit() {
					actual = append(actual, strings.ToLower(FormatSplit(s)))
				}
			}
		case errors.Is(err, domain.ErrInvalidInput):
		default:
			return nil, err
		}

		expected := c.Expected
		if opts.IgnoreFuge {
			expected = foldFuge(expected)
			for j := range actual {
				actual[j] = foldFuge(actual[j])
			}
		}

		switch {
		case len(actual) > 0 && slices.Contains(actual, expected):
			report.TruePositives++
		case len(actual) > 0:
			report.FalsePositives++
			report.Misses = append(report.Misses, EvalMiss{c.Query, expected, actual, method})
		case !strings.Contains(expected, domain.JoinMarker):
			report.TrueNegatives++
		default:
			report.FalseNegatives++
			report.Misses = append(report.Misses, EvalMiss{c.Query, expected, actual, method})
		}
	}
	return report, nil
}
