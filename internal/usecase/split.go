package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"dslsplit/config"
	"dslsplit/internal/adapter/analyzer"
	"dslsplit/internal/adapter/cache"
	"dslsplit/internal/domain"
	"dslsplit/internal/port"
)

// SplitRequest selects how a word is split. Empty fields take the
// configured defaults.
type SplitRequest struct {
	Word     string
	Method   string
	Variant  string
	Language string
}

// TextRequest splits every word of a text the same way.
type TextRequest struct {
	Text     string
	Method   string
	Variant  string
	Language string
}

// SplitUseCase arbitrates between the careful and the brute splitter.
type SplitUseCase struct {
	tables atomic.Pointer[Tables]
	cache  *cache.SplitCache
	cfg    *config.Config
}

// NewSplitUseCase creates a new split use case. splitCache may be nil.
func NewSplitUseCase(cfg *config.Config, tables *Tables, splitCache *cache.SplitCache) *SplitUseCase {
	u := &SplitUseCase{cache: splitCache, cfg: cfg}
	u.tables.Store(tables)
	return u
}

// Swap installs a freshly trained snapshot. In-flight splits finish on the
// snapshot they started with.
func (u *SplitUseCase) Swap(tables *Tables) {
	u.tables.Store(tables)
	if u.cache != nil {
		u.cache.Invalidate()
	}
}

func (u *SplitUseCase) Tables() *Tables {
	return u.tables.Load()
}

// snapshot returns the current tables with the cache generation read before
// them. Swap stores the tables before invalidating, so a response computed
// from these tables is never cached under a later generation.
func (u *SplitUseCase) snapshot() (*Tables, uint64) {
	var gen uint64
	if u.cache != nil {
		gen = u.cache.Generation()
	}
	return u.tables.Load(), gen
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return strings.TrimSpace(v)
}

type plan struct {
	method   domain.Method
	variant  string
	language string
	careful  port.CarefulSplitter
	brute    port.BruteSplitter
	gen      uint64 // cache generation the tables were read at
}

func (u *SplitUseCase) plan(tables *Tables, method, variant, language string) (*plan, error) {
	m, err := domain.ParseMethod(orDefault(method, u.cfg.Service.DefaultMethod))
	if err != nil {
		return nil, err
	}
	p := &plan{
		method:   m,
		variant:  orDefault(variant, u.cfg.Brute.DefaultVariant),
		language: orDefault(language, u.cfg.Careful.Language),
	}

	careful, err := tables.Careful(p.language)
	if err != nil {
		return nil, err
	}
	p.careful = careful

	if m.UsesBrute() {
		brute, err := tables.Brute(p.variant)
		if err != nil {
			return nil, err
		}
		p.brute = brute
	}
	return p, nil
}

// Split splits one word.
func (u *SplitUseCase) Split(ctx context.Context, req SplitRequest) (*domain.SplitResponse, error) {
	tables, gen := u.snapshot()
	p, err := u.plan(tables, req.Method, req.Variant, req.Language)
	if err != nil {
		return nil, err
	}
	p.gen = gen
	return u.split(ctx, p, analyzer.NormalizeWord(req.Word))
}

func (u *SplitUseCase) split(ctx context.Context, p *plan, word string) (*domain.SplitResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if word == "" {
		return nil, fmt.Errorf("%w: empty word", domain.ErrInvalidInput)
	}

	key := cache.Key{Word: word, Method: p.method, Variant: p.variant, Language: p.language}
	if u.cache != nil {
		if resp, ok := u.cache.Get(key); ok {
			return resp, nil
		}
	}

	start := time.Now()
	var (
		splits []domain.SplitResult
		used   domain.Method
		err    error
	)
	switch p.method {
	case domain.MethodCareful:
		splits, err = u.carefulSplits(p.careful, word)
		used = domain.MethodCareful
	case domain.MethodBrute:
		splits = p.brute.Split(word)
		used = domain.MethodBrute
	case domain.MethodMixed:
		splits, err = u.carefulSplits(p.careful, word)
		used = domain.MethodCareful
		if err == nil && len(splits) == 0 {
			splits = p.brute.Split(word)
			used = domain.MethodBrute
		}
	}
	if err != nil {
		return nil, err
	}
	if splits == nil {
		splits = []domain.SplitResult{}
	}

	for _, s := range splits {
		if s.Anomalous {
			slog.Warn("candidate with more than one joining fragment",
				slog.String("word", word), slog.Any("subtokens", s.Subtokens), slog.String("fuge", s.Fuge))
		}
	}

	resp := &domain.SplitResponse{
		Word:        word,
		Splits:      splits,
		Method:      used,
		Description: u.description(used),
	}
	slog.Debug("split word", slog.String("word", word), slog.String("method", string(used)),
		slog.Int("splits", len(splits)), slog.Duration("duration", time.Since(start)))

	if u.cache != nil {
		u.cache.Put(key, resp, p.gen)
	}
	return resp, nil
}

// carefulSplits keeps only the positive careful splits.
func (u *SplitUseCase) carefulSplits(c port.CarefulSplitter, word string) ([]domain.SplitResult, error) {
	all, err := c.EasySplit(word, u.cfg.Careful.MinScore)
	if err != nil {
		return nil, err
	}
	var kept []domain.SplitResult
	for _, s := range all {
		if s.Score > 0 {
			kept = append(kept, s)
		}
	}
	return kept, nil
}

func (u *SplitUseCase) description(m domain.Method) string {
	switch m {
	case domain.MethodCareful:
		return u.cfg.Careful.Description
	case domain.MethodBrute:
		return u.cfg.Brute.Description
	}
	return ""
}

// SplitText splits every word of a text concurrently. Responses keep the
// order of the words.
func (u *SplitUseCase) SplitText(ctx context.Context, req TextRequest) ([]*domain.SplitResponse, error) {
	tables, gen := u.snapshot()
	p, err := u.plan(tables, req.Method, req.Variant, req.Language)
	if err != nil {
		return nil, err
	}
	p.gen = gen

	words := analyzer.Words(req.Text)
	if limit := u.cfg.Service.MaxTextWords; limit > 0 && len(words) > limit {
		return nil, fmt.Errorf("%w: text has %d words, limit is %d", domain.ErrInvalidInput, len(words), limit)
	}

	responses := make([]*domain.SplitResponse, len(words))
	g, ctx := errgroup.WithContext(ctx)
	if n := u.cfg.Service.BatchLimit; n > 0 {
		g.SetLimit(n)
	}
	for i, word := range words {
		i, word := i, word
		g.Go(func() error {
			resp, err := u.split(ctx, p, word)
			if err != nil {
				return fmt.Errorf("failed to split %q: %w", word, err)
			}
			responses[i] = resp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return responses, nil
}
