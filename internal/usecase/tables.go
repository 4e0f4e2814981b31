package usecase

import (
	"fmt"

	"dslsplit/config"
	"dslsplit/internal/adapter/splitter"
	"dslsplit/internal/domain"
	"dslsplit/internal/port"
)

// Tables is an immutable snapshot of everything the splitters read. It is
// replaced as a whole, never mutated.
type Tables struct {
	careful map[string]*splitter.Careful
	brute   map[string]*splitter.Brute
	lemmas  domain.LemmaSet
}

// NewTables wires the splitters over trained tables. One careful splitter
// is built per accepted language; they share the affix table and differ in
// their fuge endings.
func NewTables(
	affix *domain.AffixTable,
	languages []string,
	lemmas domain.LemmaSet,
	pentagrams map[string]*domain.PentagramTable,
	opts splitter.BruteOptions,
) *Tables {
	t := &Tables{
		careful: make(map[string]*splitter.Careful, len(languages)),
		brute:   make(map[string]*splitter.Brute, len(pentagrams)),
		lemmas:  lemmas,
	}
	for _, lang := range languages {
		t.careful[lang] = splitter.NewCareful(affix, lang, lemmas)
	}
	for variant, table := range pentagrams {
		t.brute[variant] = splitter.NewBrute(table, opts)
	}
	return t
}

// Careful returns the careful splitter for a language.
func (t *Tables) Careful(language string) (*splitter.Careful, error) {
	c, ok := t.careful[language]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidLanguage, language)
	}
	return c, nil
}

// Brute returns the brute splitter for a variant.
func (t *Tables) Brute(variant string) (*splitter.Brute, error) {
	b, ok := t.brute[variant]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidVariant, variant)
	}
	return b, nil
}

func (t *Tables) Lemmas() domain.LemmaSet {
	return t.lemmas
}

// BruteOptions maps the brute config section onto scorer options.
func BruteOptions(cfg config.BruteConfig) splitter.BruteOptions {
	return splitter.BruteOptions{
		MissLimit:        cfg.MissLimit,
		SentinelMissProb: cfg.SentinelMissProb,
		MissProb:         cfg.MissProb,
		HyphenProb:       cfg.HyphenProb,
	}
}

// LoadTables reads the trained tables from the store and the lemma set from
// the careful word file. A table that was never trained is reported as
// domain.ErrNotFound.
func LoadTables(store port.TableStore, cfg *config.Config, train *TrainUseCase) (*Tables, error) {
	affix, err := store.LoadAffix(cfg.Careful.Language, cfg.Careful.Profile)
	if err != nil {
		return nil, fmt.Errorf("careful table not trained, run train first: %w", err)
	}

	pentagrams := make(map[string]*domain.PentagramTable, len(cfg.Brute.Variants))
	for _, variant := range cfg.VariantNames() {
		table, err := store.LoadPentagram(variant)
		if err != nil {
			return nil, fmt.Errorf("brute table %s not trained, run train first: %w", variant, err)
		}
		pentagrams[variant] = table
	}

	words, err := train.CarefulSource().Words()
	if err != nil {
		return nil, fmt.Errorf("failed to load lemmas: %w", err)
	}

	languages := cfg.Careful.Languages
	if len(languages) == 0 {
		languages = []string{cfg.Careful.Language}
	}
	return NewTables(affix, languages, domain.NewLemmaSet(words), pentagrams, BruteOptions(cfg.Brute)), nil
}
