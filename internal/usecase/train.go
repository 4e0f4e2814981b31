package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"dslsplit/config"
	"dslsplit/internal/adapter/lexicon"
	"dslsplit/internal/adapter/ngram"
	"dslsplit/internal/domain"
	"dslsplit/internal/port"
)

// TrainUseCase builds the probability tables and persists them.
type TrainUseCase struct {
	store port.TableStore
	cfg   *config.Config
	root  string
	now   func() time.Time
}

// NewTrainUseCase creates a new train use case. Relative data paths in cfg
// are resolved against root.
func NewTrainUseCase(store port.TableStore, cfg *config.Config, root string) *TrainUseCase {
	return &TrainUseCase{
		store: store,
		cfg:   cfg,
		root:  root,
		now:   time.Now,
	}
}

// TrainResult describes one training run.
type TrainResult struct {
	Key         string
	Skipped     bool
	Words       int
	Entries     int
	Fingerprint string
	Duration    time.Duration
}

type fileStamp struct {
	Path    string `json:"path"`
	Size    int64  `json:"size"`
	ModTime int64  `json:"mod_time"`
}

func stampFiles(paths []string) ([]fileStamp, error) {
	stamps := make([]fileStamp, 0, len(paths))
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("cannot find file %s: %w", path, domain.ErrNotFound)
			}
			return nil, err
		}
		stamps = append(stamps, fileStamp{Path: path, Size: info.Size(), ModTime: info.ModTime().UnixNano()})
	}
	return stamps, nil
}

// computeFingerprint hashes the training-relevant settings together with
// the size and modification time of every input file. A changed
// fingerprint means the stored table is stale.
func computeFingerprint(relevant any) (string, error) {
	data, err := json.Marshal(relevant)
	if err != nil {
		return "", err
	}
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:8]), nil
}

func (u *TrainUseCase) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(u.root, path)
}

func (u *TrainUseCase) upToDate(key, fingerprint string) (bool, error) {
	info, err := u.store.TrainingInfo(key)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read training info: %w", err)
	}
	return info.Fingerprint == fingerprint, nil
}

func readLexicon(src port.LexiconSource, key string) ([]string, error) {
	words, err := src.Words()
	if err != nil {
		return nil, err
	}
	slog.Debug("lexicon loaded", slog.String("key", key), slog.Int("words", len(words)))
	return words, nil
}

// CarefulSource returns the lexicon the careful table and the lemma set are
// built from.
func (u *TrainUseCase) CarefulSource() lexicon.ColumnSource {
	return lexicon.ColumnSource{
		Path:      u.resolve(u.cfg.Careful.WordFile),
		Delimiter: u.cfg.Careful.Delimiter,
		Column:    u.cfg.Careful.Column,
	}
}

// TrainCareful trains the affix table from the configured word file. An
// up-to-date table is kept unless force is set.
func (u *TrainUseCase) TrainCareful(ctx context.Context, force bool, progress ngram.Progress) (*TrainResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	cc := u.cfg.Careful
	src := u.CarefulSource()
	key := domain.AffixKey(cc.Language, cc.Profile)

	stamps, err := stampFiles([]string{src.Path})
	if err != nil {
		return nil, err
	}
	fingerprint, err := computeFingerprint(struct {
		Scheme    string      `json:"scheme"`
		Files     []fileStamp `json:"files"`
		Delimiter string      `json:"delimiter"`
		Column    int         `json:"column"`
		Language  string      `json:"language"`
		Profile   string      `json:"profile"`
	}{"affix", stamps, src.Delimiter, src.Column, cc.Language, cc.Profile})
	if err != nil {
		return nil, err
	}

	if !force {
		ok, err := u.upToDate(key, fingerprint)
		if err != nil {
			return nil, err
		}
		if ok {
			slog.Info("table up to date, skipping training", slog.String("key", key))
			return &TrainResult{Key: key, Skipped: true, Fingerprint: fingerprint}, nil
		}
	}

	words, err := readLexicon(src, key)
	if err != nil {
		return nil, err
	}
	table, err := ngram.TrainAffix(words, cc.Language, cc.Profile, progress)
	if err != nil {
		return nil, fmt.Errorf("failed to train %s: %w", key, err)
	}

	info := domain.TrainingInfo{
		Words:       len(words),
		Entries:     table.Len(),
		Fingerprint: fingerprint,
		TrainedAt:   u.now().Unix(),
	}
	if err := u.store.SaveAffix(table, info); err != nil {
		return nil, fmt.Errorf("failed to save %s: %w", key, err)
	}

	result := &TrainResult{
		Key:         key,
		Words:       info.Words,
		Entries:     info.Entries,
		Fingerprint: fingerprint,
		Duration:    time.Since(start),
	}
	slog.Info("trained table", slog.String("key", key), slog.Int("words", result.Words),
		slog.Int("entries", result.Entries), slog.Duration("duration", result.Duration))
	return result, nil
}

// VariantSource returns the data files of a brute variant.
func (u *TrainUseCase) VariantSource(variant string) (lexicon.VariantSource, error) {
	vc, ok := u.cfg.Brute.Variants[variant]
	if !ok {
		return lexicon.VariantSource{}, fmt.Errorf("%w: %q", domain.ErrInvalidVariant, variant)
	}
	pairs := make([][2]string, len(u.cfg.Brute.Replacements))
	for i, r := range u.cfg.Brute.Replacements {
		pairs[i] = [2]string{r.Old, r.New}
	}
	files := make([]lexicon.DataFile, len(vc.DataFiles))
	for i, entry := range vc.DataFiles {
		files[i] = lexicon.ParseDataFile(entry)
	}
	return lexicon.VariantSource{
		Root:          u.root,
		Files:         files,
		Preprocessors: lexicon.NewPreprocessors(pairs),
	}, nil
}

// TrainBrute trains the pentagram table of one variant.
func (u *TrainUseCase) TrainBrute(ctx context.Context, variant string, force bool, progress ngram.Progress) (*TrainResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	key := domain.PentagramKey(variant)

	src, err := u.VariantSource(variant)
	if err != nil {
		return nil, err
	}
	paths, err := src.Paths()
	if err != nil {
		return nil, err
	}
	stamps, err := stampFiles(paths)
	if err != nil {
		return nil, err
	}
	fingerprint, err := computeFingerprint(struct {
		Scheme       string               `json:"scheme"`
		Variant      string               `json:"variant"`
		Entries      []lexicon.DataFile   `json:"entries"`
		Files        []fileStamp          `json:"files"`
		Replacements []config.Replacement `json:"replacements"`
	}{"pentagram", variant, src.Files, stamps, u.cfg.Brute.Replacements})
	if err != nil {
		return nil, err
	}

	if !force {
		ok, err := u.upToDate(key, fingerprint)
		if err != nil {
			return nil, err
		}
		if ok {
			slog.Info("table up to date, skipping training", slog.String("key", key))
			return &TrainResult{Key: key, Skipped: true, Fingerprint: fingerprint}, nil
		}
	}

	words, err := readLexicon(src, key)
	if err != nil {
		return nil, err
	}
	table, err := ngram.TrainPentagram(words, variant, progress)
	if err != nil {
		return nil, fmt.Errorf("failed to train %s: %w", key, err)
	}

	info := domain.TrainingInfo{
		Words:       len(words),
		Entries:     table.Len(),
		Fingerprint: fingerprint,
		TrainedAt:   u.now().Unix(),
	}
	if err := u.store.SavePentagram(table, info); err != nil {
		return nil, fmt.Errorf("failed to save %s: %w", key, err)
	}

	result := &TrainResult{
		Key:         key,
		Words:       info.Words,
		Entries:     info.Entries,
		Fingerprint: fingerprint,
		Duration:    time.Since(start),
	}
	slog.Info("trained table", slog.String("key", key), slog.Int("words", result.Words),
		slog.Int("entries", result.Entries), slog.Duration("duration", result.Duration))
	return result, nil
}

// TrainAll trains the careful table and every configured variant, in
// sorted variant order.
func (u *TrainUseCase) TrainAll(ctx context.Context, force bool) ([]*TrainResult, error) {
	var results []*TrainResult
	r, err := u.TrainCareful(ctx, force, nil)
	if err != nil {
		return nil, err
	}
	results = append(results, r)

	for _, variant := range u.cfg.VariantNames() {
		r, err := u.TrainBrute(ctx, variant, force, nil)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

func (u *TrainUseCase) Store() port.TableStore {
	return u.store
}
