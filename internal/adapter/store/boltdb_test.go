package store

import (
	"errors"
	"path/filepath"
	"testing"

	"dslsplit/internal/domain"
	"dslsplit/internal/port"
)

var _ port.TableStore = (*BoltStore)(nil)

func newTestStore(t *testing.T) *BoltStore {
	t.Helper()
	s, err := NewBoltStore(filepath.Join(t.TempDir(), "tables.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestBoltStore_Affix(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.LoadAffix("da", "default"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	table := &domain.AffixTable{
		Language: "da",
		Profile:  "default",
		Prefix:   map[string]float64{"ope": 0.5, "kon": 0.5},
		Infix:    map[string]float64{"era": 1},
		Suffix:   map[string]float64{"ert": 1},
	}
	if err := s.SaveAffix(table, domain.TrainingInfo{Words: 2, Fingerprint: "abc"}); err != nil {
		t.Fatal(err)
	}

	got, err := s.LoadAffix("da", "default")
	if err != nil {
		t.Fatal(err)
	}
	if got.PrefixProb("kon").Or(-1) != 0.5 || got.Len() != 4 {
		t.Errorf("unexpected table %+v", got)
	}

	info, err := s.TrainingInfo(domain.AffixKey("da", "default"))
	if err != nil {
		t.Fatal(err)
	}
	if info.Key != "affix/da/default" || info.Fingerprint != "abc" || info.Words != 2 {
		t.Errorf("unexpected training info %+v", info)
	}
}

func TestBoltStore_PentagramReplace(t *testing.T) {
	s := newTestStore(t)

	first := &domain.PentagramTable{Variant: "nudansk", Probs: map[string]float64{"bade+": 1}}
	second := &domain.PentagramTable{Variant: "nudansk", Probs: map[string]float64{"+and_": 1}}
	if err := s.SavePentagram(first, domain.TrainingInfo{Fingerprint: "1"}); err != nil {
		t.Fatal(err)
	}
	if err := s.SavePentagram(second, domain.TrainingInfo{Fingerprint: "2"}); err != nil {
		t.Fatal(err)
	}

	got, err := s.LoadPentagram("nudansk")
	if err != nil {
		t.Fatal(err)
	}
	if got.Prob("bade+").Found || !got.Prob("+and_").Found {
		t.Errorf("expected table to be replaced, got %v", got.Probs)
	}

	infos, err := s.ListTrained()
	if err != nil {
		t.Fatal(err)
	}
	if len(infos) != 1 || infos[0].Fingerprint != "2" {
		t.Errorf("expected one training record, got %+v", infos)
	}

	if _, err := s.LoadPentagram("yngrenydansk"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestBoltStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables.db")
	s, err := NewBoltStore(path)
	if err != nil {
		t.Fatal(err)
	}
	table := &domain.PentagramTable{Variant: "nudansk", Probs: map[string]float64{"bade+": 0.25}}
	if err := s.SavePentagram(table, domain.TrainingInfo{}); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = NewBoltStore(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	got, err := s.LoadPentagram("nudansk")
	if err != nil {
		t.Fatal(err)
	}
	if got.Prob("bade+").Prob != 0.25 {
		t.Errorf("expected 0.25, got %v", got.Probs)
	}
}

func TestBoltStore_Migration(t *testing.T) {
	s := newTestStore(t)

	result, err := s.CheckMigration()
	if err != nil {
		t.Fatal(err)
	}
	if !result.NeedsMigration || result.OldVersion != 0 {
		t.Errorf("expected fresh store to need migration, got %+v", result)
	}

	if err := s.Migrate(); err != nil {
		t.Fatal(err)
	}
	result, err = s.CheckMigration()
	if err != nil {
		t.Fatal(err)
	}
	if result.NeedsMigration || result.NeedsRebuild {
		t.Errorf("expected up-to-date store, got %+v", result)
	}
}

func TestBoltStore_Clear(t *testing.T) {
	s := newTestStore(t)
	table := &domain.PentagramTable{Variant: "nudansk", Probs: map[string]float64{"bade+": 1}}
	if err := s.SavePentagram(table, domain.TrainingInfo{}); err != nil {
		t.Fatal(err)
	}
	if err := s.Migrate(); err != nil {
		t.Fatal(err)
	}
	if err := s.Clear(); err != nil {
		t.Fatal(err)
	}

	if _, err := s.LoadPentagram("nudansk"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected cleared table, got %v", err)
	}
	if v, _ := s.SchemaVersion(); v != CurrentSchemaVersion {
		t.Errorf("expected schema version kept, got %d", v)
	}
}
