package lexicon

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"dslsplit/internal/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestColumnSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.csv")
	writeFile(t, path, "Opera;sb\nkoncert;sb\nopera;sb\nbade;vb\n")

	words, err := ColumnSource{Path: path, Delimiter: ";", Column: 0}.Words()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"opera", "koncert", "bade"}
	if !reflect.DeepEqual(words, want) {
		t.Errorf("expected %v, got %v", want, words)
	}

	words, err = ColumnSource{Path: path, Delimiter: ";", Column: 1}.Words()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(words, []string{"sb", "vb"}) {
		t.Errorf("unexpected second column %v", words)
	}
}

func TestColumnSource_Errors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "words.csv")
	writeFile(t, path, "opera;sb\n")
	empty := filepath.Join(dir, "empty.csv")
	writeFile(t, empty, "")

	tests := []struct {
		name   string
		source ColumnSource
		want   error
	}{
		{"missing file", ColumnSource{Path: filepath.Join(dir, "none.csv"), Delimiter: ";"}, domain.ErrNotFound},
		{"bad column", ColumnSource{Path: path, Delimiter: ";", Column: 3}, domain.ErrInvalidInput},
		{"negative column", ColumnSource{Path: path, Delimiter: ";", Column: -1}, domain.ErrInvalidInput},
		{"empty delimiter", ColumnSource{Path: path, Delimiter: ""}, domain.ErrInvalidInput},
		{"long delimiter", ColumnSource{Path: path, Delimiter: ";;"}, domain.ErrInvalidInput},
		{"empty file", ColumnSource{Path: empty, Delimiter: ";"}, domain.ErrEmptyLexicon},
	}
	for _, tt := range tests {
		if _, err := tt.source.Words(); !errors.Is(err, tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, err)
		}
	}
}

func TestPreprocessors(t *testing.T) {
	p := NewPreprocessors([][2]string{{"aa", "å"}, {"Aa", "Å"}})

	got, err := p.Apply("modernize_danish", []string{"Aal+e+gaard", "bade+land"})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []string{"Ål+e+gård", "bade+land"}) {
		t.Errorf("unexpected modernized lines %v", got)
	}

	got, err = p.Apply("", []string{"Aal"})
	if err != nil || got[0] != "Aal" {
		t.Errorf("expected identity transform, got %v, %v", got, err)
	}

	if _, err := p.Get("modernize_swedish"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestParseDataFile(t *testing.T) {
	tests := []struct {
		entry string
		want  DataFile
	}{
		{"data/nudansk.txt", DataFile{Pattern: "data/nudansk.txt"}},
		{"data/old.txt:modernize_danish", DataFile{Pattern: "data/old.txt", Preprocess: "modernize_danish"}},
		{" data/*.txt: ", DataFile{Pattern: "data/*.txt"}},
		{`C:\data\x.txt`, DataFile{Pattern: `C:\data\x.txt`}},
	}
	for _, tt := range tests {
		if got := ParseDataFile(tt.entry); got != tt.want {
			t.Errorf("ParseDataFile(%q) = %+v, want %+v", tt.entry, got, tt.want)
		}
	}
}

func TestVariantSource(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "data", "nudansk.txt"), "bade+land\nvild+and\n")
	writeFile(t, filepath.Join(dir, "data", "old.txt"), "Aale+fang\nbade+land\n")

	source := VariantSource{
		Root: dir,
		Files: []DataFile{
			{Pattern: "data/nudansk.txt"},
			{Pattern: "data/old.txt", Preprocess: "modernize_danish"},
		},
		Preprocessors: NewPreprocessors([][2]string{{"Aa", "Å"}}),
	}
	words, err := source.Words()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"bade+land", "vild+and", "åle+fang"}
	if !reflect.DeepEqual(words, want) {
		t.Errorf("expected %v, got %v", want, words)
	}

	paths, err := source.Paths()
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 2 {
		t.Errorf("expected 2 paths, got %v", paths)
	}

	source.Files = []DataFile{{Pattern: "data/nudansk.txt", Preprocess: "unknown"}}
	if _, err := source.Words(); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}

	source.Files = []DataFile{{Pattern: "data/missing.txt"}}
	if _, err := source.Words(); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLoadGold(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gold.csv")
	writeFile(t, path, "Operakoncert;opera+koncert\nhus;hus\n")

	cases, err := LoadGold(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []GoldCase{{"operakoncert", "opera+koncert"}, {"hus", "hus"}}
	if !reflect.DeepEqual(cases, want) {
		t.Errorf("expected %v, got %v", want, cases)
	}

	bad := filepath.Join(dir, "bad.csv")
	writeFile(t, bad, "operakoncert\n")
	if _, err := LoadGold(bad); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := LoadGold(filepath.Join(dir, "none.csv")); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
