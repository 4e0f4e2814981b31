// Package lexicon loads and prepares the word lists the trainers consume.
package lexicon

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"dslsplit/internal/adapter/analyzer"
	"dslsplit/internal/domain"
)

// ColumnSource reads one column of a headerless delimited file.
type ColumnSource struct {
	Path      string
	Delimiter string
	Column    int
}

// Words returns the normalized, deduplicated words of the column in file
// order.
func (s ColumnSource) Words() ([]string, error) {
	delim, size := utf8.DecodeRuneInString(s.Delimiter)
	if size == 0 || size != len(s.Delimiter) || delim == '"' || delim == '\n' || delim == '\r' {
		return nil, fmt.Errorf("delimiter %q: %w", s.Delimiter, domain.ErrInvalidInput)
	}
	if s.Column < 0 {
		return nil, fmt.Errorf("column %d: %w", s.Column, domain.ErrInvalidInput)
	}

	f, err := os.Open(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("cannot find file %s: %w", s.Path, domain.ErrNotFound)
		}
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.ReuseRecord = true

	var words []string
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", s.Path, err)
		}
		if s.Column >= len(record) {
			return nil, fmt.Errorf("%s has no column %d with delimiter %q: %w", s.Path, s.Column, s.Delimiter, domain.ErrInvalidInput)
		}
		words = append(words, analyzer.NormalizeWord(record[s.Column]))
	}

	words = analyzer.Dedup(words)
	if len(words) == 0 {
		return nil, fmt.Errorf("cannot process words in %s with delimiter %q and column %d: %w", s.Path, s.Delimiter, s.Column, domain.ErrEmptyLexicon)
	}
	return words, nil
}
