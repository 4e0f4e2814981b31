package lexicon

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"dslsplit/internal/adapter/analyzer"
	"dslsplit/internal/domain"
)

// GoldCase is one evaluation row: a word and its expected segmentation,
// written with "+" markers ("skrivebord+s+lampe"). An expected value
// without markers means the word should stay unsplit.
type GoldCase struct {
	Query    string
	Expected string
}

// LoadGold reads a headerless "query;expected" file.
func LoadGold(path string) ([]GoldCase, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("cannot find file %s: %w", path, domain.ErrNotFound)
		}
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = ';'
	r.FieldsPerRecord = -1

	var cases []GoldCase
	for line := 1; ; line++ {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		if len(record) < 2 {
			return nil, fmt.Errorf("%s line %d: expected query;expected: %w", path, line, domain.ErrInvalidInput)
		}
		cases = append(cases, GoldCase{
			Query:    analyzer.NormalizeWord(record[0]),
			Expected: analyzer.NormalizeWord(record[1]),
		})
	}
	return cases, nil
}
