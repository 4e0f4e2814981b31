package lexicon

import (
	"fmt"
	"strings"

	"dslsplit/internal/adapter/analyzer"
	"dslsplit/internal/adapter/fs"
	"dslsplit/internal/domain"
)

// DataFile is one "path[:preprocess]" entry of a variant.
type DataFile struct {
	Pattern    string
	Preprocess string
}

// ParseDataFile splits an entry on its last colon. A colon followed by a
// path separator belongs to the path (Windows drive letters).
func ParseDataFile(entry string) DataFile {
	entry = strings.TrimSpace(entry)
	idx := strings.LastIndex(entry, ":")
	if idx < 0 || strings.ContainsAny(entry[idx+1:], `/\`) {
		return DataFile{Pattern: entry}
	}
	return DataFile{Pattern: entry[:idx], Preprocess: entry[idx+1:]}
}

// VariantSource yields the segmented compounds of one brute variant.
type VariantSource struct {
	Root          string
	Files         []DataFile
	Preprocessors *Preprocessors
}

// Paths resolves every data file pattern to concrete files.
func (s VariantSource) Paths() ([]string, error) {
	var paths []string
	for _, f := range s.Files {
		resolved, err := fs.Resolve(s.Root, f.Pattern)
		if err != nil {
			return nil, err
		}
		paths = append(paths, resolved...)
	}
	return paths, nil
}

// Words reads, preprocesses, normalizes and deduplicates every data file,
// in configuration order.
func (s VariantSource) Words() ([]string, error) {
	var words []string
	for _, f := range s.Files {
		// Fail on an unknown transform before touching the disk.
		if _, err := s.Preprocessors.Get(f.Preprocess); err != nil {
			return nil, err
		}
		paths, err := fs.Resolve(s.Root, f.Pattern)
		if err != nil {
			return nil, err
		}
		for _, path := range paths {
			lines, err := fs.ReadLines(path)
			if err != nil {
				return nil, err
			}
			lines, err = s.Preprocessors.Apply(f.Preprocess, lines)
			if err != nil {
				return nil, err
			}
			for _, line := range lines {
				words = append(words, analyzer.NormalizeWord(line))
			}
		}
	}

	words = analyzer.Dedup(words)
	if len(words) == 0 {
		return nil, fmt.Errorf("variant data files are empty: %w", domain.ErrEmptyLexicon)
	}
	return words, nil
}
