package lexicon

import (
	"fmt"
	"strings"

	"dslsplit/internal/domain"
)

// Transform rewrites one raw training line.
type Transform func(line string) string

// Preprocessors resolves the named line transforms a data file entry may
// request.
type Preprocessors struct {
	transforms map[string]Transform
}

// NewPreprocessors registers the built-in transforms. replacements are
// (old, new) pairs applied in order by modernize_danish.
func NewPreprocessors(replacements [][2]string) *Preprocessors {
	return &Preprocessors{
		transforms: map[string]Transform{
			"":                 func(line string) string { return line },
			"modernize_danish": replaceAll(replacements),
		},
	}
}

// replaceAll applies the pairs one after the other, so a later pair sees
// the output of earlier ones.
func replaceAll(pairs [][2]string) Transform {
	return func(line string) string {
		for _, p := range pairs {
			line = strings.ReplaceAll(line, p[0], p[1])
		}
		return line
	}
}

// Get returns the named transform. Unknown names are a configuration error.
func (p *Preprocessors) Get(name string) (Transform, error) {
	t, ok := p.transforms[name]
	if !ok {
		return nil, fmt.Errorf("unknown preprocess %q: %w", name, domain.ErrInvalidInput)
	}
	return t, nil
}

// Apply runs the named transform over every line.
func (p *Preprocessors) Apply(name string, lines []string) ([]string, error) {
	t, err := p.Get(name)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = t(line)
	}
	return out, nil
}
