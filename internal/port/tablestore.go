package port

import "dslsplit/internal/domain"

// TableStore persists trained probability tables. Saving a table replaces
// any previous table under the same key as one unit.
type TableStore interface {
	SaveAffix(table *domain.AffixTable, info domain.TrainingInfo) error

	// LoadAffix returns domain.ErrNotFound when no table was trained for
	// the language/profile pair.
	LoadAffix(language, profile string) (*domain.AffixTable, error)

	SavePentagram(table *domain.PentagramTable, info domain.TrainingInfo) error

	LoadPentagram(variant string) (*domain.PentagramTable, error)

	TrainingInfo(key string) (domain.TrainingInfo, error)

	Close() error
}
