package port

import "dslsplit/internal/domain"

// CarefulSplitter scores split boundaries with the affix tables.
type CarefulSplitter interface {
	// EasySplit keeps splits above minScore and verifies them against the
	// lemma set.
	EasySplit(word string, minScore float64) ([]domain.SplitResult, error)
}

// BruteSplitter scores marked candidates with a pentagram table.
type BruteSplitter interface {
	Split(word string) []domain.SplitResult
}
