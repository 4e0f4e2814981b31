package port

// LemmaChecker answers set membership for known base forms.
type LemmaChecker interface {
	IsKnownLemma(word string) bool
}
