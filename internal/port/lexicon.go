package port

// LexiconSource yields the raw word list a trainer is fed from.
type LexiconSource interface {
	Words() ([]string, error)
}
