package domain

import "errors"

var (
	ErrInvalidMethod   = errors.New("invalid method")
	ErrInvalidVariant  = errors.New("invalid variant")
	ErrInvalidLanguage = errors.New("invalid language")
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("not found")
	ErrEmptyLexicon    = errors.New("empty lexicon")
	ErrNoLemmas        = errors.New("lemma set must be set before splitting")
)
