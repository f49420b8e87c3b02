package domain

import "errors"

var (
	// ErrProfileNotFound is returned when a profile does not exist.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrWordNotFound is returned when a word is not in the word bank
	// and the dictionary provider does not know it either.
	ErrWordNotFound = errors.New("word not found")
	// ErrArticleNotFound is returned when an article does not exist.
	ErrArticleNotFound = errors.New("article not found")
	// ErrProgressNotFound is returned when no review state exists yet.
	ErrProgressNotFound = errors.New("progress not found")
	// ErrEmptyText is returned for synthesis/translation of empty input.
	ErrEmptyText = errors.New("text is empty")
	// ErrTextTooLong is returned when synthesis input exceeds the limit.
	ErrTextTooLong = errors.New("text exceeds maximum length")
	// ErrInvalidLanguage is returned for malformed BCP-47 language tags.
	ErrInvalidLanguage = errors.New("invalid language tag")
)
