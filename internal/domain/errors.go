package domain

import "errors"

var (
	// ErrNoMatch means a layout matcher did not find the fields it requires.
	// It is a per-document skip, not a failure.
	ErrNoMatch = errors.New("no layout match")

	// ErrFilteredOut means a record matched but an active filter excluded it.
	ErrFilteredOut = errors.New("filtered out")

	// ErrUnknownProvider indicates an id outside the provider enumeration.
	ErrUnknownProvider = errors.New("unknown provider")
)
