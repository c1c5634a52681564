package domain

import "errors"

var (
	// ErrConfig indicates a malformed or non-positive run configuration.
	ErrConfig = errors.New("invalid run config")
	// ErrEmptyInput indicates an uploaded worklist with no usable rows.
	ErrEmptyInput = errors.New("no seed phrases in input")
	// ErrNoWorklist indicates execute was called before any upload.
	ErrNoWorklist = errors.New("no worklist loaded")
	// ErrRunInProgress indicates execute was called while a run is active.
	ErrRunInProgress = errors.New("a run is already in progress")
	// ErrBadSeedPhrase indicates a row that is not a valid seed phrase.
	ErrBadSeedPhrase = errors.New("invalid seed phrase")
)
