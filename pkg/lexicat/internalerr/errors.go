package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrInvalidConfig    = errors.New("invalid configuration")

	ErrMissingInputFile = errors.New("missing input file")
	ErrMalformedRecord  = errors.New("malformed record")
	ErrTokenizer        = errors.New("tokenizer failure")
	ErrEmptyGroup       = errors.New("division by zero: empty outcome group")
)
