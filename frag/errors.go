package frag

import "errors"

// ErrInvalidIdentifier is the panic cause when an identifier fragment is
// constructed from an empty name.
var ErrInvalidIdentifier = errors.New("stanza/frag: invalid identifier")

// IsInvalidIdentifierErr returns true if err is or wraps ErrInvalidIdentifier.
func IsInvalidIdentifierErr(err error) bool {
	return errors.Is(err, ErrInvalidIdentifier)
}
