package stmt

import "errors"

// ErrRowArity is the panic cause when a VALUES row does not match the insert
// statement's declared column count.
var ErrRowArity = errors.New("stanza/stmt: row arity mismatch")

// IsRowArityErr returns true if err is or wraps ErrRowArity.
func IsRowArityErr(err error) bool {
	return errors.Is(err, ErrRowArity)
}

// ErrInvalidFrameBound is the panic cause when a window frame bound is
// constructed with a non-positive offset, or a frame is built from bounds
// that cannot form a valid frame.
var ErrInvalidFrameBound = errors.New("stanza/stmt: invalid frame bound")

// IsInvalidFrameBoundErr returns true if err is or wraps ErrInvalidFrameBound.
func IsInvalidFrameBoundErr(err error) bool {
	return errors.Is(err, ErrInvalidFrameBound)
}
