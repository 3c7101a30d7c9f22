package core

import "errors"

// ErrMisuse is wrapped by every error that signals incorrect use of the
// engine rather than a property of the analysed source.
var ErrMisuse = errors.New("engine misuse")

var (
	// ErrInvalidRule is returned for a rule without a code or with a check
	// function that does not match its kind.
	ErrInvalidRule = Misuse("invalid rule")

	// ErrDuplicateCode is returned when two rules share a code.
	ErrDuplicateCode = Misuse("duplicate rule code")

	// ErrScopeMismatch is returned when a rule is evaluated in a scope it
	// does not support.
	ErrScopeMismatch = Misuse("rule scope mismatch")

	// ErrSlotCount is returned when a file or syntax rule does not return
	// exactly one slot per line.
	ErrSlotCount = Misuse("rule returned wrong number of line slots")
)

// misuseError is a sentinel that also matches ErrMisuse.
type misuseError struct {
	msg string
}

// Misuse returns a new sentinel error that matches ErrMisuse.
func Misuse(msg string) error {
	return &misuseError{msg: msg}
}

func (e *misuseError) Error() string {
	return e.msg
}

func (e *misuseError) Is(target error) bool {
	return target == ErrMisuse
}
