package syntax

import (
	"errors"
	"fmt"
)

// ErrMalformedTree is matched by every error reporting that a tree did not
// have the shape an accessor expected.
var ErrMalformedTree = errors.New("malformed tree")

// ErrSlotReplaced is returned when a slot is replaced more than once in a
// single rewrite pass.
var ErrSlotReplaced = errors.New("slot already replaced in this pass")

// MalformedTreeError describes a shape expectation that failed.
type MalformedTreeError struct {
	Want    string // what the accessor expected
	Got     string // what it found
	Message string // optional detail
}

func (e *MalformedTreeError) Error() string {
	msg := fmt.Sprintf("malformed tree: expected %s, got %s", e.Want, e.Got)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is makes errors.Is(err, ErrMalformedTree) hold.
func (e *MalformedTreeError) Is(target error) bool {
	return target == ErrMalformedTree
}

// Malformed builds a MalformedTreeError.
func Malformed(want, got, format string, args ...any) error {
	return &MalformedTreeError{Want: want, Got: got, Message: fmt.Sprintf(format, args...)}
}
