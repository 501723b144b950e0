package remoteid

import (
	"errors"
	"fmt"
)

// Codec errors. Functions may wrap them with additional context, so compare
// with errors.Is.
var (
	// ErrInvalidDataLength is returned when a buffer is not exactly the size a
	// decode or encode step requires.
	ErrInvalidDataLength = errors.New("invalid data length")

	// ErrInvalidInteger is returned when a numeric or enumerated code is out of
	// range and the target type has no variant to absorb it.
	ErrInvalidInteger = errors.New("invalid integer")

	ErrInvalidRegistrationID = errors.New("invalid registration id")
	ErrInvalidSerialNumber   = errors.New("invalid serial number")

	// ErrCannotRecursivelyPack is returned when a pack element is itself a pack.
	ErrCannotRecursivelyPack = errors.New("cannot recursively pack")

	// ErrInvalidProtocolVersion is returned when the header version nibble is
	// not ProtocolVersion.
	ErrInvalidProtocolVersion = errors.New("invalid protocol version")

	// ErrUnreachable marks an internal invariant violation. Seeing it is a bug.
	ErrUnreachable = errors.New("unreachable")
)

// checkLength verifies a buffer is exactly want bytes long
func checkLength(b []byte, want int) error {
	if len(b) != want {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidDataLength, len(b), want)
	}
	return nil
}

// invalidInteger wraps ErrInvalidInteger with the field name and value
func invalidInteger(field string, value int) error {
	return fmt.Errorf("%w: %s %d", ErrInvalidInteger, field, value)
}
