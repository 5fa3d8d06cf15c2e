package sb2

import (
	"errors"
	"fmt"
)

var (
	// ErrFormatUnrecognized is returned by Sniff for unknown files.
	ErrFormatUnrecognized = errors.New("format unrecognized")
	// ErrMalformedHeader is returned when the signed preamble is truncated or
	// a mandated field has the wrong value.
	ErrMalformedHeader = errors.New("malformed header")
	// ErrKeyUnwrapIntegrity is returned when the keyblob does not unwrap under the KEK.
	ErrKeyUnwrapIntegrity = errors.New("key unwrap integrity check failed")
	// ErrAuthentication is returned when an HMAC over ciphertext does not match.
	ErrAuthentication = errors.New("authentication failed")
)

// HeaderError reports a field that failed to parse or holds a value other
// than the one the boot ROM requires.
type HeaderError struct {
	// Field is the name of the offending field
	Field string

	// Offset is the byte offset of the field in the image
	Offset int

	// Reason describes the problem
	Reason string
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("malformed header: %s at offset 0x%X: %s", e.Field, e.Offset, e.Reason)
}

func (e *HeaderError) Is(target error) bool { return target == ErrMalformedHeader }

// AuthenticationError names the HMAC that did not match.
type AuthenticationError struct {
	What string
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed: %s hmac mismatch", e.What)
}

func (e *AuthenticationError) Is(target error) bool { return target == ErrAuthentication }

// IsHeaderError returns true if err is a HeaderError.
func IsHeaderError(err error) bool {
	var he *HeaderError
	return errors.As(err, &he)
}
