package command

import (
	"errors"
	"fmt"
)

var (
	// ErrChecksumMismatch is returned when a record's checksum byte is wrong.
	ErrChecksumMismatch = errors.New("checksum mismatch")
	// ErrCRCMismatch is returned when a Load payload does not match its CRC.
	ErrCRCMismatch = errors.New("crc mismatch")
	// ErrUnsupportedCommand is returned for tags or flags this package does not handle.
	ErrUnsupportedCommand = errors.New("unsupported command")
	// ErrFraming is returned when a buffer ends inside a record or its payload.
	ErrFraming = errors.New("framing error")
)

// ChecksumError reports a record whose stored checksum disagrees with its contents.
type ChecksumError struct {
	Stored   byte
	Computed byte
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("checksum mismatch: record says 0x%02X, computed 0x%02X", e.Stored, e.Computed)
}

func (e *ChecksumError) Is(target error) bool { return target == ErrChecksumMismatch }

// CRCError reports a Load payload whose CRC-32 disagrees with the record's data field.
type CRCError struct {
	Address  uint32
	Stored   uint32
	Computed uint32
}

func (e *CRCError) Error() string {
	return fmt.Sprintf("crc mismatch for load at 0x%08X: record says 0x%08X, computed 0x%08X",
		e.Address, e.Stored, e.Computed)
}

func (e *CRCError) Is(target error) bool { return target == ErrCRCMismatch }

// UnsupportedCommandError reports a tag, or a flag combination, that cannot be decoded.
type UnsupportedCommandError struct {
	Tag    byte
	Flags  uint16
	Reason string
}

func (e *UnsupportedCommandError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("unsupported %s command (0x%02X, flags 0x%04X): %s", tagName(e.Tag), e.Tag, e.Flags, e.Reason)
	}
	return fmt.Sprintf("unsupported %s command (0x%02X)", tagName(e.Tag), e.Tag)
}

func (e *UnsupportedCommandError) Is(target error) bool { return target == ErrUnsupportedCommand }

// IsChecksumError returns true if err is a ChecksumError.
func IsChecksumError(err error) bool {
	var ce *ChecksumError
	return errors.As(err, &ce)
}

func framingError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrFraming, fmt.Sprintf(format, args...))
}
