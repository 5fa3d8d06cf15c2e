package command

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestChecksumError(t *testing.T) {
	err := &ChecksumError{Stored: 0xAB, Computed: 0xCD}

	errMsg := err.Error()
	if !strings.Contains(errMsg, "checksum mismatch") {
		t.Errorf("error message should contain 'checksum mismatch', got: %s", errMsg)
	}
	if !strings.Contains(errMsg, "0xAB") || !strings.Contains(errMsg, "0xCD") {
		t.Errorf("error message should contain both checksums, got: %s", errMsg)
	}

	wrapped := fmt.Errorf("command 3 at offset 48: %w", err)
	if !errors.Is(wrapped, ErrChecksumMismatch) {
		t.Error("wrapped ChecksumError should match ErrChecksumMismatch")
	}
	if !IsChecksumError(wrapped) {
		t.Error("IsChecksumError should see through wrapping")
	}
	if IsChecksumError(ErrCRCMismatch) {
		t.Error("IsChecksumError(ErrCRCMismatch) should be false")
	}
}

func TestCRCError(t *testing.T) {
	err := &CRCError{Address: 0x10000000, Stored: 0x12345678, Computed: 0x9ABCDEF0}

	errMsg := err.Error()
	for _, want := range []string{"crc mismatch", "0x10000000", "0x12345678", "0x9ABCDEF0"} {
		if !strings.Contains(errMsg, want) {
			t.Errorf("error message should contain %q, got: %s", want, errMsg)
		}
	}
	if !errors.Is(err, ErrCRCMismatch) {
		t.Error("CRCError should match ErrCRCMismatch")
	}
	if errors.Is(err, ErrChecksumMismatch) {
		t.Error("CRCError should not match ErrChecksumMismatch")
	}
}

func TestUnsupportedCommandError(t *testing.T) {
	tests := []struct {
		name string
		err  *UnsupportedCommandError
		want string
	}{
		{
			name: "tag only",
			err:  &UnsupportedCommandError{Tag: CmdJump},
			want: "unsupported jump command (0x04)",
		},
		{
			name: "with reason",
			err:  &UnsupportedCommandError{Tag: CmdErase, Flags: 0x0102, Reason: "memory id must be 0"},
			want: "unsupported erase command (0x07, flags 0x0102): memory id must be 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
			if !errors.Is(tt.err, ErrUnsupportedCommand) {
				t.Error("should match ErrUnsupportedCommand")
			}
		})
	}
}

func TestFramingError(t *testing.T) {
	err := framingError("record needs %d bytes, got %d", RawSize, 3)
	if !errors.Is(err, ErrFraming) {
		t.Error("framingError should wrap ErrFraming")
	}
	if !strings.Contains(err.Error(), "record needs 16 bytes, got 3") {
		t.Errorf("unexpected message: %s", err)
	}
}

func TestErrorTypes(t *testing.T) {
	// Test that all error types implement error interface
	var _ error = &ChecksumError{}
	var _ error = &CRCError{}
	var _ error = &UnsupportedCommandError{}
}
