package signing

import (
	"strings"
	"testing"
)

func TestImageTooSmallError(t *testing.T) {
	err := &ImageTooSmallError{Size: 12, MinSize: MinImageSize}

	errMsg := err.Error()
	if !strings.Contains(errMsg, "image too small") {
		t.Errorf("error message should contain 'image too small', got: %s", errMsg)
	}
	if !strings.Contains(errMsg, "12 bytes") {
		t.Errorf("error message should contain the image size, got: %s", errMsg)
	}
	if !strings.Contains(errMsg, "44") {
		t.Errorf("error message should contain the minimum size, got: %s", errMsg)
	}
}

func TestKeySizeError(t *testing.T) {
	err := &KeySizeError{Bits: 4096}

	errMsg := err.Error()
	if !strings.Contains(errMsg, "4096 bits") {
		t.Errorf("error message should contain the key size, got: %s", errMsg)
	}
	if !strings.Contains(errMsg, "2048") {
		t.Errorf("error message should contain the required size, got: %s", errMsg)
	}
}

func TestLayoutError(t *testing.T) {
	err := &LayoutError{Message: "certificate block magic \"CERT\""}
	if got, want := err.Error(), `invalid signed image: certificate block magic "CERT"`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestErrorTypes(t *testing.T) {
	// Test that all error types implement error interface
	var _ error = &ImageTooSmallError{}
	var _ error = &KeySizeError{}
	var _ error = &LayoutError{}
}
