package signing

import (
	"fmt"
)

// ImageTooSmallError indicates that a plain image is too short to hold the image header.
type ImageTooSmallError struct {
	Size    int
	MinSize int
}

func (e *ImageTooSmallError) Error() string {
	return fmt.Sprintf("image too small: %d bytes, need at least %d for the image header", e.Size, e.MinSize)
}

// KeySizeError indicates a signing key whose signatures do not fit the signature slot.
type KeySizeError struct {
	Bits int
}

func (e *KeySizeError) Error() string {
	return fmt.Sprintf("unsupported key size: %d bits, the boot ROM needs %d", e.Bits, KeyBits)
}

// LayoutError indicates a signed image whose header or certificate block is inconsistent.
type LayoutError struct {
	Message string
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("invalid signed image: %s", e.Message)
}
