package sb2

import (
	"bytes"
	"fmt"
)

// Filetype is the kind of firmware file detected by Sniff.
type Filetype int

const (
	// Elf is an ELF executable
	Elf Filetype = iota + 1

	// UnsignedBin is a plain image without a signature
	UnsignedBin

	// SignedBin is a plain image with an image signature appended
	SignedBin

	// Sb20 is a secure binary version 2.0 container
	Sb20

	// Sb21 is a secure binary version 2.1 container
	Sb21
)

func (f Filetype) String() string {
	switch f {
	case Elf:
		return "ELF"
	case UnsignedBin:
		return "unsigned BIN"
	case SignedBin:
		return "signed BIN"
	case Sb20:
		return "SB2.0"
	case Sb21:
		return "SB2.1"
	default:
		return fmt.Sprintf("Filetype(%d)", int(f))
	}
}

var (
	elfMagic = []byte("\x7fELF")
	binMagic = []byte{0x00, 0x00, 0x04, 0x20}
)

// Image header fields sniffed in plain images.
const (
	// BinImageLengthOffset holds the signed image length, zero if unsigned
	BinImageLengthOffset = 0x20

	// SignatureMagicOffset is where SB2 headers carry SignatureMagic
	SignatureMagicOffset = 20

	// Signature2MagicOffset is where SB2.1 headers carry Signature2Magic
	Signature2MagicOffset = 52

	// SniffSize is the number of bytes Sniff needs to classify any type
	SniffSize = 56
)

// Sniff classifies data by its magic numbers.
func Sniff(data []byte) (Filetype, error) {
	switch {
	case bytes.HasPrefix(data, elfMagic):
		return Elf, nil

	case bytes.HasPrefix(data, binMagic):
		if len(data) < BinImageLengthOffset+4 {
			return 0, fmt.Errorf("%w: image too short (%d bytes)", ErrFormatUnrecognized, len(data))
		}
		if bytes.Equal(data[BinImageLengthOffset:BinImageLengthOffset+4], []byte{0, 0, 0, 0}) {
			return UnsignedBin, nil
		}
		return SignedBin, nil

	case len(data) >= SniffSize && string(data[SignatureMagicOffset:SignatureMagicOffset+4]) == SignatureMagic:
		if string(data[Signature2MagicOffset:Signature2MagicOffset+4]) == Signature2Magic {
			return Sb21, nil
		}
		return Sb20, nil

	default:
		return 0, ErrFormatUnrecognized
	}
}
