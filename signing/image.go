package signing

import (
	"bytes"
	"crypto/sha256"
	"crypto/x509"
	"encoding/binary"
	"fmt"

	"github.com/moffa90/go-sb2/certificate"
)

// Image header fields patched by Sign.
const (
	ImageLengthOffset     = 0x20
	ImageTypeOffset       = 0x24
	CertBlockOffsetOffset = 0x28

	// MinImageSize covers the image header up to the certificate block offset
	MinImageSize = CertBlockOffsetOffset + 4

	// ImageAlignment is the padding unit of the image and certificate
	ImageAlignment = 4

	// CertBlockHeaderSize is the size of the certificate block header
	CertBlockHeaderSize = 0x20

	// KeyBits is the only RSA modulus size the boot ROM verifies
	KeyBits = certificate.SignatureSize * 8
)

const (
	certBlockVersionMajor = 1
	certBlockVersionMinor = 0
)

var (
	certBlockMagic  = []byte("cert")
	imageTypeSigned = [4]byte{0x04, 0x40, 0x00, 0x00}
)

// Image is a parsed and verified signed plain image.
type Image struct {
	// Plain is the image up to the certificate block, header patches included
	Plain []byte

	ImageType   uint32
	BuildNumber uint32

	CertificateDER []byte
	Certificate    *x509.Certificate
	RotKeyHashes   certificate.RotKeyHashes
	Signature      []byte
}

// Parse checks the layout of a signed image and verifies its signature
// against the embedded certificate.
func Parse(data []byte) (*Image, error) {
	le := binary.LittleEndian
	if len(data) < MinImageSize {
		return nil, &LayoutError{Message: fmt.Sprintf("%d bytes is shorter than the image header", len(data))}
	}

	total := int(le.Uint32(data[ImageLengthOffset:]))
	if total != len(data) {
		return nil, &LayoutError{Message: fmt.Sprintf("header length %d, file length %d", total, len(data))}
	}

	offset := int(le.Uint32(data[CertBlockOffsetOffset:]))
	if offset < MinImageSize || offset%ImageAlignment != 0 || offset+CertBlockHeaderSize+4 > len(data) {
		return nil, &LayoutError{Message: fmt.Sprintf("certificate block offset 0x%X out of range", offset)}
	}

	hdr := data[offset : offset+CertBlockHeaderSize]
	if !bytes.Equal(hdr[0:4], certBlockMagic) {
		return nil, &LayoutError{Message: fmt.Sprintf("certificate block magic %q", hdr[0:4])}
	}
	if le.Uint16(hdr[4:]) != certBlockVersionMajor || le.Uint16(hdr[6:]) != certBlockVersionMinor {
		return nil, &LayoutError{Message: fmt.Sprintf("certificate block version %d.%d", le.Uint16(hdr[4:]), le.Uint16(hdr[6:]))}
	}
	if le.Uint32(hdr[8:]) != CertBlockHeaderSize {
		return nil, &LayoutError{Message: fmt.Sprintf("certificate block header size 0x%X", le.Uint32(hdr[8:]))}
	}
	if n := le.Uint32(hdr[24:]); n != 1 {
		return nil, &LayoutError{Message: fmt.Sprintf("%d certificates, only 1 is supported", n)}
	}

	signedLen := len(data) - certificate.SignatureSize
	if int(le.Uint32(hdr[20:])) != signedLen {
		return nil, &LayoutError{Message: fmt.Sprintf("signed length %d, expected %d", le.Uint32(hdr[20:]), signedLen)}
	}

	certStart := offset + CertBlockHeaderSize + 4
	certLen := int(le.Uint32(data[certStart-4:]))
	if int(le.Uint32(hdr[28:])) != certLen+4 {
		return nil, &LayoutError{Message: fmt.Sprintf("certificate table length %d, certificate length %d", le.Uint32(hdr[28:]), certLen)}
	}
	hashesStart := certStart + certLen
	if hashesStart+certificate.RotKeyCount*sha256.Size != signedLen {
		return nil, &LayoutError{Message: fmt.Sprintf("certificate length %d does not fit the image", certLen)}
	}

	certDER := data[certStart:hashesStart]
	cert, err := certificate.Parse(certDER)
	if err != nil {
		return nil, err
	}
	hashes, err := certificate.ParseRotKeyHashes(data[hashesStart:signedLen])
	if err != nil {
		return nil, err
	}

	signature := data[signedLen:]
	if err := certificate.Verify(cert, data[:signedLen], signature); err != nil {
		return nil, err
	}

	return &Image{
		Plain:          data[:offset],
		ImageType:      le.Uint32(data[ImageTypeOffset:]),
		BuildNumber:    le.Uint32(hdr[16:]),
		CertificateDER: certDER,
		Certificate:    cert,
		RotKeyHashes:   hashes,
		Signature:      signature,
	}, nil
}
