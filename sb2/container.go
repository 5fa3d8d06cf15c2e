package sb2

import (
	"crypto/x509"

	"github.com/moffa90/go-sb2/certificate"
	"github.com/moffa90/go-sb2/command"
)

// Container is a verified and decrypted SB2.1 image.
type Container struct {
	// Header is the image header
	Header *Header

	// DigestHMAC authenticates the HMAC table
	DigestHMAC [HMACSize]byte

	// Keyblob holds the unwrapped keys
	Keyblob *Keyblob

	// CertificateBlockHeader describes the certificate table
	CertificateBlockHeader *CertificateBlockHeader

	// CertificateDER is the certificate as stored, including any zero padding
	CertificateDER []byte

	// Certificate is the parsed signing certificate
	Certificate *x509.Certificate

	// RotKeyHashes are the root key hashes the image was built for
	RotKeyHashes certificate.RotKeyHashes

	// Signature is the RSA signature over the first SignedLength bytes
	Signature []byte

	// SignedLength is the length of the signed prefix
	SignedLength int

	// BootTag is the decrypted tag opening the section
	BootTag command.Tag

	// Commands is the decrypted section
	Commands []command.BootCommand
}

// Trusted reports whether the signing certificate's key is one of the root keys.
func (c *Container) Trusted() bool {
	h, err := certificate.RotKeyHash(c.Certificate)
	if err != nil {
		return false
	}
	return c.RotKeyHashes.Contains(h)
}

// LoadSize returns the total number of payload bytes in Load commands.
func (c *Container) LoadSize() int {
	n := 0
	for _, cmd := range c.Commands {
		if l, ok := cmd.(command.Load); ok {
			n += len(l.Data)
		}
	}
	return n
}
