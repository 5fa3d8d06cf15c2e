package signing

import (
	"crypto/rsa"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/moffa90/go-sb2/certificate"
)

// Signer assembles signed plain images for the LPC55 boot ROM.
//
// Signer is safe for concurrent use after initialization.
type Signer struct {
	key    *rsa.PrivateKey
	config Config
}

// New creates a new Signer for the given RSA private key.
//
// Example:
//
//	key, _ := certificate.LoadPrivateKey("root0.pem")
//	s := signing.New(key,
//	    signing.WithBuildNumber(3),
//	    signing.WithLogger(myLogger),
//	)
func New(key *rsa.PrivateKey, opts ...Option) *Signer {
	if key == nil {
		panic("key cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Signer{
		key:    key,
		config: cfg,
	}
}

// Sign builds a signed image from a plain image:
//  1. Pad the image and the certificate to 4 bytes
//  2. Patch the image header with total length, image type and certificate block offset
//  3. Append the certificate block header, the certificate and the root key hashes
//  4. Sign everything so far and append the signature
//  5. Verify the result, unless disabled
//
// The input slices are not modified.
//
// Example:
//
//	hashes, _ := certificate.NewRotKeyHashes(rootCerts)
//	signed, err := s.Sign(image, certDER, hashes)
func (s *Signer) Sign(image, certDER []byte, hashes certificate.RotKeyHashes) ([]byte, error) {
	if len(image) < MinImageSize {
		return nil, &ImageTooSmallError{Size: len(image), MinSize: MinImageSize}
	}
	if bits := s.key.N.BitLen(); bits != KeyBits {
		return nil, &KeySizeError{Bits: bits}
	}

	startTime := time.Now()

	cert, err := certificate.Parse(certDER)
	if err != nil {
		return nil, fmt.Errorf("signing certificate: %w", err)
	}
	certHash, err := certificate.RotKeyHash(cert)
	if err != nil {
		return nil, fmt.Errorf("signing certificate: %w", err)
	}
	if !hashes.Contains(certHash) {
		s.logError("signing certificate is not one of the root keys",
			"hash", fmt.Sprintf("%x", certHash),
		)
	}

	imageSize := alignUp(len(image))
	certSize := alignUp(len(certDER))
	total := imageSize + CertBlockHeaderSize + 4 + certSize + certificate.RotKeyCount*sha256.Size + certificate.SignatureSize

	s.logDebug("assembling signed image",
		"image_size", imageSize,
		"cert_size", certSize,
		"total", total,
	)

	le := binary.LittleEndian
	out := make([]byte, imageSize, total)
	copy(out, image)

	le.PutUint32(out[ImageLengthOffset:], uint32(total))
	copy(out[ImageTypeOffset:], imageTypeSigned[:])
	le.PutUint32(out[CertBlockOffsetOffset:], uint32(imageSize))

	out = append(out, certBlockMagic...)
	out = le.AppendUint16(out, certBlockVersionMajor)
	out = le.AppendUint16(out, certBlockVersionMinor)
	out = le.AppendUint32(out, CertBlockHeaderSize)
	out = le.AppendUint32(out, 0)
	out = le.AppendUint32(out, s.config.BuildNumber)
	out = le.AppendUint32(out, uint32(total-certificate.SignatureSize))
	out = le.AppendUint32(out, 1)
	out = le.AppendUint32(out, uint32(certSize+4))

	out = le.AppendUint32(out, uint32(certSize))
	out = append(out, certDER...)
	out = append(out, make([]byte, certSize-len(certDER))...)
	out = append(out, hashes.Bytes()...)

	sig, err := certificate.Sign(s.key, out)
	if err != nil {
		return nil, err
	}
	out = append(out, sig...)

	if len(out) != total {
		return nil, fmt.Errorf("assembled %d bytes, expected %d", len(out), total)
	}

	if s.config.VerifyAfterSign {
		if _, err := Parse(out); err != nil {
			return nil, fmt.Errorf("verify signed image: %w", err)
		}
		s.logDebug("signed image verified")
	}

	s.logInfo("signed image",
		"bytes", len(out),
		"build_number", s.config.BuildNumber,
		"duration", time.Since(startTime),
	)

	return out, nil
}

// Verify checks a signed image against the signer's public key.
func (s *Signer) Verify(signed []byte) (*Image, error) {
	img, err := Parse(signed)
	if err != nil {
		return nil, err
	}
	if !s.key.PublicKey.Equal(img.Certificate.PublicKey) {
		return nil, fmt.Errorf("%w: image certificate does not match the signing key", certificate.ErrSignatureInvalid)
	}
	return img, nil
}

func alignUp(n int) int {
	return (n + ImageAlignment - 1) &^ (ImageAlignment - 1)
}

func (s *Signer) logDebug(msg string, keysAndValues ...interface{}) {
	if s.config.Logger != nil {
		s.config.Logger.Debug(msg, keysAndValues...)
	}
}

func (s *Signer) logInfo(msg string, keysAndValues ...interface{}) {
	if s.config.Logger != nil {
		s.config.Logger.Info(msg, keysAndValues...)
	}
}

func (s *Signer) logError(msg string, keysAndValues ...interface{}) {
	if s.config.Logger != nil {
		s.config.Logger.Error(msg, keysAndValues...)
	}
}
