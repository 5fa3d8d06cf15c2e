package certificate

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/asn1"
	"errors"
	"fmt"

	"golang.org/x/crypto/cryptobyte"
	cbasn1 "golang.org/x/crypto/cryptobyte/asn1"
)

// SignatureSize is the size of the RSA-2048 signatures used by the boot ROM.
const SignatureSize = 256

var (
	// ErrSignatureInvalid is returned when an RSA signature does not verify.
	ErrSignatureInvalid = errors.New("signature invalid")
	// ErrUnsupportedKeyAlgorithm is returned for certificates without an RSA key.
	ErrUnsupportedKeyAlgorithm = errors.New("unsupported key algorithm")
	// ErrMalformedCertificate is returned when DER data cannot be parsed.
	ErrMalformedCertificate = errors.New("malformed certificate")
)

var oidRSAEncryption = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 1}

// Parse parses a DER encoded X.509 certificate.
// Bytes after the outer SEQUENCE are ignored, since certificates embedded in
// images are zero padded.
func Parse(der []byte) (*x509.Certificate, error) {
	input := cryptobyte.String(der)
	var elem cryptobyte.String
	if !input.ReadASN1Element(&elem, cbasn1.SEQUENCE) {
		return nil, fmt.Errorf("%w: no DER sequence in %d bytes", ErrMalformedCertificate, len(der))
	}

	cert, err := x509.ParseCertificate(elem)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCertificate, err)
	}
	return cert, nil
}

// PublicKey returns the RSA key of cert.
// The subject public key info must carry the rsaEncryption algorithm.
func PublicKey(cert *x509.Certificate) (*rsa.PublicKey, error) {
	spki := cryptobyte.String(cert.RawSubjectPublicKeyInfo)
	var seq, algorithm cryptobyte.String
	var oid asn1.ObjectIdentifier
	if !spki.ReadASN1(&seq, cbasn1.SEQUENCE) ||
		!seq.ReadASN1(&algorithm, cbasn1.SEQUENCE) ||
		!algorithm.ReadASN1ObjectIdentifier(&oid) {
		return nil, fmt.Errorf("%w: bad subject public key info", ErrMalformedCertificate)
	}

	if !oid.Equal(oidRSAEncryption) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKeyAlgorithm, oid)
	}

	pub, ok := cert.PublicKey.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedKeyAlgorithm, cert.PublicKey)
	}
	return pub, nil
}

// Verify checks an RSA PKCS#1 v1.5 SHA-256 signature over signed.
func Verify(cert *x509.Certificate, signed, signature []byte) error {
	pub, err := PublicKey(cert)
	if err != nil {
		return err
	}

	digest := sha256.Sum256(signed)
	if err := rsa.VerifyPKCS1v15(pub, crypto.SHA256, digest[:], signature); err != nil {
		return fmt.Errorf("%w: %v", ErrSignatureInvalid, err)
	}
	return nil
}

// Sign returns the RSA PKCS#1 v1.5 SHA-256 signature of data.
func Sign(key *rsa.PrivateKey, data []byte) ([]byte, error) {
	digest := sha256.Sum256(data)
	sig, err := rsa.SignPKCS1v15(rand.Reader, key, crypto.SHA256, digest[:])
	if err != nil {
		return nil, fmt.Errorf("sign: %w", err)
	}
	return sig, nil
}
