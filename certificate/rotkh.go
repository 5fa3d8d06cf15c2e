package certificate

import (
	"crypto/sha256"
	"crypto/x509"
	"fmt"
	"math/big"
)

// RotKeyCount is the number of root-of-trust keys the boot ROM accepts.
const RotKeyCount = 4

// RotKeyHashes holds the SHA-256 hashes of the root-of-trust public keys,
// in the order the certificates were given.
type RotKeyHashes [RotKeyCount][sha256.Size]byte

// RotKeyHash returns SHA-256 of the certificate's RSA modulus followed by its
// public exponent, both as minimal big-endian byte strings.
func RotKeyHash(cert *x509.Certificate) ([sha256.Size]byte, error) {
	pub, err := PublicKey(cert)
	if err != nil {
		return [sha256.Size]byte{}, err
	}

	h := sha256.New()
	h.Write(pub.N.Bytes())
	h.Write(big.NewInt(int64(pub.E)).Bytes())

	var sum [sha256.Size]byte
	copy(sum[:], h.Sum(nil))
	return sum, nil
}

// NewRotKeyHashes hashes the four root certificates.
func NewRotKeyHashes(certs []*x509.Certificate) (RotKeyHashes, error) {
	var hashes RotKeyHashes
	if len(certs) != RotKeyCount {
		return hashes, fmt.Errorf("need %d root certificates, got %d", RotKeyCount, len(certs))
	}

	for i, cert := range certs {
		h, err := RotKeyHash(cert)
		if err != nil {
			return hashes, fmt.Errorf("root certificate %d: %w", i, err)
		}
		hashes[i] = h
	}
	return hashes, nil
}

// ParseRotKeyHashes splits a 128-byte table into its four hashes.
func ParseRotKeyHashes(b []byte) (RotKeyHashes, error) {
	var hashes RotKeyHashes
	if len(b) != RotKeyCount*sha256.Size {
		return hashes, fmt.Errorf("rot key hash table needs %d bytes, got %d", RotKeyCount*sha256.Size, len(b))
	}
	for i := range hashes {
		copy(hashes[i][:], b[i*sha256.Size:])
	}
	return hashes, nil
}

// Bytes returns the 128-byte table as stored in images.
func (r RotKeyHashes) Bytes() []byte {
	out := make([]byte, 0, RotKeyCount*sha256.Size)
	for _, h := range r {
		out = append(out, h[:]...)
	}
	return out
}

// TableHash returns the ROTKH value programmed into the device: SHA-256 over
// the concatenated key hashes.
func (r RotKeyHashes) TableHash() [sha256.Size]byte {
	return sha256.Sum256(r.Bytes())
}

// Contains reports whether h is one of the root key hashes.
func (r RotKeyHashes) Contains(h [sha256.Size]byte) bool {
	for _, k := range r {
		if k == h {
			return true
		}
	}
	return false
}

// LoadRotKeyHashes reads the four DER root certificates and hashes them.
func LoadRotKeyHashes(paths []string) (RotKeyHashes, error) {
	if len(paths) != RotKeyCount {
		return RotKeyHashes{}, fmt.Errorf("need %d root certificates, got %d", RotKeyCount, len(paths))
	}
	certs := make([]*x509.Certificate, 0, len(paths))
	for _, p := range paths {
		cert, err := Load(p)
		if err != nil {
			return RotKeyHashes{}, err
		}
		certs = append(certs, cert)
	}
	return NewRotKeyHashes(certs)
}
