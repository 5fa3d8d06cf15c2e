// Package testonly provides fixtures for image and container tests.
package testonly

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"sync"
	"testing"
	"time"
)

// KeyBits is the RSA key size the boot ROM accepts.
const KeyBits = 2048

// Signer is an RSA key and a self-signed certificate for it.
type Signer struct {
	Key  *rsa.PrivateKey
	DER  []byte
	Cert *x509.Certificate
}

// PEM returns the private key as a PKCS#1 PEM block.
func (s *Signer) PEM() []byte {
	return pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(s.Key)})
}

var (
	signersMu sync.Mutex
	signers   []*Signer
)

// Signers returns n distinct signers. Keys are generated once per test binary
// and shared, since RSA key generation is slow.
func Signers(t testing.TB, n int) []*Signer {
	t.Helper()
	signersMu.Lock()
	defer signersMu.Unlock()

	for len(signers) < n {
		signers = append(signers, newSigner(t, int64(len(signers)+1)))
	}
	return signers[:n]
}

// NewSigner returns the first shared signer.
func NewSigner(t testing.TB) *Signer {
	t.Helper()
	return Signers(t, 1)[0]
}

func newSigner(t testing.TB, serial int64) *Signer {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, KeyBits)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}

	tmpl := &x509.Certificate{
		SerialNumber:          big.NewInt(serial),
		Subject:               pkix.Name{CommonName: "root key", Organization: []string{"go-sb2 test"}},
		NotBefore:             time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		NotAfter:              time.Date(2040, 1, 1, 0, 0, 0, 0, time.UTC),
		KeyUsage:              x509.KeyUsageCertSign | x509.KeyUsageDigitalSignature,
		BasicConstraintsValid: true,
		IsCA:                  true,
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	if err != nil {
		t.Fatalf("CreateCertificate: %v", err)
	}
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		t.Fatalf("ParseCertificate: %v", err)
	}
	return &Signer{Key: key, DER: der, Cert: cert}
}
