package sb2

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"
)

func TestCounter(t *testing.T) {
	tests := []struct {
		name  string
		nonce [4]uint32
		base  uint32
		k     uint32
		want  string
	}{
		{
			name:  "zero offset",
			nonce: [4]uint32{0x03020100, 0x07060504, 0x0B0A0908, 0x0F0E0D0C},
			want:  "000102030405060708090a0b0c0d0e0f",
		},
		{
			name:  "base and block add to last word",
			nonce: [4]uint32{1, 2, 3, 0x100},
			base:  0x6E,
			k:     2,
			want:  "01000000020000000300000070010000",
		},
		{
			name:  "last word wraps",
			nonce: [4]uint32{1, 2, 3, 0xFFFFFFFE},
			base:  1,
			k:     2,
			want:  "01000000020000000300000001000000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Counter(tt.nonce, tt.base, tt.k)
			if hex.EncodeToString(got[:]) != tt.want {
				t.Errorf("Counter() = %x, want %s", got, tt.want)
			}
		})
	}
}

func TestDecryptBlockIndependence(t *testing.T) {
	dek := bytes.Repeat([]byte{0x42}, 32)
	nonce := [4]uint32{0xA, 0xB, 0xC, 0xFFFFFFFF}
	plain := make([]byte, 5*BlockSize+7)
	for i := range plain {
		plain[i] = byte(i)
	}

	ct, err := Decrypt(dek, nonce, 100, plain)
	if err != nil {
		t.Fatalf("Decrypt() error = %v", err)
	}
	if bytes.Equal(ct, plain) {
		t.Fatal("Decrypt() returned its input")
	}

	back, err := Decrypt(dek, nonce, 100, ct)
	if err != nil {
		t.Fatalf("Decrypt() error = %v", err)
	}
	if !bytes.Equal(back, plain) {
		t.Errorf("Decrypt(Decrypt()) = %x, want %x", back, plain)
	}

	// The tail starting at block 2 decrypts on its own with base+2.
	tail, err := Decrypt(dek, nonce, 102, ct[2*BlockSize:])
	if err != nil {
		t.Fatalf("Decrypt() error = %v", err)
	}
	if !bytes.Equal(tail, plain[2*BlockSize:]) {
		t.Errorf("tail = %x, want %x", tail, plain[2*BlockSize:])
	}
}

func TestDecryptBadKey(t *testing.T) {
	if _, err := Decrypt(make([]byte, 5), [4]uint32{}, 0, make([]byte, 16)); err == nil {
		t.Error("Decrypt() with a 5-byte key: expected error")
	}
}

func TestSealedVerifyOrder(t *testing.T) {
	key := bytes.Repeat([]byte{7}, 32)
	kb := &Keyblob{}
	copy(kb.MAC[:], key)

	s := &sealed{
		bootTag: bytes.Repeat([]byte{1}, BlockSize),
		section: bytes.Repeat([]byte{2}, 3*BlockSize),
	}
	s.hmacTable = append(MAC(key, s.bootTag), MAC(key, s.section)...)
	digest := MAC(key, s.hmacTable)

	if err := s.verify(kb, digest); err != nil {
		t.Fatalf("verify() error = %v", err)
	}

	tests := []struct {
		name   string
		mutate func(s *sealed, digest []byte)
		what   string
	}{
		{
			name:   "boot tag",
			mutate: func(s *sealed, _ []byte) { s.bootTag[0] ^= 1 },
			what:   "boot tag",
		},
		{
			name:   "section",
			mutate: func(s *sealed, _ []byte) { s.section[len(s.section)-1] ^= 1 },
			what:   "section",
		},
		{
			name:   "digest",
			mutate: func(_ *sealed, d []byte) { d[31] ^= 1 },
			what:   "hmac table",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &sealed{
				bootTag:   append([]byte{}, s.bootTag...),
				hmacTable: append([]byte{}, s.hmacTable...),
				section:   append([]byte{}, s.section...),
			}
			d := append([]byte{}, digest...)
			tt.mutate(c, d)

			err := c.verify(kb, d)
			var ae *AuthenticationError
			if !errors.As(err, &ae) {
				t.Fatalf("verify() error = %v, want AuthenticationError", err)
			}
			if ae.What != tt.what {
				t.Errorf("verify() failed on %q, want %q", ae.What, tt.what)
			}
			if !errors.Is(err, ErrAuthentication) {
				t.Errorf("errors.Is(%v, ErrAuthentication) = false", err)
			}
		})
	}
}
