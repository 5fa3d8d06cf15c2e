package sb2

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
)

// Counter returns the AES-CTR counter block for block k of a region that
// starts at block base. The last nonce word is advanced by base+k modulo 2^32.
func Counter(nonce [4]uint32, base, k uint32) [BlockSize]byte {
	var iv [BlockSize]byte
	binary.LittleEndian.PutUint32(iv[0:], nonce[0])
	binary.LittleEndian.PutUint32(iv[4:], nonce[1])
	binary.LittleEndian.PutUint32(iv[8:], nonce[2])
	binary.LittleEndian.PutUint32(iv[12:], nonce[3]+base+k)
	return iv
}

// Decrypt deciphers a region starting at block base.
// Each block gets its own counter, so the 128-bit carry of a plain CTR
// stream never happens. ciphertext is not modified.
func Decrypt(dek []byte, nonce [4]uint32, base uint32, ciphertext []byte) ([]byte, error) {
	block, err := aes.NewCipher(dek)
	if err != nil {
		return nil, fmt.Errorf("dek: %w", err)
	}

	plain := make([]byte, len(ciphertext))
	for k := 0; k*BlockSize < len(ciphertext); k++ {
		start := k * BlockSize
		end := min(start+BlockSize, len(ciphertext))
		iv := Counter(nonce, base, uint32(k))
		cipher.NewCTR(block, iv[:]).XORKeyStream(plain[start:end], ciphertext[start:end])
	}
	return plain, nil
}

// MAC returns HMAC-SHA256 of data under key.
func MAC(key, data []byte) []byte {
	h := hmac.New(sha256.New, key)
	h.Write(data)
	return h.Sum(nil)
}

func checkMAC(what string, key, data, want []byte) error {
	if !hmac.Equal(MAC(key, data), want) {
		return &AuthenticationError{What: what}
	}
	return nil
}

// sealed is the ciphered part of a container, after the signature.
type sealed struct {
	bootTag   []byte
	hmacTable []byte
	section   []byte
}

func parseSealed(c *cursor) (*sealed, error) {
	s := &sealed{
		bootTag:   c.take("boot tag", BlockSize),
		hmacTable: c.take("hmac table", HMACTableBlocks*BlockSize),
	}
	if c.err != nil {
		return nil, c.err
	}
	s.section = c.take("section", len(c.b))
	return s, nil
}

// verify checks the boot tag, section and table HMACs, in that order.
// Nothing is decrypted until all three match.
func (s *sealed) verify(kb *Keyblob, digest []byte) error {
	if err := checkMAC("boot tag", kb.MAC[:], s.bootTag, s.hmacTable[:HMACSize]); err != nil {
		return err
	}
	if err := checkMAC("section", kb.MAC[:], s.section, s.hmacTable[HMACSize:2*HMACSize]); err != nil {
		return err
	}
	return checkMAC("hmac table", kb.MAC[:], s.hmacTable, digest)
}
