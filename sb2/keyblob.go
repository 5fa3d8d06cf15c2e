package sb2

import (
	"crypto/aes"
	"encoding/binary"
	"fmt"
)

// keyWrapIV is the integrity check value every unwrapped key must end with.
const keyWrapIV = 0xA6A6A6A6A6A6A6A6

// keyWrapRounds is the number of passes over the wrapped blocks.
const keyWrapRounds = 6

// Keyblob holds the keys protecting a container.
type Keyblob struct {
	// DEK decrypts the boot tag and sections
	DEK [32]byte

	// MAC authenticates the ciphertext
	MAC [32]byte
}

// Unwrap reverses an AES key wrap of wrapped under kek.
// wrapped is n+1 64-bit blocks, the result n blocks.
func Unwrap(kek, wrapped []byte) ([]byte, error) {
	if len(wrapped)%8 != 0 || len(wrapped) < 24 {
		return nil, fmt.Errorf("%w: wrapped key is %d bytes", ErrKeyUnwrapIntegrity, len(wrapped))
	}

	block, err := aes.NewCipher(kek)
	if err != nil {
		return nil, fmt.Errorf("kek: %w", err)
	}

	n := len(wrapped)/8 - 1
	a := binary.BigEndian.Uint64(wrapped)
	r := make([]uint64, n+1)
	for i := 1; i <= n; i++ {
		r[i] = binary.BigEndian.Uint64(wrapped[i*8:])
	}

	var b [16]byte
	for j := keyWrapRounds - 1; j >= 0; j-- {
		for i := n; i >= 1; i-- {
			t := uint64(n*j + i)
			binary.BigEndian.PutUint64(b[:8], a^t)
			binary.BigEndian.PutUint64(b[8:], r[i])
			block.Decrypt(b[:], b[:])
			a = binary.BigEndian.Uint64(b[:8])
			r[i] = binary.BigEndian.Uint64(b[8:])
		}
	}

	if a != keyWrapIV {
		return nil, fmt.Errorf("%w: integrity value 0x%016X", ErrKeyUnwrapIntegrity, a)
	}

	out := make([]byte, 0, n*8)
	for i := 1; i <= n; i++ {
		out = binary.BigEndian.AppendUint64(out, r[i])
	}
	return out, nil
}

// parseKeyblob reads the keyblob region and unwraps it under kek.
func parseKeyblob(c *cursor, kek []byte) (*Keyblob, error) {
	off := c.off
	wrapped := c.take("keyblob", WrappedKeyblobSize)
	c.take("keyblob padding", KeyblobBlocks*BlockSize-WrappedKeyblobSize)
	if c.err != nil {
		return nil, c.err
	}

	keys, err := Unwrap(kek, wrapped)
	if err != nil {
		return nil, fmt.Errorf("keyblob at offset 0x%X: %w", off, err)
	}

	kb := &Keyblob{}
	copy(kb.DEK[:], keys[:32])
	copy(kb.MAC[:], keys[32:64])
	return kb, nil
}
