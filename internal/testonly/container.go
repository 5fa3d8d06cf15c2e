package testonly

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"testing"

	keywrap "github.com/NickBall/go-aes-key-wrap"

	"github.com/moffa90/go-sb2/certificate"
	"github.com/moffa90/go-sb2/command"
)

// Container layout offsets, independent of the sb2 package.
const (
	HeaderSize       = 96
	DigestOffset     = 0x60
	KeyblobOffset    = 0x80
	CertBlockOffset  = 0xD0
	CertLengthOffset = 0xF0
	CertOffset       = 0xF4
)

// ContainerOptions controls BuildContainer. Zero values get defaults.
type ContainerOptions struct {
	// KEK wraps the keyblob, 0xAA bytes by default
	KEK []byte

	DEK [32]byte
	MAC [32]byte

	Nonce [4]uint32

	// Minor is the format minor version, 0 or 1
	Minor byte

	// Signer signs the container, NewSigner by default
	Signer *Signer

	// RotSigners provide the four root key hashes. Signer fills any gap.
	RotSigners []*Signer

	// Commands make up the single section
	Commands []command.BootCommand

	// BootTag replaces the derived boot tag when set
	BootTag command.BootCommand

	BuildNumber      uint32
	Timestamp        uint64
	ProductVersion   [3]uint16
	ComponentVersion [3]uint16
}

// Container is a built SB2.1 image with the values a test needs to check it.
type Container struct {
	Bytes []byte

	// SignedLength is the length of the RSA-signed prefix
	SignedLength int

	// BootTagOffsetBlocks is where the ciphered boot tag starts
	BootTagOffsetBlocks uint32

	// SectionOffset is the byte offset of the ciphered section
	SectionOffset int

	// PlainSection is the section before encryption
	PlainSection []byte

	// Hashes are the root key hashes stored in the image
	Hashes certificate.RotKeyHashes

	Options ContainerOptions
}

// DefaultCommands is a small section exercising every supported command.
func DefaultCommands() []command.BootCommand {
	payload := make([]byte, 100)
	for i := range payload {
		payload[i] = byte(i * 3)
	}
	return []command.BootCommand{
		command.CheckSecureFirmwareVersion{Version: 3},
		command.EraseRegion{Address: 0, Bytes: 0x8000},
		command.Load{Address: 0, Data: payload},
		command.Fill{Address: 0x1000, Bytes: 16, Pattern: 0xF1F1F1F1},
		command.CheckNonsecureFirmwareVersion{Version: 1},
		command.Nop{},
	}
}

// BuildContainer assembles a complete, valid SB2.1 container.
func BuildContainer(t testing.TB, opts ContainerOptions) *Container {
	t.Helper()

	if opts.KEK == nil {
		opts.KEK = bytes.Repeat([]byte{0xAA}, 32)
	}
	if opts.DEK == ([32]byte{}) {
		for i := range opts.DEK {
			opts.DEK[i] = byte(0x10 + i)
		}
	}
	if opts.MAC == ([32]byte{}) {
		for i := range opts.MAC {
			opts.MAC[i] = byte(0x80 + i)
		}
	}
	if opts.Nonce == ([4]uint32{}) {
		opts.Nonce = [4]uint32{0x01234567, 0x89ABCDEF, 0xDEADBEEF, 0xFFFFFFF0}
	}
	if opts.Signer == nil {
		opts.Signer = NewSigner(t)
	}
	if opts.Commands == nil {
		opts.Commands = DefaultCommands()
	}

	hashes := rotKeyHashes(t, opts)

	// Certificates are zero padded so that the boot tag lands on a block boundary.
	certLen := len(opts.Signer.DER)
	for (CertOffset+certLen+128+256)%16 != 0 {
		certLen++
	}
	cert := make([]byte, certLen)
	copy(cert, opts.Signer.DER)

	signedLen := CertOffset + certLen + 128
	bootTagOffset := uint32((signedLen + 256) / 16)

	section := command.EncodeAll(opts.Commands)
	sectionBlocks := uint32(len(section) / 16)

	bootTag := opts.BootTag
	if bootTag == nil {
		bootTag = command.Tag{Last: true, ID: 0, Flags: 1, CipherBlocks: sectionBlocks}
	}
	plainTag := command.Encode(bootTag)

	imageBlocks := bootTagOffset + 1 + 4 + sectionBlocks

	ctTag := ctr(t, opts.DEK[:], opts.Nonce, bootTagOffset, plainTag)
	ctSection := ctr(t, opts.DEK[:], opts.Nonce, bootTagOffset+5, section)

	table := append(mac(opts.MAC[:], ctTag), mac(opts.MAC[:], ctSection)...)
	digest := mac(opts.MAC[:], table)

	out := make([]byte, 0, int(imageBlocks)*16)
	out = append(out, header(opts, imageBlocks, bootTagOffset)...)
	out = append(out, digest...)
	out = append(out, keyblob(t, opts)...)
	out = append(out, certBlockHeader(opts, uint32(imageBlocks*16), uint32(certLen+4))...)
	out = binary.LittleEndian.AppendUint32(out, uint32(certLen))
	out = append(out, cert...)
	out = append(out, hashes.Bytes()...)

	sig, err := certificate.Sign(opts.Signer.Key, out)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	out = append(out, sig...)
	out = append(out, ctTag...)
	out = append(out, table...)
	sectionOffset := len(out)
	out = append(out, ctSection...)

	return &Container{
		Bytes:               out,
		SignedLength:        signedLen,
		BootTagOffsetBlocks: bootTagOffset,
		SectionOffset:       sectionOffset,
		PlainSection:        section,
		Hashes:              hashes,
		Options:             opts,
	}
}

func rotKeyHashes(t testing.TB, opts ContainerOptions) certificate.RotKeyHashes {
	t.Helper()
	var hashes certificate.RotKeyHashes
	for i := range hashes {
		s := opts.Signer
		if i < len(opts.RotSigners) {
			s = opts.RotSigners[i]
		}
		h, err := certificate.RotKeyHash(s.Cert)
		if err != nil {
			t.Fatalf("RotKeyHash: %v", err)
		}
		hashes[i] = h
	}
	return hashes
}

func header(opts ContainerOptions, imageBlocks, bootTagOffset uint32) []byte {
	le := binary.LittleEndian
	h := make([]byte, 0, HeaderSize)
	for _, n := range opts.Nonce {
		h = le.AppendUint32(h, n)
	}
	h = append(h, 0, 0, 0, 0)
	h = append(h, "STMP"...)
	h = append(h, 2, opts.Minor)
	h = le.AppendUint16(h, 0x0008)
	h = le.AppendUint32(h, imageBlocks)
	h = le.AppendUint32(h, bootTagOffset)
	h = le.AppendUint32(h, 0)
	h = le.AppendUint32(h, CertBlockOffset)
	h = le.AppendUint16(h, 6)
	h = le.AppendUint16(h, 8)
	h = le.AppendUint16(h, 5)
	h = le.AppendUint16(h, 1)
	h = append(h, "sgtl"...)
	h = le.AppendUint64(h, opts.Timestamp)
	for _, v := range opts.ProductVersion {
		h = le.AppendUint16(h, v)
		h = le.AppendUint16(h, 0)
	}
	for _, v := range opts.ComponentVersion {
		h = le.AppendUint16(h, v)
		h = le.AppendUint16(h, 0)
	}
	h = le.AppendUint32(h, opts.BuildNumber)
	return append(h, 0, 0, 0, 0)
}

func keyblob(t testing.TB, opts ContainerOptions) []byte {
	t.Helper()
	block, err := aes.NewCipher(opts.KEK)
	if err != nil {
		t.Fatalf("aes.NewCipher: %v", err)
	}
	wrapped, err := keywrap.Wrap(block, append(opts.DEK[:], opts.MAC[:]...))
	if err != nil {
		t.Fatalf("keywrap.Wrap: %v", err)
	}
	return append(wrapped, make([]byte, 8)...)
}

func certBlockHeader(opts ContainerOptions, totalLen, tableLen uint32) []byte {
	le := binary.LittleEndian
	h := []byte("cert")
	h = le.AppendUint16(h, 1)
	h = le.AppendUint16(h, 0)
	h = le.AppendUint32(h, 0x20)
	h = le.AppendUint32(h, 0)
	h = le.AppendUint32(h, opts.BuildNumber)
	h = le.AppendUint32(h, totalLen)
	h = le.AppendUint32(h, 1)
	return le.AppendUint32(h, tableLen)
}

// ctr encrypts plain one block at a time, the counter of block k being the
// nonce with its last word advanced by base+k.
func ctr(t testing.TB, key []byte, nonce [4]uint32, base uint32, plain []byte) []byte {
	t.Helper()
	block, err := aes.NewCipher(key)
	if err != nil {
		t.Fatalf("aes.NewCipher: %v", err)
	}
	out := make([]byte, len(plain))
	for k := 0; k*16 < len(plain); k++ {
		iv := make([]byte, 16)
		binary.LittleEndian.PutUint32(iv[0:], nonce[0])
		binary.LittleEndian.PutUint32(iv[4:], nonce[1])
		binary.LittleEndian.PutUint32(iv[8:], nonce[2])
		binary.LittleEndian.PutUint32(iv[12:], nonce[3]+base+uint32(k))
		end := min(len(plain), (k+1)*16)
		cipher.NewCTR(block, iv).XORKeyStream(out[k*16:end], plain[k*16:end])
	}
	return out
}

func mac(key, data []byte) []byte {
	h := hmac.New(sha256.New, key)
	h.Write(data)
	return h.Sum(nil)
}
