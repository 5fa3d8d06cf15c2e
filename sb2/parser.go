package sb2

import (
	"fmt"
	"io"
	"os"

	"github.com/moffa90/go-sb2/certificate"
	"github.com/moffa90/go-sb2/command"
)

// Parse reads, verifies and decrypts an SB2.1 container from the given file path.
//
// Example:
//
//	c, err := sb2.Parse("firmware.sb2")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d commands, product version %s\n", len(c.Commands), c.Header.ProductVersion)
func Parse(path string, opts ...Option) (*Container, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ParseReader(f, opts...)
}

// ParseReader reads a whole container from r and parses it with ParseBytes.
func ParseReader(r io.Reader, opts ...Option) (*Container, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read container: %w", err)
	}
	return ParseBytes(data, opts...)
}

// ParseBytes parses an SB2.1 container.
//
// The steps run in order and the first failure aborts the parse:
//   - header, digest HMAC, keyblob and certificate block are decoded and
//     every mandated constant is checked
//   - the keyblob is unwrapped under the KEK
//   - the RSA signature over the preamble is verified
//   - the boot tag, section and HMAC table HMACs are checked
//   - only then are the boot tag and section decrypted and decoded
//
// data is not modified or retained.
func ParseBytes(data []byte, opts ...Option) (*Container, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	ft, err := Sniff(data)
	if err != nil {
		return nil, err
	}
	if ft != Sb21 {
		return nil, fmt.Errorf("%w: %s file is not an SB2.1 container", ErrFormatUnrecognized, ft)
	}

	c := newCursor(data)
	out := &Container{}

	out.Header = parseHeader(c)
	digest := c.take("digest hmac", HMACSize)
	if c.err != nil {
		return nil, c.err
	}
	copy(out.DigestHMAC[:], digest)
	cfg.logDebug("parsed header", "minor", out.Header.Minor, "imageBlocks", out.Header.ImageBlocks,
		"bootTagOffsetBlocks", out.Header.BootTagOffsetBlocks, "build", out.Header.BuildNumber)

	out.Keyblob, err = parseKeyblob(c, cfg.KEK)
	if err != nil {
		cfg.logError("keyblob unwrap failed", "error", err)
		return nil, err
	}

	out.CertificateBlockHeader = parseCertificateBlockHeader(c)
	out.CertificateDER, out.Certificate = parseCertificate(c)
	rot := c.take("rot key hashes", RotKeyHashTableSize)
	out.SignedLength = c.off
	out.Signature = c.take("signature", SignatureSize)
	if c.err != nil {
		return nil, c.err
	}
	if out.RotKeyHashes, err = certificate.ParseRotKeyHashes(rot); err != nil {
		return nil, err
	}

	if err := checkLayout(out.Header, len(out.CertificateDER), len(data)); err != nil {
		return nil, err
	}

	if err := certificate.Verify(out.Certificate, data[:out.SignedLength], out.Signature); err != nil {
		cfg.logError("signature verification failed", "error", err)
		return nil, fmt.Errorf("container signature: %w", err)
	}
	cfg.logInfo("signature verified", "signedLength", out.SignedLength, "subject", out.Certificate.Subject.String())

	s, err := parseSealed(c)
	if err != nil {
		return nil, err
	}
	if err := s.verify(out.Keyblob, out.DigestHMAC[:]); err != nil {
		cfg.logError("hmac verification failed", "error", err)
		return nil, err
	}
	cfg.logDebug("hmacs verified", "sectionBytes", len(s.section))

	if err := out.decrypt(s); err != nil {
		return nil, err
	}
	cfg.logInfo("decrypted section", "commands", len(out.Commands), "loadBytes", out.LoadSize())

	return out, nil
}

func (c *Container) decrypt(s *sealed) error {
	h := c.Header
	tagPlain, err := Decrypt(c.Keyblob.DEK[:], h.Nonce, h.BootTagOffsetBlocks, s.bootTag)
	if err != nil {
		return err
	}
	bootCmd, _, err := command.Decode(tagPlain)
	if err != nil {
		return fmt.Errorf("boot tag: %w", err)
	}
	tag, ok := bootCmd.(command.Tag)
	if !ok {
		return fmt.Errorf("%w: boot tag decodes to %s", command.ErrFraming, bootCmd)
	}
	if int(tag.CipherBlocks)*BlockSize != len(s.section) {
		return fmt.Errorf("%w: boot tag announces %d blocks, section has %d bytes",
			command.ErrFraming, tag.CipherBlocks, len(s.section))
	}
	c.BootTag = tag

	sectionBase := h.BootTagOffsetBlocks + 1 + HMACTableBlocks
	sectionPlain, err := Decrypt(c.Keyblob.DEK[:], h.Nonce, sectionBase, s.section)
	if err != nil {
		return err
	}
	c.Commands, err = command.DecodeAll(sectionPlain)
	if err != nil {
		return fmt.Errorf("section: %w", err)
	}
	return nil
}
