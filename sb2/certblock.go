package sb2

import (
	"crypto/x509"
	"fmt"

	"github.com/moffa90/go-sb2/certificate"
)

// CertificateBlockHeader describes the certificate table that follows it.
//
// Structure (little-endian):
//
//	["cert"][VERSION_MAJOR(2)][VERSION_MINOR(2)][HEADER_LENGTH(4)][FLAGS(4)]
//	[BUILD_NUMBER(4)][TOTAL_IMAGE_LENGTH(4)][CERTIFICATE_COUNT(4)][TABLE_LENGTH(4)]
type CertificateBlockHeader struct {
	HeaderLength     uint32
	Flags            uint32
	BuildNumber      uint32
	TotalImageLength uint32

	// CertificateTableLength counts the certificate and its length prefix
	CertificateTableLength uint32
}

func parseCertificateBlockHeader(c *cursor) *CertificateBlockHeader {
	h := &CertificateBlockHeader{}
	c.magic("certificate block signature", CertBlockMagic)
	c.literal16("certificate block major version", CertBlockHeaderVersionMajor)
	c.literal16("certificate block minor version", CertBlockHeaderVersionMinor)
	h.HeaderLength = c.u32("certificate block header length")
	h.Flags = c.u32("certificate block flags")
	h.BuildNumber = c.u32("certificate block build number")
	h.TotalImageLength = c.u32("total image length")
	c.literal32("certificate count", 1)
	h.CertificateTableLength = c.u32("certificate table length")

	if c.err != nil {
		return nil
	}
	return h
}

// parseCertificate reads the length prefixed DER certificate.
// The stored length may include zero padding after the DER element.
func parseCertificate(c *cursor) ([]byte, *x509.Certificate) {
	n := c.u32("certificate length")
	off := c.off
	der := c.take("certificate", int(n))
	if c.err != nil {
		return nil, nil
	}

	cert, err := certificate.Parse(der)
	if err != nil {
		c.failf("certificate", off, "%v", err)
		return nil, nil
	}
	if cert.Version != 3 {
		c.failf("certificate", off, "X.509 version %d, want 3", cert.Version)
		return nil, nil
	}
	return der, cert
}

// signedLength returns the length of the RSA-signed prefix for a certificate
// of certLen bytes.
func signedLength(certLen int) int {
	return CertBlockHeaderOffset + CertBlockHeaderSize + 4 + certLen + RotKeyHashTableSize
}

// checkLayout cross-checks header offsets against the parsed preamble.
func checkLayout(h *Header, certLen, fileLen int) error {
	want := signedLength(certLen) + SignatureSize
	if got := int(h.BootTagOffsetBlocks) * BlockSize; got != want {
		return &HeaderError{Field: "boot tag offset", Offset: 0x20,
			Reason: fmt.Sprintf("points to byte 0x%X, signature ends at 0x%X", got, want)}
	}
	// Every byte of the file must be accounted for by the header.
	if got := int(h.ImageBlocks) * BlockSize; got != fileLen {
		return &HeaderError{Field: "image blocks", Offset: 0x1C,
			Reason: fmt.Sprintf("header says %d bytes, file has %d", got, fileLen)}
	}
	return nil
}
