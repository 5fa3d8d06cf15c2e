package sb2

import (
	"fmt"
	"time"

	"github.com/coreos/go-semver/semver"
)

// Epoch is the zero point of header timestamps.
var Epoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Version is a product or component version as stored in the header.
// Each part occupies 16 bits followed by 16 bits of zero padding.
type Version struct {
	Major uint16
	Minor uint16
	Patch uint16
}

// Semver returns v as a semantic version.
func (v Version) Semver() *semver.Version {
	return &semver.Version{Major: int64(v.Major), Minor: int64(v.Minor), Patch: int64(v.Patch)}
}

func (v Version) String() string {
	return v.Semver().String()
}

// Header is the 96-byte SB2 image header.
//
// Header structure (little-endian):
//
//	[NONCE(16)][RESERVED(4)]["STMP"][MAJOR(1)][MINOR(1)][FLAGS(2)]
//	[IMAGE_BLOCKS(4)][BOOT_TAG_OFFSET(4)][BOOT_SECTION_ID(4)][CERT_BLOCK_OFFSET(4)]
//	[HEADER_BLOCKS(2)][KEYBLOB_OFFSET(2)][KEYBLOB_BLOCKS(2)][MAX_SECTION_MACS(2)]
//	["sgtl"][TIMESTAMP(8)][PRODUCT_VERSION(12)][COMPONENT_VERSION(12)]
//	[BUILD_NUMBER(4)][PADDING(4)]
type Header struct {
	// Nonce seeds the AES-CTR counter
	Nonce [4]uint32

	// Minor is the format minor version, 0 or 1. The major version is always 2.
	Minor byte

	Flags uint16

	// ImageBlocks is the size of the whole image in blocks
	ImageBlocks uint32

	// BootTagOffsetBlocks is where the ciphered boot tag starts
	BootTagOffsetBlocks uint32

	// CertBlockHeaderOffset is the byte offset of the certificate block header
	CertBlockHeaderOffset uint32

	// Timestamp counts microseconds since Epoch
	Timestamp uint64

	ProductVersion   Version
	ComponentVersion Version
	BuildNumber      uint32
}

// Time returns the header timestamp.
func (h *Header) Time() time.Time {
	const perSecond = uint64(time.Second / time.Microsecond)
	secs, usecs := h.Timestamp/perSecond, h.Timestamp%perSecond
	return time.Unix(Epoch.Unix()+int64(secs), int64(usecs)*int64(time.Microsecond)).UTC()
}

func (h *Header) String() string {
	return fmt.Sprintf("SB2.%d header: %d blocks, boot tag at block %d, product %s, component %s, build %d, created %s",
		h.Minor, h.ImageBlocks, h.BootTagOffsetBlocks, h.ProductVersion, h.ComponentVersion,
		h.BuildNumber, h.Time().Format(time.RFC3339))
}

func (c *cursor) version(field string) Version {
	var parts [3]uint16
	for i := range parts {
		parts[i] = c.u16(field)
		c.literal16(field+" padding", 0)
	}
	return Version{Major: parts[0], Minor: parts[1], Patch: parts[2]}
}

// parseHeader reads the fixed header, checking every field the boot ROM mandates.
func parseHeader(c *cursor) *Header {
	h := &Header{}
	for i := range h.Nonce {
		h.Nonce[i] = c.u32("nonce")
	}
	c.take("reserved", 4)
	c.magic("signature", SignatureMagic)
	c.literal8("major version", MajorVersion)
	h.Minor = c.literal8("minor version", 0, 1)
	h.Flags = c.u16("flags")
	h.ImageBlocks = c.u32("image blocks")
	h.BootTagOffsetBlocks = c.u32("boot tag offset")
	c.literal32("boot section id", 0)
	// The certificate block is only ever read from this fixed offset.
	h.CertBlockHeaderOffset = c.literal32("certificate block header offset", CertBlockHeaderOffset)
	c.literal16("header blocks", HeaderBlocks)
	c.literal16("keyblob offset", KeyblobOffsetBlocks)
	c.literal16("keyblob blocks", KeyblobBlocks)
	c.literal16("max section mac count", MaxSectionMACCount)
	c.magic("signature2", Signature2Magic)
	h.Timestamp = c.u64("timestamp")
	h.ProductVersion = c.version("product version")
	h.ComponentVersion = c.version("component version")
	h.BuildNumber = c.u32("build number")
	c.take("padding", 4)

	if c.err != nil {
		return nil
	}
	return h
}
