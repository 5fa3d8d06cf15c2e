package sb2

// Container layout constants. Block counts are in 16-byte cipher blocks.
const (
	// BlockSize is the AES block size all offsets are counted in
	BlockSize = 16

	// HeaderSize is the size of the image header in bytes
	HeaderSize = 96

	// HeaderBlocks is the mandated header_size_blocks value
	HeaderBlocks = 6

	// DigestHMACBlocks is the size of the HMAC over the HMAC table
	DigestHMACBlocks = 2

	// KeyblobOffsetBlocks is the mandated keyblob_offset_blocks value
	KeyblobOffsetBlocks = 8

	// KeyblobBlocks is the mandated keyblob_size_blocks value
	KeyblobBlocks = 5

	// WrappedKeyblobSize is the size of the wrapped DEK and MAC key
	WrappedKeyblobSize = 72

	// CertBlockHeaderBlocks is the size of the certificate block header
	CertBlockHeaderBlocks = 2

	// CertBlockHeaderSize is the size of the certificate block header in bytes
	CertBlockHeaderSize = CertBlockHeaderBlocks * BlockSize

	// CertBlockHeaderOffset is where the certificate block header starts
	CertBlockHeaderOffset = (HeaderBlocks + DigestHMACBlocks + KeyblobBlocks) * BlockSize

	// RotKeyHashTableSize is the size of the four root key hashes
	RotKeyHashTableSize = 4 * 32

	// SignatureSize is the size of the RSA signature
	SignatureSize = 256

	// HMACSize is the size of one HMAC-SHA256
	HMACSize = 32

	// HMACTableBlocks holds the boot tag HMAC and one section HMAC
	HMACTableBlocks = 4

	// MaxSectionMACCount is the mandated max_section_mac_count value
	MaxSectionMACCount = 1
)

// Version and magic constants.
const (
	// MajorVersion is the only supported major format version
	MajorVersion = 2

	// SignatureMagic marks an SB2 header at offset 20
	SignatureMagic = "STMP"

	// Signature2Magic marks an SB2.1 header at offset 52
	Signature2Magic = "sgtl"

	// CertBlockMagic starts the certificate block header
	CertBlockMagic = "cert"

	// CertBlockHeaderVersionMajor is the certificate block header major version
	CertBlockHeaderVersionMajor = 1

	// CertBlockHeaderVersionMinor is the certificate block header minor version
	CertBlockHeaderVersionMinor = 0
)

// defaultKEK is the SB key-encryption key the boot ROM wraps keyblobs with.
var defaultKEK = [32]byte{
	0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA,
	0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA,
	0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA,
	0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA,
}

// DefaultKEK returns a copy of the SB key-encryption key used when no
// WithKEK option is given.
func DefaultKEK() [32]byte {
	return defaultKEK
}
