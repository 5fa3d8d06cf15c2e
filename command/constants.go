package command

// Record layout constants.
const (
	// RawSize is the size of a single boot command record in bytes
	RawSize = 16

	// BlockSize is the cipher block size that Load payloads are padded to
	BlockSize = 16

	// ChecksumSeed is added to the byte sum when computing a record checksum
	ChecksumSeed = 0x5A
)

// Command tags as understood by the boot ROM.
// Only a subset is supported by Decode and Encode, see Supported.
const (
	// CmdNop does nothing
	CmdNop = 0x00

	// CmdTag starts a section and carries its cipher block count
	CmdTag = 0x01

	// CmdLoad writes a payload to memory
	CmdLoad = 0x02

	// CmdFill fills a memory range with a repeating 32-bit pattern
	CmdFill = 0x03

	// CmdJump jumps to an address
	CmdJump = 0x04

	// CmdCall calls a function at an address
	CmdCall = 0x05

	// CmdChangeBootMode switches the boot mode
	CmdChangeBootMode = 0x06

	// CmdErase erases a memory region or the whole flash
	CmdErase = 0x07

	// CmdReset resets the device
	CmdReset = 0x08

	// CmdMemoryEnable initialises an external memory
	CmdMemoryEnable = 0x09

	// CmdProgramPersistentBits programs fuses or persistent bits
	CmdProgramPersistentBits = 0x0A

	// CmdCheckFirmwareVersion checks a secure or nonsecure firmware version
	CmdCheckFirmwareVersion = 0x0B

	// CmdKeystoreToNonvolatile stores the key store to nonvolatile memory
	CmdKeystoreToNonvolatile = 0x0C

	// CmdKeystoreFromNonvolatile loads the key store from nonvolatile memory
	CmdKeystoreFromNonvolatile = 0x0D
)

// Flag bits.
const (
	// TagFlagLast marks the last section in a Tag command
	TagFlagLast = 0x0001

	// EraseFlagAll selects a full erase instead of a region erase
	EraseFlagAll = 0x0001

	// EraseFlagAllUnsecure requests an unsecure full erase, which is not supported
	EraseFlagAllUnsecure = 0x0002

	// EraseMemoryIDMask selects the memory controller id in an Erase command
	EraseMemoryIDMask = 0x0F00

	// FirmwareVersionNonsecure selects the nonsecure counter in the address field
	FirmwareVersionNonsecure = 0x00000001
)

// Supported reports whether tag is handled by this package.
func Supported(tag byte) bool {
	switch tag {
	case CmdNop, CmdTag, CmdLoad, CmdFill, CmdErase, CmdCheckFirmwareVersion:
		return true
	default:
		return false
	}
}

// tagName returns a human-readable name for a command tag.
func tagName(tag byte) string {
	switch tag {
	case CmdNop:
		return "nop"
	case CmdTag:
		return "tag"
	case CmdLoad:
		return "load"
	case CmdFill:
		return "fill"
	case CmdJump:
		return "jump"
	case CmdCall:
		return "call"
	case CmdChangeBootMode:
		return "change boot mode"
	case CmdErase:
		return "erase"
	case CmdReset:
		return "reset"
	case CmdMemoryEnable:
		return "memory enable"
	case CmdProgramPersistentBits:
		return "program persistent bits"
	case CmdCheckFirmwareVersion:
		return "check firmware version"
	case CmdKeystoreToNonvolatile:
		return "keystore to nonvolatile"
	case CmdKeystoreFromNonvolatile:
		return "keystore from nonvolatile"
	default:
		return "unknown"
	}
}
