package command

import "fmt"

// BootCommand is one decoded boot command.
// The concrete types are Nop, Tag, Load, Fill, EraseAll, EraseRegion,
// CheckSecureFirmwareVersion and CheckNonsecureFirmwareVersion.
type BootCommand interface {
	fmt.Stringer

	// raw returns the record and the payload that follows it, if any.
	raw() (RawBootCommand, []byte)
}

// Nop does nothing.
type Nop struct{}

// Tag opens a section of the boot image.
type Tag struct {
	// Last is set on the final section of the image
	Last bool

	// ID identifies the section
	ID uint32

	// Flags holds the section flags
	Flags uint32

	// CipherBlocks is the section length in 16-byte blocks
	CipherBlocks uint32
}

// Load writes Data to Address.
type Load struct {
	// Address is the destination address
	Address uint32

	// Data is the payload without padding. Decode returns nil for an
	// empty payload.
	Data []byte
}

// Fill writes Bytes bytes of the repeating Pattern starting at Address.
type Fill struct {
	Address uint32
	Bytes   uint32
	Pattern uint32
}

// EraseAll erases the whole internal flash.
type EraseAll struct{}

// EraseRegion erases Bytes bytes starting at Address.
type EraseRegion struct {
	Address uint32
	Bytes   uint32
}

// CheckSecureFirmwareVersion aborts the update if the secure firmware
// version counter is above Version.
type CheckSecureFirmwareVersion struct {
	Version uint32
}

// CheckNonsecureFirmwareVersion is CheckSecureFirmwareVersion for the
// nonsecure counter.
type CheckNonsecureFirmwareVersion struct {
	Version uint32
}

func (Nop) String() string { return "Nop" }

func (c Tag) String() string {
	return fmt.Sprintf("Tag{last: %t, id: 0x%08X, flags: 0x%08X, cipher blocks: %d}", c.Last, c.ID, c.Flags, c.CipherBlocks)
}

func (c Load) String() string {
	return fmt.Sprintf("Load{address: 0x%08X, bytes: %d}", c.Address, len(c.Data))
}

func (c Fill) String() string {
	return fmt.Sprintf("Fill{address: 0x%08X, bytes: %d, pattern: 0x%08X}", c.Address, c.Bytes, c.Pattern)
}

func (EraseAll) String() string { return "EraseAll" }

func (c EraseRegion) String() string {
	return fmt.Sprintf("EraseRegion{address: 0x%08X, bytes: %d}", c.Address, c.Bytes)
}

func (c CheckSecureFirmwareVersion) String() string {
	return fmt.Sprintf("CheckSecureFirmwareVersion{version: %d}", c.Version)
}

func (c CheckNonsecureFirmwareVersion) String() string {
	return fmt.Sprintf("CheckNonsecureFirmwareVersion{version: %d}", c.Version)
}
