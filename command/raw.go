package command

import (
	"encoding/binary"
	"fmt"
)

// RawBootCommand is the fixed 16-byte record every boot command starts with.
//
// Record structure (little-endian):
//
//	[CHECKSUM][TAG][FLAGS(2)][ADDRESS(4)][COUNT(4)][DATA(4)]
type RawBootCommand struct {
	// Checksum is ChecksumSeed plus the byte sum of the other 15 bytes
	Checksum byte

	// Tag selects the command, see the Cmd* constants
	Tag byte

	// Flags holds command specific flag bits
	Flags uint16

	// Address is the target address or, for Tag, the section id
	Address uint32

	// Count is a byte length, a block count or a version depending on Tag
	Count uint32

	// Data is a CRC, a fill pattern or flags depending on Tag
	Data uint32
}

// NewRawBootCommand returns a record with the given fields and a valid checksum.
func NewRawBootCommand(tag byte, flags uint16, address, count, data uint32) RawBootCommand {
	r := RawBootCommand{Tag: tag, Flags: flags, Address: address, Count: count, Data: data}
	b := r.marshal()
	r.Checksum = Checksum(b[:])
	return r
}

func (r RawBootCommand) marshal() [RawSize]byte {
	var b [RawSize]byte
	b[0] = r.Checksum
	b[1] = r.Tag
	binary.LittleEndian.PutUint16(b[2:4], r.Flags)
	binary.LittleEndian.PutUint32(b[4:8], r.Address)
	binary.LittleEndian.PutUint32(b[8:12], r.Count)
	binary.LittleEndian.PutUint32(b[12:16], r.Data)
	return b
}

// Bytes returns the 16-byte wire form of the record.
// The checksum is written as stored; use NewRawBootCommand to compute it.
func (r RawBootCommand) Bytes() []byte {
	b := r.marshal()
	return b[:]
}

// ParseRawBootCommand decodes the first RawSize bytes of b and verifies the checksum.
func ParseRawBootCommand(b []byte) (RawBootCommand, error) {
	if len(b) < RawSize {
		return RawBootCommand{}, framingError("record needs %d bytes, got %d", RawSize, len(b))
	}

	r := RawBootCommand{
		Checksum: b[0],
		Tag:      b[1],
		Flags:    binary.LittleEndian.Uint16(b[2:4]),
		Address:  binary.LittleEndian.Uint32(b[4:8]),
		Count:    binary.LittleEndian.Uint32(b[8:12]),
		Data:     binary.LittleEndian.Uint32(b[12:16]),
	}

	if sum := Checksum(b[:RawSize]); sum != r.Checksum {
		return RawBootCommand{}, &ChecksumError{Stored: r.Checksum, Computed: sum}
	}

	return r, nil
}

func (r RawBootCommand) String() string {
	return fmt.Sprintf("%02X|%02X|%04X|%08X|%08X|%08X", r.Checksum, r.Tag, r.Flags, r.Address, r.Count, r.Data)
}
