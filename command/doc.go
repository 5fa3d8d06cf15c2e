// Package command implements the boot command records carried inside LPC55
// secure binary (SB2) images.
//
// # Record Layout
//
// Every command starts with a 16-byte record:
//
//	[CHECKSUM][TAG][FLAGS(2)][ADDRESS(4)][COUNT(4)][DATA(4)]
//
// Where:
//   - CHECKSUM = 0x5A + sum of the other 15 bytes, modulo 256
//   - multi-byte fields are little-endian
//
// A Load record is followed by its payload, zero padded to a multiple of 16
// bytes. COUNT holds the unpadded length and DATA the CRC-32 of the padded
// payload.
//
// # Encoding
//
//	b := command.Encode(command.Fill{Address: 0x20000000, Bytes: 64, Pattern: 0xDEADBEEF})
//
// # Decoding
//
// Decode reads one command, DecodeAll a whole section:
//
//	cmds, err := command.DecodeAll(section)
//	if errors.Is(err, command.ErrCRCMismatch) {
//	    // payload corrupted
//	}
//
// Only Nop, Tag, Load, Fill, Erase and CheckFirmwareVersion are supported.
// Other tags fail with ErrUnsupportedCommand.
package command
