package command

import "fmt"

// Decode decodes the command at the start of b.
// Returns the command and the number of bytes it occupies, including the
// padded payload of a Load. A Load with a zero byte count decodes with
// nil Data, so Load{Data: []byte{}} and Load{} encode and decode alike.
//
// Errors match ErrChecksumMismatch, ErrCRCMismatch, ErrUnsupportedCommand or
// ErrFraming with errors.Is.
func Decode(b []byte) (BootCommand, int, error) {
	r, err := ParseRawBootCommand(b)
	if err != nil {
		return nil, 0, err
	}

	switch r.Tag {
	case CmdNop:
		return Nop{}, RawSize, nil

	case CmdTag:
		return Tag{
			Last:         r.Flags&TagFlagLast != 0,
			ID:           r.Address,
			Flags:        r.Data,
			CipherBlocks: r.Count,
		}, RawSize, nil

	case CmdLoad:
		return decodeLoad(r, b[RawSize:])

	case CmdFill:
		return Fill{Address: r.Address, Bytes: r.Count, Pattern: r.Data}, RawSize, nil

	case CmdErase:
		if r.Flags&EraseFlagAllUnsecure != 0 {
			return nil, 0, &UnsupportedCommandError{Tag: r.Tag, Flags: r.Flags, Reason: "unsecure erase"}
		}
		if r.Flags&EraseMemoryIDMask != 0 {
			return nil, 0, &UnsupportedCommandError{Tag: r.Tag, Flags: r.Flags, Reason: "external memory"}
		}
		if r.Flags&EraseFlagAll != 0 {
			return EraseAll{}, RawSize, nil
		}
		return EraseRegion{Address: r.Address, Bytes: r.Count}, RawSize, nil

	case CmdCheckFirmwareVersion:
		if r.Address&FirmwareVersionNonsecure != 0 {
			return CheckNonsecureFirmwareVersion{Version: r.Count}, RawSize, nil
		}
		return CheckSecureFirmwareVersion{Version: r.Count}, RawSize, nil

	default:
		return nil, 0, &UnsupportedCommandError{Tag: r.Tag, Flags: r.Flags}
	}
}

func decodeLoad(r RawBootCommand, rest []byte) (BootCommand, int, error) {
	padded := (int(r.Count) + BlockSize - 1) / BlockSize * BlockSize
	if len(rest) < padded {
		return nil, 0, framingError("load at 0x%08X needs %d payload bytes, got %d", r.Address, padded, len(rest))
	}

	payload := rest[:padded]
	if crc := CRC32(payload); crc != r.Data {
		return nil, 0, &CRCError{Address: r.Address, Stored: r.Data, Computed: crc}
	}

	var data []byte
	if r.Count > 0 {
		data = make([]byte, r.Count)
		copy(data, payload)
	}
	return Load{Address: r.Address, Data: data}, RawSize + padded, nil
}

// DecodeAll decodes back-to-back commands until b is exhausted.
// A trailing fragment shorter than a record is a framing error. An empty b
// yields no commands and no error.
func DecodeAll(b []byte) ([]BootCommand, error) {
	var cmds []BootCommand
	for off := 0; off < len(b); {
		cmd, n, err := Decode(b[off:])
		if err != nil {
			return nil, fmt.Errorf("command %d at offset %d: %w", len(cmds), off, err)
		}
		cmds = append(cmds, cmd)
		off += n
	}
	return cmds, nil
}
