package command

func (Nop) raw() (RawBootCommand, []byte) {
	return NewRawBootCommand(CmdNop, 0, 0, 0, 0), nil
}

func (c Tag) raw() (RawBootCommand, []byte) {
	var flags uint16
	if c.Last {
		flags |= TagFlagLast
	}
	return NewRawBootCommand(CmdTag, flags, c.ID, c.CipherBlocks, c.Flags), nil
}

// The stored CRC covers the zero padding, the stored count does not.
func (c Load) raw() (RawBootCommand, []byte) {
	padded := Pad(c.Data)
	return NewRawBootCommand(CmdLoad, 0, c.Address, uint32(len(c.Data)), CRC32(padded)), padded
}

func (c Fill) raw() (RawBootCommand, []byte) {
	return NewRawBootCommand(CmdFill, 0, c.Address, c.Bytes, c.Pattern), nil
}

func (EraseAll) raw() (RawBootCommand, []byte) {
	return NewRawBootCommand(CmdErase, EraseFlagAll, 0, 0, 0), nil
}

func (c EraseRegion) raw() (RawBootCommand, []byte) {
	return NewRawBootCommand(CmdErase, 0, c.Address, c.Bytes, 0), nil
}

func (c CheckSecureFirmwareVersion) raw() (RawBootCommand, []byte) {
	return NewRawBootCommand(CmdCheckFirmwareVersion, 0, 0, c.Version, 0), nil
}

func (c CheckNonsecureFirmwareVersion) raw() (RawBootCommand, []byte) {
	return NewRawBootCommand(CmdCheckFirmwareVersion, 0, FirmwareVersionNonsecure, c.Version, 0), nil
}

// Pad returns data extended with zero bytes to a multiple of BlockSize.
// The result is always a new slice.
func Pad(data []byte) []byte {
	n := (len(data) + BlockSize - 1) / BlockSize * BlockSize
	padded := make([]byte, n)
	copy(padded, data)
	return padded
}

// Encode returns the wire form of cmd: its 16-byte record followed by the
// padded payload for Load commands.
//
// Example:
//
//	b := command.Encode(command.Load{Address: 0x10000, Data: fw})
func Encode(cmd BootCommand) []byte {
	r, payload := cmd.raw()
	out := make([]byte, 0, RawSize+len(payload))
	out = append(out, r.Bytes()...)
	return append(out, payload...)
}

// EncodeAll concatenates the wire forms of cmds.
func EncodeAll(cmds []BootCommand) []byte {
	var out []byte
	for _, c := range cmds {
		out = append(out, Encode(c)...)
	}
	return out
}
