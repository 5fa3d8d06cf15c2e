package command

import (
	"bytes"
	"encoding/binary"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		cmd  BootCommand
	}{
		{name: "nop", cmd: Nop{}},
		{name: "tag last", cmd: Tag{Last: true, ID: 0, Flags: 1, CipherBlocks: 0x64B2}},
		{name: "tag not last", cmd: Tag{ID: 0x1234, Flags: 0x8000, CipherBlocks: 7}},
		{name: "load", cmd: Load{Address: 0x10000000, Data: []byte{1, 2, 3, 4, 5}}},
		{name: "fill", cmd: Fill{Address: 0x20000000, Bytes: 0x100, Pattern: 0xDEADBEEF}},
		{name: "erase all", cmd: EraseAll{}},
		{name: "erase region", cmd: EraseRegion{Address: 0, Bytes: 0x89800}},
		{name: "check secure version", cmd: CheckSecureFirmwareVersion{Version: 3}},
		{name: "check nonsecure version", cmd: CheckNonsecureFirmwareVersion{Version: 0xFFFFFFFF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Encode(tt.cmd)
			got, n, err := Decode(b)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if n != len(b) {
				t.Errorf("Decode() consumed %d bytes, want %d", n, len(b))
			}
			if diff := cmp.Diff(tt.cmd, got); diff != "" {
				t.Errorf("Decode(Encode()) mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncodeRecordFields(t *testing.T) {
	tests := []struct {
		name string
		cmd  BootCommand
		want RawBootCommand
	}{
		{
			name: "nop is all zero",
			cmd:  Nop{},
			want: RawBootCommand{Checksum: 0x5A},
		},
		{
			name: "tag",
			cmd:  Tag{Last: true, ID: 0, Flags: 1, CipherBlocks: 0x64B2},
			want: RawBootCommand{Checksum: 0x73, Tag: CmdTag, Flags: TagFlagLast, Count: 0x64B2, Data: 1},
		},
		{
			name: "erase all",
			cmd:  EraseAll{},
			want: RawBootCommand{Checksum: 0x62, Tag: CmdErase, Flags: EraseFlagAll},
		},
		{
			name: "nonsecure version",
			cmd:  CheckNonsecureFirmwareVersion{Version: 2},
			want: RawBootCommand{Checksum: 0x68, Tag: CmdCheckFirmwareVersion, Address: 1, Count: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRawBootCommand(Encode(tt.cmd))
			if err != nil {
				t.Fatalf("ParseRawBootCommand() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("record = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoadPadding(t *testing.T) {
	for _, size := range []int{0, 1, 15, 16, 17, 4096} {
		data := make([]byte, size)
		for i := range data {
			data[i] = byte(i) | 0x80
		}

		b := Encode(Load{Address: 0x1000, Data: data})

		padded := (size + 15) / 16 * 16
		if len(b) != RawSize+padded {
			t.Errorf("size %d: encoded length = %d, want %d", size, len(b), RawSize+padded)
		}
		if count := binary.LittleEndian.Uint32(b[8:12]); count != uint32(size) {
			t.Errorf("size %d: count = %d, want %d", size, count, size)
		}
		wantCRC := CRC32(append(append([]byte{}, data...), make([]byte, padded-size)...))
		if crc := binary.LittleEndian.Uint32(b[12:16]); crc != wantCRC {
			t.Errorf("size %d: crc = 0x%08X, want 0x%08X", size, crc, wantCRC)
		}
		if !bytes.Equal(b[RawSize+size:], make([]byte, padded-size)) {
			t.Errorf("size %d: padding is not zero", size)
		}

		got, _, err := Decode(b)
		if err != nil {
			t.Fatalf("size %d: Decode() error = %v", size, err)
		}
		if size == 0 {
			continue
		}
		if diff := cmp.Diff(Load{Address: 0x1000, Data: data}, got); diff != "" {
			t.Errorf("size %d: mismatch (-want +got):\n%s", size, diff)
		}
	}
}

func TestDecodeEmptyLoadHasNilData(t *testing.T) {
	for _, in := range []Load{{Address: 0x2000}, {Address: 0x2000, Data: []byte{}}} {
		got, n, err := Decode(Encode(in))
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		if n != RawSize {
			t.Errorf("Decode() consumed %d bytes, want %d", n, RawSize)
		}
		load, ok := got.(Load)
		if !ok {
			t.Fatalf("Decode() = %T, want Load", got)
		}
		if load.Data != nil {
			t.Errorf("Data = %#v, want nil", load.Data)
		}
		if load.Address != 0x2000 {
			t.Errorf("Address = 0x%X, want 0x2000", load.Address)
		}
	}
}

func TestDecodeKnownRecords(t *testing.T) {
	tests := []struct {
		name   string
		record []byte
		want   BootCommand
	}{
		{
			name:   "tag with high flag bits",
			record: []byte{0xF3, 0x01, 0x01, 0x80, 0x00, 0x00, 0x00, 0x00, 0xB2, 0x64, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00},
			want:   Tag{Last: true, ID: 0, Flags: 1, CipherBlocks: 0x64B2},
		},
		{
			name:   "erase region",
			record: []byte{0x01, 0x07, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x98, 0x08, 0x00, 0x00, 0x00, 0x00, 0x00},
			want:   EraseRegion{Address: 0, Bytes: 0x89800},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, n, err := Decode(tt.record)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if n != RawSize {
				t.Errorf("Decode() consumed %d bytes, want %d", n, RawSize)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	tamper := func(b []byte, i int) []byte {
		out := append([]byte{}, b...)
		out[i] ^= 0x01
		return out
	}
	load := Encode(Load{Address: 0x2000, Data: []byte("firmware payload")})

	tests := []struct {
		name    string
		input   []byte
		wantErr error
		errMsg  string
	}{
		{
			name:    "checksum byte flipped",
			input:   tamper(Encode(Fill{Address: 4, Bytes: 8, Pattern: 1}), 0),
			wantErr: ErrChecksumMismatch,
			errMsg:  "checksum mismatch",
		},
		{
			name:    "address byte flipped",
			input:   tamper(Encode(Fill{Address: 4, Bytes: 8, Pattern: 1}), 5),
			wantErr: ErrChecksumMismatch,
		},
		{
			name:    "load payload corrupted",
			input:   tamper(load, RawSize+3),
			wantErr: ErrCRCMismatch,
			errMsg:  "crc mismatch for load at 0x00002000",
		},
		{
			name:    "load padding corrupted",
			input:   tamper(Encode(Load{Address: 0x2000, Data: []byte{1}}), RawSize+15),
			wantErr: ErrCRCMismatch,
		},
		{
			name:    "load payload truncated",
			input:   load[:len(load)-1],
			wantErr: ErrFraming,
		},
		{
			name:    "short record",
			input:   make([]byte, RawSize-1),
			wantErr: ErrFraming,
		},
		{
			name:    "jump",
			input:   NewRawBootCommand(CmdJump, 0, 0x1000, 0, 0).Bytes(),
			wantErr: ErrUnsupportedCommand,
			errMsg:  "unsupported jump command (0x04)",
		},
		{
			name:    "unknown tag",
			input:   NewRawBootCommand(0x42, 0, 0, 0, 0).Bytes(),
			wantErr: ErrUnsupportedCommand,
		},
		{
			name:    "unsecure erase",
			input:   NewRawBootCommand(CmdErase, EraseFlagAll|EraseFlagAllUnsecure, 0, 0, 0).Bytes(),
			wantErr: ErrUnsupportedCommand,
			errMsg:  "unsecure erase",
		},
		{
			name:    "erase on external memory",
			input:   NewRawBootCommand(CmdErase, 0x0100, 0, 0x1000, 0).Bytes(),
			wantErr: ErrUnsupportedCommand,
			errMsg:  "external memory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Decode(tt.input)
			if err == nil {
				t.Fatal("Decode() expected error, got nil")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Decode() error = %v, want %v", err, tt.wantErr)
			}
			if tt.errMsg != "" && !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("Decode() error = %v, want error containing %q", err, tt.errMsg)
			}
		})
	}
}

func TestDecodeAll(t *testing.T) {
	cmds := []BootCommand{
		EraseRegion{Address: 0, Bytes: 0x8000},
		Load{Address: 0, Data: bytes.Repeat([]byte{0xA5}, 100)},
		Fill{Address: 0x1000, Bytes: 16, Pattern: 0xF1F1F1F1},
		CheckSecureFirmwareVersion{Version: 3},
		Nop{},
	}
	section := EncodeAll(cmds)

	got, err := DecodeAll(section)
	if err != nil {
		t.Fatalf("DecodeAll() error = %v", err)
	}
	if diff := cmp.Diff(cmds, got); diff != "" {
		t.Errorf("DecodeAll() mismatch (-want +got):\n%s", diff)
	}

	if got, err := DecodeAll(nil); err != nil || len(got) != 0 {
		t.Errorf("DecodeAll(nil) = %v, %v, want empty", got, err)
	}

	_, err = DecodeAll(append(section, 1, 2, 3, 4, 5))
	if !errors.Is(err, ErrFraming) {
		t.Errorf("DecodeAll() with trailing bytes error = %v, want %v", err, ErrFraming)
	}
}

func TestChecksumErrorHelpers(t *testing.T) {
	_, err := ParseRawBootCommand([]byte{0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0})
	if !IsChecksumError(err) {
		t.Fatalf("IsChecksumError(%v) = false, want true", err)
	}
	want := "checksum mismatch: record says 0x00, computed 0x5B"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func BenchmarkDecodeAll(b *testing.B) {
	section := EncodeAll([]BootCommand{
		EraseAll{},
		Load{Address: 0, Data: make([]byte, 4096)},
		Fill{Address: 0x1000, Bytes: 16, Pattern: 1},
	})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := DecodeAll(section); err != nil {
			b.Fatal(err)
		}
	}
}
