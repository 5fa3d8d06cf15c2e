package sb2

import (
	"math"
	"strings"
	"testing"
	"time"
)

// Header of an SB2.1 container produced by elftosb for an LPC55S69.
const capturedHeader = "" +
	"6dd2d1ac6b1482cd2f03952acb485b06" +
	"0000000053544d500201080024650000" +
	"6e00000000000000d000000006000800" +
	"050001007374676c80007efe4b550200" +
	"00000000000000000000000000000000" +
	"0000000000000000010000009fab656b"

func TestParseHeaderCaptured(t *testing.T) {
	c := newCursor(mustHex(t, capturedHeader))
	h := parseHeader(c)
	if c.err != nil {
		t.Fatalf("parseHeader() error = %v", c.err)
	}
	if c.off != HeaderSize {
		t.Errorf("parseHeader() consumed %d bytes, want %d", c.off, HeaderSize)
	}

	if h.Nonce != [4]uint32{0xACD1D26D, 0xCD82146B, 0x2A95032F, 0x065B48CB} {
		t.Errorf("Nonce = %X", h.Nonce)
	}
	if h.Minor != 1 {
		t.Errorf("Minor = %d, want 1", h.Minor)
	}
	if h.Flags != 8 {
		t.Errorf("Flags = %d, want 8", h.Flags)
	}
	if h.ImageBlocks != 25892 {
		t.Errorf("ImageBlocks = %d, want 25892", h.ImageBlocks)
	}
	if h.BootTagOffsetBlocks != 110 {
		t.Errorf("BootTagOffsetBlocks = %d, want 110", h.BootTagOffsetBlocks)
	}
	if h.CertBlockHeaderOffset != 0xD0 {
		t.Errorf("CertBlockHeaderOffset = 0x%X, want 0xD0", h.CertBlockHeaderOffset)
	}
	if h.BuildNumber != 1 {
		t.Errorf("BuildNumber = %d, want 1", h.BuildNumber)
	}
	if got := h.ProductVersion.String(); got != "0.0.0" {
		t.Errorf("ProductVersion = %s, want 0.0.0", got)
	}
	if got, want := h.Time(), time.Date(2020, 10, 23, 2, 20, 34, 0, time.UTC); !got.Equal(want) {
		t.Errorf("Time() = %s, want %s", got, want)
	}
	if !strings.Contains(h.String(), "2020-10-23T02:20:34Z") {
		t.Errorf("String() = %q, want the creation time", h.String())
	}
}

func TestHeaderTime(t *testing.T) {
	tests := []struct {
		name      string
		timestamp uint64
		want      time.Time
	}{
		{"epoch", 0, Epoch},
		{"sub-second", 1_500_000, Epoch.Add(1500 * time.Millisecond)},
		{"one day", uint64(24 * time.Hour / time.Microsecond), time.Date(2000, 1, 2, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &Header{Timestamp: tt.timestamp}
			if got := h.Time(); !got.Equal(tt.want) {
				t.Errorf("Time() = %s, want %s", got, tt.want)
			}
		})
	}
}

// A timestamp past what time.Duration can hold must not wrap around.
func TestHeaderTimeMaxTimestamp(t *testing.T) {
	h := &Header{Timestamp: math.MaxUint64}
	got := h.Time()
	if got.Before(Epoch) {
		t.Fatalf("Time() = %s is before the epoch", got)
	}
	// 18446744073709 seconds after 2000-01-01 falls on January 18, 586554.
	if got.Year() != 586554 || got.Month() != time.January || got.Day() != 18 {
		t.Errorf("Time() = %04d-%02d-%02d, want 586554-01-18", got.Year(), got.Month(), got.Day())
	}
	if got.Nanosecond() != 551615000 {
		t.Errorf("Time().Nanosecond() = %d, want 551615000", got.Nanosecond())
	}
}
