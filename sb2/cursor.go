package sb2

import (
	"encoding/binary"
	"fmt"
)

// cursor reads little-endian fields from the front of an image.
// The first failure sticks: later reads return zero values and err keeps the
// first HeaderError.
type cursor struct {
	b   []byte
	off int
	err error
}

func newCursor(b []byte) *cursor {
	return &cursor{b: b}
}

func (c *cursor) failf(field string, off int, format string, args ...interface{}) {
	if c.err == nil {
		c.err = &HeaderError{Field: field, Offset: off, Reason: fmt.Sprintf(format, args...)}
	}
}

func (c *cursor) take(field string, n int) []byte {
	if c.err != nil {
		return nil
	}
	if n < 0 || len(c.b) < n {
		c.failf(field, c.off, "need %d bytes, %d left", n, len(c.b))
		return nil
	}
	v := c.b[:n]
	c.b = c.b[n:]
	c.off += n
	return v
}

func (c *cursor) u8(field string) byte {
	if v := c.take(field, 1); v != nil {
		return v[0]
	}
	return 0
}

func (c *cursor) u16(field string) uint16 {
	if v := c.take(field, 2); v != nil {
		return binary.LittleEndian.Uint16(v)
	}
	return 0
}

func (c *cursor) u32(field string) uint32 {
	if v := c.take(field, 4); v != nil {
		return binary.LittleEndian.Uint32(v)
	}
	return 0
}

func (c *cursor) u64(field string) uint64 {
	if v := c.take(field, 8); v != nil {
		return binary.LittleEndian.Uint64(v)
	}
	return 0
}

func (c *cursor) magic(field, want string) {
	off := c.off
	if v := c.take(field, len(want)); v != nil && string(v) != want {
		c.failf(field, off, "got %q, want %q", v, want)
	}
}

func (c *cursor) literal8(field string, want ...byte) byte {
	off := c.off
	v := c.u8(field)
	if c.err != nil {
		return 0
	}
	for _, w := range want {
		if v == w {
			return v
		}
	}
	c.failf(field, off, "got %d, want one of %v", v, want)
	return 0
}

func (c *cursor) literal16(field string, want uint16) uint16 {
	off := c.off
	v := c.u16(field)
	if c.err == nil && v != want {
		c.failf(field, off, "got %d, want %d", v, want)
	}
	return v
}

func (c *cursor) literal32(field string, want uint32) uint32 {
	off := c.off
	v := c.u32(field)
	if c.err == nil && v != want {
		c.failf(field, off, "got 0x%X, want 0x%X", v, want)
	}
	return v
}
