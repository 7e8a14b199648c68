package rpc

import (
	"encoding/binary"
	"fmt"
)

// Splitter cuts a msgpack byte stream into whole top-level objects as
// the bytes arrive. Scanning resumes where the previous call stopped, so
// a message fed in many small chunks is walked once.
type Splitter struct {
	buf []byte
	// scanned prefix of buf
	pos int
	// items left in every container still open at pos
	open []int
}

// Write appends stream bytes.
func (s *Splitter) Write(p []byte) {
	s.buf = append(s.buf, p...)
}

// Buffered returns how many bytes wait for the rest of their message.
func (s *Splitter) Buffered() int { return len(s.buf) }

func (s *Splitter) Reset() {
	s.buf, s.pos, s.open = nil, 0, s.open[:0]
}

// Next returns the next complete object, or nil when more bytes are
// needed. The returned slice stays valid after later calls.
func (s *Splitter) Next() ([]byte, error) {
	for s.pos < len(s.buf) {
		size, items, ok, err := objectHeader(s.buf[s.pos:])
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
		if items > 0 {
			s.pos += size
			s.open = append(s.open, items)
			continue
		}
		if s.pos+size > len(s.buf) {
			return nil, nil
		}
		s.pos += size
		for len(s.open) > 0 {
			top := len(s.open) - 1
			if s.open[top]--; s.open[top] > 0 {
				break
			}
			s.open = s.open[:top]
		}
		if len(s.open) == 0 {
			msg := s.buf[:s.pos:s.pos]
			s.buf, s.pos = s.buf[s.pos:], 0
			if len(s.buf) == 0 {
				s.buf = nil
			}
			return msg, nil
		}
	}
	return nil, nil
}

// objectHeader sizes the object starting at b. Scalars report their
// whole encoded size; containers report the header size and how many
// objects follow them. ok is false while the header itself is
// incomplete.
func objectHeader(b []byte) (size, items int, ok bool, err error) {
	c := b[0]
	switch {
	case c <= 0x7f, c >= 0xe0, c == 0xc0, c == 0xc2, c == 0xc3:
		return 1, 0, true, nil
	case c <= 0x8f:
		return 1, 2 * int(c&0x0f), true, nil
	case c <= 0x9f:
		return 1, int(c & 0x0f), true, nil
	case c <= 0xbf:
		return 1 + int(c&0x1f), 0, true, nil
	}

	switch c {
	case 0xcc, 0xd0:
		return 2, 0, true, nil
	case 0xcd, 0xd1:
		return 3, 0, true, nil
	case 0xca, 0xce, 0xd2:
		return 5, 0, true, nil
	case 0xcb, 0xcf, 0xd3:
		return 9, 0, true, nil
	case 0xd4:
		return 3, 0, true, nil
	case 0xd5:
		return 4, 0, true, nil
	case 0xd6:
		return 6, 0, true, nil
	case 0xd7:
		return 10, 0, true, nil
	case 0xd8:
		return 18, 0, true, nil
	}

	var lenBytes, extra int
	switch c {
	case 0xc4, 0xd9:
		lenBytes = 1
	case 0xc5, 0xda:
		lenBytes = 2
	case 0xc6, 0xdb:
		lenBytes = 4
	case 0xc7:
		lenBytes, extra = 1, 1
	case 0xc8:
		lenBytes, extra = 2, 1
	case 0xc9:
		lenBytes, extra = 4, 1
	case 0xdc, 0xde:
		lenBytes = 2
	case 0xdd, 0xdf:
		lenBytes = 4
	default:
		return 0, 0, false, fmt.Errorf("rpc: unexpected msgpack code 0x%02x", c)
	}
	if len(b) < 1+lenBytes {
		return 0, 0, false, nil
	}
	var n int
	switch lenBytes {
	case 1:
		n = int(b[1])
	case 2:
		n = int(binary.BigEndian.Uint16(b[1:]))
	case 4:
		n = int(binary.BigEndian.Uint32(b[1:]))
	}
	header := 1 + lenBytes
	switch c {
	case 0xdc, 0xdd:
		return header, n, true, nil
	case 0xde, 0xdf:
		return header, 2 * n, true, nil
	}
	return header + extra + n, 0, true, nil
}
