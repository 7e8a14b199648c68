package color

import "fmt"

// RGB is a 24-bit colour.
type RGB struct {
	R, G, B uint8
}

var (
	Black = RGB{0x00, 0x00, 0x00}
	White = RGB{0xFF, 0xFF, 0xFF}
	Red   = RGB{0xFF, 0x00, 0x00}
)

// FromPacked decodes the 0xRRGGBB integers the editor sends for colours.
func FromPacked(v uint64) RGB {
	return RGB{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}
}

// FromPackedSigned is FromPacked for signed values where a negative value
// means "not set"; ok is false in that case.
func FromPackedSigned(v int64) (RGB, bool) {
	if v < 0 {
		return RGB{}, false
	}
	return FromPacked(uint64(v)), true
}

// Packed returns the colour as 0xRRGGBB.
func (c RGB) Packed() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// Floats returns the channels scaled to [0, 1], the form most drawing
// surfaces take.
func (c RGB) Floats() (r, g, b float64) {
	return float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255
}

func (c RGB) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
