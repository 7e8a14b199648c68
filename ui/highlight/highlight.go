package highlight

import (
	"fmt"

	"github.com/hnimtadd/gridsync/rpc"
	"github.com/hnimtadd/gridsync/ui/color"
	"github.com/hnimtadd/gridsync/ui/utils"
	"github.com/mitchellh/hashstructure/v2"
)

// ID identifies a highlight definition. Zero is always the default
// highlight so no lookup is required for it.
type ID uint64

const DefaultID ID = 0

// Highlight is the resolved style attached to grid cells.
type Highlight struct {
	Foreground Color
	Background Color
	Special    Color

	Bold          bool
	Italic        bool
	Underline     bool
	Undercurl     bool
	Strikethrough bool
	Reverse       bool

	// Blend is the transparency level of floating windows, 0 to 100.
	Blend uint8
}

// FromAttrs builds a highlight from the rgb attribute map of an
// hl_attr_define event. Unknown keys are ignored since newer editor
// versions keep adding attributes.
func FromAttrs(attrs rpc.Map) (*Highlight, error) {
	hl := &Highlight{}
	for key, value := range attrs {
		var err error
		switch key {
		case "foreground":
			hl.Foreground, err = colorAttr(key, value)
		case "background":
			hl.Background, err = colorAttr(key, value)
		case "special":
			hl.Special, err = colorAttr(key, value)
		case "bold":
			hl.Bold, err = boolAttr(key, value)
		case "italic":
			hl.Italic, err = boolAttr(key, value)
		case "underline":
			hl.Underline, err = boolAttr(key, value)
		case "undercurl":
			hl.Undercurl, err = boolAttr(key, value)
		case "strikethrough":
			hl.Strikethrough, err = boolAttr(key, value)
		case "reverse":
			hl.Reverse, err = boolAttr(key, value)
		case "blend":
			n, ok := rpc.AsUint(value)
			if !ok {
				err = fmt.Errorf("highlight: %s is not an unsigned integer: %v", key, value)
			}
			hl.Blend = uint8(utils.Clamp(n, 0, 100))
		}
		if err != nil {
			return nil, err
		}
	}
	return hl, nil
}

func colorAttr(key string, value any) (Color, error) {
	n, ok := rpc.AsUint(value)
	if !ok {
		return Color{}, fmt.Errorf("highlight: %s is not a colour: %v", key, value)
	}
	return RGB(color.FromPacked(n)), nil
}

func boolAttr(key string, value any) (bool, error) {
	b, ok := rpc.AsBool(value)
	if !ok {
		return false, fmt.Errorf("highlight: %s is not a boolean: %v", key, value)
	}
	return b, nil
}

func (h *Highlight) IsDefault() bool {
	return *h == Highlight{}
}

func (h Highlight) Hash() uint64 {
	hashed, err := hashstructure.Hash(h, hashstructure.FormatV2, nil)
	utils.Assert(err == nil, fmt.Sprintf("failed to hash highlight: %v", err))
	return hashed
}

// FontAttrs returns the part of the highlight that changes glyph
// selection. Colours never affect shaping.
func (h *Highlight) FontAttrs() FontAttrs {
	return FontAttrs{Bold: h.Bold, Italic: h.Italic}
}

// FontAttrs is the subset of a highlight relevant to the text shaper.
type FontAttrs struct {
	Bold   bool
	Italic bool
}

// Color is an optional colour. A highlight that doesn't set a colour
// inherits the default one.
type Color struct {
	Type ColorType
	RGB  color.RGB
}

func RGB(c color.RGB) Color {
	return Color{Type: ColorTypeRGB, RGB: c}
}

func (c Color) IsSet() bool {
	return c.Type == ColorTypeRGB
}

func (c Color) String() string {
	switch c.Type {
	case ColorTypeNone:
		return "Color.none"
	case ColorTypeRGB:
		return fmt.Sprintf("Color.rgb{{ %d, %d, %d }}", c.RGB.R, c.RGB.G, c.RGB.B)
	default:
		return "Color.unknown"
	}
}

type ColorType int

const (
	ColorTypeNone ColorType = iota
	ColorTypeRGB
)
