package model

import "github.com/hnimtadd/gridsync/ui/highlight"

// Glyph is one positioned glyph produced by the text shaper.
type Glyph struct {
	ID uint32
	// Cluster is the byte offset, within the item text, of the text the
	// glyph was produced from.
	Cluster  int
	XOffset  float64
	YOffset  float64
	XAdvance float64
}

// GlyphString is the shaper output for one item.
type GlyphString struct {
	Glyphs []Glyph
	// Width is the logical advance of the whole string in pixels.
	Width float64
	// InkLeft and InkRight are how far glyph ink reaches outside the
	// logical box on each side, in pixels. Repaints widen by this much.
	InkLeft  float64
	InkRight float64
}

// Item is a run of cells shaped as one unit.
type Item struct {
	// Offset and Length are the byte span of the run within the line's
	// styled text.
	Offset int
	Length int
	Text   string
	Font   highlight.FontAttrs

	StartCol int
	Cells    int

	// Glyphs is nil until the item has been shaped.
	Glyphs *GlyphString
}

// SameRun reports whether other covers the same text with the same font
// at the same columns, in which case existing glyphs can be kept.
func (it *Item) SameRun(other *Item) bool {
	return it.StartCol == other.StartCol &&
		it.Cells == other.Cells &&
		it.Text == other.Text &&
		it.Font == other.Font
}

// EndCol is the last column the item covers.
func (it *Item) EndCol() int {
	return it.StartCol + it.Cells - 1
}
