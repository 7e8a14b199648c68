package model

import (
	"github.com/hnimtadd/gridsync/ui/highlight"
	dw "github.com/mattn/go-runewidth"
)

type Wide int

const (
	// Not a wide character, cell width 1.
	WideNarrow Wide = iota

	// Wide character, cell width 2. Always followed by a spacer tail.
	WideWide

	// Spacer after a wide character. Holds no text and is drawn as part
	// of the cell before it.
	WideSpacerTail
)

type Cell struct {
	// Text is one grapheme cluster, or empty for a blank cell.
	Text string
	HL   *highlight.Highlight
	Wide Wide

	// Dirty is set when the glyphs bound to this cell may be stale.
	Dirty bool
}

func (c *Cell) IsEmpty() bool {
	return c.Text == ""
}

// HasText reports whether the cell has something other than whitespace
// to draw.
func (c *Cell) HasText() bool {
	return c.Text != "" && c.Text != " "
}

// Width is the number of grid columns the cell's glyph covers.
func (c *Cell) Width() int {
	switch c.Wide {
	case WideWide:
		return 2
	default:
		return 1
	}
}

func (c *Cell) reset(hl *highlight.Highlight) {
	*c = Cell{HL: hl, Dirty: true}
}

// isDoubleWidth reports whether text occupies two columns in a
// monospace grid. ASCII is always narrow so it skips the width tables.
func isDoubleWidth(text string) bool {
	if len(text) == 1 {
		return false
	}
	return dw.StringWidth(text) == 2
}
