package render

import (
	"strings"

	"github.com/hnimtadd/gridsync/ui/highlight"
	"github.com/hnimtadd/gridsync/ui/itemize"
	"github.com/hnimtadd/gridsync/ui/model"
)

// StyledLine is the text of one model line as the shaper sees it, with
// a mapping back from bytes to cells. Spacer tails contribute no text and
// blank cells contribute a space.
type StyledLine struct {
	Text string
	// ByteToCell holds the column of every byte of Text.
	ByteToCell []int
	// Attrs holds the font attributes of every byte of Text.
	Attrs []highlight.FontAttrs

	cellWidth []int
}

func NewStyledLine(line *model.Line, hl *highlight.Map) *StyledLine {
	var sb strings.Builder
	sl := &StyledLine{cellWidth: make([]int, line.Len())}
	for col := range line.Cells {
		cell := &line.Cells[col]
		sl.cellWidth[col] = cell.Width()
		if cell.Wide == model.WideSpacerTail {
			continue
		}
		text := cell.Text
		if text == "" {
			text = " "
		}
		h := cell.HL
		if h == nil {
			h = hl.Default()
		}
		attrs := h.FontAttrs()
		sb.WriteString(text)
		for range len(text) {
			sl.ByteToCell = append(sl.ByteToCell, col)
			sl.Attrs = append(sl.Attrs, attrs)
		}
	}
	sl.Text = sb.String()
	return sl
}

// Items itemizes the line and cuts runs further wherever the font
// attributes change. The returned items are unshaped.
func (sl *StyledLine) Items() []*model.Item {
	var items []*model.Item
	for off, n := range itemize.Itemize(sl.Text) {
		start := off
		for i := off + 1; i <= off+n; i++ {
			if i < off+n && sl.Attrs[i] == sl.Attrs[start] {
				continue
			}
			// never cut inside a cell
			if i < off+n && sl.ByteToCell[i] == sl.ByteToCell[i-1] {
				continue
			}
			items = append(items, sl.item(start, i-start))
			start = i
		}
	}
	return items
}

func (sl *StyledLine) item(off, n int) *model.Item {
	first := sl.ByteToCell[off]
	last := sl.ByteToCell[off+n-1]
	return &model.Item{
		Offset:   off,
		Length:   n,
		Text:     sl.Text[off : off+n],
		Font:     sl.Attrs[off],
		StartCol: first,
		Cells:    last + sl.cellWidth[last] - first,
	}
}
