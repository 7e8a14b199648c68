package model

import (
	"strings"

	"github.com/hnimtadd/gridsync/ui/highlight"
)

// Line is one row of cells plus the shaped items bound to its columns.
// Several adjacent columns may share one item.
type Line struct {
	Cells []Cell
	items []*Item
}

func newLine(cols int, hl *highlight.Highlight) *Line {
	l := &Line{
		Cells: make([]Cell, cols),
		items: make([]*Item, cols),
	}
	for i := range l.Cells {
		l.Cells[i].reset(hl)
	}
	return l
}

func (l *Line) Len() int {
	return len(l.Cells)
}

// ItemAt returns the item bound to col, or nil.
func (l *Line) ItemAt(col int) *Item {
	if col < 0 || col >= len(l.items) {
		return nil
	}
	return l.items[col]
}

// IsBoundToItem reports whether col starts a bound item.
func (l *Line) IsBoundToItem(col int) bool {
	item := l.ItemAt(col)
	return item != nil && item.StartCol == col
}

// ItemLenFromIdx returns how many columns the item starting at col
// covers, or 0 when col doesn't start one.
func (l *Line) ItemLenFromIdx(col int) int {
	if !l.IsBoundToItem(col) {
		return 0
	}
	return l.items[col].Cells
}

// Bind attaches item to every column it spans, replacing whatever was
// bound there.
func (l *Line) Bind(item *Item) {
	end := min(item.StartCol+item.Cells, len(l.items))
	for col := max(item.StartCol, 0); col < end; col++ {
		l.items[col] = item
	}
}

// Unbind detaches columns [start, end) from their items.
func (l *Line) Unbind(start, end int) {
	end = min(end, len(l.items))
	for col := max(start, 0); col < end; col++ {
		l.items[col] = nil
	}
}

// Items yields each distinct bound item once, left to right.
func (l *Line) Items() []*Item {
	var out []*Item
	for col, item := range l.items {
		if item != nil && item.StartCol == col {
			out = append(out, item)
		}
	}
	return out
}

func (l *Line) clearItems() {
	clear(l.items)
}

// Text returns the visible text of the line: blank cells become spaces,
// spacer tails are skipped.
func (l *Line) Text() string {
	var sb strings.Builder
	for i := range l.Cells {
		c := &l.Cells[i]
		switch {
		case c.Wide == WideSpacerTail:
		case c.IsEmpty():
			sb.WriteByte(' ')
		default:
			sb.WriteString(c.Text)
		}
	}
	return sb.String()
}
