package render

import (
	"github.com/hnimtadd/gridsync/ui/highlight"
	"github.com/hnimtadd/gridsync/ui/model"
)

// ShapeDirty brings the glyphs of every dirty line of m up to date and
// returns how many items were shaped. Clean lines are skipped, so a
// second call without mutations in between does nothing.
func ShapeDirty(ctx *Context, m *model.Model, hl *highlight.Map) int {
	shaped := 0
	for row := range m.DirtyLines() {
		line := m.Line(row)
		styled := NewStyledLine(line, hl)
		merge(line, styled.Items())

		var last *model.Item
		for col := range line.Cells {
			cell := &line.Cells[col]
			if !cell.Dirty {
				continue
			}
			cell.Dirty = false
			item := line.ItemAt(col)
			if item == nil || item == last {
				continue
			}
			item.Glyphs = ctx.Shape(item.Text, item.Font)
			last = item
			shaped++
		}
		m.ClearLineDirty(row)
	}
	return shaped
}

// merge rebinds the line to items. An item that matches the one
// already bound at its columns is dropped so the bound one keeps its
// glyphs; any other item replaces what was there and its cells are
// marked dirty so the caller shapes it. Columns no item covers are
// unbound.
func merge(line *model.Line, items []*model.Item) {
	col := 0
	for _, item := range items {
		line.Unbind(col, item.StartCol)
		col = item.StartCol + item.Cells

		if old := line.ItemAt(item.StartCol); old != nil && old.SameRun(item) {
			if line.ItemLenFromIdx(item.StartCol) == item.Cells {
				old.Offset = item.Offset
				continue
			}
		}
		line.Bind(item)
		for i := item.StartCol; i < col && i < line.Len(); i++ {
			line.Cells[i].Dirty = true
		}
	}
	line.Unbind(col, line.Len())
}
