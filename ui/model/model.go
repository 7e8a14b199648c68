package model

import (
	"iter"
	"strings"

	"github.com/hnimtadd/gridsync/ui/highlight"
	"github.com/hnimtadd/gridsync/ui/utils"
)

// Change describes what a write did to the cells it touched.
type Change uint8

const (
	ChangeNone Change = 0
	// ChangeStyle is set when a cell kept its text but got another
	// highlight.
	ChangeStyle Change = 1
	// ChangeText is set when any cell text changed.
	ChangeText Change = 2
)

// Model is the cell buffer of one grid. The number of rows and columns
// is fixed for the lifetime of the model; a resize replaces the model.
//
// Every mutation marks the touched cells and lines dirty, which tells the
// shaping pass what to regenerate, and records the touched area as
// damage, which tells the renderer what to repaint. Both are reset by
// their consumers.
type Model struct {
	Rows int
	Cols int

	lines []*Line

	// Dirty bits, one per row. A set bit means some cell on the row has
	// stale glyphs. False positives are allowed, false negatives are not.
	dirty *utils.StaticBitSet

	curRow int
	curCol int

	damage     RectList
	fullDamage bool
}

// New allocates a rows x cols model with every cell blank in hl.
func New(rows, cols int, hl *highlight.Highlight) *Model {
	rows, cols = max(rows, 0), max(cols, 0)
	m := &Model{
		Rows:       rows,
		Cols:       cols,
		lines:      make([]*Line, rows),
		dirty:      utils.NewStaticBitSetFull(rows),
		fullDamage: true,
	}
	for i := range m.lines {
		m.lines[i] = newLine(cols, hl)
	}
	return m
}

// Empty returns a model with no cells, used by grids that have not been
// resized yet.
func Empty() *Model {
	return New(0, 0, nil)
}

func (m *Model) Line(row int) *Line {
	utils.Assert(row >= 0 && row < m.Rows, "row out of range")
	return m.lines[row]
}

func (m *Model) Cell(row, col int) *Cell {
	utils.Assert(col >= 0 && col < m.Cols, "col out of range")
	return &m.Line(row).Cells[col]
}

func (m *Model) IsLineDirty(row int) bool {
	return m.dirty.IsSet(row)
}

func (m *Model) MarkLineDirty(row int) {
	m.dirty.Set(row)
}

func (m *Model) ClearLineDirty(row int) {
	m.dirty.Unset(row)
}

// DirtyLines yields the rows whose dirty bit is set.
func (m *Model) DirtyLines() iter.Seq[int] {
	return m.dirty.All()
}

// Put writes text with hl into repeat consecutive cells of row starting
// at col and returns how many cells were written along with what
// changed. Cells past the last column are dropped. Cells that already
// hold text in hl are left clean.
//
// An empty text is the placeholder after a double width cell; when the
// cell before it holds a wide glyph the placeholder becomes its spacer
// tail.
func (m *Model) Put(row, col int, text string, repeat int, hl *highlight.Highlight) (int, Change) {
	if row < 0 || row >= m.Rows || col < 0 || col >= m.Cols || repeat <= 0 {
		return 0, ChangeNone
	}
	n := min(repeat, m.Cols-col)
	line := m.lines[row]
	change := ChangeNone
	first, last := col, col+n-1

	wide := WideNarrow
	if isDoubleWidth(text) {
		wide = WideWide
	}
	for i := col; i < col+n; i++ {
		cell := &line.Cells[i]
		w := wide
		if w == WideWide && i == m.Cols-1 {
			// no room for the tail
			w = WideNarrow
		}
		if text == "" && i > 0 && line.Cells[i-1].Wide == WideWide {
			w = WideSpacerTail
		}
		switch {
		case cell.Text != text || cell.Wide != w:
			change |= ChangeText
		case cell.HL != hl:
			change |= ChangeStyle
		default:
			continue
		}
		// a narrow glyph over a former wide one orphans its tail
		if cell.Wide == WideWide && w != WideWide && i+1 < m.Cols &&
			line.Cells[i+1].Wide == WideSpacerTail {
			line.Cells[i+1].Wide = WideNarrow
			line.Cells[i+1].Dirty = true
			last = max(last, i+1)
		}
		// and anything over a tail leaves its head without one
		if cell.Wide == WideSpacerTail && w != WideSpacerTail && i > 0 &&
			line.Cells[i-1].Wide == WideWide {
			line.Cells[i-1].reset(line.Cells[i-1].HL)
			first = min(first, i-1)
		}
		cell.Text = text
		cell.HL = hl
		cell.Wide = w
		cell.Dirty = true
	}
	if change != ChangeNone {
		m.dirty.Set(row)
		m.addDamage(NewRect(row, row, first, last))
	}
	return n, change
}

// Scroll moves the content of the inclusive region [top,bot] x
// [left,right] up by count rows, or down when count is negative. Rows
// uncovered by the move are cleared to hl. It returns the region.
func (m *Model) Scroll(top, bot, left, right, count int, hl *highlight.Highlight) Rect {
	if m.Rows == 0 || m.Cols == 0 {
		return Rect{Top: 0, Bot: -1}
	}
	top, bot = max(top, 0), min(bot, m.Rows-1)
	left, right = max(left, 0), min(right, m.Cols-1)
	region := NewRect(top, bot, left, right)
	if region.IsEmpty() {
		return region
	}
	height := bot - top + 1
	count = utils.Clamp(count, -height, height)

	switch {
	case count > 0:
		for row := top; row <= bot-count; row++ {
			m.copyRow(row, count, left, right)
		}
		m.clearRegion(bot-count+1, bot, left, right, hl)
	case count < 0:
		for row := bot; row >= top-count; row-- {
			m.copyRow(row, count, left, right)
		}
		m.clearRegion(top, top-count-1, left, right, hl)
	}
	m.addDamage(region)
	return region
}

// copyRow copies columns [left,right] of row target+offset into target.
func (m *Model) copyRow(target, offset, left, right int) {
	src := m.lines[target+offset]
	dst := m.lines[target]
	copy(dst.Cells[left:right+1], src.Cells[left:right+1])
	for i := left; i <= right; i++ {
		dst.Cells[i].Dirty = true
	}
	dst.Unbind(left, right+1)
	m.dirty.Set(target)
}

func (m *Model) clearRegion(top, bot, left, right int, hl *highlight.Highlight) {
	for row := top; row <= bot; row++ {
		line := m.lines[row]
		for i := left; i <= right; i++ {
			line.Cells[i].reset(hl)
		}
		line.Unbind(left, right+1)
		m.dirty.Set(row)
	}
}

// Cursor returns the cursor position.
func (m *Model) Cursor() (row, col int) {
	return m.curRow, m.curCol
}

// CursorRect returns the cell under the cursor, widened to both halves
// when it sits on a double width glyph.
func (m *Model) CursorRect() Rect {
	r := Point(m.curRow, m.curCol)
	if m.Rows == 0 || m.Cols == 0 {
		return r
	}
	line := m.lines[m.curRow]
	switch line.Cells[m.curCol].Wide {
	case WideWide:
		r.Right = min(r.Right+1, m.Cols-1)
	case WideSpacerTail:
		r.Left = max(r.Left-1, 0)
	}
	return r
}

// SetCursor moves the cursor, clamped to the model bounds, and returns
// the cells that need repainting: the old cursor cell and the new one.
func (m *Model) SetCursor(row, col int) RectList {
	var damaged RectList
	damaged.Join(m.CursorRect())
	m.curRow = utils.Clamp(row, 0, max(m.Rows-1, 0))
	m.curCol = utils.Clamp(col, 0, max(m.Cols-1, 0))
	damaged.Join(m.CursorRect())
	m.damage.JoinAll(damaged)
	return damaged
}

// Clear blanks every cell with hl and marks every line dirty.
func (m *Model) Clear(hl *highlight.Highlight) {
	for row, line := range m.lines {
		for i := range line.Cells {
			line.Cells[i].reset(hl)
		}
		line.clearItems()
		m.dirty.Set(row)
	}
	m.fullDamage = true
}

// ClearGlyphs drops every shaped item and marks all cells dirty so the
// next shaping pass reshapes the whole model. Used after font changes.
func (m *Model) ClearGlyphs() {
	for row, line := range m.lines {
		line.clearItems()
		for i := range line.Cells {
			line.Cells[i].Dirty = true
		}
		m.dirty.Set(row)
	}
}

func (m *Model) addDamage(r Rect) {
	if m.fullDamage {
		return
	}
	m.damage.Join(r)
}

// TakeDamage returns the damage accumulated since the last call and
// resets it. full is true when the whole model must be repainted.
func (m *Model) TakeDamage() (full bool, rects RectList) {
	full, rects = m.fullDamage, m.damage
	m.fullDamage, m.damage = false, nil
	if full {
		rects = nil
	}
	return full, rects
}

// HasDamage reports whether anything was damaged since the last
// TakeDamage.
func (m *Model) HasDamage() bool {
	return m.fullDamage || len(m.damage) > 0
}

// String renders the visible text, one line per row.
func (m *Model) String() string {
	rows := make([]string, 0, m.Rows)
	for _, line := range m.lines {
		rows = append(rows, line.Text())
	}
	return strings.Join(rows, "\n")
}
