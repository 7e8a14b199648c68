package model

import (
	"testing"

	"github.com/hnimtadd/gridsync/ui/highlight"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fill(m *Model, hl *highlight.Highlight) {
	for row := 0; row < m.Rows; row++ {
		for col := 0; col < m.Cols; col++ {
			m.Put(row, col, string(rune('a'+row)), 1, hl)
		}
	}
}

func TestNew(t *testing.T) {
	hl := &highlight.Highlight{}
	m := New(3, 4, hl)

	assert.Equal(t, 3, m.Rows)
	assert.Equal(t, 4, m.Cols)
	for row := range 3 {
		assert.True(t, m.IsLineDirty(row))
		assert.Equal(t, "    ", m.Line(row).Text())
		assert.Same(t, hl, m.Cell(row, 0).HL)
	}
	full, rects := m.TakeDamage()
	assert.True(t, full)
	assert.Empty(t, rects)
}

func TestPut(t *testing.T) {
	hl := &highlight.Highlight{}
	bold := &highlight.Highlight{Bold: true}

	t.Run("repeat fills identical cells", func(t *testing.T) {
		m := New(1, 6, hl)
		m.TakeDamage()

		n, change := m.Put(0, 1, "x", 3, bold)
		assert.Equal(t, 3, n)
		assert.Equal(t, ChangeText, change)
		assert.Equal(t, " xxx  ", m.Line(0).Text())
		for col := 1; col <= 3; col++ {
			assert.Same(t, bold, m.Cell(0, col).HL)
			assert.True(t, m.Cell(0, col).Dirty)
		}
		_, rects := m.TakeDamage()
		assert.Equal(t, RectList{NewRect(0, 0, 1, 3)}, rects)
	})

	t.Run("overflow is dropped", func(t *testing.T) {
		m := New(1, 4, hl)
		n, _ := m.Put(0, 2, "y", 10, hl)
		assert.Equal(t, 2, n)
		assert.Equal(t, "  yy", m.Line(0).Text())
	})

	t.Run("style only change", func(t *testing.T) {
		m := New(1, 2, hl)
		m.Put(0, 0, "a", 2, hl)
		_, change := m.Put(0, 0, "a", 2, bold)
		assert.Equal(t, ChangeStyle, change)
		_, change = m.Put(0, 0, "a", 2, bold)
		assert.Equal(t, ChangeNone, change)
	})

	t.Run("wide glyph and spacer", func(t *testing.T) {
		m := New(1, 4, hl)
		m.Put(0, 0, "啊", 1, hl)
		m.Put(0, 1, "", 1, hl)
		m.Put(0, 2, "b", 1, hl)

		assert.Equal(t, WideWide, m.Cell(0, 0).Wide)
		assert.Equal(t, WideSpacerTail, m.Cell(0, 1).Wide)
		assert.Equal(t, "啊b ", m.Line(0).Text())

		m.Put(0, 0, "c", 1, hl)
		assert.Equal(t, WideNarrow, m.Cell(0, 0).Wide)
		assert.Equal(t, WideNarrow, m.Cell(0, 1).Wide)
	})

	t.Run("narrow glyph over a spacer tail", func(t *testing.T) {
		m := New(1, 4, hl)
		m.Put(0, 0, "啊", 1, hl)
		m.Put(0, 1, "", 1, hl)
		m.Put(0, 2, "x", 1, hl)
		m.TakeDamage()

		_, change := m.Put(0, 1, "a", 1, hl)
		assert.Equal(t, ChangeText, change)
		assert.Equal(t, WideNarrow, m.Cell(0, 0).Wide)
		assert.True(t, m.Cell(0, 0).IsEmpty())
		assert.True(t, m.Cell(0, 0).Dirty)
		assert.Equal(t, WideNarrow, m.Cell(0, 1).Wide)
		assert.Equal(t, " ax ", m.Line(0).Text())

		_, rects := m.TakeDamage()
		assert.Equal(t, RectList{NewRect(0, 0, 0, 1)}, rects)
	})

	t.Run("wide glyph in the last column", func(t *testing.T) {
		m := New(1, 3, hl)
		m.Put(0, 2, "啊", 1, hl)
		assert.Equal(t, WideNarrow, m.Cell(0, 2).Wide)
		assert.Equal(t, "啊", m.Cell(0, 2).Text)
	})

	t.Run("out of range is ignored", func(t *testing.T) {
		m := New(1, 2, hl)
		n, change := m.Put(3, 0, "a", 1, hl)
		assert.Zero(t, n)
		assert.Equal(t, ChangeNone, change)
	})
}

func TestScroll(t *testing.T) {
	def := &highlight.Highlight{}
	text := &highlight.Highlight{Bold: true}

	t.Run("up", func(t *testing.T) {
		m := New(6, 12, def)
		fill(m, text)

		region := m.Scroll(0, 4, 0, 9, 2, def)
		assert.Equal(t, NewRect(0, 4, 0, 9), region)

		want := []string{
			"ccccccccccaa",
			"ddddddddddbb",
			"eeeeeeeeeecc",
			"          dd",
			"          ee",
			"ffffffffffff",
		}
		for row, line := range want {
			assert.Equal(t, line, m.Line(row).Text(), "row %d", row)
		}
		assert.Same(t, def, m.Cell(3, 0).HL)
		assert.Same(t, def, m.Cell(4, 9).HL)
		assert.Same(t, text, m.Cell(3, 10).HL)
	})

	t.Run("down", func(t *testing.T) {
		m := New(4, 2, def)
		fill(m, text)

		m.Scroll(1, 3, 0, 1, -1, def)
		assert.Equal(t, "aa\n  \nbb\ncc", m.String())
	})

	t.Run("count larger than region clears it", func(t *testing.T) {
		m := New(3, 2, def)
		fill(m, text)

		m.Scroll(0, 1, 0, 1, 5, def)
		assert.Equal(t, "  \n  \ncc", m.String())
	})

	t.Run("bounds are clamped", func(t *testing.T) {
		m := New(2, 2, def)
		fill(m, text)

		region := m.Scroll(-3, 10, -1, 10, 1, def)
		assert.Equal(t, NewRect(0, 1, 0, 1), region)
		assert.Equal(t, "bb\n  ", m.String())
	})
}

func TestSetCursor(t *testing.T) {
	m := New(3, 5, &highlight.Highlight{})
	m.TakeDamage()

	rects := m.SetCursor(2, 3)
	assert.Equal(t, RectList{Point(0, 0), Point(2, 3)}, rects)
	row, col := m.Cursor()
	assert.Equal(t, 2, row)
	assert.Equal(t, 3, col)

	m.SetCursor(100, -4)
	row, col = m.Cursor()
	assert.Equal(t, 2, row)
	assert.Equal(t, 0, col)

	// old and new cells touch, so they merge
	rects = m.SetCursor(2, 1)
	assert.Equal(t, RectList{NewRect(2, 2, 0, 1)}, rects)

	full, damage := m.TakeDamage()
	assert.False(t, full)
	assert.Equal(t, RectList{Point(0, 0), Point(2, 3), NewRect(2, 2, 0, 1)}, damage)
}

func TestClear(t *testing.T) {
	def := &highlight.Highlight{}
	m := New(2, 3, def)
	fill(m, &highlight.Highlight{Italic: true})
	m.Line(0).Bind(&Item{StartCol: 0, Cells: 3})
	for row := range 2 {
		m.ClearLineDirty(row)
	}
	m.TakeDamage()

	other := &highlight.Highlight{Reverse: true}
	m.Clear(other)

	assert.Equal(t, "   \n   ", m.String())
	assert.Same(t, other, m.Cell(1, 2).HL)
	assert.Nil(t, m.Line(0).ItemAt(1))
	assert.True(t, m.IsLineDirty(0))
	assert.True(t, m.IsLineDirty(1))
	full, _ := m.TakeDamage()
	assert.True(t, full)
}

func TestClearGlyphs(t *testing.T) {
	m := New(1, 3, &highlight.Highlight{})
	m.Line(0).Bind(&Item{StartCol: 1, Cells: 2})
	m.ClearLineDirty(0)
	m.Cell(0, 0).Dirty = false

	m.ClearGlyphs()
	assert.Empty(t, m.Line(0).Items())
	assert.True(t, m.IsLineDirty(0))
	assert.True(t, m.Cell(0, 0).Dirty)
}

func TestLineItems(t *testing.T) {
	line := newLine(5, nil)
	item := &Item{StartCol: 1, Cells: 3}
	line.Bind(item)

	require.Same(t, item, line.ItemAt(2))
	assert.True(t, line.IsBoundToItem(1))
	assert.False(t, line.IsBoundToItem(2))
	assert.Equal(t, 3, line.ItemLenFromIdx(1))
	assert.Zero(t, line.ItemLenFromIdx(0))
	assert.Equal(t, []*Item{item}, line.Items())
	assert.Nil(t, line.ItemAt(-1))
	assert.Nil(t, line.ItemAt(5))

	line.Unbind(0, 5)
	assert.Empty(t, line.Items())
}
