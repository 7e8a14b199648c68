package model

import "fmt"

// Rect is a region of the grid in cell coordinates. All four bounds are
// inclusive.
type Rect struct {
	Top   int
	Bot   int
	Left  int
	Right int
}

func NewRect(top, bot, left, right int) Rect {
	return Rect{Top: top, Bot: bot, Left: left, Right: right}
}

// Point returns the one cell rectangle at (row, col).
func Point(row, col int) Rect {
	return Rect{Top: row, Bot: row, Left: col, Right: col}
}

func (r Rect) String() string {
	return fmt.Sprintf("[%d,%d]x[%d,%d]", r.Top, r.Bot, r.Left, r.Right)
}

func (r Rect) IsEmpty() bool {
	return r.Top > r.Bot || r.Left > r.Right
}

func (r Rect) Rows() int { return r.Bot - r.Top + 1 }
func (r Rect) Cols() int { return r.Right - r.Left + 1 }

// Join grows r to the bounding box of r and other.
func (r *Rect) Join(other Rect) {
	r.Top = min(r.Top, other.Top)
	r.Bot = max(r.Bot, other.Bot)
	r.Left = min(r.Left, other.Left)
	r.Right = max(r.Right, other.Right)
}

// Touches reports whether r and other overlap or share an edge.
func (r Rect) Touches(other Rect) bool {
	return r.Top <= other.Bot+1 && other.Top <= r.Bot+1 &&
		r.Left <= other.Right+1 && other.Left <= r.Right+1
}

// ExtendByItems grows the rectangle sideways so it never cuts a shaped
// item in half. Rows are visited until no further growth happens, since
// widening one row can reach an item on another.
func (r *Rect) ExtendByItems(m *Model) {
	if m == nil || m.Rows == 0 || m.Cols == 0 {
		return
	}
	top := max(r.Top, 0)
	bot := min(r.Bot, m.Rows-1)
	for changed := true; changed; {
		changed = false
		for row := top; row <= bot; row++ {
			line := m.lines[row]
			if r.Left >= 0 && r.Left < m.Cols {
				if item := line.ItemAt(r.Left); item != nil && item.StartCol < r.Left {
					r.Left = item.StartCol
					changed = true
				}
			}
			if r.Right >= 0 && r.Right < m.Cols {
				if item := line.ItemAt(r.Right); item != nil && item.EndCol() > r.Right {
					r.Right = min(item.EndCol(), m.Cols-1)
					changed = true
				}
			}
		}
	}
}

// RectList is a set of damaged rectangles. Rectangles that touch are
// merged on insert.
type RectList []Rect

// Join adds rect to the list, merging it with every rectangle it
// touches.
func (l *RectList) Join(rect Rect) {
	if rect.IsEmpty() {
		return
	}
	list := *l
	for i := 0; i < len(list); {
		if list[i].Touches(rect) {
			rect.Join(list[i])
			list = append(list[:i], list[i+1:]...)
			// the grown rect may now touch earlier entries
			i = 0
			continue
		}
		i++
	}
	*l = append(list, rect)
}

// JoinAll adds every rectangle of other.
func (l *RectList) JoinAll(other RectList) {
	for _, r := range other {
		l.Join(r)
	}
}

// ExtendByItems applies Rect.ExtendByItems to each rectangle.
func (l RectList) ExtendByItems(m *Model) {
	for i := range l {
		l[i].ExtendByItems(m)
	}
}
