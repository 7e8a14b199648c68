package render

import "github.com/hnimtadd/gridsync/ui/model"

// Area is a rectangle in pixels.
type Area struct {
	X, Y, W, H float64
}

// ToArea converts a cell rectangle to pixels. Glyphs of the items at the
// left and right edges may draw outside their cells, so the area is
// widened by their ink overflow.
func ToArea(m *model.Model, r model.Rect, metrics CellMetrics) Area {
	a := Area{
		X: float64(r.Left) * metrics.CharWidth,
		Y: float64(r.Top) * metrics.LineHeight,
		W: float64(r.Cols()) * metrics.CharWidth,
		H: float64(r.Rows()) * metrics.LineHeight,
	}
	if m == nil || m.Rows == 0 || m.Cols == 0 {
		return a
	}
	var inkLeft, inkRight float64
	for row := max(r.Top, 0); row <= min(r.Bot, m.Rows-1); row++ {
		line := m.Line(row)
		if item := line.ItemAt(r.Left); item != nil && item.Glyphs != nil {
			inkLeft = max(inkLeft, item.Glyphs.InkLeft)
		}
		if item := line.ItemAt(r.Right); item != nil && item.Glyphs != nil {
			inkRight = max(inkRight, item.Glyphs.InkRight)
		}
	}
	a.X -= inkLeft
	a.W += inkLeft + inkRight
	return a
}
