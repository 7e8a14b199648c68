// Package tui paints a grid on a terminal through tcell and feeds
// terminal input back to the grid's hooks.
package tui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/hnimtadd/gridsync/logger"
	"github.com/hnimtadd/gridsync/ui/grid"
	"github.com/hnimtadd/gridsync/ui/highlight"
	"github.com/hnimtadd/gridsync/ui/mode"
	"github.com/hnimtadd/gridsync/ui/model"
	"github.com/hnimtadd/gridsync/ui/render"
)

type Options struct {
	Logger logger.Logger
	// Grid is the grid shown on the screen. Defaults to grid.DefaultGrid.
	Grid uint64
}

// Renderer collects repaint requests for one grid and paints them on a
// tcell screen when Paint is called. It implements grid.Renderer and
// grid.CacheInvalidator.
type Renderer struct {
	screen tcell.Screen
	grids  *grid.Registry
	hl     *highlight.Map
	gridID uint64

	full  bool
	rects model.RectList

	styles map[*highlight.Highlight]tcell.Style

	logger logger.Logger
}

var (
	_ grid.Renderer         = (*Renderer)(nil)
	_ grid.CacheInvalidator = (*Renderer)(nil)
)

func New(screen tcell.Screen, grids *grid.Registry, hl *highlight.Map, opts Options) *Renderer {
	if opts.Grid == 0 {
		opts.Grid = grid.DefaultGrid
	}
	return &Renderer{
		screen: screen,
		grids:  grids,
		hl:     hl,
		gridID: opts.Grid,
		styles: make(map[*highlight.Highlight]tcell.Style),
		logger: logger.OrDefault(opts.Logger),
	}
}

func (r *Renderer) QueueDraw(id uint64) {
	if id != r.gridID {
		return
	}
	r.full = true
	r.rects = nil
}

func (r *Renderer) QueueDrawArea(id uint64, rect model.Rect, _ render.Area) {
	if id != r.gridID || r.full {
		return
	}
	r.rects.Join(rect)
}

// InvalidateCache drops resolved cell styles, used after the colours
// changed.
func (r *Renderer) InvalidateCache() {
	clear(r.styles)
}

// Pending reports whether a repaint is queued.
func (r *Renderer) Pending() bool {
	return r.full || len(r.rects) > 0
}

// Paint draws everything queued since the last Paint and shows it.
func (r *Renderer) Paint() {
	g, ok := r.grids.Get(r.gridID)
	if !ok {
		r.full, r.rects = false, nil
		return
	}
	m := g.Model()
	if r.full {
		_, bg, _ := r.hl.Defaults()
		r.screen.SetStyle(tcell.StyleDefault.Background(rgb(bg)))
		r.screen.Clear()
		if m.Rows > 0 && m.Cols > 0 {
			r.paintRect(m, model.NewRect(0, m.Rows-1, 0, m.Cols-1))
		}
	} else {
		for _, rect := range r.rects {
			r.paintRect(m, rect)
		}
	}
	r.full, r.rects = false, nil
	r.paintCursor(g)
	r.screen.Show()
}

func (r *Renderer) paintRect(m *model.Model, rect model.Rect) {
	for row := max(rect.Top, 0); row <= min(rect.Bot, m.Rows-1); row++ {
		line := m.Line(row)
		for col := max(rect.Left, 0); col <= min(rect.Right, m.Cols-1); col++ {
			cell := &line.Cells[col]
			if cell.Wide == model.WideSpacerTail {
				continue
			}
			mainc, combc := ' ', []rune(nil)
			if cell.Text != "" {
				runes := []rune(cell.Text)
				mainc, combc = runes[0], runes[1:]
			}
			r.screen.SetContent(col, row, mainc, combc, r.style(cell.HL))
		}
	}
}

func (r *Renderer) style(hl *highlight.Highlight) tcell.Style {
	if hl == nil {
		hl = r.hl.Default()
	}
	if st, ok := r.styles[hl]; ok {
		return st
	}
	st := tcell.StyleDefault.
		Foreground(rgb(r.hl.ActualFG(hl))).
		Background(rgb(r.hl.ActualBG(hl))).
		Bold(hl.Bold).
		Italic(hl.Italic).
		StrikeThrough(hl.Strikethrough)
	if hl.Underline || hl.Undercurl {
		st = st.Underline(true)
	}
	r.styles[hl] = st
	return st
}

func (r *Renderer) paintCursor(g *grid.Grid) {
	m := g.Model()
	if m.Rows == 0 || m.Cols == 0 {
		r.screen.HideCursor()
		return
	}
	row, col := g.Cursor()
	r.screen.ShowCursor(col, row)
	if info, ok := g.Mode().Info(); ok {
		r.screen.SetCursorStyle(cursorStyle(info))
	}
}

func cursorStyle(info mode.Info) tcell.CursorStyle {
	blink := info.Blinks()
	switch info.Shape {
	case mode.CursorShapeVertical:
		if blink {
			return tcell.CursorStyleBlinkingBar
		}
		return tcell.CursorStyleSteadyBar
	case mode.CursorShapeHorizontal:
		if blink {
			return tcell.CursorStyleBlinkingUnderline
		}
		return tcell.CursorStyleSteadyUnderline
	case mode.CursorShapeBlock:
		if blink {
			return tcell.CursorStyleBlinkingBlock
		}
		return tcell.CursorStyleSteadyBlock
	default:
		return tcell.CursorStyleDefault
	}
}
