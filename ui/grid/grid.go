package grid

import (
	"fmt"
	"unicode/utf8"

	"github.com/hnimtadd/gridsync/logger"
	"github.com/hnimtadd/gridsync/rpc"
	"github.com/hnimtadd/gridsync/ui/highlight"
	"github.com/hnimtadd/gridsync/ui/mode"
	"github.com/hnimtadd/gridsync/ui/model"
	"github.com/hnimtadd/gridsync/ui/render"
	"golang.org/x/text/encoding/unicode"
)

// Grid is one rectangular screen region announced by the editor. It owns
// the cell model, the font state used to shape it and the cursor mode.
type Grid struct {
	id uint64

	model *model.Model
	font  *render.Context
	mode  *mode.State

	// nil once the grid is destroyed
	hooks *hooks

	logger logger.Logger
}

func (g *Grid) ID() uint64                   { return g.id }
func (g *Grid) Model() *model.Model          { return g.model }
func (g *Grid) FontContext() *render.Context { return g.font }
func (g *Grid) Mode() *mode.State            { return g.mode }

func (g *Grid) Cursor() (row, col int) {
	return g.model.Cursor()
}

// Resize replaces the model when the dimensions change. Resizing to the
// current size keeps content and cursor. New cells are blank in hl.
func (g *Grid) Resize(cols, rows int, hl *highlight.Highlight) bool {
	if g.model.Cols == cols && g.model.Rows == rows {
		return false
	}
	g.model = model.New(rows, cols, hl)
	return true
}

type cellRun struct {
	text   string
	hlID   highlight.ID
	repeat int
}

// decodeCells decodes the [text, hl_id?, repeat?] entries of a grid_line
// event. An omitted hl_id repeats the previous one, an omitted repeat is
// one. Repeats are capped one past cols, so an oversized run still
// reads as an overflow.
func decodeCells(cells []any, cols int) ([]cellRun, error) {
	runs := make([]cellRun, 0, len(cells))
	hlID := highlight.DefaultID
	for i, raw := range cells {
		entry, ok := rpc.AsArray(raw)
		if !ok || len(entry) == 0 {
			return nil, fmt.Errorf("cell %d: expected non-empty array", i)
		}
		text, ok := rpc.AsString(entry[0])
		if !ok {
			return nil, fmt.Errorf("cell %d: text is not a string", i)
		}
		if len(entry) > 1 {
			id, ok := rpc.AsUint(entry[1])
			if !ok {
				return nil, fmt.Errorf("cell %d: highlight id is not an integer", i)
			}
			hlID = highlight.ID(id)
		}
		repeat := uint64(1)
		if len(entry) > 2 {
			if repeat, ok = rpc.AsUint(entry[2]); !ok {
				return nil, fmt.Errorf("cell %d: repeat is not an integer", i)
			}
		}
		runs = append(runs, cellRun{text: sanitize(text), hlID: hlID, repeat: int(min(repeat, uint64(cols)+1))})
	}
	return runs, nil
}

// sanitize replaces invalid UTF-8 with U+FFFD.
func sanitize(text string) string {
	if utf8.ValidString(text) {
		return text
	}
	fixed, err := unicode.UTF8.NewDecoder().String(text)
	if err != nil {
		return string(utf8.RuneError)
	}
	return fixed
}

// Line applies a grid_line event: it writes the run-length encoded cells
// at row starting from colStart. The cells are decoded before anything is
// written, so a malformed event leaves the model untouched. It returns
// the rectangle covering the written cells and what changed in them.
func (g *Grid) Line(row, colStart int, cells []any, hls *highlight.Map) (model.Rect, model.Change, error) {
	runs, err := decodeCells(cells, g.model.Cols)
	if err != nil {
		return model.Rect{}, model.ChangeNone, err
	}
	change := model.ChangeNone
	col := colStart
	for _, run := range runs {
		_, c := g.model.Put(row, col, run.text, run.repeat, hls.Get(run.hlID))
		change |= c
		col += run.repeat
	}
	if col > g.model.Cols {
		g.logger.Warn("grid_line past last column",
			"grid", g.id, "row", row, "end", col, "cols", g.model.Cols)
	}
	return model.NewRect(row, row, colStart, min(col, g.model.Cols)-1), change, nil
}

// Scroll applies a grid_scroll event. bot and right are exclusive, as the
// editor sends them.
func (g *Grid) Scroll(top, bot, left, right, rows, cols int, hl *highlight.Highlight) model.Rect {
	if cols != 0 {
		g.logger.Debug("grid_scroll column shift ignored", "grid", g.id, "cols", cols)
	}
	return g.model.Scroll(top, bot-1, left, right-1, rows, hl)
}

func (g *Grid) CursorGoto(row, col int) model.RectList {
	return g.model.SetCursor(row, col)
}

func (g *Grid) Clear(hl *highlight.Highlight) {
	g.model.Clear(hl)
}

// ButtonPress forwards a button press to the registry's handler along
// with this grid's id.
func (g *Grid) ButtonPress(ev ButtonEvent) {
	if g.hooks == nil {
		return
	}
	if cb := g.hooks.load().buttonPress; cb != nil {
		cb(g.id, ev)
	}
}

func (g *Grid) ButtonRelease(ev ButtonEvent) {
	if g.hooks == nil {
		return
	}
	if cb := g.hooks.load().buttonRelease; cb != nil {
		cb(g.id, ev)
	}
}

func (g *Grid) Scrolled(ev ScrollEvent) {
	if g.hooks == nil {
		return
	}
	if cb := g.hooks.load().scroll; cb != nil {
		cb(g.id, ev)
	}
}

// KeyPress reports whether a handler consumed the key.
func (g *Grid) KeyPress(ev KeyEvent) bool {
	if g.hooks == nil {
		return false
	}
	if cb := g.hooks.load().keyPress; cb != nil {
		return cb(g.id, ev)
	}
	return false
}

func (g *Grid) KeyRelease(ev KeyEvent) bool {
	if g.hooks == nil {
		return false
	}
	if cb := g.hooks.load().keyRelease; cb != nil {
		return cb(g.id, ev)
	}
	return false
}
