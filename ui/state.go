// Package ui holds the mirrored editor screen: every grid, the highlight
// table and the cursor modes, kept up to date from redraw events.
package ui

import (
	"fmt"
	"strconv"

	"github.com/hnimtadd/gridsync/logger"
	"github.com/hnimtadd/gridsync/rpc"
	"github.com/hnimtadd/gridsync/ui/color"
	"github.com/hnimtadd/gridsync/ui/grid"
	"github.com/hnimtadd/gridsync/ui/handler"
	"github.com/hnimtadd/gridsync/ui/highlight"
	"github.com/hnimtadd/gridsync/ui/mode"
	"github.com/hnimtadd/gridsync/ui/model"
	"github.com/hnimtadd/gridsync/ui/render"
)

type Options struct {
	Logger   logger.Logger
	Renderer grid.Renderer
	Shaper   render.Shaper
	// Font defaults to render.DefaultFont.
	Font      string
	Features  render.FontFeatures
	LineSpace int
}

// State is the handler for the redraw reducer. It is stateful and is
// expected to live as long as the connection to the editor.
//
// State is not safe for concurrent use. Events of a batch are applied in
// order from one goroutine, and the renderer reads grids only after
// Flush.
type State struct {
	grids *grid.Registry
	hl    *highlight.Map
	mode  *mode.State

	mouse bool
	busy  bool
	// options holds the last value of every option_set
	options map[string]any

	// set when the default colours changed since the last flush
	paletteChanged bool

	logger logger.Logger
}

var (
	_ handler.GridLineHandler  = (*State)(nil)
	_ handler.GridHandler      = (*State)(nil)
	_ handler.CursorHandler    = (*State)(nil)
	_ handler.ScrollHandler    = (*State)(nil)
	_ handler.HighlightHandler = (*State)(nil)
	_ handler.ModeHandler      = (*State)(nil)
	_ handler.OptionHandler    = (*State)(nil)
	_ handler.MouseHandler     = (*State)(nil)
	_ handler.BusyHandler      = (*State)(nil)
)

func NewState(opts Options) *State {
	log := logger.OrDefault(opts.Logger)
	return &State{
		grids: grid.NewRegistry(grid.Options{
			Logger:    log,
			Renderer:  opts.Renderer,
			Shaper:    opts.Shaper,
			Font:      opts.Font,
			Features:  opts.Features,
			LineSpace: opts.LineSpace,
		}),
		hl:      highlight.NewMap(),
		mode:    mode.NewState(),
		options: make(map[string]any),
		logger:  log,
	}
}

func (s *State) Grids() *grid.Registry      { return s.grids }
func (s *State) Highlights() *highlight.Map { return s.hl }
func (s *State) Mode() *mode.State          { return s.mode }
func (s *State) MouseEnabled() bool         { return s.mouse }
func (s *State) Busy() bool                 { return s.busy }

func (s *State) Option(name string) (any, bool) {
	v, ok := s.options[name]
	return v, ok
}

// lookup resolves a grid for a mutation. Unknown grids are logged and
// reported as missing.
func (s *State) lookup(event string, id uint64) (*grid.Grid, bool) {
	g, err := s.grids.Lookup(id)
	if err != nil {
		s.logger.Warn("event for unknown grid", "event", event, "grid", id, "error", err)
		return nil, false
	}
	return g, true
}

func (s *State) GridLine(gridID, row, colStart uint64, cells []any) (handler.RedrawMode, error) {
	g := s.grids.GetOrCreate(gridID)
	_, change, err := g.Line(int(row), int(colStart), cells, s.hl)
	if err != nil {
		return handler.RedrawNothing, err
	}
	switch {
	case change&model.ChangeText != 0:
		return handler.RedrawAll, nil
	case change&model.ChangeStyle != 0:
		return handler.RedrawClearCache, nil
	default:
		return handler.RedrawNothing, nil
	}
}

func (s *State) GridResize(gridID, width, height uint64) handler.RedrawMode {
	g := s.grids.GetOrCreate(gridID)
	g.Resize(int(width), int(height), s.hl.Default())
	return handler.RedrawAll
}

func (s *State) GridClear(gridID uint64) handler.RedrawMode {
	g, ok := s.lookup("grid_clear", gridID)
	if !ok {
		return handler.RedrawNothing
	}
	g.Clear(s.hl.Default())
	return handler.RedrawAll
}

func (s *State) GridDestroy(gridID uint64) handler.RedrawMode {
	s.grids.Destroy(gridID)
	return handler.RedrawAll
}

func (s *State) GridCursorGoto(gridID, row, col uint64) handler.RedrawMode {
	g, ok := s.lookup("grid_cursor_goto", gridID)
	if !ok {
		return handler.RedrawNothing
	}
	g.CursorGoto(int(row), int(col))
	return handler.RedrawCursor
}

func (s *State) GridScroll(gridID, top, bot, left, right uint64, rows, cols int64) handler.RedrawMode {
	g, ok := s.lookup("grid_scroll", gridID)
	if !ok {
		return handler.RedrawNothing
	}
	g.Scroll(int(top), int(bot), int(left), int(right), int(rows), int(cols), s.hl.Default())
	return handler.RedrawAll
}

func (s *State) HlAttrDefine(id uint64, rgbAttrs rpc.Map, _ any, _ any) (handler.RedrawMode, error) {
	hl, err := highlight.FromAttrs(rgbAttrs)
	if err != nil {
		return handler.RedrawNothing, err
	}
	s.hl.Set(highlight.ID(id), hl)
	return handler.RedrawClearCache, nil
}

func (s *State) DefaultColorsSet(fg, bg, sp, _, _ int64) handler.RedrawMode {
	s.hl.SetDefaults(packed(fg), packed(bg), packed(sp))
	s.paletteChanged = true
	return handler.RedrawClearCache
}

// packed decodes a colour where negative means unset.
func packed(v int64) *color.RGB {
	c, ok := color.FromPackedSigned(v)
	if !ok {
		return nil
	}
	return &c
}

func (s *State) ModeChange(name string, idx uint64) handler.RedrawMode {
	s.mode.Update(name, int(idx))
	s.grids.UpdateMode(name, int(idx))
	return handler.RedrawCursor
}

func (s *State) ModeInfoSet(cursorStyleEnabled bool, rawInfos []any) (handler.RedrawMode, error) {
	infos := make([]mode.Info, 0, len(rawInfos))
	for i, raw := range rawInfos {
		m, ok := rpc.AsMap(raw)
		if !ok {
			return handler.RedrawNothing, fmt.Errorf("mode info %d: expected map", i)
		}
		info, err := mode.InfoFromMap(m)
		if err != nil {
			return handler.RedrawNothing, fmt.Errorf("mode info %d: %w", i, err)
		}
		infos = append(infos, info)
	}
	s.mode.SetInfo(cursorStyleEnabled, infos)
	s.grids.SetCursorInfo(cursorStyleEnabled, infos)
	return handler.RedrawCursor, nil
}

func (s *State) OptionSet(name string, value any) handler.RedrawMode {
	s.options[name] = value
	switch name {
	case "linespace":
		space, ok := rpc.AsInt(value)
		if !ok {
			s.logger.Warn("bad linespace option", "value", value)
			return handler.RedrawNothing
		}
		s.setLineSpace(int(space))
		return handler.RedrawAll
	case "guifont":
		desc, ok := rpc.AsString(value)
		if !ok || desc == "" {
			return handler.RedrawNothing
		}
		s.setFont(render.ParseFontDescription(desc))
		return handler.RedrawAll
	default:
		return handler.RedrawNothing
	}
}

func (s *State) SetMouse(enabled bool) handler.RedrawMode {
	s.mouse = enabled
	return handler.RedrawNothing
}

func (s *State) SetBusy(busy bool) handler.RedrawMode {
	s.busy = busy
	return handler.RedrawCursor
}

func (s *State) setFont(fd render.FontDescription) {
	s.grids.SetFontDescription(fd)
	s.grids.ClearGlyphs()
}

func (s *State) setLineSpace(space int) {
	s.grids.UpdateLineSpace(space)
	s.grids.ClearGlyphs()
}

// Flush issues the repaint for a finished batch. level is what the
// reducer returned for the flush event.
func (s *State) Flush(level handler.RedrawMode) {
	if level == handler.RedrawNothing && !s.paletteChanged {
		return
	}
	if level == handler.RedrawClearCache || s.paletteChanged {
		s.paletteChanged = false
		if ci, ok := s.grids.Renderer().(grid.CacheInvalidator); ok {
			ci.InvalidateCache()
		}
		for _, id := range s.grids.IDs() {
			g, _ := s.grids.Get(id)
			g.Model().TakeDamage()
			s.grids.QueueRedraw(s.hl, id, grid.Everything())
		}
		return
	}
	for _, id := range s.grids.IDs() {
		g, _ := s.grids.Get(id)
		full, rects := g.Model().TakeDamage()
		switch {
		case full:
			s.grids.QueueRedraw(s.hl, id, grid.Everything())
		case len(rects) == 1:
			s.grids.QueueRedraw(s.hl, id, grid.Area(rects[0]))
		case len(rects) > 1:
			s.grids.QueueRedraw(s.hl, id, grid.AreaList(rects))
		}
	}
}

// CallGUIEvent handles a notification on the gui channel.
func (s *State) CallGUIEvent(method string, args []any) error {
	a := rpc.NewArgs(method, args)
	switch method {
	case "Font":
		desc, err := a.String(0)
		if err != nil {
			return err
		}
		s.setFont(render.ParseFontDescription(desc))
	case "FontFeatures":
		raw, err := a.String(0)
		if err != nil {
			return err
		}
		features, err := render.ParseFontFeatures(raw)
		if err != nil {
			return err
		}
		s.grids.UpdateFontFeatures(features)
		s.grids.ClearGlyphs()
	case "Linespace":
		raw, err := a.String(0)
		if err != nil {
			return err
		}
		space, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("Linespace %q: %w", raw, err)
		}
		s.setLineSpace(space)
	default:
		return &UnsupportedError{Method: method, Args: args}
	}
	s.grids.QueueRedrawAll(s.hl)
	return nil
}

// CallGUIRequest answers a request on the gui channel. No request is
// supported; the error is sent back to the editor.
func (s *State) CallGUIRequest(method string, args []any) (any, error) {
	return nil, &UnsupportedError{Request: true, Method: method, Args: args}
}
