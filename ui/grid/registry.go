package grid

import (
	"fmt"
	"maps"
	"slices"

	"github.com/hnimtadd/gridsync/logger"
	"github.com/hnimtadd/gridsync/ui/highlight"
	"github.com/hnimtadd/gridsync/ui/mode"
	"github.com/hnimtadd/gridsync/ui/model"
	"github.com/hnimtadd/gridsync/ui/render"
)

// DefaultGrid is the grid legacy callers mean when they name none.
const DefaultGrid uint64 = 1

type Options struct {
	Logger logger.Logger
	// Renderer receives repaint requests. Nil drops them.
	Renderer Renderer
	// Shaper and the font settings seed the font context of every grid.
	Shaper    render.Shaper
	Font      string
	Features  render.FontFeatures
	LineSpace int
}

// Registry owns every live grid, keyed by the id the editor assigned.
// Everything outside the registry refers to grids by id and resolves
// them here when needed.
type Registry struct {
	grids    map[uint64]*Grid
	hooks    *hooks
	renderer Renderer
	logger   logger.Logger

	// settings new grids start with, kept current by the broadcasts
	shaper    render.Shaper
	font      render.FontDescription
	features  render.FontFeatures
	lineSpace int
	mode      *mode.State
}

func NewRegistry(opts Options) *Registry {
	if opts.Renderer == nil {
		opts.Renderer = nopRenderer{}
	}
	if opts.Shaper == nil {
		opts.Shaper = render.MonospaceShaper{}
	}
	if opts.Font == "" {
		opts.Font = render.DefaultFont
	}
	return &Registry{
		grids:     make(map[uint64]*Grid),
		hooks:     newHooks(),
		renderer:  opts.Renderer,
		logger:    logger.OrDefault(opts.Logger),
		shaper:    opts.Shaper,
		font:      render.ParseFontDescription(opts.Font),
		features:  opts.Features,
		lineSpace: opts.LineSpace,
		mode:      mode.NewState(),
	}
}

// SetRenderer replaces the renderer repaint requests go to.
func (r *Registry) SetRenderer(renderer Renderer) {
	if renderer == nil {
		renderer = nopRenderer{}
	}
	r.renderer = renderer
}

func (r *Registry) Renderer() Renderer {
	return r.renderer
}

// GetOrCreate returns the grid with id, creating an empty one wired to
// the registry hooks on first use.
func (r *Registry) GetOrCreate(id uint64) *Grid {
	if g, ok := r.grids[id]; ok {
		return g
	}
	g := &Grid{
		id:    id,
		model: model.Empty(),
		font: render.NewContext(render.Options{
			Logger:    r.logger,
			Shaper:    r.shaper,
			Font:      r.font.String(),
			Features:  r.features,
			LineSpace: r.lineSpace,
		}),
		mode:   r.mode.Clone(),
		hooks:  r.hooks,
		logger: r.logger,
	}
	r.grids[id] = g
	r.logger.Debug("grid created", "grid", id)
	return g
}

func (r *Registry) Get(id uint64) (*Grid, bool) {
	g, ok := r.grids[id]
	return g, ok
}

// Lookup is Get with an ErrUnknownGrid error for missing ids.
func (r *Registry) Lookup(id uint64) (*Grid, error) {
	if g, ok := r.grids[id]; ok {
		return g, nil
	}
	return nil, fmt.Errorf("grid %d: %w", id, ErrUnknownGrid)
}

// Current returns the default grid, or nil before it exists.
func (r *Registry) Current() *Grid {
	return r.grids[DefaultGrid]
}

// Destroy removes the grid and detaches it from the hooks. Unknown ids
// are ignored.
func (r *Registry) Destroy(id uint64) {
	g, ok := r.grids[id]
	if !ok {
		return
	}
	g.hooks = nil
	delete(r.grids, id)
	r.logger.Debug("grid destroyed", "grid", id)
}

// IDs returns the ids of all live grids in ascending order.
func (r *Registry) IDs() []uint64 {
	return slices.Sorted(maps.Keys(r.grids))
}

func (r *Registry) Len() int {
	return len(r.grids)
}

// QueueRedraw shapes whatever is dirty in the grid and asks the renderer
// to repaint according to repaint. Rectangles are widened so they never cut
// a shaped item. Unknown grids are logged and skipped.
func (r *Registry) QueueRedraw(hl *highlight.Map, id uint64, repaint RepaintMode) {
	g, ok := r.grids[id]
	if !ok {
		r.logger.Warn("redraw for unknown grid", "grid", id, "mode", repaint)
		return
	}
	switch repaint.Kind {
	case RepaintNothing:
	case RepaintEverything:
		render.ShapeDirty(g.font, g.model, hl)
		r.renderer.QueueDraw(id)
	case RepaintArea:
		r.queueDrawArea(g, hl, model.RectList{repaint.Rect})
	case RepaintAreaList:
		r.queueDrawArea(g, hl, repaint.Rects)
	}
}

func (r *Registry) queueDrawArea(g *Grid, hl *highlight.Map, rects model.RectList) {
	// Items bound before shaping may be replaced by wider ones, so widen
	// against both.
	rects = slices.Clone(rects)
	rects.ExtendByItems(g.model)
	render.ShapeDirty(g.font, g.model, hl)
	metrics := g.font.CellMetrics()
	for _, rect := range rects {
		rect.ExtendByItems(g.model)
		r.renderer.QueueDrawArea(g.id, rect, render.ToArea(g.model, rect, metrics))
	}
}

// QueueRedrawAll repaints every grid entirely.
func (r *Registry) QueueRedrawAll(hl *highlight.Map) {
	for _, id := range r.IDs() {
		r.QueueRedraw(hl, id, Everything())
	}
}

// ClearGlyphs drops the shaped items of every grid.
func (r *Registry) ClearGlyphs() {
	for _, g := range r.grids {
		g.model.ClearGlyphs()
	}
}

func (r *Registry) SetFontDescription(fd render.FontDescription) {
	r.font = fd
	for _, g := range r.grids {
		g.font.SetFont(fd)
	}
}

func (r *Registry) UpdateFontFeatures(features render.FontFeatures) {
	r.features = features
	for _, g := range r.grids {
		g.font.SetFeatures(features)
	}
}

func (r *Registry) UpdateLineSpace(space int) {
	r.lineSpace = space
	for _, g := range r.grids {
		g.font.SetLineSpace(space)
	}
}

func (r *Registry) UpdateMode(name string, idx int) {
	r.mode.Update(name, idx)
	for _, g := range r.grids {
		g.mode.Update(name, idx)
	}
}

func (r *Registry) SetCursorInfo(styleEnabled bool, infos []mode.Info) {
	r.mode.SetInfo(styleEnabled, infos)
	for _, g := range r.grids {
		g.mode.SetInfo(styleEnabled, infos)
	}
}

// The Connect methods install the handler for one kind of input on all
// grids, present and future, replacing the previous one. A nil handler
// removes it.

func (r *Registry) ConnectButtonPress(cb ButtonHandler) {
	r.hooks.update(func(t *hookTable) { t.buttonPress = cb })
}

func (r *Registry) ConnectButtonRelease(cb ButtonHandler) {
	r.hooks.update(func(t *hookTable) { t.buttonRelease = cb })
}

func (r *Registry) ConnectScroll(cb ScrollHandler) {
	r.hooks.update(func(t *hookTable) { t.scroll = cb })
}

func (r *Registry) ConnectKeyPress(cb KeyHandler) {
	r.hooks.update(func(t *hookTable) { t.keyPress = cb })
}

func (r *Registry) ConnectKeyRelease(cb KeyHandler) {
	r.hooks.update(func(t *hookTable) { t.keyRelease = cb })
}
