package grid

import (
	"fmt"

	"github.com/hnimtadd/gridsync/ui/model"
	"github.com/hnimtadd/gridsync/ui/render"
)

type RepaintKind int

const (
	RepaintNothing RepaintKind = iota
	RepaintArea
	RepaintAreaList
	RepaintEverything
)

// RepaintMode says how much of a grid to repaint.
type RepaintMode struct {
	Kind  RepaintKind
	Rect  model.Rect
	Rects model.RectList
}

func Nothing() RepaintMode    { return RepaintMode{Kind: RepaintNothing} }
func Everything() RepaintMode { return RepaintMode{Kind: RepaintEverything} }

func Area(r model.Rect) RepaintMode {
	return RepaintMode{Kind: RepaintArea, Rect: r}
}

func AreaList(l model.RectList) RepaintMode {
	return RepaintMode{Kind: RepaintAreaList, Rects: l}
}

func (m RepaintMode) String() string {
	switch m.Kind {
	case RepaintNothing:
		return "Nothing"
	case RepaintArea:
		return fmt.Sprintf("Area(%s)", m.Rect)
	case RepaintAreaList:
		return fmt.Sprintf("AreaList(%v)", m.Rects)
	case RepaintEverything:
		return "Everything"
	default:
		return fmt.Sprintf("RepaintKind(%d)", int(m.Kind))
	}
}

// Renderer draws grids. It only ever receives grid ids and looks the grid
// up through the registry when it paints, so it never holds a grid while
// the protocol mutates it.
type Renderer interface {
	// QueueDraw schedules a repaint of the whole grid.
	QueueDraw(grid uint64)
	// QueueDrawArea schedules a repaint of rect, which is area in pixels.
	QueueDrawArea(grid uint64, rect model.Rect, area render.Area)
}

// CacheInvalidator is implemented by renderers that keep painted
// snapshots which must be dropped when colours change.
type CacheInvalidator interface {
	InvalidateCache()
}

type nopRenderer struct{}

func (nopRenderer) QueueDraw(uint64)                              {}
func (nopRenderer) QueueDrawArea(uint64, model.Rect, render.Area) {}
