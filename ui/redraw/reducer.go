// Package redraw turns redraw events into calls on a handler and keeps
// track of how much has to be repainted when the batch ends.
package redraw

import (
	"errors"
	"fmt"

	"github.com/hnimtadd/gridsync/logger"
	"github.com/hnimtadd/gridsync/rpc"
	"github.com/hnimtadd/gridsync/ui/handler"
)

// FlushEvent ends a batch.
const FlushEvent = "flush"

var ErrUnsupportedEvent = errors.New("unsupported redraw event")

type Options struct {
	Logger logger.Logger
	// Strict makes unknown events fail with ErrUnsupportedEvent instead
	// of being logged and dropped.
	Strict bool
}

// Reducer applies redraw events to a handler in arrival order. The
// handler may implement any subset of the interfaces in package
// handler; events it doesn't implement are logged and dropped.
//
// Reducer never blocks and never triggers a render: it only returns the
// accumulated RedrawMode when the flush event arrives.
type Reducer struct {
	handler any
	pending handler.RedrawMode
	strict  bool
	logger  logger.Logger
}

func NewReducer(h any, opts Options) *Reducer {
	return &Reducer{
		handler: h,
		strict:  opts.Strict,
		logger:  logger.OrDefault(opts.Logger),
	}
}

// Pending returns the mode accumulated since the last flush.
func (r *Reducer) Pending() handler.RedrawMode {
	return r.pending
}

// Call applies one event. For every event except flush it returns
// RedrawNothing and folds the event's needs into the pending mode. For
// flush it returns the pending mode and resets it.
//
// A *rpc.ParseError means the arguments were malformed; the event had no
// effect and the caller should carry on with the next one.
func (r *Reducer) Call(event string, values []any) (handler.RedrawMode, error) {
	if event == FlushEvent {
		mode := r.pending
		r.pending = handler.RedrawNothing
		r.logger.Debug("flush", "mode", mode)
		return mode, nil
	}
	mode, err := r.dispatch(event, &args{Args: rpc.NewArgs(event, values), values: values})
	if err != nil {
		return handler.RedrawNothing, err
	}
	r.pending = r.pending.Merge(mode)
	return handler.RedrawNothing, nil
}

func (r *Reducer) dispatch(event string, a *args) (handler.RedrawMode, error) {
	switch event {
	case "grid_line":
		h, ok := r.handler.(handler.GridLineHandler)
		if !ok {
			return r.unimplemented(event)
		}
		grid, row, col, cells := a.uintAt(0), a.uintAt(1), a.uintAt(2), a.arrayAt(3)
		if a.err != nil {
			return handler.RedrawNothing, a.err
		}
		mode, err := h.GridLine(grid, row, col, cells)
		if err != nil {
			return handler.RedrawNothing, wrap(event, 3, err)
		}
		return mode, nil

	case "grid_clear":
		h, ok := r.handler.(handler.GridHandler)
		if !ok {
			return r.unimplemented(event)
		}
		grid := a.uintAt(0)
		if a.err != nil {
			return handler.RedrawNothing, a.err
		}
		return h.GridClear(grid), nil

	case "grid_destroy":
		h, ok := r.handler.(handler.GridHandler)
		if !ok {
			return r.unimplemented(event)
		}
		grid := a.uintAt(0)
		if a.err != nil {
			return handler.RedrawNothing, a.err
		}
		return h.GridDestroy(grid), nil

	case "grid_resize":
		h, ok := r.handler.(handler.GridHandler)
		if !ok {
			return r.unimplemented(event)
		}
		grid, width, height := a.uintAt(0), a.uintAt(1), a.uintAt(2)
		if a.err != nil {
			return handler.RedrawNothing, a.err
		}
		return h.GridResize(grid, width, height), nil

	case "grid_cursor_goto":
		h, ok := r.handler.(handler.CursorHandler)
		if !ok {
			return r.unimplemented(event)
		}
		grid, row, col := a.uintAt(0), a.uintAt(1), a.uintAt(2)
		if a.err != nil {
			return handler.RedrawNothing, a.err
		}
		return h.GridCursorGoto(grid, row, col), nil

	case "grid_scroll":
		h, ok := r.handler.(handler.ScrollHandler)
		if !ok {
			return r.unimplemented(event)
		}
		grid, top, bot, left, right := a.uintAt(0), a.uintAt(1), a.uintAt(2), a.uintAt(3), a.uintAt(4)
		rows, cols := a.intAt(5), a.intAt(6)
		if a.err != nil {
			return handler.RedrawNothing, a.err
		}
		return h.GridScroll(grid, top, bot, left, right, rows, cols), nil

	case "hl_attr_define":
		h, ok := r.handler.(handler.HighlightHandler)
		if !ok {
			return r.unimplemented(event)
		}
		id, rgb, cterm, info := a.uintAt(0), a.mapAt(1), a.valueAt(2), a.valueAt(3)
		if a.err != nil {
			return handler.RedrawNothing, a.err
		}
		mode, err := h.HlAttrDefine(id, rgb, cterm, info)
		if err != nil {
			return handler.RedrawNothing, wrap(event, 1, err)
		}
		return mode, nil

	case "default_colors_set":
		h, ok := r.handler.(handler.HighlightHandler)
		if !ok {
			return r.unimplemented(event)
		}
		fg, bg, sp, ctermFG, ctermBG := a.intAt(0), a.intAt(1), a.intAt(2), a.intAt(3), a.intAt(4)
		if a.err != nil {
			return handler.RedrawNothing, a.err
		}
		return h.DefaultColorsSet(fg, bg, sp, ctermFG, ctermBG), nil

	case "mode_change":
		h, ok := r.handler.(handler.ModeHandler)
		if !ok {
			return r.unimplemented(event)
		}
		name, idx := a.strAt(0), a.uintAt(1)
		if a.err != nil {
			return handler.RedrawNothing, a.err
		}
		return h.ModeChange(name, idx), nil

	case "mode_info_set":
		h, ok := r.handler.(handler.ModeHandler)
		if !ok {
			return r.unimplemented(event)
		}
		enabled, infos := a.boolAt(0), a.arrayAt(1)
		if a.err != nil {
			return handler.RedrawNothing, a.err
		}
		mode, err := h.ModeInfoSet(enabled, infos)
		if err != nil {
			return handler.RedrawNothing, wrap(event, 1, err)
		}
		return mode, nil

	case "option_set":
		h, ok := r.handler.(handler.OptionHandler)
		if !ok {
			return r.unimplemented(event)
		}
		name, value := a.strAt(0), a.valueAt(1)
		if a.err != nil {
			return handler.RedrawNothing, a.err
		}
		return h.OptionSet(name, value), nil

	case "mouse_on", "mouse_off":
		h, ok := r.handler.(handler.MouseHandler)
		if !ok {
			return r.unimplemented(event)
		}
		return h.SetMouse(event == "mouse_on"), nil

	case "busy_start", "busy_stop":
		h, ok := r.handler.(handler.BusyHandler)
		if !ok {
			return r.unimplemented(event)
		}
		return h.SetBusy(event == "busy_start"), nil

	default:
		err := fmt.Errorf("%w: %s(%v)", ErrUnsupportedEvent, event, a.values)
		if r.strict {
			return handler.RedrawNothing, err
		}
		r.logger.Warn("unknown redraw event", "event", event, "args", a.Len())
		return handler.RedrawNothing, nil
	}
}

func (r *Reducer) unimplemented(event string) (handler.RedrawMode, error) {
	r.logger.Warn("unimplemented redraw event", "event", event)
	return handler.RedrawNothing, nil
}

// wrap turns a handler's decoding failure into a ParseError for arg.
func wrap(event string, arg int, err error) error {
	var pe *rpc.ParseError
	if errors.As(err, &pe) {
		return pe
	}
	return &rpc.ParseError{Event: event, Arg: arg, Msg: err.Error()}
}

// args reads arguments and remembers the first failure, so an event's
// arguments can be read in one go and checked once.
type args struct {
	*rpc.Args
	values []any
	err    error
}

func (a *args) uintAt(i int) uint64 {
	if a.err != nil {
		return 0
	}
	v, err := a.Uint(i)
	a.keep(err)
	return v
}

func (a *args) intAt(i int) int64 {
	if a.err != nil {
		return 0
	}
	v, err := a.Int(i)
	a.keep(err)
	return v
}

func (a *args) boolAt(i int) bool {
	if a.err != nil {
		return false
	}
	v, err := a.Bool(i)
	a.keep(err)
	return v
}

func (a *args) strAt(i int) string {
	if a.err != nil {
		return ""
	}
	v, err := a.String(i)
	a.keep(err)
	return v
}

func (a *args) arrayAt(i int) []any {
	if a.err != nil {
		return nil
	}
	v, err := a.Array(i)
	a.keep(err)
	return v
}

func (a *args) mapAt(i int) rpc.Map {
	if a.err != nil {
		return nil
	}
	v, err := a.Map(i)
	a.keep(err)
	return v
}

func (a *args) valueAt(i int) any {
	if a.err != nil {
		return nil
	}
	v, err := a.Value(i)
	a.keep(err)
	return v
}

func (a *args) keep(err error) {
	if err != nil {
		a.err = err
	}
}
