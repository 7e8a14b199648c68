// Package gridsync mirrors the screen of an editor that talks the
// ext_linegrid redraw protocol over msgpack-rpc.
package gridsync

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"runtime/debug"

	"github.com/hnimtadd/gridsync/logger"
	"github.com/hnimtadd/gridsync/rpc"
	"github.com/hnimtadd/gridsync/ui"
	"github.com/hnimtadd/gridsync/ui/grid"
	"github.com/hnimtadd/gridsync/ui/handler"
	"github.com/hnimtadd/gridsync/ui/redraw"
	"github.com/hnimtadd/gridsync/ui/render"
)

const (
	// RedrawMethod is the notification carrying redraw batches.
	RedrawMethod = "redraw"
	// GUIMethod is the notification channel for gui specific events.
	GUIMethod = "Gui"
)

var (
	ErrUnsupportedEvent   = ui.ErrUnsupportedEvent
	ErrUnsupportedRequest = ui.ErrUnsupportedRequest
)

type Options struct {
	Logger       logger.Logger
	Renderer     grid.Renderer
	Shaper       render.Shaper
	Font         string
	FontFeatures render.FontFeatures
	LineSpace    int

	// Responses receives the rpc responses to editor requests. Requests
	// are answered only when it is set.
	Responses io.Writer

	// Strict makes the reducer reject unknown redraw events. They are
	// logged and skipped either way.
	Strict bool
}

// Session consumes the editor's rpc output and keeps the ui state in
// sync with it.
//
// A Session is not safe for concurrent use. Handlers called from it, such
// as renderers and input hooks, must not feed the Session again: a grid is
// being mutated while they run.
type Session struct {
	// The mirrored screen: grids, highlights and modes.
	state *ui.State

	// Turns redraw events into calls on state and folds their repaint
	// levels until a flush.
	reducer *redraw.Reducer

	responses *rpc.Encoder

	// holds a message that hasn't fully arrived yet
	frames rpc.Splitter

	logger logger.Logger
}

func NewSession(opts Options) *Session {
	log := logger.OrDefault(opts.Logger)
	state := ui.NewState(ui.Options{
		Logger:    log,
		Renderer:  opts.Renderer,
		Shaper:    opts.Shaper,
		Font:      opts.Font,
		Features:  opts.FontFeatures,
		LineSpace: opts.LineSpace,
	})
	s := &Session{
		state:   state,
		reducer: redraw.NewReducer(state, redraw.Options{Logger: log, Strict: opts.Strict}),
		logger:  log,
	}
	if opts.Responses != nil {
		s.responses = rpc.NewEncoder(opts.Responses)
	}
	return s
}

func (s *Session) State() *ui.State { return s.state }

// ProcessOutput feeds raw bytes read from the editor. Messages may be
// split across calls; an incomplete tail is kept for the next call.
func (s *Session) ProcessOutput(buf []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic in ProcessOutput", "panic", r, "stack", string(debug.Stack()))
			s.frames.Reset()
			err = fmt.Errorf("panic in ProcessOutput: %v", r)
		}
	}()

	s.frames.Write(buf)
	for {
		frame, splitErr := s.frames.Next()
		if splitErr != nil {
			s.logger.Warn("dropping malformed stream", "error", splitErr, "bytes", s.frames.Buffered())
			s.frames.Reset()
			break
		}
		if frame == nil {
			break
		}
		msg, decodeErr := rpc.NewDecoder(bytes.NewReader(frame)).Decode()
		if decodeErr != nil {
			s.logger.Warn("dropping malformed message", "error", decodeErr)
			continue
		}
		s.Handle(msg)
	}
	return nil
}

// Write implements io.Writer over ProcessOutput.
func (s *Session) Write(p []byte) (int, error) {
	if err := s.ProcessOutput(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Run reads messages from r until it ends or ctx is done. The context is
// checked between messages; a blocked read is only interrupted by closing
// r.
func (s *Session) Run(ctx context.Context, r io.Reader) error {
	dec := rpc.NewDecoder(r)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		msg, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("gridsync: read message: %w", err)
		}
		s.Handle(msg)
	}
}

// Handle applies one decoded message.
func (s *Session) Handle(msg *rpc.Message) {
	switch msg.Type {
	case rpc.TypeNotification:
		switch msg.Method {
		case RedrawMethod:
			s.redraw(msg.Params)
		case GUIMethod:
			s.gui(msg.Params)
		default:
			s.logger.Debug("ignoring notification", "method", msg.Method)
		}
	case rpc.TypeRequest:
		s.request(msg)
	default:
		s.logger.Debug("ignoring message", "type", msg.Type)
	}
}

// redraw applies the batches of one redraw notification. Each batch is
// [name, args...] with one args tuple per call.
func (s *Session) redraw(batches []any) {
	for _, raw := range batches {
		batch, ok := rpc.AsArray(raw)
		if !ok || len(batch) == 0 {
			s.logger.Warn("malformed redraw batch", "batch", raw)
			continue
		}
		name, ok := rpc.AsString(batch[0])
		if !ok {
			s.logger.Warn("malformed redraw event name", "name", batch[0])
			continue
		}
		calls := batch[1:]
		if len(calls) == 0 {
			calls = []any{[]any{}}
		}
		for _, rawArgs := range calls {
			args, ok := rpc.AsArray(rawArgs)
			if !ok {
				s.logger.Warn("malformed redraw arguments", "event", name, "args", rawArgs)
				continue
			}
			s.call(name, args)
		}
	}
}

func (s *Session) call(name string, args []any) {
	level, err := s.reducer.Call(name, args)
	if err != nil {
		var perr *rpc.ParseError
		if errors.As(err, &perr) {
			s.logger.Warn("skipping malformed event", "event", perr.Event, "arg", perr.Arg, "error", perr.Msg)
		} else {
			s.logger.Warn("event failed", "event", name, "error", err)
		}
		return
	}
	if name != redraw.FlushEvent {
		return
	}
	s.logger.Debug("flush", "level", level)
	s.state.Flush(level)
}

func (s *Session) gui(params []any) {
	if len(params) == 0 {
		s.logger.Warn("gui notification without a method")
		return
	}
	method, ok := rpc.AsString(params[0])
	if !ok {
		s.logger.Warn("malformed gui method", "method", params[0])
		return
	}
	if err := s.state.CallGUIEvent(method, params[1:]); err != nil {
		s.logger.Warn("gui event failed", "error", err)
	}
}

// request answers an editor request. No grid is touched while the
// response is written.
func (s *Session) request(msg *rpc.Message) {
	result, err := s.state.CallGUIRequest(msg.Method, msg.Params)
	if s.responses == nil {
		s.logger.Warn("no response channel for request", "method", msg.Method, "msgid", msg.MsgID)
		return
	}
	var rpcErr any
	if err != nil {
		rpcErr = err.Error()
		result = nil
	}
	if err := s.responses.EncodeResponse(msg.MsgID, rpcErr, result); err != nil {
		s.logger.Error("write response", "msgid", msg.MsgID, "error", err)
	}
}

// Pending returns the repaint level folded since the last flush.
func (s *Session) Pending() handler.RedrawMode {
	return s.reducer.Pending()
}

// DumpString returns the text of a grid, one line per row. Unknown grids
// yield an error wrapping grid.ErrUnknownGrid.
func (s *Session) DumpString(id uint64) (string, error) {
	g, err := s.state.Grids().Lookup(id)
	if err != nil {
		return "", err
	}
	return g.Model().String(), nil
}
