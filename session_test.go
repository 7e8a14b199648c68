package gridsync

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/hnimtadd/gridsync/logger"
	"github.com/hnimtadd/gridsync/rpc"
	"github.com/hnimtadd/gridsync/ui/grid"
	"github.com/hnimtadd/gridsync/ui/handler"
	"github.com/hnimtadd/gridsync/ui/model"
	"github.com/hnimtadd/gridsync/ui/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRenderer struct {
	full  map[uint64]int
	areas map[uint64][]model.Rect
}

func newCountingRenderer() *countingRenderer {
	return &countingRenderer{full: map[uint64]int{}, areas: map[uint64][]model.Rect{}}
}

func (r *countingRenderer) QueueDraw(id uint64) { r.full[id]++ }

func (r *countingRenderer) QueueDrawArea(id uint64, rect model.Rect, _ render.Area) {
	r.areas[id] = append(r.areas[id], rect)
}

func encode(t *testing.T, fn func(enc *rpc.Encoder) error) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	require.NoError(t, fn(rpc.NewEncoder(buf)))
	return buf.Bytes()
}

func redrawBatch(t *testing.T, batches ...any) []byte {
	t.Helper()
	return encode(t, func(enc *rpc.Encoder) error {
		return enc.EncodeNotification(RedrawMethod, batches...)
	})
}

func TestSessionRedraw(t *testing.T) {
	r := newCountingRenderer()
	s := NewSession(Options{Logger: logger.Nop, Renderer: r})

	data := redrawBatch(t,
		[]any{"grid_resize", []any{1, 5, 2}},
		[]any{"grid_line",
			[]any{1, 0, 0, []any{[]any{"a", 0, 2}, []any{"b"}}},
			[]any{1, 1, 1, []any{[]any{"x"}}},
		},
	)
	require.NoError(t, s.ProcessOutput(data))
	assert.Empty(t, r.full, "nothing is drawn before flush")
	assert.Equal(t, handler.RedrawAll, s.Pending())

	require.NoError(t, s.ProcessOutput(redrawBatch(t, []any{"flush", []any{}})))
	assert.Equal(t, 1, r.full[grid.DefaultGrid])
	assert.Equal(t, handler.RedrawNothing, s.Pending())

	text, err := s.DumpString(grid.DefaultGrid)
	require.NoError(t, err)
	assert.Equal(t, "aab  \n x   ", text)
}

func TestSessionSplitMessages(t *testing.T) {
	s := NewSession(Options{Logger: logger.Nop})
	data := append(
		redrawBatch(t, []any{"grid_resize", []any{1, 3, 1}}),
		redrawBatch(t, []any{"grid_line", []any{1, 0, 0, []any{[]any{"x"}, []any{"y"}, []any{"z"}}}}, []any{"flush"})...,
	)
	// Feed one byte at a time.
	for i := range data {
		_, err := s.Write(data[i : i+1])
		require.NoError(t, err)
	}
	text, err := s.DumpString(grid.DefaultGrid)
	require.NoError(t, err)
	assert.Equal(t, "xyz", text)
}

func TestSessionRecoversFromCorruptBytes(t *testing.T) {
	s := NewSession(Options{Logger: logger.Nop})
	require.NoError(t, s.ProcessOutput([]byte{0x93, 0xc1}))

	data := redrawBatch(t,
		[]any{"grid_resize", []any{1, 2, 1}},
		[]any{"grid_line", []any{1, 0, 0, []any{[]any{"o"}, []any{"k"}}}},
		[]any{"flush"},
	)
	require.NoError(t, s.ProcessOutput(data))
	text, err := s.DumpString(grid.DefaultGrid)
	require.NoError(t, err)
	assert.Equal(t, "ok", text)
}

func TestSessionSkipsMalformedEvents(t *testing.T) {
	s := NewSession(Options{Logger: logger.Nop})
	require.NoError(t, s.ProcessOutput(redrawBatch(t,
		[]any{"grid_resize", []any{1, 3, 1}},
		[]any{"grid_line", []any{1, "row", 0, []any{}}},
		[]any{"no_such_event", []any{1}},
		[]any{"grid_line", []any{1, 0, 0, []any{[]any{"o"}, []any{"k"}}}},
		[]any{"flush"},
	)))
	text, err := s.DumpString(grid.DefaultGrid)
	require.NoError(t, err)
	assert.Equal(t, "ok ", text)
}

func TestSessionGUIEvents(t *testing.T) {
	r := newCountingRenderer()
	s := NewSession(Options{Logger: logger.Nop, Renderer: r})
	require.NoError(t, s.ProcessOutput(redrawBatch(t, []any{"grid_resize", []any{1, 3, 1}}, []any{"flush"})))

	data := encode(t, func(enc *rpc.Encoder) error {
		if err := enc.EncodeNotification(GUIMethod, "Font", "Fira Code 14"); err != nil {
			return err
		}
		return enc.EncodeNotification(GUIMethod, "Unknown", 1)
	})
	require.NoError(t, s.ProcessOutput(data))

	g, err := s.State().Grids().Lookup(grid.DefaultGrid)
	require.NoError(t, err)
	assert.Equal(t, "Fira Code 14", g.FontContext().Font().String())
	assert.Equal(t, 2, r.full[grid.DefaultGrid])
}

func TestSessionRequests(t *testing.T) {
	responses := &bytes.Buffer{}
	s := NewSession(Options{Logger: logger.Nop, Responses: responses})
	require.NoError(t, s.ProcessOutput(encode(t, func(enc *rpc.Encoder) error {
		return enc.EncodeRequest(3, "Clipboard", "get")
	})))

	msg, err := rpc.NewDecoder(responses).Decode()
	require.NoError(t, err)
	assert.Equal(t, rpc.TypeResponse, msg.Type)
	assert.Equal(t, uint64(3), msg.MsgID)
	assert.Equal(t, "Unsupported request Clipboard([get])", msg.Error)
	assert.Nil(t, msg.Result)
}

func TestSessionRun(t *testing.T) {
	s := NewSession(Options{Logger: logger.Nop})
	data := redrawBatch(t,
		[]any{"grid_resize", []any{1, 2, 1}},
		[]any{"grid_line", []any{1, 0, 0, []any{[]any{"h"}, []any{"i"}}}},
		[]any{"flush"},
	)
	require.NoError(t, s.Run(context.Background(), bytes.NewReader(data)))
	text, err := s.DumpString(grid.DefaultGrid)
	require.NoError(t, err)
	assert.Equal(t, "hi", text)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = s.Run(ctx, bytes.NewReader(data))
	assert.True(t, errors.Is(err, context.Canceled))

	_, err = s.DumpString(9)
	assert.ErrorIs(t, err, grid.ErrUnknownGrid)
}
