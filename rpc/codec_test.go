package rpc

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func TestDecoder_Notification(t *testing.T) {
	buf := &bytes.Buffer{}
	enc := NewEncoder(buf)
	require.NoError(t, enc.EncodeNotification("redraw",
		[]any{"grid_line", []any{1, 0, 0, []any{[]any{"a", 1, 3}}}},
		[]any{"flush"},
	))

	msg, err := NewDecoder(buf).Decode()
	require.NoError(t, err)
	assert.Equal(t, TypeNotification, msg.Type)
	assert.Equal(t, "redraw", msg.Method)
	require.Len(t, msg.Params, 2)

	event, ok := AsArray(msg.Params[0])
	require.True(t, ok)
	assert.Equal(t, "grid_line", event[0])
	tuple, ok := AsArray(event[1])
	require.True(t, ok)
	row, ok := AsUint(tuple[1])
	require.True(t, ok)
	assert.Equal(t, uint64(0), row)
}

func TestDecoder_RequestAndResponse(t *testing.T) {
	buf := &bytes.Buffer{}
	enc := NewEncoder(buf)
	require.NoError(t, enc.EncodeRequest(7, "Gui", "Clipboard", "Get", "+"))
	require.NoError(t, enc.EncodeResponse(7, nil, []any{"line"}))

	dec := NewDecoder(buf)
	req, err := dec.Decode()
	require.NoError(t, err)
	assert.Equal(t, TypeRequest, req.Type)
	assert.Equal(t, uint64(7), req.MsgID)
	assert.Equal(t, "Gui", req.Method)
	assert.Equal(t, []any{"Clipboard", "Get", "+"}, req.Params)

	resp, err := dec.Decode()
	require.NoError(t, err)
	assert.Equal(t, TypeResponse, resp.Type)
	assert.Nil(t, resp.Error)
	assert.Equal(t, []any{"line"}, resp.Result)

	_, err = dec.Decode()
	assert.ErrorIs(t, err, io.EOF)
}

func TestDecoder_ValueForms(t *testing.T) {
	buf := &bytes.Buffer{}
	enc := msgpack.NewEncoder(buf)
	require.NoError(t, enc.Encode(map[string]any{
		"foreground": uint32(0xff0000),
		"blend":      int8(-3),
		"bold":       true,
		"ratio":      0.5,
		"nothing":    nil,
	}))

	v, err := NewDecoder(buf).DecodeValue()
	require.NoError(t, err)
	m, ok := AsMap(v)
	require.True(t, ok)
	assert.Equal(t, uint64(0xff0000), m["foreground"])
	assert.Equal(t, int64(-3), m["blend"])
	assert.Equal(t, true, m["bold"])
	assert.Equal(t, 0.5, m["ratio"])
	assert.Nil(t, m["nothing"])
}

func TestDecoder_Ext(t *testing.T) {
	payload, err := msgpack.Marshal(int64(1000))
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	enc := msgpack.NewEncoder(buf)
	require.NoError(t, enc.EncodeExtHeader(1, len(payload)))
	_, err = buf.Write(payload)
	require.NoError(t, err)

	v, err := NewDecoder(buf).DecodeValue()
	require.NoError(t, err)
	ext, ok := v.(Ext)
	require.True(t, ok)
	assert.Equal(t, int8(1), ext.Type)

	handle, err := ext.Handle()
	require.NoError(t, err)
	assert.Equal(t, int64(1000), handle)
}

func TestDecoder_Malformed(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, msgpack.NewEncoder(buf).Encode([]any{5, "x", []any{}}))

	_, err := NewDecoder(buf).Decode()
	assert.Error(t, err)
}
