package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_TextRespectsLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	l := New(Options{Buffer: buf, Level: WarnLevel, Type: TypeText})

	l.Info("hidden")
	l.Warn("unknown grid", "grid", 4)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "unknown grid")
	assert.Contains(t, out, "grid=4")
}

func TestNew_JSON(t *testing.T) {
	buf := &bytes.Buffer{}
	l := New(Options{Buffer: buf, Level: DebugLevel, Type: TypeJSON})

	l.Debug("flush", "mode", "All")
	assert.Contains(t, buf.String(), `"msg":"flush"`)
	assert.Contains(t, buf.String(), `"mode":"All"`)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DebugLevel, ParseLevel("debug"))
	assert.Equal(t, WarnLevel, ParseLevel("warning"))
	assert.Equal(t, ErrorLevel, ParseLevel("error"))
	assert.Equal(t, DefaultLevel, ParseLevel("loud"))
}

func TestOrDefault(t *testing.T) {
	assert.Equal(t, DefaultLogger, OrDefault(nil))
	assert.Equal(t, Nop, OrDefault(Nop))
}
