// Package rpc holds the values exchanged with the editor process and the
// msgpack-rpc framing around them.
//
// Decoded values are plain Go values: nil, bool, int64 (negative
// integers), uint64 (non-negative integers), float64, string, []byte,
// []any, Map and Ext. The As* helpers coerce them leniently, the way the
// protocol is actually produced: an unsigned slot may arrive as a signed
// integer holding a non-negative value.
package rpc

import (
	"fmt"
	"math"

	"github.com/vmihailenco/msgpack/v5"
)

// Map is a decoded msgpack map. Editor maps are keyed by strings.
type Map map[string]any

// Ext is a msgpack extension value. The editor uses extensions for
// buffer, window and tabpage handles.
type Ext struct {
	Type int8
	Data []byte
}

// Handle decodes the integer handle carried by the extension payload.
func (e Ext) Handle() (int64, error) {
	var n int64
	if err := msgpack.Unmarshal(e.Data, &n); err != nil {
		return 0, fmt.Errorf("rpc: decode ext %d handle: %w", e.Type, err)
	}
	return n, nil
}

func AsUint(v any) (uint64, bool) {
	switch n := v.(type) {
	case uint64:
		return n, true
	case int64:
		if n >= 0 {
			return uint64(n), true
		}
	case uint:
		return uint64(n), true
	case uint32:
		return uint64(n), true
	case int:
		if n >= 0 {
			return uint64(n), true
		}
	}
	return 0, false
}

func AsInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case uint64:
		if n <= math.MaxInt64 {
			return int64(n), true
		}
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case uint32:
		return int64(n), true
	}
	return 0, false
}

func AsBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

func AsFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	}
	if n, ok := AsInt(v); ok {
		return float64(n), true
	}
	return 0, false
}

// AsString accepts msgpack strings as well as binary payloads.
func AsString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case []byte:
		return string(s), true
	}
	return "", false
}

func AsArray(v any) ([]any, bool) {
	a, ok := v.([]any)
	return a, ok
}

func AsMap(v any) (Map, bool) {
	switch m := v.(type) {
	case Map:
		return m, true
	case map[string]any:
		return Map(m), true
	}
	return nil, false
}
