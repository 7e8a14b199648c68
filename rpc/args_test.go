package rpc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgs_Coercion(t *testing.T) {
	args := NewArgs("grid_scroll", []any{
		uint64(1), int64(4), int64(-2), true, 1.5, "block", []byte("raw"),
		[]any{"x"}, Map{"bold": true},
	})

	n, err := args.Uint(0)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), n)

	n, err = args.Uint(1)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), n, "non-negative signed values are accepted as unsigned")

	i, err := args.Int(2)
	require.NoError(t, err)
	assert.Equal(t, int64(-2), i)

	b, err := args.Bool(3)
	require.NoError(t, err)
	assert.True(t, b)

	f, err := args.Float(4)
	require.NoError(t, err)
	assert.Equal(t, 1.5, f)

	s, err := args.String(5)
	require.NoError(t, err)
	assert.Equal(t, "block", s)

	s, err = args.String(6)
	require.NoError(t, err)
	assert.Equal(t, "raw", s)

	arr, err := args.Array(7)
	require.NoError(t, err)
	assert.Equal(t, []any{"x"}, arr)

	m, err := args.Map(8)
	require.NoError(t, err)
	assert.Equal(t, true, m["bold"])
}

func TestArgs_Errors(t *testing.T) {
	tcs := []struct {
		name string
		call func(a *Args) error
		arg  int
		msg  string
	}{
		{
			name: "negative value as unsigned",
			call: func(a *Args) error { _, err := a.Uint(0); return err },
			arg:  0,
			msg:  "Can't convert argument to u64",
		},
		{
			name: "number as string",
			call: func(a *Args) error { _, err := a.String(1); return err },
			arg:  1,
			msg:  "Can't convert to string",
		},
		{
			name: "missing argument",
			call: func(a *Args) error { _, err := a.Bool(5); return err },
			arg:  5,
			msg:  "No such argument for grid_line",
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			args := NewArgs("grid_line", []any{int64(-1), uint64(3)})
			err := tc.call(args)

			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, "grid_line", perr.Event)
			assert.Equal(t, tc.arg, perr.Arg)
			assert.Equal(t, tc.msg, perr.Msg)
		})
	}
}

func TestParseError_Error(t *testing.T) {
	assert.Equal(t, "flush: bad", (&ParseError{Event: "flush", Arg: -1, Msg: "bad"}).Error())
	assert.Equal(t, "grid_clear: argument 0: bad", (&ParseError{Event: "grid_clear", Msg: "bad"}).Error())
}
