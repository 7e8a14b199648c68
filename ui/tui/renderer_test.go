package tui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/hnimtadd/gridsync/logger"
	"github.com/hnimtadd/gridsync/rpc"
	"github.com/hnimtadd/gridsync/ui"
	"github.com/hnimtadd/gridsync/ui/grid"
	"github.com/hnimtadd/gridsync/ui/redraw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	screen   tcell.SimulationScreen
	state    *ui.State
	reducer  *redraw.Reducer
	renderer *Renderer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(10, 3)

	s := ui.NewState(ui.Options{Logger: logger.Nop})
	r := New(screen, s.Grids(), s.Highlights(), Options{Logger: logger.Nop})
	s.Grids().SetRenderer(r)
	return &fixture{
		screen:   screen,
		state:    s,
		reducer:  redraw.NewReducer(s, redraw.Options{Logger: logger.Nop}),
		renderer: r,
	}
}

func (f *fixture) apply(t *testing.T, events ...[]any) {
	t.Helper()
	for _, ev := range events {
		name := ev[0].(string)
		level, err := f.reducer.Call(name, ev[1:])
		require.NoError(t, err, name)
		if name == redraw.FlushEvent {
			f.state.Flush(level)
		}
	}
	f.renderer.Paint()
}

func (f *fixture) text(row int) string {
	w, _ := f.screen.Size()
	out := make([]rune, 0, w)
	for col := 0; col < w; col++ {
		mainc, _, _, width := f.screen.GetContent(col, row)
		out = append(out, mainc)
		if width == 2 {
			col++
		}
	}
	return string(out)
}

func TestPaintText(t *testing.T) {
	f := newFixture(t)
	f.apply(t,
		[]any{"grid_resize", uint64(1), uint64(10), uint64(3)},
		[]any{"grid_line", uint64(1), uint64(0), uint64(0), []any{[]any{"h"}, []any{"i"}}},
		[]any{"grid_line", uint64(1), uint64(1), uint64(0), []any{[]any{"中"}, []any{""}, []any{"x"}}},
		[]any{"grid_cursor_goto", uint64(1), uint64(1), uint64(3)},
		[]any{"flush"},
	)

	assert.Equal(t, "hi        ", f.text(0))
	assert.Equal(t, "中x       ", f.text(1))

	mainc, _, _, width := f.screen.GetContent(0, 1)
	assert.Equal(t, '中', mainc)
	assert.Equal(t, 2, width)

	x, y, visible := f.screen.GetCursor()
	assert.Equal(t, 3, x)
	assert.Equal(t, 1, y)
	assert.True(t, visible)
	assert.False(t, f.renderer.Pending())
}

func TestPaintDamageOnly(t *testing.T) {
	f := newFixture(t)
	f.apply(t,
		[]any{"grid_resize", uint64(1), uint64(10), uint64(3)},
		[]any{"grid_line", uint64(1), uint64(2), uint64(0), []any{[]any{"z", uint64(0), uint64(3)}}},
		[]any{"flush"},
	)
	assert.Equal(t, "zzz       ", f.text(2))

	// Paint something behind the renderer's back; only damaged cells
	// are repainted.
	f.screen.SetContent(9, 0, '#', nil, tcell.StyleDefault)
	f.apply(t,
		[]any{"grid_line", uint64(1), uint64(0), uint64(0), []any{[]any{"a"}}},
		[]any{"flush"},
	)
	assert.Equal(t, "a        #", f.text(0))
}

func TestPaintStyles(t *testing.T) {
	f := newFixture(t)
	f.apply(t,
		[]any{"grid_resize", uint64(1), uint64(10), uint64(3)},
		[]any{"hl_attr_define", uint64(3), rpc.Map{"foreground": uint64(0xff0000), "bold": true}, rpc.Map{}, []any{}},
		[]any{"hl_attr_define", uint64(4), rpc.Map{"reverse": true, "undercurl": true}, rpc.Map{}, []any{}},
		[]any{"grid_line", uint64(1), uint64(0), uint64(0), []any{[]any{"r", uint64(3)}, []any{"v", uint64(4)}, []any{"d", uint64(0)}}},
		[]any{"flush"},
	)

	_, _, st, _ := f.screen.GetContent(0, 0)
	want := tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(0xff, 0, 0)).
		Background(tcell.NewRGBColor(0xff, 0xff, 0xff)).
		Bold(true).
		Italic(false).
		StrikeThrough(false)
	assert.Equal(t, want, st)

	_, _, st, _ = f.screen.GetContent(1, 0)
	want = tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(0xff, 0xff, 0xff)).
		Background(tcell.NewRGBColor(0, 0, 0)).
		Bold(false).
		Italic(false).
		StrikeThrough(false).
		Underline(true)
	assert.Equal(t, want, st)

	// New default colours drop cached styles and repaint everything.
	f.apply(t,
		[]any{"default_colors_set", int64(0x00ff00), int64(0x000080), int64(-1), int64(0), int64(0)},
		[]any{"flush"},
	)
	_, _, st, _ = f.screen.GetContent(2, 0)
	want = tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(0, 0xff, 0)).
		Background(tcell.NewRGBColor(0, 0, 0x80)).
		Bold(false).
		Italic(false).
		StrikeThrough(false)
	assert.Equal(t, want, st)
}

func TestPaintIgnoresOtherGrids(t *testing.T) {
	f := newFixture(t)
	f.apply(t,
		[]any{"grid_resize", uint64(2), uint64(4), uint64(1)},
		[]any{"grid_line", uint64(2), uint64(0), uint64(0), []any{[]any{"q"}}},
		[]any{"flush"},
	)
	assert.False(t, f.renderer.Pending())
	mainc, _, _, _ := f.screen.GetContent(0, 0)
	assert.NotEqual(t, 'q', mainc)
}

func TestKeyNotation(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want string
	}{
		{name: "rune", ev: tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), want: "a"},
		{name: "less than", ev: tcell.NewEventKey(tcell.KeyRune, '<', tcell.ModNone), want: "<lt>"},
		{name: "alt rune", ev: tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt), want: "<M-x>"},
		{name: "enter", ev: tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), want: "<CR>"},
		{name: "escape", ev: tcell.NewEventKey(tcell.KeyEsc, 0, tcell.ModNone), want: "<Esc>"},
		{name: "shift up", ev: tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModShift), want: "<S-Up>"},
		{name: "ctrl letter", ev: tcell.NewEventKey(tcell.KeyCtrlW, 0, tcell.ModCtrl), want: "<C-w>"},
		{name: "function key", ev: tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), want: "<F5>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := KeyNotation(tt.ev)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInputRoutesToHooks(t *testing.T) {
	f := newFixture(t)
	f.apply(t,
		[]any{"grid_resize", uint64(1), uint64(10), uint64(3)},
		[]any{"flush"},
	)

	var keys []string
	var presses, releases []grid.ButtonEvent
	var scrolls []grid.ScrollEvent
	grids := f.state.Grids()
	grids.ConnectKeyPress(func(id uint64, ev grid.KeyEvent) bool {
		assert.Equal(t, grid.DefaultGrid, id)
		keys = append(keys, ev.Key)
		return true
	})
	grids.ConnectButtonPress(func(_ uint64, ev grid.ButtonEvent) { presses = append(presses, ev) })
	grids.ConnectButtonRelease(func(_ uint64, ev grid.ButtonEvent) { releases = append(releases, ev) })
	grids.ConnectScroll(func(_ uint64, ev grid.ScrollEvent) { scrolls = append(scrolls, ev) })

	in := NewInput(grids, 0)
	assert.True(t, in.Handle(tcell.NewEventKey(tcell.KeyRune, 'j', tcell.ModNone)))
	in.Handle(tcell.NewEventMouse(4, 2, tcell.Button1, tcell.ModNone))
	in.Handle(tcell.NewEventMouse(5, 2, tcell.ButtonNone, tcell.ModNone))
	in.Handle(tcell.NewEventMouse(1, 0, tcell.WheelDown, tcell.ModCtrl))

	assert.Equal(t, []string{"j"}, keys)
	assert.Equal(t, []grid.ButtonEvent{{Button: grid.ButtonLeft, Row: 2, Col: 4}}, presses)
	assert.Equal(t, []grid.ButtonEvent{{Button: grid.ButtonLeft, Row: 2, Col: 5}}, releases)
	assert.Equal(t, []grid.ScrollEvent{{Direction: grid.ScrollDown, Row: 0, Col: 1, Modifiers: grid.ModCtrl}}, scrolls)
}

func TestInputWithoutGrid(t *testing.T) {
	s := ui.NewState(ui.Options{Logger: logger.Nop})
	in := NewInput(s.Grids(), 0)
	assert.False(t, in.Handle(tcell.NewEventKey(tcell.KeyRune, 'j', tcell.ModNone)))
}
