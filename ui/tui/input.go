package tui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/hnimtadd/gridsync/ui/grid"
)

// Input routes terminal events to the hooks of the shown grid.
type Input struct {
	grids  *grid.Registry
	gridID uint64

	// buttons held at the last mouse event, to synthesize releases
	held tcell.ButtonMask
}

func NewInput(grids *grid.Registry, gridID uint64) *Input {
	if gridID == 0 {
		gridID = grid.DefaultGrid
	}
	return &Input{grids: grids, gridID: gridID}
}

// Handle dispatches ev and reports whether a hook consumed it.
func (in *Input) Handle(ev tcell.Event) bool {
	g, ok := in.grids.Get(in.gridID)
	if !ok {
		return false
	}
	switch ev := ev.(type) {
	case *tcell.EventKey:
		key, ok := KeyNotation(ev)
		if !ok {
			return false
		}
		return g.KeyPress(grid.KeyEvent{Key: key, Modifiers: modifiers(ev.Modifiers())})
	case *tcell.EventMouse:
		in.mouse(g, ev)
		return true
	}
	return false
}

func (in *Input) mouse(g *grid.Grid, ev *tcell.EventMouse) {
	col, row := ev.Position()
	mods := modifiers(ev.Modifiers())
	buttons := ev.Buttons()

	for mask, dir := range wheel {
		if buttons&mask != 0 {
			g.Scrolled(grid.ScrollEvent{Direction: dir, Row: row, Col: col, Modifiers: mods})
		}
	}
	for mask, b := range mouseButtons {
		was, is := in.held&mask != 0, buttons&mask != 0
		switch {
		case is && !was:
			g.ButtonPress(grid.ButtonEvent{Button: b, Row: row, Col: col, Modifiers: mods})
		case was && !is:
			g.ButtonRelease(grid.ButtonEvent{Button: b, Row: row, Col: col, Modifiers: mods})
		}
	}
	in.held = buttons & (tcell.Button1 | tcell.Button2 | tcell.Button3)
}

var mouseButtons = map[tcell.ButtonMask]grid.Button{
	tcell.Button1: grid.ButtonLeft,
	tcell.Button2: grid.ButtonRight,
	tcell.Button3: grid.ButtonMiddle,
}

var wheel = map[tcell.ButtonMask]grid.ScrollDirection{
	tcell.WheelUp:    grid.ScrollUp,
	tcell.WheelDown:  grid.ScrollDown,
	tcell.WheelLeft:  grid.ScrollLeft,
	tcell.WheelRight: grid.ScrollRight,
}

func modifiers(m tcell.ModMask) grid.Modifiers {
	var out grid.Modifiers
	if m&tcell.ModShift != 0 {
		out |= grid.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		out |= grid.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		out |= grid.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		out |= grid.ModMeta
	}
	return out
}

var keyNames = map[tcell.Key]string{
	tcell.KeyEnter:      "CR",
	tcell.KeyTab:        "Tab",
	tcell.KeyBacktab:    "S-Tab",
	tcell.KeyBackspace:  "BS",
	tcell.KeyBackspace2: "BS",
	tcell.KeyEsc:        "Esc",
	tcell.KeyUp:         "Up",
	tcell.KeyDown:       "Down",
	tcell.KeyLeft:       "Left",
	tcell.KeyRight:      "Right",
	tcell.KeyHome:       "Home",
	tcell.KeyEnd:        "End",
	tcell.KeyPgUp:       "PageUp",
	tcell.KeyPgDn:       "PageDown",
	tcell.KeyInsert:     "Insert",
	tcell.KeyDelete:     "Del",
	tcell.KeyF1:         "F1",
	tcell.KeyF2:         "F2",
	tcell.KeyF3:         "F3",
	tcell.KeyF4:         "F4",
	tcell.KeyF5:         "F5",
	tcell.KeyF6:         "F6",
	tcell.KeyF7:         "F7",
	tcell.KeyF8:         "F8",
	tcell.KeyF9:         "F9",
	tcell.KeyF10:        "F10",
	tcell.KeyF11:        "F11",
	tcell.KeyF12:        "F12",
}

// KeyNotation renders a key event in the editor's key notation, e.g.
// "a", "<lt>", "<C-w>" or "<M-CR>".
func KeyNotation(ev *tcell.EventKey) (string, bool) {
	mods := ev.Modifiers()
	prefix := ""
	if mods&tcell.ModCtrl != 0 {
		prefix += "C-"
	}
	if mods&(tcell.ModAlt|tcell.ModMeta) != 0 {
		prefix += "M-"
	}

	k := ev.Key()
	if name, ok := keyNames[k]; ok {
		if mods&tcell.ModShift != 0 {
			prefix = "S-" + prefix
		}
		return "<" + prefix + name + ">", true
	}
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		if !strings.Contains(prefix, "C-") {
			prefix = "C-" + prefix
		}
		return fmt.Sprintf("<%s%c>", prefix, 'a'+rune(k-tcell.KeyCtrlA)), true
	}
	if k != tcell.KeyRune {
		return "", false
	}
	r := ev.Rune()
	if r == '<' {
		return "<" + prefix + "lt>", true
	}
	if prefix != "" {
		return "<" + prefix + string(r) + ">", true
	}
	return string(r), true
}
