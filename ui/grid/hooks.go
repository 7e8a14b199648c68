package grid

import "sync/atomic"

type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

type Button int

const (
	ButtonLeft Button = iota + 1
	ButtonMiddle
	ButtonRight
)

type ButtonEvent struct {
	Button    Button
	Row, Col  int
	Modifiers Modifiers
}

type ScrollDirection int

const (
	ScrollUp ScrollDirection = iota
	ScrollDown
	ScrollLeft
	ScrollRight
)

type ScrollEvent struct {
	Direction ScrollDirection
	Row, Col  int
	Modifiers Modifiers
}

type KeyEvent struct {
	// Key is the key in the editor's key notation, e.g. "a" or "<C-w>".
	Key       string
	Modifiers Modifiers
}

type (
	ButtonHandler func(grid uint64, ev ButtonEvent)
	ScrollHandler func(grid uint64, ev ScrollEvent)
	// KeyHandler reports whether it consumed the key.
	KeyHandler func(grid uint64, ev KeyEvent) bool
)

type hookTable struct {
	buttonPress   ButtonHandler
	buttonRelease ButtonHandler
	scroll        ScrollHandler
	keyPress      KeyHandler
	keyRelease    KeyHandler
}

// hooks is shared by the registry and all of its grids. Installing a
// handler swaps in a new table, so a handler that is running keeps
// seeing the table it was called from and may install others freely.
type hooks struct {
	table atomic.Pointer[hookTable]
}

func newHooks() *hooks {
	h := &hooks{}
	h.table.Store(&hookTable{})
	return h
}

func (h *hooks) load() *hookTable {
	return h.table.Load()
}

func (h *hooks) update(fn func(t *hookTable)) {
	for {
		old := h.table.Load()
		next := *old
		fn(&next)
		if h.table.CompareAndSwap(old, &next) {
			return
		}
	}
}
