package highlight

import "github.com/hnimtadd/gridsync/ui/color"

var (
	DefaultForeground = color.Black
	DefaultBackground = color.White
	DefaultSpecial    = color.Red
)

// Map resolves highlight ids to definitions and carries the default
// colours every unset highlight colour falls back to.
type Map struct {
	highlights map[ID]*Highlight
	def        *Highlight

	fg, bg, sp color.RGB
}

func NewMap() *Map {
	return &Map{
		highlights: make(map[ID]*Highlight),
		def:        &Highlight{},
		fg:         DefaultForeground,
		bg:         DefaultBackground,
		sp:         DefaultSpecial,
	}
}

// Default returns the highlight used by id 0 and unknown ids. The
// pointer is stable for the lifetime of the map.
func (m *Map) Default() *Highlight {
	return m.def
}

// Get returns the definition for id, falling back to the default
// highlight when id was never defined.
func (m *Map) Get(id ID) *Highlight {
	if id == DefaultID {
		return m.def
	}
	if hl, ok := m.highlights[id]; ok {
		return hl
	}
	return m.def
}

// Set registers hl under id. Redefining id 0 is not allowed, the editor
// changes the default look through SetDefaults.
func (m *Map) Set(id ID, hl *Highlight) {
	if id == DefaultID {
		return
	}
	m.highlights[id] = hl
}

func (m *Map) Len() int {
	return len(m.highlights)
}

// SetDefaults replaces the default colours. A nil argument keeps the
// previous value.
func (m *Map) SetDefaults(fg, bg, sp *color.RGB) {
	if fg != nil {
		m.fg = *fg
	}
	if bg != nil {
		m.bg = *bg
	}
	if sp != nil {
		m.sp = *sp
	}
}

func (m *Map) Defaults() (fg, bg, sp color.RGB) {
	return m.fg, m.bg, m.sp
}

// ActualFG returns the colour glyphs are drawn with, honouring reverse.
func (m *Map) ActualFG(hl *Highlight) color.RGB {
	if hl.Reverse {
		return m.or(hl.Background, m.bg)
	}
	return m.or(hl.Foreground, m.fg)
}

// ActualBG returns the colour the cell background is filled with,
// honouring reverse.
func (m *Map) ActualBG(hl *Highlight) color.RGB {
	if hl.Reverse {
		return m.or(hl.Foreground, m.fg)
	}
	return m.or(hl.Background, m.bg)
}

// CellBG returns the background a renderer has to paint explicitly, or
// nil when the cell shows the default background.
func (m *Map) CellBG(hl *Highlight) *color.RGB {
	bg := m.ActualBG(hl)
	if !hl.Reverse && !hl.Background.IsSet() {
		return nil
	}
	if bg == m.bg {
		return nil
	}
	return &bg
}

// ActualSP returns the undercurl/underline colour.
func (m *Map) ActualSP(hl *Highlight) color.RGB {
	return m.or(hl.Special, m.sp)
}

func (m *Map) or(c Color, fallback color.RGB) color.RGB {
	if c.IsSet() {
		return c.RGB
	}
	return fallback
}
