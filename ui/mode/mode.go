package mode

import (
	"fmt"

	"github.com/hnimtadd/gridsync/rpc"
)

// Kind is the coarse editor mode the cursor policy cares about.
type Kind int

const (
	KindNormal Kind = iota
	KindInsert
	KindOther
)

func kindFromName(name string) Kind {
	switch name {
	case "normal":
		return KindNormal
	case "insert":
		return KindInsert
	default:
		return KindOther
	}
}

type CursorShape int

const (
	CursorShapeUnknown CursorShape = iota
	CursorShapeBlock
	CursorShapeHorizontal
	CursorShapeVertical
)

func cursorShapeFromName(name string) CursorShape {
	switch name {
	case "block":
		return CursorShapeBlock
	case "horizontal":
		return CursorShapeHorizontal
	case "vertical":
		return CursorShapeVertical
	default:
		return CursorShapeUnknown
	}
}

func (s CursorShape) String() string {
	switch s {
	case CursorShapeBlock:
		return "block"
	case CursorShapeHorizontal:
		return "horizontal"
	case CursorShapeVertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// Info describes how the cursor looks in one editor mode, as sent by the
// mode_info_set event. Zero blink values mean the cursor doesn't blink.
type Info struct {
	Name      string
	ShortName string
	Shape     CursorShape
	// CellPercentage is the share of the cell covered by horizontal and
	// vertical cursors.
	CellPercentage uint64
	BlinkWait      uint64
	BlinkOn        uint64
	BlinkOff       uint64
	AttrID         uint64
}

// InfoFromMap parses one mode_info_set entry.
func InfoFromMap(m rpc.Map) (Info, error) {
	var info Info
	for key, value := range m {
		var ok bool
		switch key {
		case "name":
			info.Name, ok = rpc.AsString(value)
		case "short_name":
			info.ShortName, ok = rpc.AsString(value)
		case "cursor_shape":
			var name string
			name, ok = rpc.AsString(value)
			info.Shape = cursorShapeFromName(name)
		case "cell_percentage":
			info.CellPercentage, ok = rpc.AsUint(value)
		case "blinkwait":
			info.BlinkWait, ok = rpc.AsUint(value)
		case "blinkon":
			info.BlinkOn, ok = rpc.AsUint(value)
		case "blinkoff":
			info.BlinkOff, ok = rpc.AsUint(value)
		case "attr_id":
			info.AttrID, ok = rpc.AsUint(value)
		default:
			ok = true
		}
		if !ok {
			return Info{}, fmt.Errorf("mode: bad value for %s: %v", key, value)
		}
	}
	return info, nil
}

// Blinks reports whether the cursor blinks in this mode.
func (i Info) Blinks() bool {
	return i.BlinkOn > 0 && i.BlinkOff > 0
}

// State tracks the active mode and the cursor policy table.
type State struct {
	kind  Kind
	name  string
	idx   int
	infos []Info

	// When false the editor asked us to keep the default cursor.
	styleEnabled bool
}

func NewState() *State {
	return &State{kind: KindNormal, name: "normal"}
}

// Update switches to the mode called name whose policy lives at idx.
func (s *State) Update(name string, idx int) {
	s.kind = kindFromName(name)
	s.name = name
	s.idx = idx
}

// SetInfo replaces the policy table.
func (s *State) SetInfo(styleEnabled bool, infos []Info) {
	s.styleEnabled = styleEnabled
	s.infos = infos
}

func (s *State) Is(kind Kind) bool {
	return s.kind == kind
}

func (s *State) Name() string {
	return s.name
}

// Info returns the cursor policy of the active mode. ok is false when
// cursor styling is disabled or the table has no entry for the mode.
func (s *State) Info() (Info, bool) {
	if !s.styleEnabled || s.idx < 0 || s.idx >= len(s.infos) {
		return Info{}, false
	}
	return s.infos[s.idx], true
}

// Clone returns an independent copy so each grid can own its state.
func (s *State) Clone() *State {
	c := *s
	c.infos = append([]Info(nil), s.infos...)
	return &c
}
