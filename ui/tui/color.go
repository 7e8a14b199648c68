package tui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/hnimtadd/gridsync/ui/color"
)

func rgb(c color.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
