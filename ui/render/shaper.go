package render

import (
	"math"

	"github.com/hnimtadd/gridsync/ui/highlight"
	"github.com/hnimtadd/gridsync/ui/model"
	dw "github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Shaper turns text into positioned glyphs. Implementations wrap a real
// text layout engine; the pipeline only needs its output.
type Shaper interface {
	Shape(text string, font FontDescription, attrs highlight.FontAttrs, features FontFeatures) *model.GlyphString
	Metrics(font FontDescription, lineSpace int) CellMetrics
}

// MonospaceShaper lays out one glyph per grapheme cluster on a fixed
// advance derived from the font size. It is used when no real shaping
// engine is attached, for example behind a terminal renderer.
type MonospaceShaper struct{}

var _ Shaper = MonospaceShaper{}

const (
	advanceRatio = 0.6
	ascentRatio  = 0.8
	descentRatio = 0.25
	italicSlant  = 0.2
)

func (MonospaceShaper) Metrics(font FontDescription, lineSpace int) CellMetrics {
	ascent := math.Ceil(font.Size * ascentRatio)
	descent := math.Ceil(font.Size * descentRatio)
	return CellMetrics{
		CharWidth:          font.Size * advanceRatio,
		LineHeight:         ascent + descent + float64(lineSpace),
		Ascent:             ascent,
		UnderlinePosition:  ascent + math.Ceil(descent/2),
		UnderlineThickness: max(1, math.Round(font.Size/12)),
	}
}

func (s MonospaceShaper) Shape(text string, font FontDescription, attrs highlight.FontAttrs, _ FontFeatures) *model.GlyphString {
	advance := font.Size * advanceRatio
	gs := &model.GlyphString{}
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		from, _ := g.Positions()
		width := max(dw.StringWidth(g.Str()), 1)
		runes := g.Runes()
		gs.Glyphs = append(gs.Glyphs, model.Glyph{
			ID:       uint32(runes[0]),
			Cluster:  from,
			XAdvance: float64(width) * advance,
		})
		gs.Width += float64(width) * advance
	}
	if attrs.Italic && len(gs.Glyphs) > 0 {
		gs.InkRight = math.Ceil(font.Size * italicSlant)
	}
	return gs
}
