package render

import (
	"github.com/hnimtadd/gridsync/logger"
	"github.com/hnimtadd/gridsync/ui/highlight"
	"github.com/hnimtadd/gridsync/ui/model"
	"github.com/mitchellh/hashstructure/v2"
)

// CellMetrics are the pixel dimensions of one grid cell for a font.
type CellMetrics struct {
	CharWidth          float64
	LineHeight         float64
	Ascent             float64
	UnderlinePosition  float64
	UnderlineThickness float64
}

type Options struct {
	Logger logger.Logger
	// Shaper defaults to MonospaceShaper.
	Shaper Shaper
	// Font defaults to DefaultFont.
	Font      string
	Features  FontFeatures
	LineSpace int
}

// Context is the font state of a grid: which font, which features, how
// much extra line spacing, and a cache of shaped runs for that state.
type Context struct {
	logger    logger.Logger
	shaper    Shaper
	font      FontDescription
	features  FontFeatures
	lineSpace int
	metrics   CellMetrics

	cache map[uint64]*model.GlyphString
}

func NewContext(opts Options) *Context {
	if opts.Shaper == nil {
		opts.Shaper = MonospaceShaper{}
	}
	if opts.Font == "" {
		opts.Font = DefaultFont
	}
	c := &Context{
		logger:    logger.OrDefault(opts.Logger),
		shaper:    opts.Shaper,
		font:      ParseFontDescription(opts.Font),
		features:  opts.Features,
		lineSpace: opts.LineSpace,
	}
	c.reset()
	return c
}

func (c *Context) Font() FontDescription    { return c.font }
func (c *Context) Features() FontFeatures   { return c.features }
func (c *Context) LineSpace() int           { return c.lineSpace }
func (c *Context) CellMetrics() CellMetrics { return c.metrics }

func (c *Context) SetFont(font FontDescription) {
	c.font = font
	c.reset()
}

func (c *Context) SetFeatures(features FontFeatures) {
	c.features = features
	c.reset()
}

func (c *Context) SetLineSpace(space int) {
	c.lineSpace = space
	c.reset()
}

func (c *Context) reset() {
	c.metrics = c.shaper.Metrics(c.font, c.lineSpace)
	c.cache = make(map[uint64]*model.GlyphString)
}

type shapeKey struct {
	Text     string
	Attrs    highlight.FontAttrs
	Features FontFeatures
}

// Shape returns the glyphs for text in the current font. Results are
// cached until the font state changes.
func (c *Context) Shape(text string, attrs highlight.FontAttrs) *model.GlyphString {
	key, err := hashstructure.Hash(shapeKey{Text: text, Attrs: attrs, Features: c.features}, hashstructure.FormatV2, nil)
	if err != nil {
		c.logger.Warn("shape cache key", "error", err)
		return c.shaper.Shape(text, c.font, attrs, c.features)
	}
	if gs, ok := c.cache[key]; ok {
		return gs
	}
	gs := c.shaper.Shape(text, c.font, attrs, c.features)
	c.cache[key] = gs
	return gs
}

// CacheLen is the number of cached shaped runs.
func (c *Context) CacheLen() int {
	return len(c.cache)
}
