package handler

import "fmt"

// RedrawMode says whether a repaint is needed after a batch and how
// much has to be thrown away first. The levels are ordered; merging two
// takes the larger.
type RedrawMode int

const (
	// RedrawNothing needs no repaint.
	RedrawNothing RedrawMode = iota
	// RedrawCursor needs a repaint of the cursor only.
	RedrawCursor
	// RedrawClearCache keeps glyphs but drops painted snapshots,
	// e.g. after colours changed.
	RedrawClearCache
	// RedrawAll means glyphs changed.
	RedrawAll
)

func (m RedrawMode) Merge(other RedrawMode) RedrawMode {
	return max(m, other)
}

func (m RedrawMode) String() string {
	switch m {
	case RedrawNothing:
		return "Nothing"
	case RedrawCursor:
		return "Cursor"
	case RedrawClearCache:
		return "ClearCache"
	case RedrawAll:
		return "All"
	default:
		return fmt.Sprintf("RedrawMode(%d)", int(m))
	}
}
