package handler

import "github.com/hnimtadd/gridsync/rpc"

type (
	GridLineHandler interface {
		// GridLine writes the [text, hl_id?, repeat?] cells to row of grid
		// starting at colStart.
		GridLine(grid, row, colStart uint64, cells []any) (RedrawMode, error)
	}

	GridHandler interface {
		// GridResize creates the grid if needed and sets its size.
		GridResize(grid, width, height uint64) RedrawMode
		// GridClear blanks every cell of the grid.
		GridClear(grid uint64) RedrawMode
		// GridDestroy forgets the grid.
		GridDestroy(grid uint64) RedrawMode
	}

	CursorHandler interface {
		GridCursorGoto(grid, row, col uint64) RedrawMode
	}

	ScrollHandler interface {
		// GridScroll moves the region [top,bot) x [left,right) up by rows,
		// or down when rows is negative.
		GridScroll(grid, top, bot, left, right uint64, rows, cols int64) RedrawMode
	}

	HighlightHandler interface {
		// HlAttrDefine registers highlight id. Only the rgb attributes are
		// used; cterm attributes and info are accepted and ignored.
		HlAttrDefine(id uint64, rgbAttrs rpc.Map, ctermAttrs any, info any) (RedrawMode, error)
		// DefaultColorsSet sets the default colours. A negative value
		// keeps the current one.
		DefaultColorsSet(fg, bg, sp, ctermFG, ctermBG int64) RedrawMode
	}

	ModeHandler interface {
		ModeChange(name string, idx uint64) RedrawMode
		ModeInfoSet(cursorStyleEnabled bool, infos []any) (RedrawMode, error)
	}

	OptionHandler interface {
		OptionSet(name string, value any) RedrawMode
	}

	MouseHandler interface {
		SetMouse(enabled bool) RedrawMode
	}

	BusyHandler interface {
		SetBusy(busy bool) RedrawMode
	}
)
