package grid

import "errors"

var ErrUnknownGrid = errors.New("unknown grid")
