package export

import "errors"

var ErrNoFrames = errors.New("export: no frames recorded")
