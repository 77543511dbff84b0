package punch

import "errors"

// Punch domain errors
var (
	ErrBlobCorrupt = errors.New("stored punch data is corrupt")
)
