package statistics

import "errors"

var (
	ErrInvalidSortOrder = errors.New("invalid sort order, expected asc or desc")
)
