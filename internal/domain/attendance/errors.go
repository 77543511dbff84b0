package attendance

import "errors"

var (
	ErrWorkerNotFound = errors.New("worker not found")
	ErrInvalidPeriod  = errors.New("invalid period, expected today, last7days, last30days or allTime")
	ErrWorkerRequired = errors.New("worker is required")
)
