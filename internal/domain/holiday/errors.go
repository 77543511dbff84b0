package holiday

import "errors"

var (
	ErrProviderUnavailable = errors.New("holiday provider unavailable")
	ErrInvalidYear         = errors.New("invalid holiday year")
)
