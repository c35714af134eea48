package calendar

import "errors"

var (
	ErrCabinNotFound    = errors.New("cabin not found")
	ErrCalendarNotFound = errors.New("calendar not found for cabin")
	ErrValidation       = errors.New("validation error")
)
