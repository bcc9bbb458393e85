package schedule

import "errors"

var (
	ErrInvalidShift = errors.New("invalid shift")
	ErrInvalidRange = errors.New("end date is before start date")
	ErrInvalidDate  = errors.New("invalid date")
)
