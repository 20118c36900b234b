package roster

import "errors"

var (
	ErrInvalidInterval  = errors.New("roster: start time must be before end time")
	ErrInvalidField     = errors.New("roster: invalid field")
	ErrInvalidRange     = errors.New("roster: from date is after to date")
	ErrShiftNotFound    = errors.New("roster: shift not found")
	ErrEmployeeNotFound = errors.New("roster: employee not found")
	ErrOverlapConflict  = errors.New("roster: time overlap with existing assignment")
	ErrEmailTaken       = errors.New("roster: email already registered")
)
