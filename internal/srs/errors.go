package srs

import "errors"

// Sentinel errors for the srs package. Check with errors.Is.
var (
	// ErrNotFound means the learning record id does not exist. Fatal to
	// the calling operation; retrying without intervention won't help.
	ErrNotFound = errors.New("srs: learning record not found")
	// ErrInvalidGrade means the grade is outside Again..Easy. Rejected
	// before any I/O happens.
	ErrInvalidGrade = errors.New("srs: invalid grade")
)
