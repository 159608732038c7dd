package services

import "errors"

var (
	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("entity was not found")

	// ErrInvalidDate is returned when a date filter cannot be parsed.
	ErrInvalidDate = errors.New("invalid date")
)
