package repository

import "errors"

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrSlotTaken is returned when a booking collides with an existing
	// appointment for the same professional, date and time.
	ErrSlotTaken = errors.New("booking slot already taken")

	// ErrSlugTaken is returned when a profile slug is already owned by a
	// different tenant.
	ErrSlugTaken = errors.New("slug already in use")

	// ErrDuplicateEmail is returned when an account email is already
	// registered.
	ErrDuplicateEmail = errors.New("email already registered")
)
