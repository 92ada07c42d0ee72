package entity

import "errors"

var (
	// Guest errors
	ErrGuestNotFound = errors.New("guest not found")
	ErrNameRequired  = errors.New("first name and last name are required")

	// Storage errors
	ErrStorageUnavailable = errors.New("storage unavailable")
)
