package domain

import "errors"

var (
	ErrSessionConflict = errors.New("a session is already active")
	ErrNoActiveSession = errors.New("no active session")
	ErrInvalidConfig   = errors.New("invalid configuration")
)
