package domain

import "errors"

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrDuplicateEmail  = errors.New("email already in use")
	ErrDuplicateName   = errors.New("name already in use")
	ErrSessionActive   = errors.New("active session already exists")
)
