package models

import (
	"errors"
)

var (
	ErrUserNotFound       = errors.New("models: user not found")
	ErrInvalidCredentials = errors.New("models: invalid credentials")
	ErrDuplicateEmail     = errors.New("models: duplicate email")
	ErrEmptyField         = errors.New("models: required field is empty")
	ErrInvalidAmount      = errors.New("models: invalid numeric value")
	ErrInvalidDelta       = errors.New("models: quantity delta must be +1 or -1")
	ErrNegativeQuantity   = errors.New("models: quantity cannot go below zero")
	ErrRecordNotFound     = errors.New("models: record not found")
	ErrNotOwner           = errors.New("models: record belongs to another user")
	ErrSessionNotFound    = errors.New("models: session not found")
)
