package models

import (
	"errors"
)

var (
	ErrValidation = errors.New("validation error")

	ErrBackend           = errors.New("backend request failed")
	ErrContract          = errors.New("backend response does not match contract")
	ErrInsufficientFunds = errors.New("insufficient funds")
)
