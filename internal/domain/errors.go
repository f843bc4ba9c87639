package domain

import "errors"

var (
	ErrInvalidPurity       = errors.New("invalid purity")
	ErrValidation          = errors.New("invalid input")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrInsufficientBalance = errors.New("insufficient gold balance")
	ErrInvalidState        = errors.New("invalid booking state")
	ErrItemNotFound        = errors.New("item not found")
	ErrBookingNotFound     = errors.New("booking not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrSKUConflict         = errors.New("sku already exists")
	ErrUnknownCurrency     = errors.New("unknown currency")
	ErrInvalidID           = errors.New("invalid id")
)
