package quote

import "errors"

var (
	// ErrInvalidAmount reports user input that is not a finite non-negative
	// decimal representable as a uint256 in the token's smallest unit.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInsufficientBalance reports an amount above the comparator balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
)
