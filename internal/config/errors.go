package config

import (
	"errors"
	"fmt"
)

// ErrMissingRPCEndpoint indicates that the required ETH_RPC_URL variable is
// not set in the environment.
var ErrMissingRPCEndpoint = errors.New("missing ETH_RPC_URL environment variable")

// ErrMissingChainID indicates that CHAIN_ID is not set.
var ErrMissingChainID = errors.New("missing CHAIN_ID environment variable")

// ErrInvalidChainID indicates that CHAIN_ID is not a positive integer.
var ErrInvalidChainID = errors.New("CHAIN_ID must be a positive integer")

// ErrMissingVariable is wrapped for any other required variable.
var ErrMissingVariable = errors.New("missing environment variable")

// ErrInvalidAddress indicates an address variable that is not 20 hex bytes.
var ErrInvalidAddress = errors.New("invalid address")

// ErrInvalidSlippage indicates SLIPPAGE_BPS outside 0..10000.
var ErrInvalidSlippage = errors.New("SLIPPAGE_BPS must be an integer between 0 and 10000")

// ErrInvalidDuration indicates a duration that does not parse or is not
// positive.
var ErrInvalidDuration = errors.New("invalid duration")

func newMissing(key string) error {
	return fmt.Errorf("%w: %s", ErrMissingVariable, key)
}

func newInvalid(key string, err error) error {
	return fmt.Errorf("%s: %w", key, err)
}
