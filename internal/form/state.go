// Package form holds the per-form input state machine and the session that
// keeps forms consistent with the latest on-chain snapshot.
package form

import (
	"math/big"

	"github.com/nulln0ne/rdx-dex/internal/quote"
)

// State is the validation state of one amount input.
type State int

const (
	Empty State = iota
	Invalid
	Insufficient
	Valid
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Invalid:
		return "invalid"
	case Insufficient:
		return "insufficient"
	case Valid:
		return "valid"
	default:
		return "unknown"
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Input is one side of a form: the text the user typed, its value in the
// token's smallest unit and its validation state.
type Input struct {
	Value string   `json:"value"`
	Units *big.Int `json:"units,omitempty"`
	State State    `json:"state"`
}

// Set records a keystroke (or shortcut) and validates it.
func (in *Input) Set(value string, decimals int32, balance *big.Int) {
	in.Value = value
	in.Revalidate(decimals, balance)
}

// SetUnits records an amount computed from units, e.g. a percentage
// shortcut or the paired side of a quote.
func (in *Input) SetUnits(units *big.Int, decimals int32, balance *big.Int) {
	if units == nil {
		in.Reset()
		return
	}
	in.Value = quote.ToHuman(units, decimals).String()
	in.Revalidate(decimals, balance)
}

// Revalidate re-runs validation of the displayed value against a possibly
// refreshed balance. It is idempotent.
func (in *Input) Revalidate(decimals int32, balance *big.Int) {
	if in.Value == "" {
		in.Units = nil
		in.State = Empty
		return
	}
	verdict, units := quote.ValidateInput(in.Value, decimals, balance)
	in.Units = units
	switch {
	case verdict.Valid:
		in.State = Valid
	case verdict.Insufficient:
		in.State = Insufficient
	default:
		in.State = Invalid
	}
}

// Reset empties the input after a submitted transaction completes.
func (in *Input) Reset() {
	*in = Input{}
}

func (in Input) Valid() bool {
	return in.State == Valid
}
