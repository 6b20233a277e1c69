package quote

import "math/big"

// Verdict is the outcome of validating an amount against a balance.
// Insufficient is reported separately so callers can name the token that is
// short instead of showing a generic invalid state.
type Verdict struct {
	Valid        bool `json:"valid"`
	Insufficient bool `json:"insufficient"`
}

// Err returns the sentinel matching the verdict, nil when valid.
func (v Verdict) Err() error {
	switch {
	case v.Valid:
		return nil
	case v.Insufficient:
		return ErrInsufficientBalance
	default:
		return ErrInvalidAmount
	}
}

// Validate judges amount against balance. A nil amount stands for input that
// failed to parse.
func Validate(amount, balance *big.Int) Verdict {
	if amount == nil || amount.Sign() < 0 {
		return Verdict{}
	}
	if balance == nil {
		balance = new(big.Int)
	}
	over := amount.Cmp(balance) > 0
	return Verdict{
		Valid:        amount.Sign() > 0 && !over,
		Insufficient: over,
	}
}

// ValidateInput parses a human amount and validates it. Parse failures give
// an all-false verdict and nil units; no error escapes.
func ValidateInput(humanValue string, decimals int32, balance *big.Int) (Verdict, *big.Int) {
	units, err := CorrectDecimals(humanValue, decimals)
	if err != nil {
		return Verdict{}, nil
	}
	return Validate(units, balance), units
}
