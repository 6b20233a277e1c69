package eth

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// TokenContract is an ERC-20 token.
type TokenContract struct {
	contract
}

func (t *TokenContract) BalanceOf(ctx context.Context, owner common.Address) (*big.Int, error) {
	return t.callBig(ctx, common.Address{}, "balanceOf", owner)
}

func (t *TokenContract) Allowance(ctx context.Context, owner, spender common.Address) (*big.Int, error) {
	return t.callBig(ctx, common.Address{}, "allowance", owner, spender)
}

func (t *TokenContract) TotalSupply(ctx context.Context) (*big.Int, error) {
	return t.callBig(ctx, common.Address{}, "totalSupply")
}

func (t *TokenContract) Decimals(ctx context.Context) (uint8, error) {
	values, err := t.call(ctx, common.Address{}, "decimals")
	if err != nil {
		return 0, err
	}
	if len(values) == 0 {
		return 0, fmt.Errorf("%w: decimals returned nothing", ErrUnexpectedOutput)
	}
	d, ok := values[0].(uint8)
	if !ok {
		return 0, fmt.Errorf("%w: decimals returned %T", ErrUnexpectedOutput, values[0])
	}
	return d, nil
}

func (t *TokenContract) Symbol(ctx context.Context) (string, error) {
	values, err := t.call(ctx, common.Address{}, "symbol")
	if err != nil {
		return "", err
	}
	if len(values) == 0 {
		return "", fmt.Errorf("%w: symbol returned nothing", ErrUnexpectedOutput)
	}
	s, ok := values[0].(string)
	if !ok {
		return "", fmt.Errorf("%w: symbol returned %T", ErrUnexpectedOutput, values[0])
	}
	return s, nil
}

func (t *TokenContract) Approve(ctx context.Context, spender common.Address, amount *big.Int) (*types.Transaction, error) {
	return t.transact(ctx, "approve", spender, amount)
}
