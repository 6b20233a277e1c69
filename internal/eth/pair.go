package eth

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// PairContract is a Uniswap V2 style pair; its LP token is the pair itself.
type PairContract struct {
	TokenContract
}

// GetReserves returns reserve0 and reserve1 in token0/token1 order.
func (p *PairContract) GetReserves(ctx context.Context) (reserve0, reserve1 *big.Int, err error) {
	values, err := p.call(ctx, common.Address{}, "getReserves")
	if err != nil {
		return nil, nil, err
	}
	if reserve0, err = bigAt(values, 0, "getReserves"); err != nil {
		return nil, nil, err
	}
	if reserve1, err = bigAt(values, 1, "getReserves"); err != nil {
		return nil, nil, err
	}
	return reserve0, reserve1, nil
}

func (p *PairContract) Token0(ctx context.Context) (common.Address, error) {
	return p.callAddress(ctx, "token0")
}

func (p *PairContract) Token1(ctx context.Context) (common.Address, error) {
	return p.callAddress(ctx, "token1")
}

// FactoryContract resolves pairs.
type FactoryContract struct {
	contract
}

// GetPair returns the pair of tokenA and tokenB, or ErrNoPair when the
// factory has not created one.
func (f *FactoryContract) GetPair(ctx context.Context, tokenA, tokenB common.Address) (common.Address, error) {
	pair, err := f.callAddress(ctx, "getPair", tokenA, tokenB)
	if err != nil {
		return common.Address{}, err
	}
	if pair == (common.Address{}) {
		return common.Address{}, ErrNoPair
	}
	return pair, nil
}
