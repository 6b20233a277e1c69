package service

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/nulln0ne/rdx-dex/internal/eth"
)

type TokenClient interface {
	BalanceOf(ctx context.Context, owner common.Address) (*big.Int, error)
	Allowance(ctx context.Context, owner, spender common.Address) (*big.Int, error)
	TotalSupply(ctx context.Context) (*big.Int, error)
	Decimals(ctx context.Context) (uint8, error)
	Approve(ctx context.Context, spender common.Address, amount *big.Int) (*types.Transaction, error)
}

type PairClient interface {
	TokenClient
	GetReserves(ctx context.Context) (reserve0, reserve1 *big.Int, err error)
	Token0(ctx context.Context) (common.Address, error)
}

type FactoryClient interface {
	GetPair(ctx context.Context, tokenA, tokenB common.Address) (common.Address, error)
}

type RouterClient interface {
	GetAmountsOut(ctx context.Context, amountIn *big.Int, path []common.Address) ([]*big.Int, error)
	GetAmountsIn(ctx context.Context, amountOut *big.Int, path []common.Address) ([]*big.Int, error)
	AddLiquidity(ctx context.Context, p eth.AddLiquidityParams) (*types.Transaction, error)
	RemoveLiquidity(ctx context.Context, p eth.RemoveLiquidityParams) (*types.Transaction, error)
	SwapExactTokensForTokens(ctx context.Context, amountIn, amountOutMin *big.Int, path []common.Address, to common.Address, deadline *big.Int) (*types.Transaction, error)
	SwapTokensForExactTokens(ctx context.Context, amountOut, amountInMax *big.Int, path []common.Address, to common.Address, deadline *big.Int) (*types.Transaction, error)
}

type ChefClient interface {
	Deposit(ctx context.Context, amount *big.Int) (*types.Transaction, error)
	Withdraw(ctx context.Context, amount *big.Int) (*types.Transaction, error)
	Claim(ctx context.Context) (*types.Transaction, error)
	Deposited(ctx context.Context, account common.Address) (*big.Int, error)
	RewardAmount(ctx context.Context, account common.Address) (*big.Int, error)
}

// Waiter blocks until a transaction is mined.
type Waiter interface {
	WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error)
}

// Chain binds contract addresses to clients.
type Chain interface {
	Token(address common.Address) TokenClient
	Pair(address common.Address) PairClient
	Factory(address common.Address) FactoryClient
	Router(address common.Address) RouterClient
	Chef(address common.Address) ChefClient
}

type contractsChain struct {
	c *eth.Contracts
}

// NewChain exposes eth.Contracts as a Chain.
func NewChain(c *eth.Contracts) Chain {
	return contractsChain{c: c}
}

func (ch contractsChain) Token(address common.Address) TokenClient {
	return ch.c.Token(address)
}

func (ch contractsChain) Pair(address common.Address) PairClient {
	return ch.c.Pair(address)
}

func (ch contractsChain) Factory(address common.Address) FactoryClient {
	return ch.c.Factory(address)
}

func (ch contractsChain) Router(address common.Address) RouterClient {
	return ch.c.Router(address)
}

func (ch contractsChain) Chef(address common.Address) ChefClient {
	return ch.c.Chef(address)
}
