package service

import (
	"context"
	"io"
	"log/slog"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/nulln0ne/rdx-dex/internal/eth"
	"github.com/nulln0ne/rdx-dex/internal/wallet"
	"github.com/nulln0ne/rdx-dex/pkg/uniswapv2"
)

// sentTx records one state-changing call made through the fakes.
type sentTx struct {
	method string
	to     common.Address
	args   []any
}

type fakeChain struct {
	mu      sync.Mutex
	nonce   uint64
	sent    []sentTx
	tokens  map[common.Address]*fakeToken
	pairs   map[common.Address]*fakePair
	factory *fakeFactory
	router  *fakeRouter
	chef    *fakeChef
}

func newFakeChain() *fakeChain {
	ch := &fakeChain{
		tokens:  map[common.Address]*fakeToken{},
		pairs:   map[common.Address]*fakePair{},
		factory: &fakeFactory{pairs: map[[2]common.Address]common.Address{}},
	}
	ch.router = &fakeRouter{chain: ch}
	ch.chef = &fakeChef{chain: ch, deposited: map[common.Address]*big.Int{}, reward: new(big.Int)}
	return ch
}

func (ch *fakeChain) record(method string, to common.Address, args ...any) *types.Transaction {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	ch.sent = append(ch.sent, sentTx{method: method, to: to, args: args})
	tx := types.NewTx(&types.LegacyTx{Nonce: ch.nonce, To: &to, Gas: 21_000, GasPrice: big.NewInt(1), Value: new(big.Int)})
	ch.nonce++
	return tx
}

func (ch *fakeChain) methods() []string {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	out := make([]string, 0, len(ch.sent))
	for _, s := range ch.sent {
		out = append(out, s.method)
	}
	return out
}

func (ch *fakeChain) last() sentTx {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return ch.sent[len(ch.sent)-1]
}

func (ch *fakeChain) addToken(addr common.Address, decimals uint8) *fakeToken {
	t := &fakeToken{
		chain:      ch,
		address:    addr,
		decimals:   decimals,
		supply:     new(big.Int),
		balances:   map[common.Address]*big.Int{},
		allowances: map[[2]common.Address]*big.Int{},
	}
	ch.tokens[addr] = t
	return t
}

// addPair registers a pair whose token0 is token0.
func (ch *fakeChain) addPair(addr, token0, token1 common.Address, reserve0, reserve1 int64) *fakePair {
	p := &fakePair{fakeToken: ch.addToken(addr, 18), token0: token0, reserve0: big.NewInt(reserve0), reserve1: big.NewInt(reserve1)}
	ch.pairs[addr] = p
	ch.factory.pairs[[2]common.Address{token0, token1}] = addr
	ch.factory.pairs[[2]common.Address{token1, token0}] = addr
	return p
}

func (ch *fakeChain) Token(address common.Address) TokenClient {
	if p, ok := ch.pairs[address]; ok {
		return p
	}
	return ch.tokens[address]
}

func (ch *fakeChain) Pair(address common.Address) PairClient     { return ch.pairs[address] }
func (ch *fakeChain) Factory(address common.Address) FactoryClient { return ch.factory }
func (ch *fakeChain) Router(address common.Address) RouterClient  { return ch.router }
func (ch *fakeChain) Chef(address common.Address) ChefClient      { return ch.chef }

type fakeToken struct {
	chain         *fakeChain
	address       common.Address
	decimals      uint8
	decimalsCalls int
	supply        *big.Int
	balances      map[common.Address]*big.Int
	allowances    map[[2]common.Address]*big.Int
}

func (t *fakeToken) BalanceOf(ctx context.Context, owner common.Address) (*big.Int, error) {
	if b, ok := t.balances[owner]; ok {
		return new(big.Int).Set(b), nil
	}
	return new(big.Int), nil
}

func (t *fakeToken) Allowance(ctx context.Context, owner, spender common.Address) (*big.Int, error) {
	if a, ok := t.allowances[[2]common.Address{owner, spender}]; ok {
		return new(big.Int).Set(a), nil
	}
	return new(big.Int), nil
}

func (t *fakeToken) TotalSupply(ctx context.Context) (*big.Int, error) {
	return new(big.Int).Set(t.supply), nil
}

func (t *fakeToken) Decimals(ctx context.Context) (uint8, error) {
	t.decimalsCalls++
	return t.decimals, nil
}

func (t *fakeToken) Approve(ctx context.Context, spender common.Address, amount *big.Int) (*types.Transaction, error) {
	return t.chain.record("approve", t.address, spender, amount), nil
}

type fakePair struct {
	*fakeToken
	token0             common.Address
	reserve0, reserve1 *big.Int
}

func (p *fakePair) GetReserves(ctx context.Context) (*big.Int, *big.Int, error) {
	return new(big.Int).Set(p.reserve0), new(big.Int).Set(p.reserve1), nil
}

func (p *fakePair) Token0(ctx context.Context) (common.Address, error) {
	return p.token0, nil
}

type fakeFactory struct {
	pairs map[[2]common.Address]common.Address
}

func (f *fakeFactory) GetPair(ctx context.Context, tokenA, tokenB common.Address) (common.Address, error) {
	if p, ok := f.pairs[[2]common.Address{tokenA, tokenB}]; ok {
		return p, nil
	}
	return common.Address{}, eth.ErrNoPair
}

// fakeRouter quotes with the fee-bearing formula over the registered pair.
type fakeRouter struct {
	chain *fakeChain
	// quoteErr fails getAmountsOut and getAmountsIn when set.
	quoteErr error
}

func (r *fakeRouter) reserves(path []common.Address) (*big.Int, *big.Int) {
	addr := r.chain.factory.pairs[[2]common.Address{path[0], path[1]}]
	p := r.chain.pairs[addr]
	if p.token0 == path[0] {
		return p.reserve0, p.reserve1
	}
	return p.reserve1, p.reserve0
}

func (r *fakeRouter) GetAmountsOut(ctx context.Context, amountIn *big.Int, path []common.Address) ([]*big.Int, error) {
	if r.quoteErr != nil {
		return nil, r.quoteErr
	}
	rIn, rOut := r.reserves(path)
	var dst, t1, t2 big.Int
	return []*big.Int{amountIn, new(big.Int).Set(uniswapv2.GetAmountOut(&dst, &t1, &t2, amountIn, rIn, rOut))}, nil
}

func (r *fakeRouter) GetAmountsIn(ctx context.Context, amountOut *big.Int, path []common.Address) ([]*big.Int, error) {
	if r.quoteErr != nil {
		return nil, r.quoteErr
	}
	rIn, rOut := r.reserves(path)
	var dst, t1, t2 big.Int
	return []*big.Int{new(big.Int).Set(uniswapv2.GetAmountIn(&dst, &t1, &t2, amountOut, rIn, rOut)), amountOut}, nil
}

func (r *fakeRouter) AddLiquidity(ctx context.Context, p eth.AddLiquidityParams) (*types.Transaction, error) {
	return r.chain.record("addLiquidity", routerAddr, p), nil
}

func (r *fakeRouter) RemoveLiquidity(ctx context.Context, p eth.RemoveLiquidityParams) (*types.Transaction, error) {
	return r.chain.record("removeLiquidity", routerAddr, p), nil
}

func (r *fakeRouter) SwapExactTokensForTokens(ctx context.Context, amountIn, amountOutMin *big.Int, path []common.Address, to common.Address, deadline *big.Int) (*types.Transaction, error) {
	return r.chain.record("swapExactTokensForTokens", routerAddr, amountIn, amountOutMin, path, to, deadline), nil
}

func (r *fakeRouter) SwapTokensForExactTokens(ctx context.Context, amountOut, amountInMax *big.Int, path []common.Address, to common.Address, deadline *big.Int) (*types.Transaction, error) {
	return r.chain.record("swapTokensForExactTokens", routerAddr, amountOut, amountInMax, path, to, deadline), nil
}

type fakeChef struct {
	chain     *fakeChain
	deposited map[common.Address]*big.Int
	reward    *big.Int
}

func (c *fakeChef) Deposit(ctx context.Context, amount *big.Int) (*types.Transaction, error) {
	return c.chain.record("deposit", chefAddr, amount), nil
}

func (c *fakeChef) Withdraw(ctx context.Context, amount *big.Int) (*types.Transaction, error) {
	return c.chain.record("withdraw", chefAddr, amount), nil
}

func (c *fakeChef) Claim(ctx context.Context) (*types.Transaction, error) {
	return c.chain.record("claim", chefAddr), nil
}

func (c *fakeChef) Deposited(ctx context.Context, account common.Address) (*big.Int, error) {
	if d, ok := c.deposited[account]; ok {
		return new(big.Int).Set(d), nil
	}
	return new(big.Int), nil
}

func (c *fakeChef) RewardAmount(ctx context.Context, account common.Address) (*big.Int, error) {
	return new(big.Int).Set(c.reward), nil
}

type fakeWaiter struct {
	err error
}

func (w fakeWaiter) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	if w.err != nil {
		return nil, w.err
	}
	return &types.Receipt{Status: types.ReceiptStatusSuccessful, TxHash: tx.Hash(), BlockNumber: big.NewInt(7)}, nil
}

type fakeWallet struct {
	account    common.Address
	readOnly   bool
	networkErr error
}

func (w fakeWallet) RequestSigner(ctx context.Context) (wallet.Signer, error) {
	return nil, wallet.ErrNoSigner
}

func (w fakeWallet) Account(ctx context.Context) (common.Address, bool) {
	if w.readOnly {
		return common.Address{}, false
	}
	return w.account, true
}

func (w fakeWallet) SwitchToCorrectNetwork(ctx context.Context) error {
	return w.networkErr
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
