package form

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nulln0ne/rdx-dex/internal/quote"
	"github.com/nulln0ne/rdx-dex/internal/token"
)

const (
	testTimeout = time.Second
	testTick    = 5 * time.Millisecond
)

var (
	tokenA = token.Descriptor{Address: common.HexToAddress("0xaa"), Name: "RDA"}
	tokenB = token.Descriptor{Address: common.HexToAddress("0xbb"), Name: "RDB"}
	tokenC = token.Descriptor{Address: common.HexToAddress("0xcc"), Name: "RDC"}
	lp     = token.Descriptor{Address: common.HexToAddress("0xab"), Name: "RDA-RDB LP"}
)

func snapshot(reserveA, reserveB, balanceA, balanceB int64) Snapshot {
	return Snapshot{
		Pair:      token.Pair{A: tokenA, B: tokenB, LP: lp},
		ReserveA:  big.NewInt(reserveA),
		ReserveB:  big.NewInt(reserveB),
		LPSupply:  big.NewInt(1000),
		BalanceA:  big.NewInt(balanceA),
		BalanceB:  big.NewInt(balanceB),
		BalanceLP: big.NewInt(100),
	}
}

func TestInputStates(t *testing.T) {
	var in Input
	balance := big.NewInt(100)

	in.Revalidate(0, balance)
	assert.Equal(t, Empty, in.State)

	in.Set("abc", 0, balance)
	assert.Equal(t, Invalid, in.State)
	assert.Nil(t, in.Units)

	in.Set("0", 0, balance)
	assert.Equal(t, Invalid, in.State)

	in.Set("150", 0, balance)
	assert.Equal(t, Insufficient, in.State)

	in.Set("100", 0, balance)
	assert.Equal(t, Valid, in.State)

	// balance drops on refresh: same text, new verdict
	in.Revalidate(0, big.NewInt(99))
	assert.Equal(t, Insufficient, in.State)
	assert.Equal(t, "100", in.Value)

	in.Reset()
	assert.Equal(t, Empty, in.State)
	assert.Equal(t, "", in.Value)
}

func TestSwapForm(t *testing.T) {
	snap := snapshot(1000, 2000, 500, 0)
	f := NewSwapForm(quote.DefaultSlippageBps)

	assert.Equal(t, "Enter an amount", f.Label(snap))

	f.SetInput("100", snap)
	assert.Equal(t, Valid, f.In.State)
	assert.Equal(t, "181", f.Out.Value)
	assert.Equal(t, "171", f.MinOut.String())
	assert.True(t, f.CanSubmit(snap))
	assert.Equal(t, "Swap", f.Label(snap))

	f.SetInput("600", snap)
	assert.False(t, f.CanSubmit(snap))
	assert.Equal(t, "Insufficient RDA balance", f.Label(snap))

	snap.NeedApproveA = true
	f.SetPercent(100, snap)
	assert.Equal(t, "500", f.In.Value)
	assert.False(t, f.CanSubmit(snap))
	assert.Equal(t, "Approve RDA", f.Label(snap))

	f.Reset()
	assert.Equal(t, Empty, f.In.State)
	assert.Nil(t, f.MinOut)
}

func TestSwapForm_EmptyPool(t *testing.T) {
	snap := snapshot(0, 0, 500, 0)
	f := NewSwapForm(quote.DefaultSlippageBps)
	f.SetInput("10", snap)
	assert.False(t, f.CanSubmit(snap))
	assert.Equal(t, "Insufficient liquidity", f.Label(snap))
}

func TestLiquidityForm_Proportional(t *testing.T) {
	snap := snapshot(500, 1000, 100, 100)
	var f LiquidityForm

	f.SetA("10", snap)
	assert.Equal(t, "20", f.B.Value)
	assert.True(t, f.CanSubmit(snap))
	assert.Equal(t, "Supply", f.Label(snap))

	f.SetB("300", snap)
	assert.Equal(t, "150", f.A.Value)
	assert.Equal(t, Insufficient, f.A.State)
	assert.Equal(t, "Insufficient RDA balance", f.Label(snap))
}

func TestLiquidityForm_PercentShortcut(t *testing.T) {
	snap := snapshot(500, 1000, 100, 1000)
	var f LiquidityForm

	f.SetPercentA(25, snap)
	assert.Equal(t, "25", f.A.Value)
	assert.Equal(t, "50", f.B.Value)
	assert.True(t, f.CanSubmit(snap))

	f.SetB("10", snap)
	require.True(t, f.EditedB)
	f.SetPercentA(100, snap)
	assert.False(t, f.EditedB)
	assert.Equal(t, "100", f.A.Value)
	assert.Equal(t, "200", f.B.Value)
}

func TestLiquidityForm_PairedAmountBeyondUint256(t *testing.T) {
	e70 := new(big.Int).Exp(big.NewInt(10), big.NewInt(70), nil)
	snap := snapshot(1, 0, 0, 0)
	snap.ReserveB = new(big.Int).Exp(big.NewInt(10), big.NewInt(10), nil)
	snap.BalanceA = e70
	snap.BalanceB = quote.MaxUint256()
	var f LiquidityForm

	f.SetPercentA(100, snap)
	assert.Equal(t, Valid, f.A.State)
	assert.Equal(t, Invalid, f.B.State)
	assert.False(t, f.CanSubmit(snap))
}

func TestLiquidityForm_EmptyPool(t *testing.T) {
	snap := snapshot(0, 0, 100, 100)
	var f LiquidityForm

	f.SetA("50", snap)
	assert.Equal(t, Valid, f.A.State)
	assert.Equal(t, "", f.B.Value)
	assert.Equal(t, Empty, f.B.State)

	f.SetB("7", snap)
	assert.Equal(t, "50", f.A.Value)
	assert.True(t, f.CanSubmit(snap))
}

func TestRemoveForm(t *testing.T) {
	snap := snapshot(5000, 20_000, 0, 0)
	var f RemoveForm

	f.SetLP("50", snap)
	assert.Equal(t, "250", f.AmountA.String())
	assert.Equal(t, "1000", f.AmountB.String())
	assert.Equal(t, "Remove", f.Label(snap))

	f.SetPercent(25, snap)
	assert.Equal(t, "25", f.LP.Value)

	f.SetLP("101", snap)
	assert.Equal(t, Insufficient, f.LP.State)
}

func TestStakeForm(t *testing.T) {
	var f StakeForm
	f.SetDeposit("1.5", 2, big.NewInt(100))
	f.SetWithdraw("0.5", 2, big.NewInt(100))
	assert.Equal(t, Insufficient, f.Deposit.State)
	assert.Equal(t, Valid, f.Withdraw.State)

	f.Revalidate(2, big.NewInt(1000), big.NewInt(10))
	assert.Equal(t, Valid, f.Deposit.State)
	assert.Equal(t, Insufficient, f.Withdraw.State)
}

type stubLoader struct {
	snaps map[common.Address]Snapshot
	gates map[common.Address]chan struct{}
	err   error
}

func (l *stubLoader) Load(ctx context.Context, pair token.Pair) (Snapshot, error) {
	if g, ok := l.gates[pair.B.Address]; ok {
		<-g
	}
	if l.err != nil {
		return Snapshot{}, l.err
	}
	return l.snaps[pair.B.Address], nil
}

func TestSession_RevalidatesOnRefresh(t *testing.T) {
	snap := snapshot(1000, 2000, 500, 0)
	loader := &stubLoader{snaps: map[common.Address]Snapshot{tokenB.Address: snap}}
	s := NewSession(loader, quote.DefaultSlippageBps)

	_, err := s.SetSwapInput("1")
	assert.ErrorIs(t, err, ErrNoPair)
	_, err = s.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrNoPair)

	_, err = s.SelectPair(context.Background(), snap.Pair)
	require.NoError(t, err)

	f, err := s.SetSwapInput("400")
	require.NoError(t, err)
	assert.Equal(t, Valid, f.In.State)

	// the balance shrinks on chain; refreshing flips the verdict
	shrunk := snap
	shrunk.BalanceA = big.NewInt(300)
	loader.snaps[tokenB.Address] = shrunk
	_, err = s.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Insufficient, s.Swap().In.State)
	assert.Equal(t, "400", s.Swap().In.Value)

	s.ResetForms()
	assert.Equal(t, Empty, s.Swap().In.State)
}

func TestSession_SwitchPairResetsForms(t *testing.T) {
	ab := snapshot(1000, 2000, 500, 0)
	ac := snapshot(1000, 2000, 500, 0)
	ac.Pair = token.Pair{A: tokenA, B: tokenC}
	loader := &stubLoader{snaps: map[common.Address]Snapshot{tokenB.Address: ab, tokenC.Address: ac}}
	s := NewSession(loader, quote.DefaultSlippageBps)

	_, err := s.SelectPair(context.Background(), ab.Pair)
	require.NoError(t, err)
	_, err = s.SetLiquidityA("10")
	require.NoError(t, err)

	_, err = s.SelectPair(context.Background(), ac.Pair)
	require.NoError(t, err)
	assert.Equal(t, Empty, s.Liquidity().A.State)
}

func TestSession_DiscardsStaleResponse(t *testing.T) {
	slow := snapshot(1000, 2000, 500, 0)
	fast := snapshot(1000, 2000, 500, 0)
	fast.Pair = token.Pair{A: tokenA, B: tokenC}

	gate := make(chan struct{})
	loader := &stubLoader{
		snaps: map[common.Address]Snapshot{tokenB.Address: slow, tokenC.Address: fast},
		gates: map[common.Address]chan struct{}{tokenB.Address: gate},
	}
	s := NewSession(loader, quote.DefaultSlippageBps)

	done := make(chan error, 1)
	go func() {
		_, err := s.SelectPair(context.Background(), slow.Pair)
		done <- err
	}()

	// wait until the slow request holds its sequence number
	require.Eventually(t, func() bool { return s.seq.n.Load() == 1 }, testTimeout, testTick)

	_, err := s.SelectPair(context.Background(), fast.Pair)
	require.NoError(t, err)

	close(gate)
	assert.ErrorIs(t, <-done, ErrStaleResponse)

	got, ok := s.Snapshot()
	require.True(t, ok)
	assert.Equal(t, tokenC.Address, got.Pair.B.Address)
}

func TestSession_LoadError(t *testing.T) {
	boom := errors.New("rpc down")
	s := NewSession(&stubLoader{err: boom}, quote.DefaultSlippageBps)
	_, err := s.SelectPair(context.Background(), token.Pair{A: tokenA, B: tokenB})
	assert.ErrorIs(t, err, boom)
	_, ok := s.Snapshot()
	assert.False(t, ok)
}

func TestSnapshotReversed(t *testing.T) {
	snap := snapshot(1, 2, 3, 4)
	snap.NeedApproveA = true
	r := snap.Reversed()
	assert.Equal(t, "RDB", r.Pair.A.Name)
	assert.Equal(t, int64(2), r.ReserveA.Int64())
	assert.Equal(t, int64(4), r.BalanceA.Int64())
	assert.True(t, r.NeedApproveB)
	assert.Equal(t, int64(2), snap.K().Int64())
}
