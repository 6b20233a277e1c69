package form

import (
	"math/big"

	"github.com/nulln0ne/rdx-dex/internal/quote"
)

// SwapForm sells an exact amount of token A for an estimated amount of B.
type SwapForm struct {
	In          Input    `json:"in"`
	Out         Input    `json:"out"`
	MinOut      *big.Int `json:"min_out,omitempty"`
	SlippageBps uint32   `json:"slippage_bps"`
}

func NewSwapForm(slippageBps uint32) SwapForm {
	return SwapForm{SlippageBps: slippageBps}
}

func (f *SwapForm) SetInput(value string, snap Snapshot) {
	f.In.Set(value, snap.DecimalsA, snap.BalanceA)
	f.requote(snap)
}

func (f *SwapForm) SetPercent(percent uint32, snap Snapshot) {
	f.In.SetUnits(quote.PercentOfBalance(snap.BalanceA, percent), snap.DecimalsA, snap.BalanceA)
	f.requote(snap)
}

func (f *SwapForm) Revalidate(snap Snapshot) {
	f.In.Revalidate(snap.DecimalsA, snap.BalanceA)
	f.requote(snap)
}

func (f *SwapForm) requote(snap Snapshot) {
	if f.In.Units == nil {
		f.Out.Reset()
		f.MinOut = nil
		return
	}
	out := quote.QuoteSwapOutput(f.In.Units, snap.ReserveA, snap.ReserveB)
	f.Out = display(out, snap.DecimalsB)
	f.MinOut = quote.MinimumOutput(out, f.SlippageBps)
}

func (f *SwapForm) Reset() {
	f.In.Reset()
	f.Out.Reset()
	f.MinOut = nil
}

// CanSubmit reports whether the swap button is enabled.
func (f SwapForm) CanSubmit(snap Snapshot) bool {
	return f.In.Valid() && positive(f.Out.Units) && !snap.NeedApproveA
}

func (f SwapForm) Label(snap Snapshot) string {
	if l, blocked := inputLabel(f.In, snap.Pair.A.Name); blocked {
		return l
	}
	if !positive(f.Out.Units) {
		return "Insufficient liquidity"
	}
	if snap.NeedApproveA {
		return "Approve " + snap.Pair.A.Name
	}
	return "Swap"
}

// LiquidityForm deposits tokens A and B into the pair. Once the pool has a
// price the side not being edited follows the pool ratio.
type LiquidityForm struct {
	A Input `json:"a"`
	B Input `json:"b"`
	// EditedB records which side the user typed last; the other one is
	// derived when the pool has a price.
	EditedB bool `json:"edited_b"`
}

func (f *LiquidityForm) SetA(value string, snap Snapshot) {
	f.EditedB = false
	f.A.Set(value, snap.DecimalsA, snap.BalanceA)
	f.pair(snap)
}

func (f *LiquidityForm) SetB(value string, snap Snapshot) {
	f.EditedB = true
	f.B.Set(value, snap.DecimalsB, snap.BalanceB)
	f.pair(snap)
}

func (f *LiquidityForm) SetPercentA(percent uint32, snap Snapshot) {
	f.EditedB = false
	f.A.SetUnits(quote.PercentOfBalance(snap.BalanceA, percent), snap.DecimalsA, snap.BalanceA)
	f.pair(snap)
}

func (f *LiquidityForm) Revalidate(snap Snapshot) {
	if f.EditedB {
		f.B.Revalidate(snap.DecimalsB, snap.BalanceB)
	} else {
		f.A.Revalidate(snap.DecimalsA, snap.BalanceA)
	}
	f.pair(snap)
	if f.EditedB {
		f.A.Revalidate(snap.DecimalsA, snap.BalanceA)
	} else {
		f.B.Revalidate(snap.DecimalsB, snap.BalanceB)
	}
}

func (f *LiquidityForm) pair(snap Snapshot) {
	if !snap.PoolHasDeposited() {
		return
	}
	if f.EditedB {
		if f.B.Units == nil {
			f.A.Reset()
			return
		}
		paired, _ := quote.QuoteLiquidityPair(f.B.Units, snap.ReserveB, snap.ReserveA, true)
		f.A.SetUnits(paired, snap.DecimalsA, snap.BalanceA)
		return
	}
	if f.A.Units == nil {
		f.B.Reset()
		return
	}
	paired, _ := quote.QuoteLiquidityPair(f.A.Units, snap.ReserveA, snap.ReserveB, true)
	f.B.SetUnits(paired, snap.DecimalsB, snap.BalanceB)
}

func (f *LiquidityForm) Reset() {
	*f = LiquidityForm{}
}

func (f LiquidityForm) CanSubmit(snap Snapshot) bool {
	return f.A.Valid() && f.B.Valid() && !snap.NeedApproveA && !snap.NeedApproveB
}

func (f LiquidityForm) Label(snap Snapshot) string {
	if l, blocked := inputLabel(f.A, snap.Pair.A.Name); blocked {
		return l
	}
	if l, blocked := inputLabel(f.B, snap.Pair.B.Name); blocked {
		return l
	}
	if snap.NeedApproveA {
		return "Approve " + snap.Pair.A.Name
	}
	if snap.NeedApproveB {
		return "Approve " + snap.Pair.B.Name
	}
	return "Supply"
}

// RemoveForm burns LP tokens for an advisory estimate of A and B.
type RemoveForm struct {
	LP      Input    `json:"lp"`
	AmountA *big.Int `json:"amount_a,omitempty"`
	AmountB *big.Int `json:"amount_b,omitempty"`
}

func (f *RemoveForm) SetLP(value string, snap Snapshot) {
	f.LP.Set(value, snap.DecimalsLP, snap.BalanceLP)
	f.estimate(snap)
}

func (f *RemoveForm) SetPercent(percent uint32, snap Snapshot) {
	f.LP.SetUnits(quote.PercentOfBalance(snap.BalanceLP, percent), snap.DecimalsLP, snap.BalanceLP)
	f.estimate(snap)
}

func (f *RemoveForm) Revalidate(snap Snapshot) {
	f.LP.Revalidate(snap.DecimalsLP, snap.BalanceLP)
	f.estimate(snap)
}

func (f *RemoveForm) estimate(snap Snapshot) {
	if f.LP.Units == nil {
		f.AmountA, f.AmountB = nil, nil
		return
	}
	est := quote.EstimateRemove(f.LP.Units, snap.BalanceLP, snap.LPSupply, snap.ReserveA, snap.ReserveB)
	f.AmountA, f.AmountB = est.AmountA, est.AmountB
}

func (f *RemoveForm) Reset() {
	*f = RemoveForm{}
}

func (f RemoveForm) CanSubmit(snap Snapshot) bool {
	return f.LP.Valid() && !snap.NeedApproveLP
}

func (f RemoveForm) Label(snap Snapshot) string {
	if l, blocked := inputLabel(f.LP, snap.Pair.LP.Name); blocked {
		return l
	}
	if snap.NeedApproveLP {
		return "Approve " + snap.Pair.LP.Name
	}
	return "Remove"
}

// StakeForm is the farm's deposit and withdraw inputs. Deposits are bounded
// by the wallet balance, withdrawals by the deposited balance.
type StakeForm struct {
	Deposit  Input `json:"deposit"`
	Withdraw Input `json:"withdraw"`
}

func (f *StakeForm) SetDeposit(value string, decimals int32, walletBalance *big.Int) {
	f.Deposit.Set(value, decimals, walletBalance)
}

func (f *StakeForm) SetWithdraw(value string, decimals int32, deposited *big.Int) {
	f.Withdraw.Set(value, decimals, deposited)
}

func (f *StakeForm) Revalidate(decimals int32, walletBalance, deposited *big.Int) {
	f.Deposit.Revalidate(decimals, walletBalance)
	f.Withdraw.Revalidate(decimals, deposited)
}

func display(units *big.Int, decimals int32) Input {
	if !positive(units) {
		return Input{Value: "0", Units: new(big.Int), State: Invalid}
	}
	return Input{Value: quote.ToHuman(units, decimals).String(), Units: units, State: Valid}
}

// inputLabel returns the button label for an input that blocks submission.
func inputLabel(in Input, tokenName string) (string, bool) {
	switch in.State {
	case Empty:
		return "Enter an amount", true
	case Invalid:
		return "Invalid amount", true
	case Insufficient:
		return "Insufficient " + tokenName + " balance", true
	}
	return "", false
}
