// Package service contains business logic and integrations backing HTTP handlers.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/nulln0ne/rdx-dex/internal/metrics"
	"github.com/nulln0ne/rdx-dex/internal/notify"
	"github.com/nulln0ne/rdx-dex/internal/quote"
	"github.com/nulln0ne/rdx-dex/internal/wallet"
)

// FailureMessage is shown to the user whenever a submitted action fails.
const FailureMessage = "Failed, please try again later!"

// Deps are the collaborators shared by every service.
type Deps struct {
	Logger   *slog.Logger
	Chain    Chain
	Wallet   wallet.Provider
	Waiter   Waiter
	Notifier notify.Sink
	Metrics  *metrics.Metrics

	SlippageBps uint32
	Deadline    time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
}

// BaseService provides common dependencies for service types.
type BaseService struct {
	logger      *slog.Logger
	chain       Chain
	wallet      wallet.Provider
	waiter      Waiter
	notifier    notify.Sink
	metrics     *metrics.Metrics
	slippageBps uint32
	deadline    time.Duration
	now         func() time.Time
}

func newBase(d Deps) BaseService {
	b := BaseService{
		logger:      d.Logger,
		chain:       d.Chain,
		wallet:      d.Wallet,
		waiter:      d.Waiter,
		notifier:    d.Notifier,
		metrics:     d.Metrics,
		slippageBps: d.SlippageBps,
		deadline:    d.Deadline,
		now:         d.Now,
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	if b.notifier == nil {
		b.notifier = notify.NewLogSink(b.logger)
	}
	if b.deadline <= 0 {
		b.deadline = 20 * time.Minute
	}
	if b.now == nil {
		b.now = time.Now
	}
	return b
}

// TxResult describes a mined transaction.
type TxResult struct {
	Action string      `json:"action"`
	Hash   common.Hash `json:"hash"`
	Block  *big.Int    `json:"block,omitempty"`
}

// signerAccount checks the network and returns the account that will sign.
func (b *BaseService) signerAccount(ctx context.Context) (common.Address, error) {
	if err := b.wallet.SwitchToCorrectNetwork(ctx); err != nil {
		return common.Address{}, err
	}
	account, ok := b.wallet.Account(ctx)
	if !ok {
		return common.Address{}, ErrNoAccount
	}
	return account, nil
}

func (b *BaseService) deadlineUnix() *big.Int {
	return big.NewInt(b.now().Add(b.deadline).Unix())
}

// execute sends one transaction, waits for it to be mined and records the
// outcome.
func (b *BaseService) execute(ctx context.Context, action string, send func(ctx context.Context) (*types.Transaction, error)) (TxResult, error) {
	tx, err := send(ctx)
	if err == nil {
		var receipt *types.Receipt
		receipt, err = b.waiter.WaitMined(ctx, tx)
		if err == nil {
			b.metrics.Transaction(action, nil)
			b.logger.Info("transaction mined", "action", action, "hash", tx.Hash().Hex(), "block", receipt.BlockNumber)
			return TxResult{Action: action, Hash: tx.Hash(), Block: receipt.BlockNumber}, nil
		}
	}
	b.metrics.Transaction(action, err)
	b.logger.Error("transaction failed", "action", action, "err", err)
	return TxResult{}, fmt.Errorf("%s: %w", action, err)
}

// ensureAllowance approves spender for an unlimited amount when the current
// allowance does not cover amount.
func (b *BaseService) ensureAllowance(ctx context.Context, tok TokenClient, owner, spender common.Address, amount *big.Int) error {
	allowance, err := tok.Allowance(ctx, owner, spender)
	if err != nil {
		return fmt.Errorf("allowance: %w", err)
	}
	if allowance.Cmp(amount) >= 0 {
		return nil
	}
	_, err = b.execute(ctx, "approve", func(ctx context.Context) (*types.Transaction, error) {
		return tok.Approve(ctx, spender, quote.MaxUint256())
	})
	return err
}

// report notifies the user of the outcome of a user-initiated action.
func (b *BaseService) report(err error, success string) {
	if err != nil {
		b.notifier.Error(FailureMessage)
		return
	}
	b.notifier.Success(success)
}
