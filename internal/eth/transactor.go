package eth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"sync"
	"time"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/nulln0ne/rdx-dex/internal/wallet"
)

// gas estimates get 20% headroom
const (
	gasHeadroomNum = 12
	gasHeadroomDen = 10
)

// Transactor signs and submits contract calls for the wallet's account.
// Sends are serialized so pending nonces do not collide.
type Transactor struct {
	backend      Backend
	wallet       wallet.Provider
	chainID      *big.Int
	pollInterval time.Duration
	logger       *slog.Logger

	mu sync.Mutex
}

func NewTransactor(logger *slog.Logger, backend Backend, w wallet.Provider, chainID *big.Int, pollInterval time.Duration) *Transactor {
	if pollInterval <= 0 {
		pollInterval = 2 * time.Second
	}
	return &Transactor{
		backend:      backend,
		wallet:       w,
		chainID:      new(big.Int).Set(chainID),
		pollInterval: pollInterval,
		logger:       logger,
	}
}

// Send signs a call of data to `to` and broadcasts it.
func (t *Transactor) Send(ctx context.Context, to common.Address, data []byte) (*types.Transaction, error) {
	signer, err := t.wallet.RequestSigner(ctx)
	if err != nil {
		return nil, err
	}
	from := signer.Address()

	t.mu.Lock()
	defer t.mu.Unlock()

	nonce, err := t.backend.PendingNonceAt(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("pending nonce: %w", err)
	}
	head, err := t.backend.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("latest header: %w", err)
	}

	msg := ethereum.CallMsg{From: from, To: &to, Data: data}
	var fees feeParams
	if head.BaseFee != nil {
		if fees, err = t.dynamicFees(ctx, head.BaseFee); err != nil {
			return nil, err
		}
		msg.GasFeeCap, msg.GasTipCap = fees.feeCap, fees.tipCap
	} else {
		if fees.gasPrice, err = t.backend.SuggestGasPrice(ctx); err != nil {
			return nil, fmt.Errorf("gas price: %w", err)
		}
		msg.GasPrice = fees.gasPrice
	}
	gas, err := t.backend.EstimateGas(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("estimate gas: %w", err)
	}
	gas = gas * gasHeadroomNum / gasHeadroomDen

	var tx *types.Transaction
	if head.BaseFee != nil {
		tx = types.NewTx(&types.DynamicFeeTx{
			ChainID:   t.chainID,
			Nonce:     nonce,
			GasTipCap: fees.tipCap,
			GasFeeCap: fees.feeCap,
			Gas:       gas,
			To:        &to,
			Value:     new(big.Int),
			Data:      data,
		})
	} else {
		tx = types.NewTx(&types.LegacyTx{
			Nonce:    nonce,
			GasPrice: fees.gasPrice,
			Gas:      gas,
			To:       &to,
			Value:    new(big.Int),
			Data:     data,
		})
	}
	signed, err := signer.SignTx(tx, t.chainID)
	if err != nil {
		return nil, err
	}
	if err := t.backend.SendTransaction(ctx, signed); err != nil {
		return nil, fmt.Errorf("send transaction: %w", err)
	}
	t.logger.Debug("transaction sent", "hash", signed.Hash().Hex(), "to", to.Hex(), "nonce", nonce, "gas", gas)
	return signed, nil
}

type feeParams struct {
	gasPrice *big.Int
	tipCap   *big.Int
	feeCap   *big.Int
}

// dynamicFees prices an EIP-1559 transaction: the suggested tip on top of
// twice the current base fee.
func (t *Transactor) dynamicFees(ctx context.Context, baseFee *big.Int) (feeParams, error) {
	tip, err := t.backend.SuggestGasTipCap(ctx)
	if err != nil {
		return feeParams{}, fmt.Errorf("gas tip cap: %w", err)
	}
	feeCap := new(big.Int).Mul(baseFee, big.NewInt(2))
	feeCap.Add(feeCap, tip)
	return feeParams{tipCap: tip, feeCap: feeCap}, nil
}

// WaitMined polls for the receipt of tx until it is mined or ctx ends. A
// mined but reverted transaction yields ErrTxReverted.
func (t *Transactor) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	ticker := time.NewTicker(t.pollInterval)
	defer ticker.Stop()

	for {
		receipt, err := t.backend.TransactionReceipt(ctx, tx.Hash())
		switch {
		case err == nil && receipt != nil:
			if receipt.Status != types.ReceiptStatusSuccessful {
				return receipt, fmt.Errorf("%w: %s", ErrTxReverted, tx.Hash().Hex())
			}
			return receipt, nil
		case err != nil && !errors.Is(err, ethereum.NotFound):
			t.logger.Debug("receipt not retrieved", "hash", tx.Hash().Hex(), "err", err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
