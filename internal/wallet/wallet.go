// Package wallet supplies the authenticated on-chain identity. It is passed
// explicitly to whatever needs to sign; nothing reaches for it globally.
package wallet

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

var (
	// ErrNoSigner is returned by read-only wallets asked to sign.
	ErrNoSigner = errors.New("wallet has no signing key")
	// ErrWrongNetwork is returned when the node serves another chain than
	// the one configured.
	ErrWrongNetwork = errors.New("connected to the wrong network")
)

// Signer signs transactions for one account.
type Signer interface {
	Address() common.Address
	SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error)
}

// Provider is the wallet capability consumed by services.
type Provider interface {
	RequestSigner(ctx context.Context) (Signer, error)
	Account(ctx context.Context) (common.Address, bool)
	SwitchToCorrectNetwork(ctx context.Context) error
}

// ChainIDReader is the part of an Ethereum client the wallet needs.
type ChainIDReader interface {
	ChainID(ctx context.Context) (*big.Int, error)
}

// KeyWallet is a Provider backed by an in-memory private key. Without a key
// it is read-only.
type KeyWallet struct {
	key     *ecdsa.PrivateKey
	chainID *big.Int
	node    ChainIDReader
}

// NewKeyWallet builds a wallet from a hex private key (with or without 0x).
// An empty key yields a read-only wallet.
func NewKeyWallet(hexKey string, chainID *big.Int, node ChainIDReader) (*KeyWallet, error) {
	w := &KeyWallet{chainID: new(big.Int).Set(chainID), node: node}
	hexKey = strings.TrimPrefix(strings.TrimSpace(hexKey), "0x")
	if hexKey == "" {
		return w, nil
	}
	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	w.key = key
	return w, nil
}

func (w *KeyWallet) RequestSigner(ctx context.Context) (Signer, error) {
	if w.key == nil {
		return nil, ErrNoSigner
	}
	return &keySigner{key: w.key}, nil
}

func (w *KeyWallet) Account(ctx context.Context) (common.Address, bool) {
	if w.key == nil {
		return common.Address{}, false
	}
	return crypto.PubkeyToAddress(w.key.PublicKey), true
}

// SwitchToCorrectNetwork cannot switch a remote node's chain; it verifies
// the node serves the configured chain instead.
func (w *KeyWallet) SwitchToCorrectNetwork(ctx context.Context) error {
	got, err := w.node.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("chain id: %w", err)
	}
	if got.Cmp(w.chainID) != 0 {
		return fmt.Errorf("%w: node chain %s, want %s", ErrWrongNetwork, got, w.chainID)
	}
	return nil
}

func (w *KeyWallet) ChainID() *big.Int {
	return new(big.Int).Set(w.chainID)
}

type keySigner struct {
	key *ecdsa.PrivateKey
}

func (s *keySigner) Address() common.Address {
	return crypto.PubkeyToAddress(s.key.PublicKey)
}

func (s *keySigner) SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(chainID), s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}
	return signed, nil
}
