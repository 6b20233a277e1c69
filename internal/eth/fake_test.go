package eth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"sync"
	"testing"

	gethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	gethrpc "github.com/ethereum/go-ethereum/rpc"
)

// handler answers one decoded contract call.
type handler func(from common.Address, method string, args []any) ([]any, error)

type fakeContract struct {
	abi    gethabi.ABI
	handle handler
}

type callArgs struct {
	From  *common.Address `json:"from"`
	To    *common.Address `json:"to"`
	Data  *hexutil.Bytes  `json:"data"`
	Input *hexutil.Bytes  `json:"input"`
}

func (a callArgs) payload() []byte {
	if a.Input != nil {
		return *a.Input
	}
	if a.Data != nil {
		return *a.Data
	}
	return nil
}

// fakeEth serves the eth_* methods ethclient needs from in-memory contract
// handlers.
type fakeEth struct {
	mu        sync.Mutex
	chainID   int64
	contracts map[common.Address]fakeContract
	nonce     uint64
	sent      []*types.Transaction
	receipts  map[common.Hash]*types.Receipt
	revert    bool
	// baseFee makes the latest header post-London; nil serves a legacy chain.
	baseFee *big.Int
}

func newFakeEth(chainID int64) *fakeEth {
	return &fakeEth{
		chainID:   chainID,
		contracts: map[common.Address]fakeContract{},
		receipts:  map[common.Hash]*types.Receipt{},
	}
}

func (f *fakeEth) ChainId(ctx context.Context) (*hexutil.Big, error) {
	return (*hexutil.Big)(big.NewInt(f.chainID)), nil
}

func (f *fakeEth) Call(ctx context.Context, args callArgs, _ gethrpc.BlockNumberOrHash) (hexutil.Bytes, error) {
	if args.To == nil {
		return nil, errors.New("missing to")
	}
	f.mu.Lock()
	c, ok := f.contracts[*args.To]
	f.mu.Unlock()
	if !ok {
		return hexutil.Bytes{}, nil
	}
	data := args.payload()
	if len(data) < 4 {
		return nil, errors.New("short calldata")
	}
	m, err := c.abi.MethodById(data[:4])
	if err != nil {
		return nil, err
	}
	in, err := m.Inputs.Unpack(data[4:])
	if err != nil {
		return nil, err
	}
	var from common.Address
	if args.From != nil {
		from = *args.From
	}
	out, err := c.handle(from, m.Name, in)
	if err != nil {
		return nil, err
	}
	return m.Outputs.Pack(out...)
}

func (f *fakeEth) EstimateGas(ctx context.Context, args callArgs, _ *gethrpc.BlockNumberOrHash) (hexutil.Uint64, error) {
	return hexutil.Uint64(100_000), nil
}

func (f *fakeEth) GasPrice(ctx context.Context) (*hexutil.Big, error) {
	return (*hexutil.Big)(big.NewInt(1_000_000_000)), nil
}

func (f *fakeEth) MaxPriorityFeePerGas(ctx context.Context) (*hexutil.Big, error) {
	return (*hexutil.Big)(big.NewInt(2_000_000_000)), nil
}

func (f *fakeEth) GetBlockByNumber(ctx context.Context, number gethrpc.BlockNumber, full bool) (*types.Header, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &types.Header{
		Number:     big.NewInt(1),
		Difficulty: new(big.Int),
		GasLimit:   30_000_000,
		BaseFee:    f.baseFee,
	}, nil
}

func (f *fakeEth) GetTransactionCount(ctx context.Context, addr common.Address, _ gethrpc.BlockNumberOrHash) (hexutil.Uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return hexutil.Uint64(f.nonce), nil
}

func (f *fakeEth) SendRawTransaction(ctx context.Context, raw hexutil.Bytes) (common.Hash, error) {
	tx := new(types.Transaction)
	if err := tx.UnmarshalBinary(raw); err != nil {
		return common.Hash{}, fmt.Errorf("decode tx: %w", err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nonce++
	f.sent = append(f.sent, tx)
	status := types.ReceiptStatusSuccessful
	if f.revert {
		status = types.ReceiptStatusFailed
	}
	f.receipts[tx.Hash()] = &types.Receipt{
		Status:            status,
		CumulativeGasUsed: 21_000,
		GasUsed:           21_000,
		Logs:              []*types.Log{},
		TxHash:            tx.Hash(),
	}
	return tx.Hash(), nil
}

func (f *fakeEth) GetTransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.receipts[hash], nil
}

func newInprocEthClient(t *testing.T, fe *fakeEth) *ethclient.Client {
	t.Helper()
	srv := gethrpc.NewServer()
	// Register under the standard "eth" namespace so methods map to eth_*
	if err := srv.RegisterName("eth", fe); err != nil {
		t.Fatalf("register rpc service: %v", err)
	}
	t.Cleanup(srv.Stop)
	c := gethrpc.DialInProc(srv)
	return ethclient.NewClient(c)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
