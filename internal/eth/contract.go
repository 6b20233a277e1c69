package eth

import (
	"context"
	"fmt"
	"math/big"

	ethereum "github.com/ethereum/go-ethereum"
	gethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// contract packs calls with its ABI, runs views through eth_call and hands
// state-changing calls to the Transactor.
type contract struct {
	address common.Address
	abi     gethabi.ABI
	backend Backend
	tx      *Transactor
}

func (c *contract) Address() common.Address {
	return c.address
}

func (c *contract) call(ctx context.Context, from common.Address, method string, args ...any) ([]any, error) {
	input, err := c.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("abi pack %s: %w", method, err)
	}
	out, err := c.backend.CallContract(ctx, ethereum.CallMsg{From: from, To: &c.address, Data: input}, nil)
	if err != nil {
		return nil, fmt.Errorf("eth_call %s on %s: %w", method, c.address.Hex(), err)
	}
	values, err := c.abi.Unpack(method, out)
	if err != nil {
		return nil, fmt.Errorf("abi unpack %s: %w", method, err)
	}
	return values, nil
}

func (c *contract) callBig(ctx context.Context, from common.Address, method string, args ...any) (*big.Int, error) {
	values, err := c.call(ctx, from, method, args...)
	if err != nil {
		return nil, err
	}
	return bigAt(values, 0, method)
}

func (c *contract) callAddress(ctx context.Context, method string, args ...any) (common.Address, error) {
	values, err := c.call(ctx, common.Address{}, method, args...)
	if err != nil {
		return common.Address{}, err
	}
	if len(values) == 0 {
		return common.Address{}, fmt.Errorf("%w: %s returned nothing", ErrUnexpectedOutput, method)
	}
	addr, ok := values[0].(common.Address)
	if !ok {
		return common.Address{}, fmt.Errorf("%w: %s returned %T", ErrUnexpectedOutput, method, values[0])
	}
	return addr, nil
}

func (c *contract) transact(ctx context.Context, method string, args ...any) (*types.Transaction, error) {
	input, err := c.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("abi pack %s: %w", method, err)
	}
	tx, err := c.tx.Send(ctx, c.address, input)
	if err != nil {
		return nil, fmt.Errorf("%s on %s: %w", method, c.address.Hex(), err)
	}
	return tx, nil
}

func bigAt(values []any, i int, method string) (*big.Int, error) {
	if len(values) <= i {
		return nil, fmt.Errorf("%w: %s returned %d values", ErrUnexpectedOutput, method, len(values))
	}
	v, ok := values[i].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("%w: %s returned %T", ErrUnexpectedOutput, method, values[i])
	}
	return v, nil
}

func bigsAt(values []any, i int, method string) ([]*big.Int, error) {
	if len(values) <= i {
		return nil, fmt.Errorf("%w: %s returned %d values", ErrUnexpectedOutput, method, len(values))
	}
	v, ok := values[i].([]*big.Int)
	if !ok {
		return nil, fmt.Errorf("%w: %s returned %T", ErrUnexpectedOutput, method, values[i])
	}
	return v, nil
}

// Contracts binds addresses to typed clients sharing one backend and
// transactor.
type Contracts struct {
	backend Backend
	tx      *Transactor
}

func NewContracts(backend Backend, tx *Transactor) *Contracts {
	return &Contracts{backend: backend, tx: tx}
}

func (c *Contracts) bind(address common.Address, abi gethabi.ABI) contract {
	return contract{address: address, abi: abi, backend: c.backend, tx: c.tx}
}

func (c *Contracts) Token(address common.Address) *TokenContract {
	return &TokenContract{contract: c.bind(address, ERC20ABI)}
}

func (c *Contracts) Pair(address common.Address) *PairContract {
	return &PairContract{TokenContract: TokenContract{contract: c.bind(address, PairABI)}}
}

func (c *Contracts) Router(address common.Address) *RouterContract {
	return &RouterContract{contract: c.bind(address, RouterABI)}
}

func (c *Contracts) Factory(address common.Address) *FactoryContract {
	return &FactoryContract{contract: c.bind(address, FactoryABI)}
}

func (c *Contracts) Chef(address common.Address) *ChefContract {
	return &ChefContract{contract: c.bind(address, ChefABI)}
}
