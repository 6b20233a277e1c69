package eth

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// ChefContract is the staking farm: deposit the farm token, earn the reward
// token.
type ChefContract struct {
	contract
}

func (c *ChefContract) Deposit(ctx context.Context, amount *big.Int) (*types.Transaction, error) {
	return c.transact(ctx, "deposit", amount)
}

func (c *ChefContract) Withdraw(ctx context.Context, amount *big.Int) (*types.Transaction, error) {
	return c.transact(ctx, "withdraw", amount)
}

func (c *ChefContract) Claim(ctx context.Context) (*types.Transaction, error) {
	return c.transact(ctx, "claim")
}

// Deposited returns users(account).balance.
func (c *ChefContract) Deposited(ctx context.Context, account common.Address) (*big.Int, error) {
	return c.callBig(ctx, common.Address{}, "users", account)
}

// RewardAmount returns the pending reward of account; the contract reads
// msg.sender so the call is made from account.
func (c *ChefContract) RewardAmount(ctx context.Context, account common.Address) (*big.Int, error) {
	return c.callBig(ctx, account, "rewardAmount")
}
