package service

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/nulln0ne/rdx-dex/internal/form"
	"github.com/nulln0ne/rdx-dex/internal/quote"
)

// FarmAddresses locates the staking contract and its two tokens.
type FarmAddresses struct {
	Chef        common.Address
	FarmToken   common.Address
	RewardToken common.Address
}

func (a FarmAddresses) configured() bool {
	zero := common.Address{}
	return a.Chef != zero && a.FarmToken != zero && a.RewardToken != zero
}

// FarmInfo is the account's position in the farm.
type FarmInfo struct {
	Account        common.Address `json:"account"`
	Deposited      *big.Int       `json:"deposited"`
	FarmBalance    *big.Int       `json:"farm_balance"`
	RewardBalance  *big.Int       `json:"reward_balance"`
	PendingReward  *big.Int       `json:"pending_reward"`
	FarmDecimals   int32          `json:"farm_decimals"`
	RewardDecimals int32          `json:"reward_decimals"`
}

// FarmService stakes the farm token in the chef contract.
type FarmService struct {
	BaseService
	loader *StateLoader
	addrs  FarmAddresses
}

func NewFarmService(d Deps, loader *StateLoader, addrs FarmAddresses) *FarmService {
	return &FarmService{BaseService: newBase(d), loader: loader, addrs: addrs}
}

// Info reads the connected account's farm position.
func (s *FarmService) Info(ctx context.Context) (FarmInfo, error) {
	if !s.addrs.configured() {
		return FarmInfo{}, ErrFarmNotConfigured
	}
	account, ok := s.wallet.Account(ctx)
	if !ok {
		return FarmInfo{}, ErrNoAccount
	}
	info := FarmInfo{Account: account}

	var err error
	if info.FarmDecimals, err = s.loader.Decimals(ctx, s.addrs.FarmToken); err != nil {
		return FarmInfo{}, err
	}
	if info.RewardDecimals, err = s.loader.Decimals(ctx, s.addrs.RewardToken); err != nil {
		return FarmInfo{}, err
	}
	if info.FarmBalance, err = s.chain.Token(s.addrs.FarmToken).BalanceOf(ctx, account); err != nil {
		return FarmInfo{}, fmt.Errorf("farm token balance: %w", err)
	}
	if info.RewardBalance, err = s.chain.Token(s.addrs.RewardToken).BalanceOf(ctx, account); err != nil {
		return FarmInfo{}, fmt.Errorf("reward token balance: %w", err)
	}
	chef := s.chain.Chef(s.addrs.Chef)
	if info.Deposited, err = chef.Deposited(ctx, account); err != nil {
		return FarmInfo{}, fmt.Errorf("deposited: %w", err)
	}
	if info.PendingReward, err = chef.RewardAmount(ctx, account); err != nil {
		return FarmInfo{}, fmt.Errorf("pending reward: %w", err)
	}
	return info, nil
}

// Stake validates the farm form against the current position.
func (s *FarmService) Stake(ctx context.Context, humanDeposit, humanWithdraw string) (form.StakeForm, FarmInfo, error) {
	info, err := s.Info(ctx)
	if err != nil {
		return form.StakeForm{}, FarmInfo{}, err
	}
	var f form.StakeForm
	f.SetDeposit(humanDeposit, info.FarmDecimals, info.FarmBalance)
	f.SetWithdraw(humanWithdraw, info.FarmDecimals, info.Deposited)
	return f, info, nil
}

// Deposit stakes humanAmount of the farm token, approving the chef first
// when its allowance is short.
func (s *FarmService) Deposit(ctx context.Context, humanAmount string) (res TxResult, err error) {
	defer func() { s.report(err, "Success, please check your deposited balance") }()

	if _, err := s.signerAccount(ctx); err != nil {
		return TxResult{}, err
	}
	f, info, err := s.Stake(ctx, humanAmount, "")
	if err != nil {
		return TxResult{}, err
	}
	if err := inputErr(f.Deposit); err != nil {
		return TxResult{}, err
	}
	value := f.Deposit.Units

	if err := s.ensureAllowance(ctx, s.chain.Token(s.addrs.FarmToken), info.Account, s.addrs.Chef, value); err != nil {
		return TxResult{}, err
	}
	return s.execute(ctx, "farm_deposit", func(ctx context.Context) (*types.Transaction, error) {
		return s.chain.Chef(s.addrs.Chef).Deposit(ctx, value)
	})
}

// Withdraw unstakes humanAmount, bounded by the deposited balance.
func (s *FarmService) Withdraw(ctx context.Context, humanAmount string) (res TxResult, err error) {
	defer func() { s.report(err, "Success, please check your farm token balance") }()

	if _, err := s.signerAccount(ctx); err != nil {
		return TxResult{}, err
	}
	f, _, err := s.Stake(ctx, "", humanAmount)
	if err != nil {
		return TxResult{}, err
	}
	if err := inputErr(f.Withdraw); err != nil {
		return TxResult{}, err
	}
	value := f.Withdraw.Units
	return s.execute(ctx, "farm_withdraw", func(ctx context.Context) (*types.Transaction, error) {
		return s.chain.Chef(s.addrs.Chef).Withdraw(ctx, value)
	})
}

// Claim collects the pending reward.
func (s *FarmService) Claim(ctx context.Context) (res TxResult, err error) {
	var pending string
	defer func() {
		s.report(err, "Success, "+pending+" reward tokens are transferred to your address")
	}()

	if _, err := s.signerAccount(ctx); err != nil {
		return TxResult{}, err
	}
	info, err := s.Info(ctx)
	if err != nil {
		return TxResult{}, err
	}
	pending = quote.FormatAmount(info.PendingReward, info.RewardDecimals)
	return s.execute(ctx, "farm_claim", func(ctx context.Context) (*types.Transaction, error) {
		return s.chain.Chef(s.addrs.Chef).Claim(ctx)
	})
}
