package config

import (
	"math/big"
	"os"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

type Config struct {
	Addr        string
	RPCEndpoint string
	LogLevel    string

	ChainID *big.Int
	Router  common.Address
	// Factory is resolved from the router when unset.
	Factory common.Address

	Chef        common.Address
	FarmToken   common.Address
	RewardToken common.Address

	WalletPrivateKey string

	SlippageBps         uint32
	TxDeadline          time.Duration
	ReceiptPollInterval time.Duration
}

const (
	defaultSlippageBps = 500
	maxSlippageBps     = 10_000
)

func FromEnv() (*Config, error) {
	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":1337"
	}

	rpcURL := os.Getenv("ETH_RPC_URL")
	if rpcURL == "" {
		return nil, ErrMissingRPCEndpoint
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	chainID, err := chainIDFromEnv()
	if err != nil {
		return nil, err
	}

	router, err := addressFromEnv("ROUTER_ADDRESS", true)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Addr:             addr,
		RPCEndpoint:      rpcURL,
		LogLevel:         logLevel,
		ChainID:          chainID,
		Router:           router,
		WalletPrivateKey: os.Getenv("WALLET_PRIVATE_KEY"),
	}

	if cfg.Factory, err = addressFromEnv("FACTORY_ADDRESS", false); err != nil {
		return nil, err
	}
	if cfg.Chef, err = addressFromEnv("CHEF_ADDRESS", false); err != nil {
		return nil, err
	}
	if cfg.FarmToken, err = addressFromEnv("FARM_TOKEN_ADDRESS", false); err != nil {
		return nil, err
	}
	if cfg.RewardToken, err = addressFromEnv("REWARD_TOKEN_ADDRESS", false); err != nil {
		return nil, err
	}

	if cfg.SlippageBps, err = slippageFromEnv(); err != nil {
		return nil, err
	}
	if cfg.TxDeadline, err = durationFromEnv("TX_DEADLINE", 20*time.Minute); err != nil {
		return nil, err
	}
	if cfg.ReceiptPollInterval, err = durationFromEnv("RECEIPT_POLL_INTERVAL", 2*time.Second); err != nil {
		return nil, err
	}

	return cfg, nil
}

func chainIDFromEnv() (*big.Int, error) {
	raw := os.Getenv("CHAIN_ID")
	if raw == "" {
		return nil, ErrMissingChainID
	}
	id, ok := new(big.Int).SetString(raw, 10)
	if !ok || id.Sign() <= 0 {
		return nil, ErrInvalidChainID
	}
	return id, nil
}

func addressFromEnv(key string, required bool) (common.Address, error) {
	raw := os.Getenv(key)
	if raw == "" {
		if required {
			return common.Address{}, newMissing(key)
		}
		return common.Address{}, nil
	}
	if !common.IsHexAddress(raw) {
		return common.Address{}, newInvalid(key, ErrInvalidAddress)
	}
	return common.HexToAddress(raw), nil
}

func slippageFromEnv() (uint32, error) {
	raw := os.Getenv("SLIPPAGE_BPS")
	if raw == "" {
		return defaultSlippageBps, nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || v > maxSlippageBps {
		return 0, ErrInvalidSlippage
	}
	return uint32(v), nil
}

func durationFromEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, newInvalid(key, ErrInvalidDuration)
	}
	return d, nil
}

// FarmConfigured reports whether every farm address is set.
func (c *Config) FarmConfigured() bool {
	zero := common.Address{}
	return c.Chef != zero && c.FarmToken != zero && c.RewardToken != zero
}
