// Package app wires configuration into the node connection, wallet and
// services shared by the API server and the CLI.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/nulln0ne/rdx-dex/internal/config"
	"github.com/nulln0ne/rdx-dex/internal/eth"
	"github.com/nulln0ne/rdx-dex/internal/metrics"
	"github.com/nulln0ne/rdx-dex/internal/notify"
	"github.com/nulln0ne/rdx-dex/internal/service"
	"github.com/nulln0ne/rdx-dex/internal/token"
	"github.com/nulln0ne/rdx-dex/internal/wallet"
)

const notificationHistory = 100

type App struct {
	Client   *ethclient.Client
	Wallet   *wallet.KeyWallet
	Registry *token.Registry
	Recorder *notify.Recorder
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer

	Loader *service.StateLoader
	Swap   *service.SwapService
	Pool   *service.PoolService
	Farm   *service.FarmService
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	client, err := eth.Dial(ctx, cfg.RPCEndpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Ethereum node: %w", err)
	}

	w, err := wallet.NewKeyWallet(cfg.WalletPrivateKey, cfg.ChainID, client)
	if err != nil {
		client.Close()
		return nil, err
	}
	if err := w.SwitchToCorrectNetwork(ctx); err != nil {
		client.Close()
		return nil, err
	}
	if account, ok := w.Account(ctx); ok {
		logger.Info("wallet loaded", "account", account.Hex())
	} else {
		logger.Info("no wallet key configured, running read-only")
	}

	transactor := eth.NewTransactor(logger, client, w, cfg.ChainID, cfg.ReceiptPollInterval)
	contracts := eth.NewContracts(client, transactor)

	factory := cfg.Factory
	if factory == (common.Address{}) {
		if factory, err = contracts.Router(cfg.Router).Factory(ctx); err != nil {
			client.Close()
			return nil, fmt.Errorf("resolve factory: %w", err)
		}
	}
	logger.Debug("contracts", "router", cfg.Router.Hex(), "factory", factory.Hex())

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)
	recorder := notify.NewRecorder(notify.NewLogSink(logger), notificationHistory)

	chain := service.NewChain(contracts)
	loader, err := service.NewStateLoader(logger, chain, w, cfg.Router, factory)
	if err != nil {
		client.Close()
		return nil, err
	}
	deps := service.Deps{
		Logger:      logger,
		Chain:       chain,
		Wallet:      w,
		Waiter:      transactor,
		Notifier:    recorder,
		Metrics:     m,
		SlippageBps: cfg.SlippageBps,
		Deadline:    cfg.TxDeadline,
	}

	return &App{
		Client:   client,
		Wallet:   w,
		Registry: token.DefaultRegistry(),
		Recorder: recorder,
		Metrics:  m,
		Gatherer: reg,
		Loader:   loader,
		Swap:     service.NewSwapService(deps, loader, cfg.Router),
		Pool:     service.NewPoolService(deps, loader, cfg.Router),
		Farm: service.NewFarmService(deps, loader, service.FarmAddresses{
			Chef:        cfg.Chef,
			FarmToken:   cfg.FarmToken,
			RewardToken: cfg.RewardToken,
		}),
	}, nil
}

func (a *App) Close() {
	a.Client.Close()
}
