package service

import "errors"

var (
	ErrNoAccount             = errors.New("no wallet account connected")
	ErrInsufficientLiquidity = errors.New("insufficient liquidity")
	ErrFarmNotConfigured     = errors.New("farm is not configured")
	ErrRouterQuote           = errors.New("router returned no quote")
)
