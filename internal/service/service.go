package service

import (
	"algo-backtest/config"
	"algo-backtest/internal/repository"
	"algo-backtest/pkg/cache"
	"algo-backtest/pkg/logger"
)

type Service struct {
	BacktestService BacktestService
	BacktestRunner  BacktestRunner
}

func NewService(
	cfg *config.Config,
	log *logger.Logger,
	repo *repository.Repository,
	memCache cache.Cache,
) *Service {
	backtestService := NewBacktestService(cfg, log, repo.BacktestRepo, repo.MarketDataRepo, memCache)
	return &Service{
		BacktestService: backtestService,
		BacktestRunner:  NewBacktestRunner(cfg, log, backtestService),
	}
}
