package repository

import (
	"algo-backtest/config"
	"algo-backtest/pkg/cache"
	"algo-backtest/pkg/logger"

	"gorm.io/gorm"
)

type Repository struct {
	BacktestRepo   BacktestRepository
	MarketDataRepo MarketDataRepository
}

func NewRepository(cfg *config.Config, memCache cache.Cache, db *gorm.DB, log *logger.Logger) *Repository {
	return &Repository{
		BacktestRepo:   NewBacktestRepository(db),
		MarketDataRepo: NewMarketDataRepository(cfg, memCache, log),
	}
}
