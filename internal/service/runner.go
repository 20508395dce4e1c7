package service

import (
	"context"
	"sync"

	"algo-backtest/config"
	"algo-backtest/internal/dto"
	"algo-backtest/pkg/logger"

	"golang.org/x/sync/semaphore"
)

// BacktestRunner executes a batch of independent backtest runs with bounded
// concurrency. Runs share no mutable state, so each worker owns one run end
// to end; only the persistence sink is shared and each run writes its own
// record.
type BacktestRunner interface {
	RunMany(ctx context.Context, configs []dto.BacktestConfig) []*dto.BacktestResults
}

type backtestRunner struct {
	log      *logger.Logger
	backtest BacktestService
	workers  *semaphore.Weighted
}

func NewBacktestRunner(cfg *config.Config, log *logger.Logger, backtest BacktestService) BacktestRunner {
	maxConcurrency := cfg.Backtest.MaxConcurrency
	if maxConcurrency <= 0 {
		maxConcurrency = 1
	}
	return &backtestRunner{
		log:      log,
		backtest: backtest,
		workers:  semaphore.NewWeighted(int64(maxConcurrency)),
	}
}

// RunMany runs every config and returns results in submission order.
func (r *backtestRunner) RunMany(ctx context.Context, configs []dto.BacktestConfig) []*dto.BacktestResults {
	results := make([]*dto.BacktestResults, len(configs))

	var wg sync.WaitGroup
	for i, cfg := range configs {
		if err := r.workers.Acquire(ctx, 1); err != nil {
			r.log.WarnContext(ctx, "Batch backtest aborted while waiting for a worker", logger.ErrorField(err))
			results[i] = r.backtest.Run(ctx, cfg) // yields a cancelled result
			continue
		}

		wg.Add(1)
		go func(i int, cfg dto.BacktestConfig) {
			defer wg.Done()
			defer r.workers.Release(1)
			results[i] = r.backtest.Run(ctx, cfg)
		}(i, cfg)
	}
	wg.Wait()

	return results
}
