package service

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"algo-backtest/config"
	"algo-backtest/internal/dto"
	"algo-backtest/internal/engine"
	"algo-backtest/internal/indicator"
	"algo-backtest/internal/repository"
	"algo-backtest/pkg/cache"
	"algo-backtest/pkg/logger"
	"algo-backtest/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BacktestService orchestrates a run: validation, data retrieval,
// simulation, metrics and persistence. Run never returns an error to the
// caller; every failure mode becomes a well-formed Failed result.
type BacktestService interface {
	Run(ctx context.Context, cfg dto.BacktestConfig) *dto.BacktestResults
	GetResult(ctx context.Context, id string) (*dto.BacktestResults, error)
	History(ctx context.Context, limit int) ([]dto.BacktestSummary, error)
	Delete(ctx context.Context, id string) (bool, error)
	ConfigOptions() dto.ConfigOptions
	Indicators() []indicator.Metadata
}

type backtestService struct {
	cfg            *config.Config
	log            *logger.Logger
	backtestRepo   repository.BacktestRepository
	marketDataRepo repository.MarketDataRepository
	memCache       cache.Cache
}

func NewBacktestService(
	cfg *config.Config,
	log *logger.Logger,
	backtestRepo repository.BacktestRepository,
	marketDataRepo repository.MarketDataRepository,
	memCache cache.Cache,
) BacktestService {
	return &backtestService{
		cfg:            cfg,
		log:            log,
		backtestRepo:   backtestRepo,
		marketDataRepo: marketDataRepo,
		memCache:       memCache,
	}
}

// Run executes one backtest end to end.
func (s *backtestService) Run(ctx context.Context, cfg dto.BacktestConfig) (results *dto.BacktestResults) {
	cfg = cfg.Normalized()
	results = &dto.BacktestResults{
		BacktestID: uuid.NewString(),
		Config:     cfg,
		StartedAt:  time.Now().UTC(),
	}

	defer func() {
		if r := recover(); r != nil {
			s.log.ErrorContext(ctx, "Backtest panicked",
				logger.StringField("backtest_id", results.BacktestID),
				logger.Field("panic", r),
			)
			s.fail(results, dto.FailureInternal, "backtest failed unexpectedly")
			results.ErrorDetails = map[string]string{
				"panic": fmt.Sprint(r),
				"stack": string(debug.Stack()),
			}
		}
	}()

	start, end, err := s.validate(cfg)
	if err != nil {
		s.fail(results, dto.FailureValidation, err.Error())
		return results
	}

	candles, err := s.marketDataRepo.GetCandles(ctx, cfg.Symbol, cfg.Timeframe, start, end)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			s.fail(results, dto.FailureCancelled, "backtest cancelled")
			return results
		}
		s.log.ErrorContext(ctx, "Failed to fetch candles",
			logger.StringField("symbol", cfg.Symbol), logger.ErrorField(err))
		s.fail(results, dto.FailureInternal, "failed to retrieve historical data")
		results.ErrorDetails = map[string]string{"error": err.Error()}
		return results
	}
	if len(candles) == 0 {
		s.fail(results, dto.FailureNoData,
			fmt.Sprintf("no historical data for %s between %s and %s", cfg.Symbol, cfg.StartDate, cfg.EndDate))
		return results
	}

	requests := []indicator.Request{
		indicator.SMARequest{Period: cfg.FastPeriod},
		indicator.SMARequest{Period: cfg.SlowPeriod},
	}
	for _, req := range cfg.Indicators {
		if mapped := req.ToIndicatorRequest(); mapped != nil {
			requests = append(requests, mapped)
			results.IndicatorsUsed = append(results.IndicatorsUsed, req.Name)
		}
	}
	series := indicator.Compute(candles, requests)

	fastKey := fmt.Sprintf("sma_%d", cfg.FastPeriod)
	slowKey := fmt.Sprintf("sma_%d", cfg.SlowPeriod)

	simulator := engine.NewSimulator(s.log, cfg.InitialCapital, cfg.PositionSize, cfg.Commission, cfg.Slippage)
	trades, curve, err := simulator.Run(ctx, candles, series[fastKey], series[slowKey])
	if err != nil {
		if errors.Is(err, context.Canceled) {
			s.fail(results, dto.FailureCancelled, "backtest cancelled")
			return results
		}
		s.fail(results, dto.FailureInternal, err.Error())
		return results
	}

	metrics := engine.CalculateMetrics(trades, curve, cfg.InitialCapital)

	results.Status = dto.StatusCompleted
	results.Trades = trades
	results.EquityCurve = curve
	results.Metrics = &metrics
	results.Metadata = map[string]any{
		"engine":      "simulator",
		"strategy":    "sma_crossover",
		"data_points": len(candles),
	}
	results.CompletedAt = time.Now().UTC()
	results.ExecutionTimeMS = results.CompletedAt.Sub(results.StartedAt).Milliseconds()

	// Failed runs are returned but never persisted, keeping history free of
	// noise from malformed requests.
	if err := s.backtestRepo.Save(ctx, results); err != nil {
		s.log.ErrorContext(ctx, "Failed to persist backtest results",
			logger.StringField("backtest_id", results.BacktestID), logger.ErrorField(err))
	}

	s.log.InfoContext(ctx, "Backtest completed",
		logger.StringField("backtest_id", results.BacktestID),
		logger.StringField("symbol", cfg.Symbol),
		logger.IntField("total_trades", metrics.TotalTrades),
		logger.Float64Field("total_return", metrics.TotalReturn),
		logger.DurationField("elapsed", results.CompletedAt.Sub(results.StartedAt)),
	)
	return results
}

func (s *backtestService) fail(results *dto.BacktestResults, kind, message string) {
	results.Status = dto.StatusFailed
	results.ErrorKind = kind
	results.ErrorMessage = message
	results.CompletedAt = time.Now().UTC()
	results.ExecutionTimeMS = results.CompletedAt.Sub(results.StartedAt).Milliseconds()
}

// validate checks the config shape and returns the parsed date range.
func (s *backtestService) validate(cfg dto.BacktestConfig) (time.Time, time.Time, error) {
	if cfg.Symbol == "" {
		return time.Time{}, time.Time{}, errors.New("symbol is required")
	}
	if !cfg.InitialCapital.IsPositive() {
		return time.Time{}, time.Time{}, errors.New("initial capital must be greater than zero")
	}
	if !cfg.PositionSize.IsPositive() || cfg.PositionSize.GreaterThan(decimal.NewFromInt(1)) {
		return time.Time{}, time.Time{}, errors.New("position size must be a fraction between 0 and 1")
	}
	if cfg.Commission.IsNegative() || cfg.Slippage.IsNegative() {
		return time.Time{}, time.Time{}, errors.New("commission and slippage must not be negative")
	}

	options := dto.NewConfigOptions()
	timeframes := make([]string, 0, len(options.Timeframes))
	for _, tf := range options.Timeframes {
		timeframes = append(timeframes, tf.Value)
	}
	if !utils.ContainsString(timeframes, cfg.Timeframe) {
		return time.Time{}, time.Time{}, fmt.Errorf("unsupported timeframe: %s", cfg.Timeframe)
	}

	start, err := utils.ParseDate(cfg.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start_date: %w", err)
	}
	end, err := utils.ParseDate(cfg.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end_date: %w", err)
	}
	if !start.Before(end) {
		return time.Time{}, time.Time{}, errors.New("start_date must be before end_date")
	}
	return start, end, nil
}

func (s *backtestService) GetResult(ctx context.Context, id string) (*dto.BacktestResults, error) {
	cacheKey := "backtest:result:" + id
	if results, found := cache.GetTyped[*dto.BacktestResults](s.memCache, cacheKey); found {
		return results, nil
	}

	results, err := s.backtestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if results != nil {
		s.memCache.Set(cacheKey, results, s.cfg.Backtest.ResultCacheTTL)
	}
	return results, nil
}

func (s *backtestService) History(ctx context.Context, limit int) ([]dto.BacktestSummary, error) {
	if limit <= 0 {
		limit = s.cfg.Backtest.DefaultHistoryLimit
	}
	if limit > s.cfg.Backtest.MaxHistoryLimit {
		limit = s.cfg.Backtest.MaxHistoryLimit
	}
	return s.backtestRepo.ListRecent(ctx, limit)
}

func (s *backtestService) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := s.backtestRepo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.memCache.Delete("backtest:result:" + id)
	}
	return deleted, nil
}

func (s *backtestService) ConfigOptions() dto.ConfigOptions {
	return dto.NewConfigOptions()
}

func (s *backtestService) Indicators() []indicator.Metadata {
	return indicator.Catalog()
}
