package repository

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	"algo-backtest/config"
	"algo-backtest/internal/dto"
	"algo-backtest/internal/model"
	"algo-backtest/pkg/cache"
	"algo-backtest/pkg/httpclient"
	"algo-backtest/pkg/logger"

	"golang.org/x/time/rate"
)

// MarketDataRepository queries the external historical data service for
// candles. Zero rows is a valid response, distinct from an error.
type MarketDataRepository interface {
	GetCandles(ctx context.Context, symbol, timeframe string, start, end time.Time) ([]model.Candle, error)
}

type marketDataRepository struct {
	httpClient     httpclient.HTTPClient
	cfg            *config.Config
	log            *logger.Logger
	memCache       cache.Cache
	requestLimiter *rate.Limiter
}

func NewMarketDataRepository(cfg *config.Config, memCache cache.Cache, log *logger.Logger) MarketDataRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.MarketData.MaxRequestPerMinute)

	return &marketDataRepository{
		httpClient:     httpclient.New(cfg.MarketData.BaseURL, cfg.MarketData.Timeout),
		cfg:            cfg,
		log:            log,
		memCache:       memCache,
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
	}
}

func (r *marketDataRepository) GetCandles(ctx context.Context, symbol, timeframe string, start, end time.Time) ([]model.Candle, error) {
	cacheKey := fmt.Sprintf("candles:%s:%s:%d:%d", symbol, timeframe, start.Unix(), end.Unix())
	if candles, found := cache.GetTyped[[]model.Candle](r.memCache, cacheKey); found {
		return candles, nil
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	queryParams := map[string]string{
		"symbol":    symbol,
		"timeframe": timeframe,
		"start":     start.UTC().Format(time.RFC3339),
		"end":       end.UTC().Format(time.RFC3339),
	}

	var candleResp dto.CandleResponse
	resp, err := r.httpClient.Get(ctx, "/candles", queryParams, nil, &candleResp)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch candles from market data service: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		r.log.ErrorContext(ctx, "Market data service returned non-OK status",
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("symbol", symbol),
			logger.StringField("body", string(resp.Body)))
		return nil, fmt.Errorf("market data service returned status: %d", resp.StatusCode)
	}

	candles := make([]model.Candle, 0, len(candleResp.Candles))
	for _, c := range candleResp.Candles {
		candles = append(candles, c.ToModel())
	}
	sort.Slice(candles, func(i, j int) bool {
		return candles[i].Timestamp.Before(candles[j].Timestamp)
	})

	r.memCache.Set(cacheKey, candles, r.cfg.MarketData.CandleCacheTTL)
	return candles, nil
}
