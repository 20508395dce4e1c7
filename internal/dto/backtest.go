package dto

import (
	"time"

	"algo-backtest/internal/indicator"

	"github.com/shopspring/decimal"
)

const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"

	SideLong = "long"

	ExitReasonSignal      = "signal_exit"
	ExitReasonBacktestEnd = "backtest_end"

	// FailureKind distinguishes why a run failed, so callers can tell
	// "I stopped this" from "this broke".
	FailureValidation = "validation"
	FailureNoData     = "no_data"
	FailureCancelled  = "cancelled"
	FailureInternal   = "internal"
)

// BacktestConfig is the immutable input of a single backtest run.
type BacktestConfig struct {
	Symbol         string             `json:"symbol" validate:"required"`
	AssetClass     string             `json:"asset_class"`
	Timeframe      string             `json:"timeframe"`
	TimeframeValue int                `json:"timeframe_value"`
	StartDate      string             `json:"start_date" validate:"required"`
	EndDate        string             `json:"end_date" validate:"required"`
	InitialCapital decimal.Decimal    `json:"initial_capital"`
	PositionSize   decimal.Decimal    `json:"position_size"`
	Commission     decimal.Decimal    `json:"commission"`
	Slippage       decimal.Decimal    `json:"slippage"`
	FastPeriod     int                `json:"fast_period"`
	SlowPeriod     int                `json:"slow_period"`
	Indicators     []IndicatorRequest `json:"indicators"`
}

// Normalized returns a copy with unset optional fields replaced by defaults:
// 10000 initial capital, 95% position sizing, 0.1% commission, SMA 20/50
// crossover pair.
func (c BacktestConfig) Normalized() BacktestConfig {
	if c.InitialCapital.IsZero() {
		c.InitialCapital = decimal.NewFromInt(10000)
	}
	if c.PositionSize.IsZero() {
		c.PositionSize = decimal.NewFromFloat(0.95)
	}
	if c.Commission.IsZero() {
		c.Commission = decimal.NewFromFloat(0.001)
	}
	if c.FastPeriod <= 0 {
		c.FastPeriod = indicator.DefaultSMAPeriod
	}
	if c.SlowPeriod <= 0 {
		c.SlowPeriod = indicator.DefaultSMASlowPeriod
	}
	if c.Timeframe == "" {
		c.Timeframe = "day"
	}
	return c
}

// IndicatorRequest selects one indicator by name with optional parameter
// overrides. Unknown names are ignored rather than rejected, so strategies
// may request indicators this engine does not compute yet.
type IndicatorRequest struct {
	Name   string          `json:"name" validate:"required"`
	Params IndicatorParams `json:"params"`
}

// IndicatorParams carries the per-indicator overrides. Fields irrelevant to
// the named indicator are ignored; zero fields fall back to defaults.
type IndicatorParams struct {
	Period  int     `json:"period,omitempty"`
	Fast    int     `json:"fast,omitempty"`
	Slow    int     `json:"slow,omitempty"`
	Signal  int     `json:"signal,omitempty"`
	StdDev  float64 `json:"std,omitempty"`
	PeriodK int     `json:"k,omitempty"`
	SmoothK int     `json:"smooth_k,omitempty"`
	PeriodD int     `json:"d,omitempty"`
}

// ToIndicatorRequest maps the wire shape onto the library's tagged variant,
// or nil for an unknown indicator name.
func (r IndicatorRequest) ToIndicatorRequest() indicator.Request {
	switch r.Name {
	case "sma":
		return indicator.SMARequest{Period: r.Params.Period}
	case "ema":
		return indicator.EMARequest{Period: r.Params.Period}
	case "rsi":
		return indicator.RSIRequest{Period: r.Params.Period}
	case "macd":
		return indicator.MACDRequest{Fast: r.Params.Fast, Slow: r.Params.Slow, Signal: r.Params.Signal}
	case "bollinger":
		return indicator.BollingerRequest{Period: r.Params.Period, StdDev: r.Params.StdDev}
	case "atr":
		return indicator.ATRRequest{Period: r.Params.Period}
	case "stochastic":
		return indicator.StochasticRequest{PeriodK: r.Params.PeriodK, SmoothK: r.Params.SmoothK, PeriodD: r.Params.PeriodD}
	default:
		return nil
	}
}

// TradeResult is one completed round trip produced by the simulator.
type TradeResult struct {
	EntryTime       time.Time       `json:"entry_time"`
	ExitTime        time.Time       `json:"exit_time"`
	EntryPrice      decimal.Decimal `json:"entry_price"`
	ExitPrice       decimal.Decimal `json:"exit_price"`
	Quantity        decimal.Decimal `json:"quantity"`
	Side            string          `json:"side"`
	PnL             decimal.Decimal `json:"pnl"`
	PnLPercent      decimal.Decimal `json:"pnl_percent"`
	Commission      decimal.Decimal `json:"commission"`
	DurationMinutes int64           `json:"duration_minutes"`
	ExitReason      string          `json:"exit_reason"`
}

// EquityPoint is one sample of the simulated account value, aligned with the
// candle that produced it.
type EquityPoint struct {
	Timestamp     time.Time       `json:"timestamp"`
	Cash          decimal.Decimal `json:"cash"`
	PositionValue decimal.Decimal `json:"position_value"`
	Equity        decimal.Decimal `json:"equity"`
	Peak          decimal.Decimal `json:"peak"`
	Drawdown      decimal.Decimal `json:"drawdown"`
}

// BacktestMetrics is the derived performance report. Ratio fields are plain
// floats; monetary fields stay decimal.
type BacktestMetrics struct {
	TotalReturn      float64         `json:"total_return"`
	AnnualReturn     float64         `json:"annual_return"`
	SharpeRatio      float64         `json:"sharpe_ratio"`
	SortinoRatio     float64         `json:"sortino_ratio"`
	MaxDrawdown      float64         `json:"max_drawdown"`
	WinRate          float64         `json:"win_rate"`
	ProfitFactor     float64         `json:"profit_factor"`
	TotalTrades      int             `json:"total_trades"`
	WinningTrades    int             `json:"winning_trades"`
	LosingTrades     int             `json:"losing_trades"`
	AvgWin           decimal.Decimal `json:"avg_win"`
	AvgLoss          decimal.Decimal `json:"avg_loss"`
	LargestWin       decimal.Decimal `json:"largest_win"`
	LargestLoss      decimal.Decimal `json:"largest_loss"`
	AvgTradeDuration float64         `json:"avg_trade_duration"`
}

// BacktestResults is the complete outcome of one run. A failed run is still
// a well-formed result with Status failed and a human-readable error, never
// a nil response.
type BacktestResults struct {
	BacktestID      string           `json:"backtest_id"`
	Status          string           `json:"status"`
	Config          BacktestConfig   `json:"config"`
	StartedAt       time.Time        `json:"started_at"`
	CompletedAt     time.Time        `json:"completed_at"`
	ExecutionTimeMS int64            `json:"execution_time_ms"`
	Metrics         *BacktestMetrics `json:"metrics,omitempty"`
	EquityCurve     []EquityPoint    `json:"equity_curve"`
	Trades          []TradeResult    `json:"trades"`
	IndicatorsUsed  []string         `json:"indicators_used"`
	Metadata        map[string]any   `json:"metadata,omitempty"`
	ErrorMessage    string           `json:"error_message,omitempty"`
	ErrorKind       string           `json:"error_kind,omitempty"`

	// ErrorDetails holds type and stack diagnostics for unexpected
	// failures. Logged and never serialized to callers.
	ErrorDetails map[string]string `json:"-"`
}

// BacktestSummary is the history-listing projection of a persisted run.
type BacktestSummary struct {
	BacktestID  string    `json:"backtest_id"`
	Symbol      string    `json:"symbol"`
	AssetClass  string    `json:"asset_class"`
	Timeframe   string    `json:"timeframe"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	Status      string    `json:"status"`
	TotalReturn float64   `json:"total_return"`
	SharpeRatio float64   `json:"sharpe_ratio"`
	TotalTrades int       `json:"total_trades"`
	CreatedAt   time.Time `json:"created_at"`
}
