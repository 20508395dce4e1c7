// Package engine contains the trade simulator and the performance
// calculator. Both are deterministic, side-effect-free transformations:
// the simulator walks candles chronologically against precomputed indicator
// series, the calculator derives the metrics report from its output.
package engine

import (
	"context"
	"errors"
	"time"

	"algo-backtest/internal/dto"
	"algo-backtest/internal/indicator"
	"algo-backtest/internal/model"
	"algo-backtest/pkg/logger"

	"github.com/shopspring/decimal"
)

// ErrNoCandles is returned when the simulator is handed an empty candle
// sequence. Every other data-shape problem resolves to "no signal".
var ErrNoCandles = errors.New("no candles in requested range")

type positionState int

const (
	stateFlat positionState = iota
	stateLong
)

// Simulator walks a candle sequence with one long-only position, entering
// when the fast series crosses strictly above the slow series and exiting on
// the strict reverse cross. Equal values never trigger a transition.
type Simulator struct {
	log            *logger.Logger
	initialCapital decimal.Decimal
	positionSize   decimal.Decimal
	commissionRate decimal.Decimal
	slippageRate   decimal.Decimal
}

func NewSimulator(log *logger.Logger, initialCapital, positionSize, commissionRate, slippageRate decimal.Decimal) *Simulator {
	return &Simulator{
		log:            log,
		initialCapital: initialCapital,
		positionSize:   positionSize,
		commissionRate: commissionRate,
		slippageRate:   slippageRate,
	}
}

// Run simulates the crossover strategy over the candles. It returns every
// completed trade and one equity point per candle. A position still open at
// the last candle is force-closed at that candle's close, so every entry
// yields exactly one trade. The context is checked once per candle; a
// cancelled context aborts the walk with ctx.Err().
func (s *Simulator) Run(ctx context.Context, candles []model.Candle, fast, slow indicator.Series) ([]dto.TradeResult, []dto.EquityPoint, error) {
	if len(candles) == 0 {
		return nil, nil, ErrNoCandles
	}

	var (
		trades     []dto.TradeResult
		curve      = make([]dto.EquityPoint, 0, len(candles))
		state      = stateFlat
		cash       = s.initialCapital
		quantity   = decimal.Zero
		entryPrice = decimal.Zero
		entryFee   = decimal.Zero
		entryTime  time.Time
		peak       = s.initialCapital
	)

	one := decimal.NewFromInt(1)
	entryFill := one.Add(s.slippageRate)
	exitFill := one.Sub(s.slippageRate)

	for i, candle := range candles {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		if fast.Valid(i) && slow.Valid(i) {
			switch {
			case state == stateFlat && fast.At(i).GreaterThan(slow.At(i)):
				fill := candle.Close.Mul(entryFill)
				invest := cash.Mul(s.positionSize)
				commission := invest.Mul(s.commissionRate)

				if cash.GreaterThanOrEqual(invest.Add(commission)) {
					quantity = invest.Div(fill)
					entryPrice = fill
					entryFee = commission
					entryTime = candle.Timestamp
					cash = cash.Sub(invest).Sub(commission)
					state = stateLong

					s.log.DebugContext(ctx, "Opened long position",
						logger.StringField("entry_price", fill.String()),
						logger.StringField("quantity", quantity.String()),
					)
				} else {
					s.log.DebugContext(ctx, "Entry signal skipped, insufficient cash",
						logger.StringField("cash", cash.String()),
						logger.StringField("required", invest.Add(commission).String()),
					)
				}

			case state == stateLong && fast.At(i).LessThan(slow.At(i)):
				fill := candle.Close.Mul(exitFill)
				trade, proceeds := s.closePosition(quantity, entryPrice, entryFee, entryTime, fill, candle.Timestamp, dto.ExitReasonSignal)
				trades = append(trades, trade)
				cash = cash.Add(proceeds)
				quantity = decimal.Zero
				state = stateFlat

				s.log.DebugContext(ctx, "Closed long position",
					logger.StringField("exit_price", fill.String()),
					logger.StringField("pnl", trade.PnL.String()),
				)
			}
		}

		positionValue := decimal.Zero
		if state == stateLong {
			positionValue = quantity.Mul(candle.Close)
		}
		equity := cash.Add(positionValue)
		if equity.GreaterThan(peak) {
			peak = equity
		}
		drawdown := decimal.Zero
		if peak.IsPositive() {
			drawdown = equity.Sub(peak).Div(peak).Mul(decimal.NewFromInt(100))
		}

		curve = append(curve, dto.EquityPoint{
			Timestamp:     candle.Timestamp,
			Cash:          cash,
			PositionValue: positionValue,
			Equity:        equity,
			Peak:          peak,
			Drawdown:      drawdown,
		})
	}

	// Force-close anything still open at the last candle so no position is
	// ever left dangling.
	if state == stateLong {
		last := candles[len(candles)-1]
		fill := last.Close.Mul(exitFill)
		trade, proceeds := s.closePosition(quantity, entryPrice, entryFee, entryTime, fill, last.Timestamp, dto.ExitReasonBacktestEnd)
		trades = append(trades, trade)
		cash = cash.Add(proceeds)
		quantity = decimal.Zero

		final := &curve[len(curve)-1]
		final.Cash = cash
		final.PositionValue = decimal.Zero
		final.Equity = cash
	}

	return trades, curve, nil
}

// closePosition settles a long position at the given fill price and returns
// the trade record together with the net proceeds to credit back to cash.
func (s *Simulator) closePosition(quantity, entryPrice, entryFee decimal.Decimal, entryTime time.Time, fill decimal.Decimal, exitTime time.Time, reason string) (dto.TradeResult, decimal.Decimal) {
	proceeds := quantity.Mul(fill)
	commission := proceeds.Mul(s.commissionRate)
	costBasis := quantity.Mul(entryPrice)

	pnl := proceeds.Sub(commission).Sub(costBasis)
	pnlPercent := decimal.Zero
	if costBasis.IsPositive() {
		pnlPercent = pnl.Div(costBasis).Mul(decimal.NewFromInt(100))
	}

	return dto.TradeResult{
		EntryTime:       entryTime,
		ExitTime:        exitTime,
		EntryPrice:      entryPrice,
		ExitPrice:       fill,
		Quantity:        quantity,
		Side:            dto.SideLong,
		PnL:             pnl,
		PnLPercent:      pnlPercent,
		Commission:      entryFee.Add(commission),
		DurationMinutes: int64(exitTime.Sub(entryTime).Minutes()),
		ExitReason:      reason,
	}, proceeds.Sub(commission)
}
