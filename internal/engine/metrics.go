package engine

import (
	"math"

	"algo-backtest/internal/dto"

	"github.com/shopspring/decimal"
)

// tradingDaysPerYear is the conventional annualization constant for
// Sharpe/Sortino scaling.
const tradingDaysPerYear = 252

// CalculateMetrics derives the performance report from completed trades and
// the equity curve. An empty trade list or curve yields an all-zero metrics
// object, never an error or a division by zero.
func CalculateMetrics(trades []dto.TradeResult, curve []dto.EquityPoint, initialCapital decimal.Decimal) dto.BacktestMetrics {
	metrics := dto.BacktestMetrics{
		AvgWin:      decimal.Zero,
		AvgLoss:     decimal.Zero,
		LargestWin:  decimal.Zero,
		LargestLoss: decimal.Zero,
	}
	if len(trades) == 0 || len(curve) == 0 {
		return metrics
	}

	finalEquity := curve[len(curve)-1].Equity
	if initialCapital.IsPositive() {
		totalReturn := finalEquity.Sub(initialCapital).Div(initialCapital).Mul(decimal.NewFromInt(100))
		metrics.TotalReturn = round2(totalReturn.InexactFloat64())
	}

	days := curve[len(curve)-1].Timestamp.Sub(curve[0].Timestamp).Hours() / 24
	if days > 0 {
		metrics.AnnualReturn = round2(metrics.TotalReturn * 365 / days)
	}

	returns := stepReturns(curve)
	mean, stddev := meanStddev(returns)
	if stddev > 0 {
		metrics.SharpeRatio = round2(mean / stddev * math.Sqrt(tradingDaysPerYear))
	}

	var downside []float64
	for _, r := range returns {
		if r < 0 {
			downside = append(downside, r)
		}
	}
	if len(downside) > 0 {
		_, downsideDev := meanStddev(downside)
		if downsideDev > 0 {
			metrics.SortinoRatio = round2(mean / downsideDev * math.Sqrt(tradingDaysPerYear))
		}
	}

	maxDrawdown := decimal.Zero
	for _, point := range curve {
		if point.Drawdown.LessThan(maxDrawdown) {
			maxDrawdown = point.Drawdown
		}
	}
	metrics.MaxDrawdown = round2(maxDrawdown.InexactFloat64())

	var (
		grossProfit = decimal.Zero
		grossLoss   = decimal.Zero
		totalMins   int64
	)
	for _, trade := range trades {
		metrics.TotalTrades++
		totalMins += trade.DurationMinutes

		if trade.PnL.IsPositive() {
			metrics.WinningTrades++
			grossProfit = grossProfit.Add(trade.PnL)
			if trade.PnL.GreaterThan(metrics.LargestWin) {
				metrics.LargestWin = trade.PnL
			}
		} else {
			metrics.LosingTrades++
			loss := trade.PnL.Abs()
			grossLoss = grossLoss.Add(loss)
			if loss.GreaterThan(metrics.LargestLoss) {
				metrics.LargestLoss = loss
			}
		}
	}

	metrics.WinRate = round2(float64(metrics.WinningTrades) / float64(metrics.TotalTrades) * 100)
	if grossLoss.IsPositive() {
		metrics.ProfitFactor = round2(grossProfit.Div(grossLoss).InexactFloat64())
	}
	if metrics.WinningTrades > 0 {
		metrics.AvgWin = grossProfit.Div(decimal.NewFromInt(int64(metrics.WinningTrades)))
	}
	if metrics.LosingTrades > 0 {
		metrics.AvgLoss = grossLoss.Div(decimal.NewFromInt(int64(metrics.LosingTrades)))
	}
	metrics.AvgTradeDuration = round2(float64(totalMins) / float64(metrics.TotalTrades) / 60)

	return metrics
}

// stepReturns computes per-step relative returns over the curve, skipping
// any step whose prior equity is zero.
func stepReturns(curve []dto.EquityPoint) []float64 {
	var returns []float64
	for i := 1; i < len(curve); i++ {
		prev := curve[i-1].Equity
		if prev.IsZero() {
			continue
		}
		r := curve[i].Equity.Div(prev).InexactFloat64() - 1
		returns = append(returns, r)
	}
	return returns
}

// meanStddev returns the mean and population standard deviation.
func meanStddev(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var variance float64
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}
	return mean, math.Sqrt(variance / float64(len(values)))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
