package indicator

import (
	"fmt"

	"algo-backtest/internal/model"
)

// Compute evaluates every requested indicator over the candle sequence and
// returns the named series, keyed the way strategies address them
// ("sma_20", "macd_line", "bb_upper", ...). Only requested indicators
// produce entries; every returned series has the same length as candles.
func Compute(candles []model.Candle, requests []Request) map[string]Series {
	closes := model.Closes(candles)
	out := make(map[string]Series, len(requests))

	for _, req := range requests {
		if req == nil {
			continue
		}
		switch r := req.withDefaults().(type) {
		case SMARequest:
			out[fmt.Sprintf("sma_%d", r.Period)] = SMA(closes, r.Period)
		case EMARequest:
			out[fmt.Sprintf("ema_%d", r.Period)] = EMA(closes, r.Period)
		case RSIRequest:
			out[fmt.Sprintf("rsi_%d", r.Period)] = RSI(closes, r.Period)
		case MACDRequest:
			line, signal, histogram := MACD(closes, r.Fast, r.Slow, r.Signal)
			out["macd_line"] = line
			out["macd_signal"] = signal
			out["macd_histogram"] = histogram
		case BollingerRequest:
			upper, middle, lower := Bollinger(closes, r.Period, r.StdDev)
			out["bb_upper"] = upper
			out["bb_middle"] = middle
			out["bb_lower"] = lower
		case ATRRequest:
			out[fmt.Sprintf("atr_%d", r.Period)] = ATR(candles, r.Period)
		case StochasticRequest:
			k, d := Stochastic(candles, r.PeriodK, r.SmoothK, r.PeriodD)
			out["stoch_k"] = k
			out["stoch_d"] = d
		}
	}
	return out
}
