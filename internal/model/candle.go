package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Candle is one OHLCV sample for a fixed time bucket. A backtest consumes an
// ordered sequence of candles with strictly ascending timestamps.
type Candle struct {
	Timestamp time.Time       `json:"timestamp"`
	Open      decimal.Decimal `json:"open"`
	High      decimal.Decimal `json:"high"`
	Low       decimal.Decimal `json:"low"`
	Close     decimal.Decimal `json:"close"`
	Volume    decimal.Decimal `json:"volume"`
}

// Closes extracts the close series from a candle sequence.
func Closes(candles []Candle) []decimal.Decimal {
	closes := make([]decimal.Decimal, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}
	return closes
}
