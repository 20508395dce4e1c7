package dto

import (
	"time"

	"algo-backtest/internal/model"

	"github.com/shopspring/decimal"
)

// CandleData is the wire shape of one OHLCV row from the historical data
// service.
type CandleData struct {
	Timestamp time.Time       `json:"timestamp"`
	Open      decimal.Decimal `json:"open"`
	High      decimal.Decimal `json:"high"`
	Low       decimal.Decimal `json:"low"`
	Close     decimal.Decimal `json:"close"`
	Volume    decimal.Decimal `json:"volume"`
}

// CandleResponse is the historical data service's reply. Zero rows is a
// valid response, distinct from an error.
type CandleResponse struct {
	Symbol  string       `json:"symbol"`
	Candles []CandleData `json:"candles"`
}

func (c CandleData) ToModel() model.Candle {
	return model.Candle{
		Timestamp: c.Timestamp,
		Open:      c.Open,
		High:      c.High,
		Low:       c.Low,
		Close:     c.Close,
		Volume:    c.Volume,
	}
}
