package indicator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"algo-backtest/internal/model"
)

func TestCompute(t *testing.T) {
	candles := make([]model.Candle, 0, 60)
	for i := 0; i < 60; i++ {
		v := float64(100 + i%7)
		candles = append(candles, candlesOHLC([4]float64{v, v + 1, v - 1, v})[0])
	}

	tests := []struct {
		name     string
		requests []Request
		wantKeys []int
		check    func(t *testing.T, out map[string]Series)
	}{
		{
			name:     "no requests no output",
			requests: nil,
			check: func(t *testing.T, out map[string]Series) {
				assert.Empty(t, out)
			},
		},
		{
			name:     "nil requests are skipped",
			requests: []Request{nil, SMARequest{Period: 10}, nil},
			check: func(t *testing.T, out map[string]Series) {
				require.Len(t, out, 1)
				assert.Contains(t, out, "sma_10")
			},
		},
		{
			name:     "zero params fall back to defaults",
			requests: []Request{SMARequest{}, EMARequest{}, RSIRequest{}},
			check: func(t *testing.T, out map[string]Series) {
				assert.Contains(t, out, "sma_20")
				assert.Contains(t, out, "ema_12")
				assert.Contains(t, out, "rsi_14")
			},
		},
		{
			name: "multi-series indicators expand",
			requests: []Request{
				MACDRequest{},
				BollingerRequest{},
				StochasticRequest{},
				ATRRequest{Period: 10},
			},
			check: func(t *testing.T, out map[string]Series) {
				for _, key := range []string{
					"macd_line", "macd_signal", "macd_histogram",
					"bb_upper", "bb_middle", "bb_lower",
					"stoch_k", "stoch_d", "atr_10",
				} {
					assert.Contains(t, out, key)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Compute(candles, tt.requests)
			for key, series := range out {
				assert.Len(t, series, len(candles), "series %s", key)
			}
			tt.check(t, out)
		})
	}
}

func TestCatalog(t *testing.T) {
	catalog := Catalog()
	require.Len(t, catalog, 7)

	names := make(map[string]bool, len(catalog))
	for _, meta := range catalog {
		names[meta.Name] = true
		assert.NotEmpty(t, meta.Description, "indicator %s", meta.Name)
		assert.NotEmpty(t, meta.Params, "indicator %s", meta.Name)
	}
	for _, want := range []string{"sma", "ema", "rsi", "macd", "bollinger", "atr", "stochastic"} {
		assert.True(t, names[want], "missing %s", want)
	}
}
