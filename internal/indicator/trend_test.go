package indicator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decimals(values ...float64) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = decimal.NewFromFloat(v)
	}
	return out
}

func constantSeries(value float64, n int) []decimal.Decimal {
	out := make([]decimal.Decimal, n)
	for i := range out {
		out[i] = decimal.NewFromFloat(value)
	}
	return out
}

func TestSMA(t *testing.T) {
	tests := []struct {
		name   string
		values []decimal.Decimal
		period int
		check  func(t *testing.T, s Series)
	}{
		{
			name:   "basic window",
			values: decimals(1, 2, 3, 4, 5),
			period: 3,
			check: func(t *testing.T, s Series) {
				assert.False(t, s.Valid(0))
				assert.False(t, s.Valid(1))
				assert.True(t, s[2].Decimal.Equal(decimal.NewFromInt(2)))
				assert.True(t, s[3].Decimal.Equal(decimal.NewFromInt(3)))
				assert.True(t, s[4].Decimal.Equal(decimal.NewFromInt(4)))
			},
		},
		{
			name:   "constant series law",
			values: constantSeries(42.5, 30),
			period: 7,
			check: func(t *testing.T, s Series) {
				for i := 6; i < 30; i++ {
					assert.True(t, s[i].Decimal.Equal(decimal.NewFromFloat(42.5)), "index %d", i)
				}
			},
		},
		{
			name:   "insufficient history stays null",
			values: decimals(1, 2, 3, 4, 5),
			period: 20,
			check: func(t *testing.T, s Series) {
				for i := range s {
					assert.False(t, s.Valid(i))
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SMA(tt.values, tt.period)
			require.Len(t, got, len(tt.values))
			tt.check(t, got)
		})
	}
}

func TestSMA_Totality(t *testing.T) {
	for _, n := range []int{0, 1, 2, 10, 100} {
		got := SMA(constantSeries(1, n), 5)
		assert.Len(t, got, n)
	}
}

func TestEMA(t *testing.T) {
	t.Run("seed is SMA of first period", func(t *testing.T) {
		values := decimals(10, 20, 30, 40, 50)
		got := EMA(values, 3)

		require.Len(t, got, 5)
		assert.False(t, got.Valid(0))
		assert.False(t, got.Valid(1))
		assert.True(t, got[2].Decimal.Equal(decimal.NewFromInt(20)))
	})

	t.Run("recursion uses 2/(period+1) multiplier", func(t *testing.T) {
		values := decimals(10, 20, 30, 40)
		got := EMA(values, 3)

		// seed 20, mult 0.5: ema[3] = (40-20)*0.5 + 20 = 30
		require.True(t, got.Valid(3))
		assert.True(t, got[3].Decimal.Equal(decimal.NewFromInt(30)))
	})

	t.Run("constant input converges to constant", func(t *testing.T) {
		got := EMA(constantSeries(77, 200), 12)
		for i := 11; i < 200; i++ {
			assert.True(t, got[i].Decimal.Equal(decimal.NewFromInt(77)), "index %d", i)
		}
	})

	t.Run("short input stays null", func(t *testing.T) {
		got := EMA(decimals(1, 2), 5)
		assert.Equal(t, -1, got.FirstValid())
	})
}

func TestMACD(t *testing.T) {
	values := make([]decimal.Decimal, 60)
	for i := range values {
		values[i] = decimal.NewFromInt(int64(100 + i))
	}

	line, signal, histogram := MACD(values, 12, 26, 9)

	require.Len(t, line, 60)
	require.Len(t, signal, 60)
	require.Len(t, histogram, 60)

	// Line becomes valid once the slow EMA is seeded, the signal line
	// another signal-1 steps later.
	assert.Equal(t, 25, line.FirstValid())
	assert.Equal(t, 33, signal.FirstValid())
	assert.Equal(t, 33, histogram.FirstValid())

	for i := 33; i < 60; i++ {
		expected := line.At(i).Sub(signal.At(i))
		assert.True(t, histogram.At(i).Equal(expected), "index %d", i)
	}
}

func TestMACD_ShortInput(t *testing.T) {
	line, signal, histogram := MACD(decimals(1, 2, 3), 12, 26, 9)
	assert.Equal(t, -1, line.FirstValid())
	assert.Equal(t, -1, signal.FirstValid())
	assert.Equal(t, -1, histogram.FirstValid())
}
