// Package indicator provides the technical-indicator library and the
// orchestrator that computes a requested set of indicators over a candle
// sequence. Every function is pure: no state, no I/O, and the output series
// is always aligned index-for-index with the input.
package indicator

import "github.com/shopspring/decimal"

// Series is a named indicator output aligned with its candle sequence.
// Entries inside the warm-up window are invalid (null) rather than zero, so
// len(series) == len(candles) holds for every indicator on every input.
type Series []decimal.NullDecimal

// NewSeries returns an all-null series of length n.
func NewSeries(n int) Series {
	return make(Series, n)
}

// Valid reports whether index i holds a computed value.
func (s Series) Valid(i int) bool {
	return i >= 0 && i < len(s) && s[i].Valid
}

// At returns the value at index i. Only meaningful when Valid(i) is true.
func (s Series) At(i int) decimal.Decimal {
	return s[i].Decimal
}

func (s Series) set(i int, v decimal.Decimal) {
	s[i] = decimal.NullDecimal{Decimal: v, Valid: true}
}

// FirstValid returns the index of the first non-null entry, or -1 when the
// series never warmed up.
func (s Series) FirstValid() int {
	for i := range s {
		if s[i].Valid {
			return i
		}
	}
	return -1
}
