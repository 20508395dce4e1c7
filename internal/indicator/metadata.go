package indicator

// ParamMetadata describes one tunable parameter of an indicator for
// capability discovery.
type ParamMetadata struct {
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Default     float64 `json:"default"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	Description string  `json:"description"`
}

// Metadata describes one indicator for capability discovery.
type Metadata struct {
	Name        string          `json:"name"`
	DisplayName string          `json:"display_name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Params      []ParamMetadata `json:"params"`
}

// Catalog lists every indicator the library supports, with parameter
// defaults and bounds.
func Catalog() []Metadata {
	return []Metadata{
		{
			Name:        "sma",
			DisplayName: "Simple Moving Average",
			Description: "Average price over N periods",
			Category:    "trend",
			Params: []ParamMetadata{
				{Name: "period", Type: "int", Default: DefaultSMAPeriod, Min: 2, Max: 200, Description: "Number of periods"},
			},
		},
		{
			Name:        "ema",
			DisplayName: "Exponential Moving Average",
			Description: "Exponentially weighted moving average",
			Category:    "trend",
			Params: []ParamMetadata{
				{Name: "period", Type: "int", Default: DefaultEMAPeriod, Min: 2, Max: 200, Description: "Number of periods"},
			},
		},
		{
			Name:        "rsi",
			DisplayName: "Relative Strength Index",
			Description: "Momentum oscillator (0-100)",
			Category:    "momentum",
			Params: []ParamMetadata{
				{Name: "period", Type: "int", Default: DefaultRSIPeriod, Min: 2, Max: 50, Description: "RSI period"},
			},
		},
		{
			Name:        "macd",
			DisplayName: "MACD",
			Description: "Moving Average Convergence Divergence",
			Category:    "momentum",
			Params: []ParamMetadata{
				{Name: "fast", Type: "int", Default: DefaultMACDFast, Min: 2, Max: 50, Description: "Fast EMA period"},
				{Name: "slow", Type: "int", Default: DefaultMACDSlow, Min: 2, Max: 100, Description: "Slow EMA period"},
				{Name: "signal", Type: "int", Default: DefaultMACDSignal, Min: 2, Max: 50, Description: "Signal line period"},
			},
		},
		{
			Name:        "bollinger",
			DisplayName: "Bollinger Bands",
			Description: "Volatility bands around moving average",
			Category:    "volatility",
			Params: []ParamMetadata{
				{Name: "period", Type: "int", Default: DefaultBollingerPeriod, Min: 2, Max: 100, Description: "MA period"},
				{Name: "std", Type: "float", Default: DefaultBollingerStdDev, Min: 0.5, Max: 4.0, Description: "Standard deviations"},
			},
		},
		{
			Name:        "atr",
			DisplayName: "Average True Range",
			Description: "Volatility indicator",
			Category:    "volatility",
			Params: []ParamMetadata{
				{Name: "period", Type: "int", Default: DefaultATRPeriod, Min: 2, Max: 50, Description: "ATR period"},
			},
		},
		{
			Name:        "stochastic",
			DisplayName: "Stochastic Oscillator",
			Description: "Momentum oscillator comparing close to range",
			Category:    "momentum",
			Params: []ParamMetadata{
				{Name: "k", Type: "int", Default: DefaultStochasticK, Min: 2, Max: 50, Description: "%K period"},
				{Name: "smooth_k", Type: "int", Default: DefaultStochasticSmooth, Min: 1, Max: 20, Description: "%K smoothing"},
				{Name: "d", Type: "int", Default: DefaultStochasticD, Min: 2, Max: 20, Description: "%D period"},
			},
		},
	}
}
