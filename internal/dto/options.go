package dto

// AssetClassOption is one selectable asset class with its tradeable symbols.
type AssetClassOption struct {
	Value   string   `json:"value"`
	Label   string   `json:"label"`
	Symbols []string `json:"symbols"`
}

// TimeframeOption is one selectable timeframe type. NeedsValue marks
// timeframes that take a numeric parameter (minutes, brick size, ...).
type TimeframeOption struct {
	Value      string `json:"value"`
	Label      string `json:"label"`
	NeedsValue bool   `json:"needs_value"`
	ValueLabel string `json:"value_label,omitempty"`
}

// ConfigOptions is the static capability-discovery payload.
type ConfigOptions struct {
	AssetClasses []AssetClassOption `json:"asset_classes"`
	Timeframes   []TimeframeOption  `json:"timeframes"`
	Strategies   []string           `json:"strategies"`
}

// NewConfigOptions enumerates the supported asset classes, timeframe types
// and strategies.
func NewConfigOptions() ConfigOptions {
	return ConfigOptions{
		AssetClasses: []AssetClassOption{
			{
				Value:   "crypto",
				Label:   "Cryptocurrency",
				Symbols: []string{"BTCUSDT", "ETHUSDT", "SOLUSDT", "ADAUSDT", "XRPUSDT", "BNBUSDT", "DOGEUSDT", "MATICUSDT", "LINKUSDT", "AVAXUSDT"},
			},
			{
				Value:   "futures",
				Label:   "Futures",
				Symbols: []string{"ES", "NQ", "YM", "RTY", "CL", "GC", "SI", "ZB", "ZN", "ZF"},
			},
			{
				Value:   "equities",
				Label:   "Equities",
				Symbols: []string{"AAPL", "GOOGL", "MSFT", "AMZN", "TSLA", "NVDA", "META", "NFLX", "AMD", "INTC"},
			},
		},
		Timeframes: []TimeframeOption{
			{Value: "tick", Label: "Tick"},
			{Value: "min", Label: "Minute", NeedsValue: true},
			{Value: "hr", Label: "Hour", NeedsValue: true},
			{Value: "day", Label: "Day"},
			{Value: "wk", Label: "Week"},
			{Value: "mo", Label: "Month"},
			{Value: "renko", Label: "Renko", NeedsValue: true, ValueLabel: "Brick Size"},
			{Value: "line", Label: "Line Break", NeedsValue: true, ValueLabel: "Lines"},
			{Value: "range", Label: "Range", NeedsValue: true, ValueLabel: "Range Size"},
		},
		Strategies: []string{"sma_crossover"},
	}
}
