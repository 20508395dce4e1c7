package indicator

// Default parameters, matching the documented defaults exposed through the
// indicator metadata endpoint.
const (
	DefaultSMAPeriod        = 20
	DefaultSMASlowPeriod    = 50
	DefaultEMAPeriod        = 12
	DefaultRSIPeriod        = 14
	DefaultMACDFast         = 12
	DefaultMACDSlow         = 26
	DefaultMACDSignal       = 9
	DefaultBollingerPeriod  = 20
	DefaultBollingerStdDev  = 2.0
	DefaultATRPeriod        = 14
	DefaultStochasticK      = 14
	DefaultStochasticSmooth = 3
	DefaultStochasticD      = 3
)

// Request is a tagged variant selecting one indicator with strongly typed
// parameters. Zero-valued fields are backfilled with the indicator's
// defaults before computation.
type Request interface {
	withDefaults() Request
}

type SMARequest struct {
	Period int
}

type EMARequest struct {
	Period int
}

type RSIRequest struct {
	Period int
}

type MACDRequest struct {
	Fast   int
	Slow   int
	Signal int
}

type BollingerRequest struct {
	Period int
	StdDev float64
}

type ATRRequest struct {
	Period int
}

type StochasticRequest struct {
	PeriodK int
	SmoothK int
	PeriodD int
}

func (r SMARequest) withDefaults() Request {
	if r.Period <= 0 {
		r.Period = DefaultSMAPeriod
	}
	return r
}

func (r EMARequest) withDefaults() Request {
	if r.Period <= 0 {
		r.Period = DefaultEMAPeriod
	}
	return r
}

func (r RSIRequest) withDefaults() Request {
	if r.Period <= 0 {
		r.Period = DefaultRSIPeriod
	}
	return r
}

func (r MACDRequest) withDefaults() Request {
	if r.Fast <= 0 {
		r.Fast = DefaultMACDFast
	}
	if r.Slow <= 0 {
		r.Slow = DefaultMACDSlow
	}
	if r.Signal <= 0 {
		r.Signal = DefaultMACDSignal
	}
	return r
}

func (r BollingerRequest) withDefaults() Request {
	if r.Period <= 0 {
		r.Period = DefaultBollingerPeriod
	}
	if r.StdDev <= 0 {
		r.StdDev = DefaultBollingerStdDev
	}
	return r
}

func (r ATRRequest) withDefaults() Request {
	if r.Period <= 0 {
		r.Period = DefaultATRPeriod
	}
	return r
}

func (r StochasticRequest) withDefaults() Request {
	if r.PeriodK <= 0 {
		r.PeriodK = DefaultStochasticK
	}
	if r.SmoothK <= 0 {
		r.SmoothK = DefaultStochasticSmooth
	}
	if r.PeriodD <= 0 {
		r.PeriodD = DefaultStochasticD
	}
	return r
}
