package scan

import "errors"

// ErrInsufficientData is returned when a series is too short for the
// requested indicator period.
var ErrInsufficientData = errors.New("not enough bars for indicator calculation")

// EMA computes the exponential moving average of the close series over the
// given period. The result has one value per bar from index period-1
// onward; the first value is seeded with the simple average.
func EMA(series PriceSeries, period int) ([]float64, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}
	closes := series.Closes()
	if len(closes) < period {
		return nil, ErrInsufficientData
	}

	multiplier := 2.0 / (float64(period) + 1.0)

	sum := 0.0
	for i := 0; i < period; i++ {
		sum += closes[i]
	}
	ema := sum / float64(period)

	result := make([]float64, 0, len(closes)-period+1)
	result = append(result, ema)
	for i := period; i < len(closes); i++ {
		ema = closes[i]*multiplier + ema*(1-multiplier)
		result = append(result, ema)
	}
	return result, nil
}

// RSI computes the Wilder-smoothed relative strength index of the close
// series over the given period, returning the value at the final bar.
// Requires at least period+1 bars.
func RSI(series PriceSeries, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	closes := series.Closes()
	if len(closes) < period+1 {
		return 0, ErrInsufficientData
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	for i := period + 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
	}

	if avgLoss == 0 {
		return 100.0, nil
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs), nil
}

// Technicals holds the indicator values rendered on the technicals tab.
// Fields are absent when the series was too short to compute them.
type Technicals struct {
	RSI14  *float64  `json:"rsi_14,omitempty"`
	EMA50  []float64 `json:"ema_50,omitempty"`
	EMA200 []float64 `json:"ema_200,omitempty"`
}

// ComputeTechnicals derives the standard indicator set from a series.
// Indicators that cannot be computed are simply absent.
func ComputeTechnicals(series PriceSeries) Technicals {
	var t Technicals
	if rsi, err := RSI(series, 14); err == nil {
		t.RSI14 = &rsi
	}
	if ema, err := EMA(series, 50); err == nil {
		t.EMA50 = ema
	}
	if ema, err := EMA(series, 200); err == nil {
		t.EMA200 = ema
	}
	return t
}
