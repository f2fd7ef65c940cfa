// Package scan is the technical/valuation scan engine: price series
// normalization, pivot points, the Graham value screen, sentiment
// aggregation, and a few chart indicators. Every function here is pure —
// inputs are data already fetched by the collaborators in
// internal/dataflows, and nothing blocks or does I/O.
package scan

import (
	"strings"
	"time"
)

// PriceBar is a single daily candlestick. Well-formed input satisfies
// high >= max(open, close) and low <= min(open, close); malformed bars pass
// through untouched.
type PriceBar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// PriceSeries is an ordered sequence of bars, strictly increasing by date.
// Treated as read-only once produced by Normalize.
type PriceSeries struct {
	Symbol string     `json:"symbol"`
	Bars   []PriceBar `json:"bars"`
}

// Len returns the number of bars in the series.
func (s PriceSeries) Len() int { return len(s.Bars) }

// Closes returns the close column of the series.
func (s PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}

// RawRow is one row of raw tabular price history. Field keys may be
// case-inconsistent ("Close", "CLOSE") and may carry a second level from a
// multi-symbol fetch ("Close RELIANCE.NS"); Normalize flattens both forms.
type RawRow struct {
	Date   time.Time
	Fields map[string]float64
}

// canonicalFields are the recognized output field names. "adj close" is
// matched so multi-level adjusted-close columns are not mistaken for close,
// but the adjusted series is not carried into the PriceSeries.
var canonicalFields = []string{"adj close", "open", "high", "low", "close", "volume"}

func canonicalField(key string) (string, bool) {
	lowered := strings.ToLower(strings.TrimSpace(key))
	for _, name := range canonicalFields {
		if lowered == name || strings.HasPrefix(lowered, name+" ") {
			return name, true
		}
	}
	return "", false
}

// Normalize converts raw tabular rows into a canonical PriceSeries:
// lowercase single-level field names, row order and count preserved. Zero
// rows yield an empty series, not an error. Applying Normalize to rows that
// are already canonical returns an identical series.
func Normalize(symbol string, rows []RawRow) PriceSeries {
	bars := make([]PriceBar, 0, len(rows))
	for _, row := range rows {
		bar := PriceBar{Date: row.Date}
		for key, value := range row.Fields {
			name, ok := canonicalField(key)
			if !ok {
				continue
			}
			switch name {
			case "open":
				bar.Open = value
			case "high":
				bar.High = value
			case "low":
				bar.Low = value
			case "close":
				bar.Close = value
			case "volume":
				bar.Volume = int64(value)
			}
		}
		bars = append(bars, bar)
	}
	return PriceSeries{Symbol: symbol, Bars: bars}
}

// Rows converts a series back to raw rows with canonical lowercase keys.
// Normalize(s.Rows()) reproduces s exactly.
func (s PriceSeries) Rows() []RawRow {
	rows := make([]RawRow, 0, len(s.Bars))
	for _, b := range s.Bars {
		rows = append(rows, RawRow{
			Date: b.Date,
			Fields: map[string]float64{
				"open":   b.Open,
				"high":   b.High,
				"low":    b.Low,
				"close":  b.Close,
				"volume": float64(b.Volume),
			},
		})
	}
	return rows
}
