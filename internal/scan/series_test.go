package scan

import (
	"reflect"
	"testing"
)

func TestNormalizeFlattensMultiLevelColumns(t *testing.T) {
	rows := []RawRow{
		{Date: day(0), Fields: map[string]float64{
			"Open RELIANCE.NS":      100,
			"High RELIANCE.NS":      110,
			"Low RELIANCE.NS":       95,
			"Close RELIANCE.NS":     105,
			"Adj Close RELIANCE.NS": 104.5,
			"Volume RELIANCE.NS":    5000,
		}},
	}

	series := Normalize("RELIANCE", rows)
	if series.Len() != 1 {
		t.Fatalf("expected 1 bar, got %d", series.Len())
	}

	bar := series.Bars[0]
	if bar.Open != 100 || bar.High != 110 || bar.Low != 95 || bar.Close != 105 {
		t.Errorf("unexpected bar %+v", bar)
	}
	if bar.Volume != 5000 {
		t.Errorf("volume = %d, want 5000", bar.Volume)
	}
}

func TestNormalizeCaseInsensitiveFields(t *testing.T) {
	rows := []RawRow{
		{Date: day(0), Fields: map[string]float64{
			"OPEN": 10, "High": 12, "low": 9, "CLOSE": 11, "Volume": 300,
		}},
	}

	series := Normalize("TCS", rows)
	bar := series.Bars[0]
	if bar.Open != 10 || bar.High != 12 || bar.Low != 9 || bar.Close != 11 || bar.Volume != 300 {
		t.Errorf("unexpected bar %+v", bar)
	}
}

func TestNormalizeEmptyInput(t *testing.T) {
	series := Normalize("INFY", nil)
	if series.Len() != 0 {
		t.Errorf("expected empty series, got %d bars", series.Len())
	}
}

func TestNormalizePreservesOrderAndCount(t *testing.T) {
	rows := []RawRow{
		{Date: day(2), Fields: map[string]float64{"close": 3}},
		{Date: day(0), Fields: map[string]float64{"close": 1}},
		{Date: day(1), Fields: map[string]float64{"close": 2}},
	}

	series := Normalize("X", rows)
	if series.Len() != 3 {
		t.Fatalf("expected 3 bars, got %d", series.Len())
	}
	// Row order is preserved as-is; ordering by date is the caller's concern.
	if series.Bars[0].Close != 3 || series.Bars[1].Close != 1 || series.Bars[2].Close != 2 {
		t.Errorf("row order not preserved: %+v", series.Bars)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	original := testSeries(
		PriceBar{Date: day(0), Open: 100, High: 110, Low: 95, Close: 105, Volume: 1000},
		PriceBar{Date: day(1), Open: 105, High: 115, Low: 101, Close: 112, Volume: 1500},
	)

	again := Normalize(original.Symbol, original.Rows())
	if !reflect.DeepEqual(original, again) {
		t.Errorf("normalize not idempotent:\n got %+v\nwant %+v", again, original)
	}
}
