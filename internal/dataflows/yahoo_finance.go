package dataflows

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/piquette/finance-go/equity"
	"github.com/piquette/finance-go/quote"
	"github.com/shopspring/decimal"
)

// YahooFinanceClient handles Yahoo Finance data operations: daily price
// history, live quotes, and the fundamentals snapshot.
type YahooFinanceClient struct {
	client       *resty.Client
	symbolSuffix string
}

// NewYahooFinanceClient creates a new Yahoo Finance client. symbolSuffix is
// appended to every ticker before lookup (e.g. ".NS" for NSE symbols).
func NewYahooFinanceClient(symbolSuffix string) *YahooFinanceClient {
	client := resty.New()
	client.SetBaseURL("https://query1.finance.yahoo.com")
	client.SetTimeout(30 * time.Second)
	client.SetHeader("User-Agent", "Mozilla/5.0 (compatible; StockLens/1.0)")

	return &YahooFinanceClient{
		client:       client,
		symbolSuffix: symbolSuffix,
	}
}

func (yf *YahooFinanceClient) fullSymbol(symbol string) string {
	return NormalizeSymbol(symbol) + yf.symbolSuffix
}

// GetHistoricalData gets daily OHLCV history for a symbol. An empty slice
// with a nil error means Yahoo had no bars for the range.
func (yf *YahooFinanceClient) GetHistoricalData(symbol string, start, end time.Time) ([]*MarketData, error) {
	if err := ValidateSymbol(symbol); err != nil {
		return nil, err
	}

	symbol = NormalizeSymbol(symbol)

	var result []*MarketData
	err := WithRetry(DefaultRetryConfig(), func() error {
		params := &chart.Params{
			Symbol:   yf.fullSymbol(symbol),
			Start:    datetime.New(&start),
			End:      datetime.New(&end),
			Interval: datetime.OneDay,
		}

		iter := chart.Get(params)

		result = make([]*MarketData, 0)
		for iter.Next() {
			bar := iter.Bar()

			result = append(result, &MarketData{
				Symbol:    symbol,
				Date:      time.Unix(int64(bar.Timestamp), 0),
				Open:      bar.Open,
				High:      bar.High,
				Low:       bar.Low,
				Close:     bar.Close,
				AdjClose:  bar.AdjClose,
				Volume:    int64(bar.Volume),
				Timestamp: time.Now(),
			})
		}

		if err := iter.Err(); err != nil {
			return fmt.Errorf("failed to get historical data for %s (%s): %w",
				symbol, FormatDateRange(start, end), err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return result, nil
}

// GetQuote gets the current quote for a symbol.
func (yf *YahooFinanceClient) GetQuote(symbol string) (*MarketData, error) {
	if err := ValidateSymbol(symbol); err != nil {
		return nil, err
	}

	symbol = NormalizeSymbol(symbol)

	var result *MarketData
	err := WithRetry(DefaultRetryConfig(), func() error {
		q, err := quote.Get(yf.fullSymbol(symbol))
		if err != nil {
			return fmt.Errorf("failed to get quote for %s: %w", symbol, err)
		}

		result = &MarketData{
			Symbol:    symbol,
			Date:      time.Now(),
			Open:      decimal.NewFromFloat(q.RegularMarketOpen),
			High:      decimal.NewFromFloat(q.RegularMarketDayHigh),
			Low:       decimal.NewFromFloat(q.RegularMarketDayLow),
			Close:     decimal.NewFromFloat(q.RegularMarketPrice),
			AdjClose:  decimal.NewFromFloat(q.RegularMarketPrice),
			Volume:    int64(q.RegularMarketVolume),
			Timestamp: time.Now(),
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return result, nil
}

// GetFundamentals builds the sparse fundamentals snapshot for a symbol from
// the Yahoo equity quote plus the asset profile endpoint. Yahoo reports
// missing ratios as zero, so zero-valued figures are recorded as absent.
func (yf *YahooFinanceClient) GetFundamentals(symbol string) (*FundamentalSnapshot, error) {
	if err := ValidateSymbol(symbol); err != nil {
		return nil, err
	}

	symbol = NormalizeSymbol(symbol)

	eq, err := equity.Get(yf.fullSymbol(symbol))
	if err != nil {
		return nil, fmt.Errorf("failed to get fundamentals for %s: %w", symbol, err)
	}

	snapshot := &FundamentalSnapshot{
		Symbol:        symbol,
		MarketCap:     optionalFloat(float64(eq.MarketCap)),
		PERatio:       optionalFloat(eq.TrailingPE),
		PBRatio:       optionalFloat(eq.PriceToBook),
		DividendYield: optionalFloat(eq.TrailingAnnualDividendYield),
		Week52High:    optionalFloat(eq.FiftyTwoWeekHigh),
		Week52Low:     optionalFloat(eq.FiftyTwoWeekLow),
	}

	// Sector, industry, and the business summary come from a separate
	// endpoint. Profile failures leave the snapshot numeric-only.
	if profile, err := yf.getAssetProfile(symbol); err != nil {
		log.Printf("[Yahoo] asset profile unavailable for %s: %v", symbol, err)
	} else {
		snapshot.Sector = profile.Sector
		snapshot.Industry = profile.Industry
		snapshot.LongSummary = profile.LongBusinessSummary
	}

	return snapshot, nil
}

// assetProfile is the subset of the Yahoo quoteSummary assetProfile module
// that we consume.
type assetProfile struct {
	Sector              string `json:"sector"`
	Industry            string `json:"industry"`
	LongBusinessSummary string `json:"longBusinessSummary"`
}

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			AssetProfile assetProfile `json:"assetProfile"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

func (yf *YahooFinanceClient) getAssetProfile(symbol string) (*assetProfile, error) {
	var profile *assetProfile
	err := WithRetry(DefaultRetryConfig(), func() error {
		resp, err := yf.client.R().
			SetQueryParam("modules", "assetProfile").
			Get("/v10/finance/quoteSummary/" + yf.fullSymbol(symbol))
		if err != nil {
			return fmt.Errorf("failed to fetch asset profile for %s: %w", symbol, err)
		}

		if resp.StatusCode() != 200 {
			return fmt.Errorf("asset profile HTTP error %d for %s", resp.StatusCode(), symbol)
		}

		var parsed quoteSummaryResponse
		if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
			return fmt.Errorf("failed to parse asset profile response: %w", err)
		}
		if parsed.QuoteSummary.Error != nil {
			return fmt.Errorf("asset profile API error: %s", parsed.QuoteSummary.Error.Description)
		}
		if len(parsed.QuoteSummary.Result) == 0 {
			return fmt.Errorf("asset profile empty for %s", symbol)
		}

		profile = &parsed.QuoteSummary.Result[0].AssetProfile
		return nil
	})

	if err != nil {
		return nil, err
	}

	return profile, nil
}

func optionalFloat(v float64) *float64 {
	if v == 0 {
		return nil
	}
	return &v
}
