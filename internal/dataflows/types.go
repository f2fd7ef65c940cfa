// Package dataflows contains the external data collaborators: Yahoo Finance
// for prices and fundamentals, Finnhub and Google News for headlines, and the
// optional Longport broker connector. Everything here does I/O; the scan
// engine in internal/scan never does.
package dataflows

import (
	"time"

	"github.com/shopspring/decimal"
)

// MarketData is one OHLCV bar as delivered by a price provider.
type MarketData struct {
	Symbol    string          `json:"symbol"`
	Date      time.Time       `json:"date"`
	Open      decimal.Decimal `json:"open"`
	High      decimal.Decimal `json:"high"`
	Low       decimal.Decimal `json:"low"`
	Close     decimal.Decimal `json:"close"`
	AdjClose  decimal.Decimal `json:"adj_close"`
	Volume    int64           `json:"volume"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewsArticle is a single headline from a news provider.
type NewsArticle struct {
	Title       string            `json:"title"`
	Content     string            `json:"content,omitempty"`
	URL         string            `json:"url"`
	Source      string            `json:"source,omitempty"`
	PublishedAt time.Time         `json:"published_at"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// FundamentalSnapshot is a sparse set of fundamental figures for one symbol.
// Nil pointer means the provider did not report the figure; a figure is never
// defaulted to zero.
type FundamentalSnapshot struct {
	Symbol        string   `json:"symbol"`
	MarketCap     *float64 `json:"market_cap,omitempty"`
	PERatio       *float64 `json:"pe_ratio,omitempty"`
	PBRatio       *float64 `json:"pb_ratio,omitempty"`
	DividendYield *float64 `json:"dividend_yield,omitempty"`
	Week52High    *float64 `json:"week_52_high,omitempty"`
	Week52Low     *float64 `json:"week_52_low,omitempty"`
	Sector        string   `json:"sector,omitempty"`
	Industry      string   `json:"industry,omitempty"`
	LongSummary   string   `json:"long_summary,omitempty"`
}

// BrokerInfo is static security information from the broker connector.
type BrokerInfo struct {
	Symbol   string `json:"symbol"`
	NameEn   string `json:"name_en"`
	Exchange string `json:"exchange"`
	Currency string `json:"currency"`
	LotSize  int32  `json:"lot_size"`
}

// PriceProvider returns OHLCV history for a symbol. An empty slice with a
// nil error means the provider had no data for the range.
type PriceProvider interface {
	GetHistoricalData(symbol string, start, end time.Time) ([]*MarketData, error)
}

// FundamentalsProvider returns the sparse fundamentals snapshot for a symbol.
type FundamentalsProvider interface {
	GetFundamentals(symbol string) (*FundamentalSnapshot, error)
}

// NewsProvider returns recent articles for a free-text query. An empty
// result is valid.
type NewsProvider interface {
	GetNews(query string, from, to time.Time) ([]*NewsArticle, error)
}
