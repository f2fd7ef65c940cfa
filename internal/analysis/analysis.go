// Package analysis runs one full dashboard request: it fans out to the data
// collaborators, feeds the scan engine, asks the report composer for the AI
// report, and assembles everything into a single immutable Analysis value.
// Each section carries its own status so the presentation layer can render
// partial dashboards instead of failing the whole request.
package analysis

import (
	"context"
	"log"
	"time"

	"github.com/nvats/StockLens/config"
	"github.com/nvats/StockLens/internal/dataflows"
	"github.com/nvats/StockLens/internal/report"
	"github.com/nvats/StockLens/internal/scan"
)

// Status tells the presentation layer how to treat a section.
type Status string

const (
	StatusOK            Status = "ok"
	StatusEmpty         Status = "empty"
	StatusProviderError Status = "provider_error"
)

// SectionStatus is the per-section outcome. Reason is set only for
// provider errors.
type SectionStatus struct {
	Status Status `json:"status"`
	Reason string `json:"reason,omitempty"`
}

func okSection() SectionStatus    { return SectionStatus{Status: StatusOK} }
func emptySection() SectionStatus { return SectionStatus{Status: StatusEmpty} }
func errSection(err error) SectionStatus {
	return SectionStatus{Status: StatusProviderError, Reason: err.Error()}
}

// OverviewSection holds fundamentals, the business summary, and the latest
// traded price.
type OverviewSection struct {
	Status       SectionStatus                  `json:"status"`
	Fundamentals *dataflows.FundamentalSnapshot `json:"fundamentals,omitempty"`
	LastPrice    *float64                       `json:"last_price,omitempty"`
}

// TechnicalsSection holds chart indicators over the price series.
type TechnicalsSection struct {
	Status     SectionStatus   `json:"status"`
	Technicals scan.Technicals `json:"technicals"`
}

// ScansSection holds the pivot levels and the Graham screen verdict. An
// empty pivot mapping means "not computable", not zero levels.
type ScansSection struct {
	PivotStatus SectionStatus      `json:"pivot_status"`
	Pivots      scan.PivotLevels   `json:"pivots"`
	Graham      scan.GrahamVerdict `json:"graham"`
}

// NewsItem pairs an article with its sentiment, scored exactly once.
type NewsItem struct {
	Article   *dataflows.NewsArticle `json:"article"`
	Sentiment scan.SentimentResult   `json:"sentiment"`
}

// NewsSection holds scored articles and the batch mean. AverageCompound is
// nil when there were no articles; it is never a synthesized zero.
type NewsSection struct {
	Status          SectionStatus `json:"status"`
	Items           []NewsItem    `json:"items,omitempty"`
	AverageCompound *float64      `json:"average_compound,omitempty"`
}

// ReportSection holds the AI company report text.
type ReportSection struct {
	Status SectionStatus `json:"status"`
	Text   string        `json:"text"`
}

// CompetitorRow is one peer in the competitors table.
type CompetitorRow struct {
	Ticker    string   `json:"ticker"`
	MarketCap *float64 `json:"market_cap,omitempty"`
	PERatio   *float64 `json:"pe_ratio,omitempty"`
}

// CompetitorsSection lists peer companies with headline figures.
type CompetitorsSection struct {
	Status SectionStatus   `json:"status"`
	Rows   []CompetitorRow `json:"rows,omitempty"`
}

// Analysis is the complete result of one analyze request. All fields are
// plain values with no UI concerns; it is produced fresh per request and
// never mutated afterwards.
type Analysis struct {
	Symbol      string    `json:"symbol"`
	GeneratedAt time.Time `json:"generated_at"`

	Series       scan.PriceSeries      `json:"series"`
	SeriesStatus SectionStatus         `json:"series_status"`
	Overview     OverviewSection       `json:"overview"`
	Technicals   TechnicalsSection     `json:"technicals"`
	Scans        ScansSection          `json:"scans"`
	News         NewsSection           `json:"news"`
	Report       ReportSection         `json:"report"`
	Competitors  CompetitorsSection    `json:"competitors"`
	Broker       *dataflows.BrokerInfo `json:"broker,omitempty"`
}

// ReportComposer produces the AI company report text. Implementations never
// return an error; failures surface as fixed placeholder text.
type ReportComposer interface {
	CompanyReport(ctx context.Context, companyName string, articles []*dataflows.NewsArticle) string
}

// QuoteProvider supplies the latest traded quote for a symbol.
type QuoteProvider interface {
	GetQuote(symbol string) (*dataflows.MarketData, error)
}

// BrokerProvider supplies exchange static info, if a broker is configured.
type BrokerProvider interface {
	GetStaticInfo(ctx context.Context, symbols []string) ([]*dataflows.BrokerInfo, error)
}

// Service runs analyses. All collaborators are injected once at
// construction; the service itself holds no per-request state.
type Service struct {
	cfg          *config.Config
	prices       dataflows.PriceProvider
	quotes       QuoteProvider // nil skips the live-quote lookup
	fundamentals dataflows.FundamentalsProvider
	news         dataflows.NewsProvider
	scorer       scan.Scorer
	composer     ReportComposer
	broker       BrokerProvider // nil when not configured
}

// NewService builds an analysis service from its collaborators. quotes and
// broker may be nil.
func NewService(
	cfg *config.Config,
	prices dataflows.PriceProvider,
	quotes QuoteProvider,
	fundamentals dataflows.FundamentalsProvider,
	news dataflows.NewsProvider,
	scorer scan.Scorer,
	composer ReportComposer,
	broker BrokerProvider,
) *Service {
	return &Service{
		cfg:          cfg,
		prices:       prices,
		quotes:       quotes,
		fundamentals: fundamentals,
		news:         news,
		scorer:       scorer,
		composer:     composer,
		broker:       broker,
	}
}

// newsLookbackDays bounds the news query window.
const newsLookbackDays = 30

// Analyze runs the full pipeline for one ticker. The only hard failure is
// an invalid symbol; every provider problem degrades to a section-level
// status instead.
func (s *Service) Analyze(ctx context.Context, symbol string) (*Analysis, error) {
	if err := dataflows.ValidateSymbol(symbol); err != nil {
		return nil, err
	}
	symbol = dataflows.NormalizeSymbol(symbol)

	log.Printf("[Analysis] fetching all data for %s", symbol)

	result := &Analysis{
		Symbol:      symbol,
		GeneratedAt: time.Now(),
	}

	result.Series, result.SeriesStatus = s.fetchSeries(symbol)
	result.Overview = s.fetchOverview(symbol)
	result.Technicals = s.computeTechnicals(result.Series, result.SeriesStatus)
	result.Scans = s.computeScans(result.Series, result.Overview.Fundamentals)
	result.News = s.fetchNews(symbol)
	result.Report = s.composeReport(ctx, symbol, result.News)
	result.Competitors = s.fetchCompetitors(symbol)
	result.Broker = s.fetchBrokerInfo(ctx, symbol)

	log.Printf("[Analysis] completed for %s", symbol)

	return result, nil
}

func (s *Service) fetchSeries(symbol string) (scan.PriceSeries, SectionStatus) {
	end := time.Now()
	start := end.AddDate(0, 0, -s.cfg.HistoryDays)

	data, err := s.prices.GetHistoricalData(symbol, start, end)
	if err != nil {
		log.Printf("[Analysis] price history failed for %s: %v", symbol, err)
		return scan.PriceSeries{Symbol: symbol}, errSection(err)
	}

	series := seriesFromMarketData(symbol, data)
	if series.Len() == 0 {
		return series, emptySection()
	}
	return series, okSection()
}

// seriesFromMarketData runs provider bars through the normalizer, which
// flattens the provider's capitalized field names to the canonical
// lowercase set.
func seriesFromMarketData(symbol string, data []*dataflows.MarketData) scan.PriceSeries {
	rows := make([]scan.RawRow, 0, len(data))
	for _, md := range data {
		rows = append(rows, scan.RawRow{
			Date: md.Date,
			Fields: map[string]float64{
				"Open":      md.Open.InexactFloat64(),
				"High":      md.High.InexactFloat64(),
				"Low":       md.Low.InexactFloat64(),
				"Close":     md.Close.InexactFloat64(),
				"Adj Close": md.AdjClose.InexactFloat64(),
				"Volume":    float64(md.Volume),
			},
		})
	}
	return scan.Normalize(symbol, rows)
}

func (s *Service) fetchOverview(symbol string) OverviewSection {
	section := OverviewSection{LastPrice: s.fetchLastPrice(symbol)}

	snapshot, err := s.fundamentals.GetFundamentals(symbol)
	if err != nil {
		log.Printf("[Analysis] fundamentals failed for %s: %v", symbol, err)
		section.Status = errSection(err)
		return section
	}
	if snapshot == nil {
		section.Status = emptySection()
		return section
	}
	section.Status = okSection()
	section.Fundamentals = snapshot
	return section
}

func (s *Service) fetchLastPrice(symbol string) *float64 {
	if s.quotes == nil {
		return nil
	}
	q, err := s.quotes.GetQuote(symbol)
	if err != nil {
		log.Printf("[Analysis] quote failed for %s: %v", symbol, err)
		return nil
	}
	if q == nil {
		return nil
	}
	price := q.Close.InexactFloat64()
	return &price
}

func (s *Service) computeTechnicals(series scan.PriceSeries, seriesStatus SectionStatus) TechnicalsSection {
	if seriesStatus.Status != StatusOK {
		return TechnicalsSection{Status: seriesStatus}
	}
	return TechnicalsSection{Status: okSection(), Technicals: scan.ComputeTechnicals(series)}
}

func (s *Service) computeScans(series scan.PriceSeries, fundamentals *dataflows.FundamentalSnapshot) ScansSection {
	section := ScansSection{Pivots: scan.PivotPoints(series)}
	if len(section.Pivots) == 0 {
		section.PivotStatus = emptySection()
	} else {
		section.PivotStatus = okSection()
	}

	if fundamentals != nil {
		section.Graham = scan.GrahamScan(fundamentals.PERatio, fundamentals.PBRatio)
	} else {
		section.Graham = scan.GrahamScan(nil, nil)
	}

	return section
}

func (s *Service) fetchNews(symbol string) NewsSection {
	query := symbol
	if s.cfg.NewsSuffix != "" {
		query = symbol + " " + s.cfg.NewsSuffix
	}

	to := time.Now()
	from := to.AddDate(0, 0, -newsLookbackDays)

	articles, err := s.news.GetNews(query, from, to)
	if err != nil {
		log.Printf("[Analysis] news fetch failed for %s: %v", symbol, err)
		return NewsSection{Status: errSection(err)}
	}
	if len(articles) == 0 {
		return NewsSection{Status: emptySection()}
	}

	items := make([]NewsItem, 0, len(articles))
	results := make([]scan.SentimentResult, 0, len(articles))
	for _, article := range articles {
		sentiment := scan.ScoreText(s.scorer, article.Title)
		items = append(items, NewsItem{Article: article, Sentiment: sentiment})
		results = append(results, sentiment)
	}

	section := NewsSection{Status: okSection(), Items: items}
	if mean, ok := scan.BatchAverage(results); ok {
		section.AverageCompound = &mean
	}
	return section
}

func (s *Service) composeReport(ctx context.Context, symbol string, news NewsSection) ReportSection {
	articles := make([]*dataflows.NewsArticle, 0, len(news.Items))
	for _, item := range news.Items {
		articles = append(articles, item.Article)
	}

	text := s.composer.CompanyReport(ctx, symbol, articles)
	switch text {
	case report.NoRecentNewsMessage:
		return ReportSection{Status: emptySection(), Text: text}
	case report.ReportUnavailableMessage:
		return ReportSection{Status: SectionStatus{Status: StatusProviderError, Reason: "generation failed"}, Text: text}
	default:
		return ReportSection{Status: okSection(), Text: text}
	}
}

func (s *Service) fetchCompetitors(symbol string) CompetitorsSection {
	peers := Peers(symbol)
	if len(peers) == 0 {
		return CompetitorsSection{Status: emptySection()}
	}

	rows := make([]CompetitorRow, 0, len(peers))
	for _, peer := range peers {
		row := CompetitorRow{Ticker: peer}
		snapshot, err := s.fundamentals.GetFundamentals(peer)
		if err != nil {
			log.Printf("[Analysis] competitor fundamentals failed for %s: %v", peer, err)
		} else if snapshot != nil {
			row.MarketCap = snapshot.MarketCap
			row.PERatio = snapshot.PERatio
		}
		rows = append(rows, row)
	}

	return CompetitorsSection{Status: okSection(), Rows: rows}
}

func (s *Service) fetchBrokerInfo(ctx context.Context, symbol string) *dataflows.BrokerInfo {
	if s.broker == nil {
		return nil
	}

	infos, err := s.broker.GetStaticInfo(ctx, []string{symbol})
	if err != nil {
		log.Printf("[Analysis] broker static info failed for %s: %v", symbol, err)
		return nil
	}
	if len(infos) == 0 {
		return nil
	}
	return infos[0]
}
