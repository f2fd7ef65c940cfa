// Package cli wires the application together and exposes it as a set of
// cobra commands.
package cli

import (
	"context"
	"log"

	"github.com/nvats/StockLens/config"
	"github.com/nvats/StockLens/internal/analysis"
	"github.com/nvats/StockLens/internal/dataflows"
	"github.com/nvats/StockLens/internal/report"
	"github.com/nvats/StockLens/internal/scan"
)

// buildService constructs the analysis service with every collaborator the
// configuration allows. Missing credentials narrow the service rather than
// fail it: no Finnhub key falls back to the news scraper, no LLM key leaves
// the report composer in its degraded mode, no broker creds skip the
// broker section entirely.
func buildService(ctx context.Context, cfg *config.Config) (*analysis.Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	yahoo := dataflows.NewYahooFinanceClient(cfg.SymbolSuffix)

	var news dataflows.NewsProvider
	finnhub := dataflows.NewFinnhubClient(cfg.FinnhubAPIKey, cfg.NewsPageSize)
	if finnhub.Configured() {
		news = finnhub
	} else {
		log.Printf("[CLI] no Finnhub key, using news scraper fallback")
		news = dataflows.NewNewsScraperClient(cfg.NewsPageSize)
	}

	if err := report.InitDebug(ctx, cfg); err != nil {
		log.Printf("[CLI] debug tracing unavailable: %v", err)
	}

	chatModel, err := report.NewChatModel(ctx, cfg)
	if err != nil {
		log.Printf("[CLI] chat model unavailable, reports will be degraded: %v", err)
	}
	composer := report.NewComposer(chatModel)

	var broker analysis.BrokerProvider
	if cfg.LongportAppKey != "" {
		lp, err := dataflows.NewLongportClient(dataflows.LongportConfig{
			AppKey:      cfg.LongportAppKey,
			AppSecret:   cfg.LongportAppSecret,
			AccessToken: cfg.LongportAccessToken,
		})
		if err != nil {
			log.Printf("[CLI] broker connector unavailable: %v", err)
		} else {
			broker = lp
		}
	}

	return analysis.NewService(cfg, yahoo, yahoo, yahoo, news, &scan.VaderScorer{}, composer, broker), nil
}
