package dataflows

import (
	"context"
	"errors"

	lpconfig "github.com/longportapp/openapi-go/config"
	"github.com/longportapp/openapi-go/quote"
)

// LongportConfig holds Longport broker API credentials.
type LongportConfig struct {
	AppKey      string
	AppSecret   string
	AccessToken string
}

// LongportClient is the broker connector. It enriches an analysis with
// exchange static data for symbols the Longport account can see.
type LongportClient struct {
	quoteCtx *quote.QuoteContext
}

// NewLongportClient creates a Longport client, or an error if credentials
// are missing. The orchestrator treats a missing broker as a degraded,
// non-fatal state.
func NewLongportClient(cfg LongportConfig) (*LongportClient, error) {
	if cfg.AppKey == "" || cfg.AppSecret == "" || cfg.AccessToken == "" {
		return nil, errors.New("longport API credentials not configured")
	}

	conf, err := lpconfig.New(lpconfig.WithConfigKey(cfg.AppKey, cfg.AppSecret, cfg.AccessToken))
	if err != nil {
		return nil, err
	}

	quoteContext, err := quote.NewFromCfg(conf)
	if err != nil {
		return nil, err
	}

	return &LongportClient{quoteCtx: quoteContext}, nil
}

// GetStaticInfo fetches exchange static info for the given symbols.
func (lpc *LongportClient) GetStaticInfo(ctx context.Context, symbols []string) ([]*BrokerInfo, error) {
	if lpc.quoteCtx == nil {
		return nil, errors.New("quote context is nil")
	}

	staticInfos, err := lpc.quoteCtx.StaticInfo(ctx, symbols)
	if err != nil {
		return nil, err
	}

	infos := make([]*BrokerInfo, 0, len(staticInfos))
	for _, si := range staticInfos {
		if si == nil {
			continue
		}
		infos = append(infos, &BrokerInfo{
			Symbol:   si.Symbol,
			NameEn:   si.NameEn,
			Exchange: si.Exchange,
			Currency: si.Currency,
			LotSize:  int32(si.LotSize),
		})
	}

	return infos, nil
}
