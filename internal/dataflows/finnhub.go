package dataflows

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// FinnhubClient handles Finnhub API operations.
type FinnhubClient struct {
	client   *resty.Client
	apiKey   string
	pageSize int
}

// NewFinnhubClient creates a new Finnhub client. pageSize caps how many
// articles a single news request returns.
func NewFinnhubClient(apiKey string, pageSize int) *FinnhubClient {
	client := resty.New()
	client.SetBaseURL("https://finnhub.io/api/v1")
	client.SetTimeout(30 * time.Second)

	if pageSize <= 0 {
		pageSize = 20
	}

	return &FinnhubClient{
		client:   client,
		apiKey:   apiKey,
		pageSize: pageSize,
	}
}

// Configured reports whether an API key is present.
func (fc *FinnhubClient) Configured() bool {
	return fc.apiKey != ""
}

// finnhubNews is the wire format of a Finnhub company-news item.
type finnhubNews struct {
	Category string `json:"category"`
	DateTime int64  `json:"datetime"`
	Headline string `json:"headline"`
	ID       int64  `json:"id"`
	Related  string `json:"related"`
	Source   string `json:"source"`
	Summary  string `json:"summary"`
	URL      string `json:"url"`
}

// GetNews gets recent news articles for a company symbol, newest first,
// capped at the configured page size. The company-news endpoint is keyed by
// symbol, so only the leading token of the query is used; free-text
// qualifiers meant for text-search providers are dropped.
func (fc *FinnhubClient) GetNews(query string, from, to time.Time) ([]*NewsArticle, error) {
	if !fc.Configured() {
		return nil, fmt.Errorf("finnhub API key not configured")
	}

	tokens := strings.Fields(query)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("news query cannot be empty")
	}

	if err := ValidateSymbol(tokens[0]); err != nil {
		return nil, err
	}

	symbol := NormalizeSymbol(tokens[0])

	var result []*NewsArticle
	err := WithRetry(DefaultRetryConfig(), func() error {
		resp, err := fc.client.R().
			SetQueryParams(map[string]string{
				"symbol": symbol,
				"from":   from.Format("2006-01-02"),
				"to":     to.Format("2006-01-02"),
				"token":  fc.apiKey,
			}).
			Get("/company-news")

		if err != nil {
			return fmt.Errorf("failed to fetch news for %s: %w", symbol, err)
		}

		if resp.StatusCode() != 200 {
			return fmt.Errorf("API error %d: %s", resp.StatusCode(), resp.String())
		}

		var items []finnhubNews
		if err := json.Unmarshal(resp.Body(), &items); err != nil {
			return fmt.Errorf("failed to parse news response: %w", err)
		}

		result = make([]*NewsArticle, 0, len(items))
		for _, news := range items {
			if news.Headline == "" {
				continue
			}
			result = append(result, &NewsArticle{
				Title:       news.Headline,
				Content:     news.Summary,
				URL:         news.URL,
				Source:      news.Source,
				PublishedAt: time.Unix(news.DateTime, 0),
				Metadata: map[string]string{
					"category": news.Category,
					"related":  news.Related,
					"id":       fmt.Sprintf("%d", news.ID),
				},
			})
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].PublishedAt.After(result[j].PublishedAt)
	})
	if len(result) > fc.pageSize {
		result = result[:fc.pageSize]
	}

	return result, nil
}
