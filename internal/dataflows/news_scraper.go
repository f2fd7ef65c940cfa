package dataflows

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

// NewsScraperClient scrapes Google News search results. It is the fallback
// news source when no Finnhub API key is configured.
type NewsScraperClient struct {
	client     *resty.Client
	maxResults int
}

// NewNewsScraperClient creates a new Google News scraper client.
func NewNewsScraperClient(maxResults int) *NewsScraperClient {
	client := resty.New()
	client.SetTimeout(30 * time.Second)
	client.SetHeader("User-Agent", "Mozilla/5.0 (compatible; StockLens/1.0)")

	if maxResults <= 0 {
		maxResults = 20
	}

	return &NewsScraperClient{
		client:     client,
		maxResults: maxResults,
	}
}

// GetNews scrapes Google News for articles matching the query within the
// date range.
func (ns *NewsScraperClient) GetNews(query string, from, to time.Time) ([]*NewsArticle, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("search query cannot be empty")
	}

	searchURL := ns.buildSearchURL(query, from, to)

	var result []*NewsArticle
	err := WithRetry(DefaultRetryConfig(), func() error {
		resp, err := ns.client.R().Get(searchURL)
		if err != nil {
			return fmt.Errorf("failed to fetch Google News: %w", err)
		}

		if resp.StatusCode() != 200 {
			return fmt.Errorf("HTTP error %d when fetching Google News", resp.StatusCode())
		}

		doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.String()))
		if err != nil {
			return fmt.Errorf("failed to parse HTML: %w", err)
		}

		result = ns.parseSearchHTML(doc)

		if len(result) > ns.maxResults {
			result = result[:ns.maxResults]
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return result, nil
}

func (ns *NewsScraperClient) buildSearchURL(query string, from, to time.Time) string {
	q := query
	if !from.IsZero() && !to.IsZero() {
		q += fmt.Sprintf(" after:%s before:%s",
			from.Format("2006-01-02"), to.Format("2006-01-02"))
	}
	return fmt.Sprintf("https://news.google.com/search?q=%s&hl=en&gl=US&ceid=US:en",
		url.QueryEscape(q))
}

// parseSearchHTML extracts articles from a Google News results page. The
// markup changes periodically, so selectors stay deliberately loose.
func (ns *NewsScraperClient) parseSearchHTML(doc *goquery.Document) []*NewsArticle {
	var articles []*NewsArticle

	doc.Find("article").Each(func(i int, s *goquery.Selection) {
		title := strings.TrimSpace(s.Find("h3").Text())
		if title == "" {
			title = strings.TrimSpace(s.Find("h4").Text())
		}
		if title == "" {
			return
		}

		href, exists := s.Find("a").First().Attr("href")
		if !exists {
			return
		}

		source := strings.TrimSpace(s.Find("div[data-n-tid]").Text())
		if source == "" {
			source = "Google News"
		}

		timeText := strings.TrimSpace(s.Find("time").Text())

		articles = append(articles, &NewsArticle{
			Title:       title,
			URL:         cleanGoogleNewsURL(href),
			Source:      source,
			PublishedAt: parseRelativeTime(timeText),
			Metadata: map[string]string{
				"scraper":   "google_news",
				"time_text": timeText,
			},
		})
	})

	return articles
}

// cleanGoogleNewsURL removes the Google News redirect wrapper.
func cleanGoogleNewsURL(googleURL string) string {
	if strings.Contains(googleURL, "url=") {
		parts := strings.Split(googleURL, "url=")
		if len(parts) > 1 {
			if decoded, err := url.QueryUnescape(parts[1]); err == nil {
				return decoded
			}
		}
	}

	if strings.HasPrefix(googleURL, "./") {
		return "https://news.google.com" + googleURL[1:]
	}
	if strings.HasPrefix(googleURL, "/") {
		return "https://news.google.com" + googleURL
	}

	return googleURL
}

var (
	minutesAgoRe = regexp.MustCompile(`(\d+)\s*minutes?\s*ago`)
	hoursAgoRe   = regexp.MustCompile(`(\d+)\s*hours?\s*ago`)
	daysAgoRe    = regexp.MustCompile(`(\d+)\s*days?\s*ago`)
)

// parseRelativeTime converts Google News relative timestamps ("3 hours ago")
// to absolute times. Unparseable text is assumed to be recent.
func parseRelativeTime(timeText string) time.Time {
	now := time.Now()
	timeText = strings.ToLower(strings.TrimSpace(timeText))

	if timeText == "just now" || timeText == "" {
		return now
	}
	if m := minutesAgoRe.FindStringSubmatch(timeText); len(m) > 1 {
		return now.Add(-time.Duration(parseNumber(m[1])) * time.Minute)
	}
	if m := hoursAgoRe.FindStringSubmatch(timeText); len(m) > 1 {
		return now.Add(-time.Duration(parseNumber(m[1])) * time.Hour)
	}
	if m := daysAgoRe.FindStringSubmatch(timeText); len(m) > 1 {
		return now.Add(-time.Duration(parseNumber(m[1])) * 24 * time.Hour)
	}

	return now.Add(-1 * time.Hour)
}

func parseNumber(s string) int {
	var result int
	fmt.Sscanf(s, "%d", &result)
	return result
}
