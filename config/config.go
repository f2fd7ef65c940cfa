package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings for StockLens. Values come from
// DefaultConfig, optionally overridden by a .env file and environment
// variables.
type Config struct {
	// LLM configuration
	LLMProvider string `json:"llm_provider"` // "openai" or "deepseek"
	LLMModel    string `json:"llm_model"`
	BackendURL  string `json:"backend_url"`
	MaxTokens   int    `json:"max_tokens"`

	// AI model API keys
	OpenAIAPIKey   string `json:"openai_api_key"`
	DeepSeekAPIKey string `json:"deepseek_api_key"`

	// Market/news data API keys
	FinnhubAPIKey string `json:"finnhub_api_key"`

	// Longport broker API configuration (optional enrichment source)
	LongportAppKey      string `json:"longport_app_key"`
	LongportAppSecret   string `json:"longport_app_secret"`
	LongportAccessToken string `json:"longport_access_token"`

	// Analysis parameters
	HistoryDays  int    `json:"history_days"`   // price history lookback window
	NewsPageSize int    `json:"news_page_size"` // max articles fetched per request
	NewsSuffix   string `json:"news_suffix"`    // appended to news queries, e.g. "India"
	SymbolSuffix string `json:"symbol_suffix"`  // appended to tickers, e.g. ".NS" for NSE

	// HTTP API
	HTTPAddr string `json:"http_addr"`

	Debug            bool `json:"debug"`
	EinoDebugEnabled bool `json:"eino_debug_enabled"`
}

func DefaultConfig() *Config {
	cfg := &Config{
		LLMProvider: "openai",
		LLMModel:    "", // provider default applies when empty
		BackendURL:  "",
		MaxTokens:   4096,

		HistoryDays:  730,
		NewsPageSize: 20,
		NewsSuffix:   "",
		SymbolSuffix: "",

		HTTPAddr: ":8780",

		Debug:            false,
		EinoDebugEnabled: false,
	}

	// Load environment variables from .env file if present
	_ = godotenv.Load()

	cfg.loadFromEnv()

	return cfg
}

func (c *Config) loadFromEnv() {
	if val := os.Getenv("LLM_PROVIDER"); val != "" {
		c.LLMProvider = val
	}
	if val := os.Getenv("LLM_MODEL"); val != "" {
		c.LLMModel = val
	}
	if val := os.Getenv("BACKEND_URL"); val != "" {
		c.BackendURL = val
	}
	if val := os.Getenv("MAX_TOKENS"); val != "" {
		if v, err := strconv.Atoi(val); err == nil {
			c.MaxTokens = v
		}
	}

	if val := os.Getenv("OPENAI_API_KEY"); val != "" {
		c.OpenAIAPIKey = val
	}
	if val := os.Getenv("DEEPSEEK_API_KEY"); val != "" {
		c.DeepSeekAPIKey = val
	}
	if val := os.Getenv("FINNHUB_API_KEY"); val != "" {
		c.FinnhubAPIKey = val
	}

	if val := os.Getenv("LONGPORT_APP_KEY"); val != "" {
		c.LongportAppKey = val
	}
	if val := os.Getenv("LONGPORT_APP_SECRET"); val != "" {
		c.LongportAppSecret = val
	}
	if val := os.Getenv("LONGPORT_ACCESS_TOKEN"); val != "" {
		c.LongportAccessToken = val
	}

	if val := os.Getenv("HISTORY_DAYS"); val != "" {
		if v, err := strconv.Atoi(val); err == nil && v > 0 {
			c.HistoryDays = v
		}
	}
	if val := os.Getenv("NEWS_PAGE_SIZE"); val != "" {
		if v, err := strconv.Atoi(val); err == nil && v > 0 {
			c.NewsPageSize = v
		}
	}
	if val := os.Getenv("NEWS_SUFFIX"); val != "" {
		c.NewsSuffix = val
	}
	if val := os.Getenv("SYMBOL_SUFFIX"); val != "" {
		c.SymbolSuffix = val
	}

	if val := os.Getenv("HTTP_ADDR"); val != "" {
		c.HTTPAddr = val
	}

	if val := os.Getenv("DEBUG"); val != "" {
		if v, err := strconv.ParseBool(val); err == nil {
			c.Debug = v
		}
	}
	if val := os.Getenv("EINO_DEBUG_ENABLED"); val != "" {
		if v, err := strconv.ParseBool(val); err == nil {
			c.EinoDebugEnabled = v
		}
	}
}

// Validate checks settings that would make a run impossible. Missing
// provider keys are not fatal: the affected dashboard sections degrade to
// their empty states instead.
func (c *Config) Validate() error {
	switch c.LLMProvider {
	case "openai", "deepseek":
	default:
		return fmt.Errorf("unknown llm provider %q (want openai or deepseek)", c.LLMProvider)
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be positive, got %d", c.MaxTokens)
	}
	if c.HistoryDays < 2 {
		return fmt.Errorf("history_days must be at least 2, got %d", c.HistoryDays)
	}
	return nil
}
