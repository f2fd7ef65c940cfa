package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nvats/StockLens/config"
	"github.com/nvats/StockLens/internal/display"
	"github.com/nvats/StockLens/internal/server"
)

const version = "1.0.0"

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg := config.DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "stocklens",
		Short: "StockLens - AI-Powered Indian Stock Screener",
		Long: `StockLens analyzes NSE-listed stocks: price history, technical
indicators, floor-trader pivots, a Graham value screen, news sentiment,
and an AI-generated company report.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ticker, err := PromptForTicker()
			if err != nil {
				return err
			}
			return runAnalyze(cmd.Context(), cfg, ticker, false)
		},
	}

	rootCmd.AddCommand(newAnalyzeCmd(cfg))
	rootCmd.AddCommand(newServeCmd(cfg))
	rootCmd.AddCommand(newConfigCmd(cfg))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// newAnalyzeCmd creates the analyze command
func newAnalyzeCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [SYMBOL]",
		Short: "Run the full analysis for a stock symbol",
		Long: `Run the complete dashboard analysis for a given ticker symbol.
Example: stocklens analyze RELIANCE`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")
			return runAnalyze(cmd.Context(), cfg, args[0], asJSON)
		},
	}

	cmd.Flags().Bool("json", false, "Print the result as JSON instead of panels")
	return cmd
}

// newServeCmd creates the serve command
func newServeCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := buildService(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			addr, _ := cmd.Flags().GetString("addr")
			if addr == "" {
				addr = cfg.HTTPAddr
			}

			return server.New(svc, addr, version).Run(ctx)
		},
	}

	cmd.Flags().String("addr", "", "Listen address (defaults to HTTP_ADDR)")
	return cmd
}

// newConfigCmd creates the config command
func newConfigCmd(cfg *config.Config) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Run: func(cmd *cobra.Command, args []string) {
			showConfig(cfg)
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			display.DisplayInfo("Configuration is valid")
			return nil
		},
	})

	return configCmd
}

// newVersionCmd creates the version command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("StockLens v%s\n", version)
			fmt.Println("AI-Powered Indian Stock Screener")
		},
	}
}

func runAnalyze(ctx context.Context, cfg *config.Config, symbol string, asJSON bool) error {
	svc, err := buildService(ctx, cfg)
	if err != nil {
		return err
	}

	result, err := svc.Analyze(ctx, symbol)
	if err != nil {
		display.DisplayError(err)
		return err
	}

	if asJSON {
		out, err := marshalResult(result)
		if err != nil {
			return fmt.Errorf("encoding result: %w", err)
		}
		fmt.Println(out)
		return nil
	}

	display.NewRenderer(os.Stdout).Render(result)
	return nil
}

func showConfig(cfg *config.Config) {
	fmt.Println("Current configuration:")
	fmt.Printf("  LLM provider:  %s\n", cfg.LLMProvider)
	fmt.Printf("  LLM model:     %s\n", orDefault(cfg.LLMModel, "(provider default)"))
	fmt.Printf("  History days:  %d\n", cfg.HistoryDays)
	fmt.Printf("  News per page: %d\n", cfg.NewsPageSize)
	fmt.Printf("  News suffix:   %s\n", orDefault(cfg.NewsSuffix, "(none)"))
	fmt.Printf("  Symbol suffix: %s\n", orDefault(cfg.SymbolSuffix, "(none)"))
	fmt.Printf("  HTTP address:  %s\n", cfg.HTTPAddr)
	fmt.Printf("  OpenAI key:    %s\n", maskKey(cfg.OpenAIAPIKey))
	fmt.Printf("  DeepSeek key:  %s\n", maskKey(cfg.DeepSeekAPIKey))
	fmt.Printf("  Finnhub key:   %s\n", maskKey(cfg.FinnhubAPIKey))
	fmt.Printf("  Longport key:  %s\n", maskKey(cfg.LongportAppKey))
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func maskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// marshalResult is kept small so analyze --json stays stable for scripting.
func marshalResult(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
