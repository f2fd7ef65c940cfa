package report

import (
	"context"
	"fmt"
	"log"

	"github.com/cloudwego/eino-ext/devops"

	"github.com/nvats/StockLens/config"
)

// InitDebug starts the eino visual debug server when enabled in the config.
// It is a no-op otherwise.
func InitDebug(ctx context.Context, cfg *config.Config) error {
	if !cfg.EinoDebugEnabled {
		return nil
	}

	if err := devops.Init(ctx); err != nil {
		return fmt.Errorf("failed to initialize eino debug plugin: %w", err)
	}

	if cfg.Debug {
		log.Printf("[Report] eino debug server initialized")
	}

	return nil
}
