package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fairroute/intake-cli/internal/catalog"
	"github.com/fairroute/intake-cli/internal/config"
	"github.com/fairroute/intake-cli/internal/resilience"
	"github.com/fairroute/intake-cli/pkg/benefits"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "intake-cli",
	Short: "Benefits intake clarification engine",
	Long:  "Turns a citizen's free-text description into a structured case profile: parse, clarify with an ordered question walk, confirm, evaluate.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// loadCatalog returns the active question catalog, honoring a configured
// YAML override.
func loadCatalog() (*catalog.Catalog, error) {
	return catalog.Load(cfg.Catalog.Path)
}

// newBackendClient builds the upstream client from config.
func newBackendClient() benefits.Client {
	return benefits.NewClient(
		benefits.WithBaseURL(cfg.Backend.BaseURL),
		benefits.WithHTTPClient(&http.Client{
			Timeout: time.Duration(cfg.Backend.TimeoutSecs) * time.Second,
		}),
		benefits.WithRetryPolicy(resilience.RetryPolicy{
			MaxAttempts:    cfg.Retry.MaxAttempts,
			InitialBackoff: time.Duration(cfg.Retry.InitialBackoffMS) * time.Millisecond,
			MaxBackoff:     time.Duration(cfg.Retry.MaxBackoffMS) * time.Millisecond,
		}),
		benefits.WithRateLimit(cfg.Backend.RateLimit, cfg.Backend.RateBurst),
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
