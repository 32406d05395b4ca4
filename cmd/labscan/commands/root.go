package commands

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/agenthands/labscan/internal/config"
	"github.com/agenthands/labscan/internal/core"
	"github.com/agenthands/labscan/internal/handoff"
	"github.com/agenthands/labscan/internal/llm"
	"github.com/agenthands/labscan/internal/logger"
)

var (
	configPath string
	verbose    bool
)

// newClient is swapped out in tests.
var newClient = func(ctx context.Context, cfg config.LLMConfig) (llm.Client, error) {
	return llm.NewClient(ctx, cfg)
}

// RootCmd is the labscan command line.
var RootCmd = &cobra.Command{
	Use:   "labscan",
	Short: "Identify lab equipment from photos and ask questions about it",
	Long: `labscan identifies laboratory equipment in a photo using a hosted
generative model, lists the built-in equipment catalog, and answers
questions about a named piece of equipment.

Examples:
  labscan catalog --category Chemistry
  labscan identify ./beaker.jpg
  labscan ask "Bunsen Burner" "How do I light it safely?"
  labscan ask "Microscope" --interactive`,
	SilenceUsage: true,
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config TOML (default: $CONFIG_PATH or config/config.toml)")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log to stderr")

	RootCmd.AddCommand(catalogCmd)
	RootCmd.AddCommand(identifyCmd)
	RootCmd.AddCommand(askCmd)
	RootCmd.AddCommand(sayCmd)
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		if err := os.Setenv("CONFIG_PATH", configPath); err != nil {
			return nil, err
		}
	}
	return config.Resolve()
}

func newLogger(cfg *config.Config) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	cfg.Logging.Format = "console"
	l, err := logger.New(cfg.Logging)
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// newAssistant builds an assistant with an in-process hand-off store; the
// CLI never shares sessions with a server.
func newAssistant(ctx context.Context) (*core.Assistant, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	client, err := newClient(ctx, cfg.LLM)
	if err != nil {
		return nil, nil, err
	}
	store := handoff.NewMemoryStore(cfg.Handoff.TTL.Duration)
	return core.NewAssistant(client, store, cfg, newLogger(cfg)), cfg, nil
}
