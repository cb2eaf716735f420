package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/example/recipe-assistant/internal/assistant"
	"github.com/example/recipe-assistant/internal/config"
	"github.com/example/recipe-assistant/internal/logging"
	"github.com/example/recipe-assistant/internal/providers/llm"
)

// app holds what every command needs, built once before the command runs.
type app struct {
	cfg      config.Config
	selector *llm.Selector
	clients  map[llm.ProviderID]llm.Client
	resolver *assistant.Resolver
}

var (
	deps         app
	providerFlag string
)

var rootCmd = &cobra.Command{
	Use:          "recipe-assistant",
	Short:        "Recipe assistant - manage recipes and ask an LLM for cooking advice.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if providerFlag != "" {
			cfg.APIType = providerFlag
		}
		logging.Setup(os.Stderr, cfg.LogLevel, cfg.LogFormat)

		sel := llm.NewSelector(cfg)
		clients := llm.NewClients(cmd.Context(), cfg, sel)
		deps = app{
			cfg:      cfg,
			selector: sel,
			clients:  clients,
			resolver: assistant.NewResolver(sel, clients, nil, cfg.RequestTimeout),
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		llm.CloseClients(deps.clients)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&providerFlag, "provider", "", "provider to use (gemini, huggingface, deepinfra); overrides API_TYPE")
	rootCmd.AddCommand(serveCmd, probeCmd, askCmd, chatCmd)
	// Running the binary with no subcommand serves the API.
	rootCmd.RunE = serveCmd.RunE
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
