package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/HendryAvila/cadence/internal/config"
	"github.com/HendryAvila/cadence/internal/server"
)

// globals holds the persistent flags and the loaded configuration.
type globals struct {
	configPath string
	dataDir    string
	logLevel   string

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	g := &globals{}

	root := &cobra.Command{
		Use:   "cadence",
		Short: "Fuzzy-logic music recommendations",
		Long: `cadence recommends a music genre and songs from four answers:
age, mood, the hour you are listening and your preferred tempo.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.load(cmd)
		},
	}

	root.PersistentFlags().StringVar(&g.configPath, "config", "", "config file (default ~/.cadence/cadence.yaml)")
	root.PersistentFlags().StringVar(&g.dataDir, "data-dir", "", "override data_dir from the config file")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "override log_level (debug, info, warn, error)")

	root.AddCommand(
		newServeCmd(g),
		newRecommendCmd(g),
		newAskCmd(g),
		newBatchCmd(g),
		newHistoryCmd(g),
		newVersionCmd(),
	)
	return root
}

// load reads the config file, applies flag overrides and builds the
// logger. Logs go to stderr: stdout belongs to MCP and command output.
func (g *globals) load(cmd *cobra.Command) error {
	cfg, err := config.NewFileStore(g.configPath).Load()
	if err != nil {
		return err
	}
	if g.dataDir != "" {
		cfg.DataDir = g.dataDir
	}
	if g.logLevel != "" {
		cfg.LogLevel = g.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	g.cfg = cfg

	g.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	return nil
}

// runtime opens the shared dependencies for a command.
func (g *globals) runtime() (*server.Runtime, error) {
	return server.Open(g.cfg, g.logger)
}
