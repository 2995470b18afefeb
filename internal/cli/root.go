// Package cli provides the command-line interface of the procurement API.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"licitaciones/backend/internal/config"

	"github.com/spf13/cobra"
)

// RootOptions holds state shared by every command once flags are parsed.
type RootOptions struct {
	ConfigFile string

	Config *config.Config
	Logger *slog.Logger
}

// NewRootCommand creates the root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "licitaciones",
		Short: "Read-only API over the public procurement database",
		Long: `licitaciones serves a filtered, paginated, read-only JSON API over the
adjudicaciones, criterios_adjudicacion, modificados and
resultados_licitaciones tables, and browses it from the terminal.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(opts.ConfigFile, cmd.Flags())
			if err != nil {
				return err
			}
			logger, err := newLogger(cmd.ErrOrStderr(), cfg.Log)
			if err != nil {
				return err
			}
			opts.Config = cfg
			opts.Logger = logger
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "config file (default: ./"+config.ConfigFileName+")")
	cmd.PersistentFlags().String("log-level", config.DefaultLogLevel, "log level (debug|info|warn|error)")
	cmd.PersistentFlags().Bool("log-json", false, "log as JSON instead of text")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewInitDBCommand(opts))
	cmd.AddCommand(NewTablesCommand(opts))
	cmd.AddCommand(NewBrowseCommand(opts))
	cmd.AddCommand(NewModelResultsCommand(opts))

	return cmd
}

// Execute runs the root command.
func Execute() error {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func newLogger(w io.Writer, cfg config.LogConfig) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, fmt.Errorf("invalid log.level %q: %w", cfg.Level, err)
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, handlerOpts)), nil
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts)), nil
}

// addDatabaseFlags registers the storage flags shared by the commands that
// open the database directly.
func addDatabaseFlags(cmd *cobra.Command) {
	cmd.Flags().String("driver", config.DefaultDriver, "database driver (sqlite|postgres)")
	cmd.Flags().String("db", config.DefaultDatabasePath, "path to the SQLite database file")
	cmd.Flags().String("dsn", "", "PostgreSQL connection string")
}

// addClientFlags registers the flags of the commands that talk to a running
// server.
func addClientFlags(cmd *cobra.Command) {
	cmd.Flags().String("server", config.DefaultBaseURL, "base URL of the API server")
	cmd.Flags().Duration("timeout", config.DefaultTimeout, "per-request timeout")
}
