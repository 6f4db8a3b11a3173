package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/rebeliceyang/filtergrid/internal/app"
	"github.com/rebeliceyang/filtergrid/internal/config"
	"github.com/rebeliceyang/filtergrid/internal/logging"
	"github.com/rebeliceyang/filtergrid/internal/source"
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "filtergrid [--source demo|csv|sqlite|postgres|cassandra] [OPTIONS]",
	Short: "Terminal data grid with per-column filters",
	Long: `filtergrid shows a table with a filter header above it. Every column
gets a wildcard text filter or a tri-state check filter. Edits are applied
after a short pause in typing.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}
		return run(cfg)
	},
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVar(&cfgFile, "config", "", "config file (default searches $XDG_CONFIG_HOME/filtergrid/config.yaml)")

	flags.String("theme", "default", "color theme (default, catppuccin)")
	flags.Bool("mouse", true, "enable mouse support")
	flags.Int("debounce", 500, "filter debounce delay in milliseconds")
	flags.IntSlice("check-columns", nil, "column indexes shown as tri-state check filters")

	flags.String("source", "demo", "data source: demo, csv, sqlite, postgres, cassandra")
	flags.String("path", "", "file path for csv and sqlite sources")
	flags.String("dsn", "", "postgres connection string")
	flags.String("query", "", "query to run against sql and cql sources")
	flags.String("table", "", "table to read when no query is given")
	flags.StringSlice("hosts", []string{"127.0.0.1"}, "cassandra hosts")
	flags.String("keyspace", "", "cassandra keyspace")
	flags.Int("limit", 100000, "row limit for table reads")
	flags.Int("rows", 250000, "rows in the demo table")
	flags.Int("columns", 4, "columns in the demo table")

	flags.String("export-dir", ".", "directory for exported rows")
	flags.String("export-format", "csv", "export format: csv, json, yaml")

	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-file", "", "write logs to this file")
}

func run(cfg *config.Config) error {
	logger, err := logging.NewFileLogger(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("unable to create logger: %w", err)
	}
	defer logger.Sync()

	configDir, _ := config.GetConfigPath()
	logger.Info("starting filtergrid",
		"source", cfg.Data.Source,
		"debounce_ms", cfg.Filter.DebounceMs,
		"config_dir", configDir)

	src, err := source.New(cfg.Data, logger)
	if err != nil {
		return err
	}

	zone.NewGlobal()

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.MouseEnabled {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	p := tea.NewProgram(app.New(cfg, src, logger), opts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
