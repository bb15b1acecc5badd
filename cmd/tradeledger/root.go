package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/commodity-ledger-go/internal/config"
)

const (
	flagConfig           = "config"
	flagEngine           = "engine"
	flagLevelDBPath      = "leveldb.path"
	flagPostgresDSN      = "postgres.dsn"
	flagPostgresReplica  = "postgres.replica_dsn"
	flagPostgresAdapter  = "postgres.adapter"
	flagPostgresTable    = "postgres.table_name"
	flagLogLevel         = "log.level"
	flagLogFormat        = "log.format"
	flagTelemetryEnabled = "telemetry.enabled"
	flagTelemetryService = "telemetry.service_name"
)

// app carries what a subcommand needs once configuration is loaded.
type app struct {
	configFile string
	cfg        config.Config
	logger     *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "tradeledger",
		Short: "Run commodity trade transactions against a versioned ledger.",
		Long: `tradeledger runs the trade contract (createCommodity, plusTen, trade, ...)
against an in-memory, LevelDB or PostgreSQL ledger.

Configuration is read from tradeledger.yaml, TRADELEDGER_* environment variables and flags.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	cmd.Version = version

	defaults := config.Defaults()
	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configFile, flagConfig, "", "config file (default is <user config dir>/tradeledger/tradeledger.yaml or ./tradeledger.yaml)")
	flags.String(flagEngine, defaults[flagEngine].(string), `ledger engine ("memory", "leveldb", "postgres")`)
	flags.String(flagLevelDBPath, defaults[flagLevelDBPath].(string), "LevelDB directory")
	flags.String(flagPostgresDSN, defaults[flagPostgresDSN].(string), "PostgreSQL connection string")
	flags.String(flagPostgresReplica, "", "PostgreSQL read replica connection string (pgx adapter only)")
	flags.String(flagPostgresAdapter, defaults[flagPostgresAdapter].(string), `PostgreSQL driver adapter ("pgx", "sql", "sqlx")`)
	flags.String(flagPostgresTable, defaults[flagPostgresTable].(string), "PostgreSQL ledger table")
	flags.String(flagLogLevel, defaults[flagLogLevel].(string), `log level ("debug", "info", "warn", "error")`)
	flags.String(flagLogFormat, defaults[flagLogFormat].(string), `log format ("text", "json")`)
	flags.Bool(flagTelemetryEnabled, false, "report logs, metrics and traces through OpenTelemetry")
	flags.String(flagTelemetryService, defaults[flagTelemetryService].(string), "OpenTelemetry instrumentation name")

	cmd.AddCommand(
		newInvokeCmd(a),
		newDemoCmd(a),
		newOperationsCmd(),
		newSchemaCmd(a),
		newConfigCmd(a),
	)

	return cmd
}

func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig[config.Config](cmd, config.Defaults(), a.configFile)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = newLogger(cmd.ErrOrStderr(), cfg.Log)

	return nil
}

func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}

	return l
}
