package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kubev2v/node-inspector/internal/config"
	"github.com/kubev2v/node-inspector/internal/store"
	"github.com/kubev2v/node-inspector/pkg/bridge"
	srvErrors "github.com/kubev2v/node-inspector/pkg/errors"
)

// app carries the state shared by every sub-command.
type app struct {
	v          *viper.Viper
	configFile string
	cfg        *config.Configuration
	logger     *zap.Logger
}

func NewRootCommand() *cobra.Command {
	a := &app{v: config.NewViper()}
	defaults := config.NewConfigurationWithDefaults()

	rootCmd := &cobra.Command{
		Use:   "node-inspector",
		Short: "Inspect a ledger node's database and management endpoints",
		Long: `node-inspector reads the tables of a ledger node's database, answers vault
lookups over them, dumps snapshots, and polls the node's management bridge.

Supported database urls:
  jdbc:duckdb:/path/to/node.db
  jdbc:postgresql://host:5432/node
  jdbc:h2:tcp://host:5435/node   (H2 started with its PostgreSQL server)`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "Path to a configuration file")
	flags.String("log-level", defaults.LogLevel, "Log level (debug, info, warn, error)")
	flags.String("log-format", defaults.LogFormat, "Log format (console, json)")
	flags.String("url", defaults.Database.URL, "JDBC url of the node database")
	flags.String("username", defaults.Database.Username, "Database user")
	flags.String("password", defaults.Database.Password, "Database password")
	flags.String("driver", defaults.Database.Driver, "database/sql driver (duckdb, pgx, postgres); derived from the url when empty")
	flags.String("node-name", defaults.Snapshot.NodeName, "Node name used in report file names")
	flags.String("proxy-url", defaults.Bridge.ProxyURL, "Management bridge proxy url")
	flags.String("agent-url", defaults.Bridge.AgentURL, "Management agent url relayed by the proxy")

	a.bind(flags.Lookup("log-level"), "log-level")
	a.bind(flags.Lookup("log-format"), "log-format")
	a.bind(flags.Lookup("url"), "database.url")
	a.bind(flags.Lookup("username"), "database.username")
	a.bind(flags.Lookup("password"), "database.password")
	a.bind(flags.Lookup("driver"), "database.driver")
	a.bind(flags.Lookup("node-name"), "snapshot.node-name")
	a.bind(flags.Lookup("proxy-url"), "bridge.proxy-url")
	a.bind(flags.Lookup("agent-url"), "bridge.agent-url")

	rootCmd.AddCommand(
		newTablesCommand(a),
		newTableCommand(a),
		newQueryCommand(a),
		newSnapshotCommand(a),
		newBridgeCommand(a),
		newKeystoreCommand(a),
		newPlotCommand(a),
		newServeCommand(a),
	)

	return rootCmd
}

func (a *app) init() error {
	cfg, err := config.Load(a.v, a.configFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := newLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(logger)
	a.logger = logger

	zap.S().Named("main").Debugw("configuration loaded", "config", cfg.DebugMap())
	return nil
}

func newLogger(level, format string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	zcfg := zap.NewDevelopmentConfig()
	if format == "json" {
		zcfg = zap.NewProductionConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	zcfg.OutputPaths = []string{"stderr"}
	return zcfg.Build()
}

// openStore opens the configured node database. The caller closes it.
func (a *app) openStore(ctx context.Context) (*store.Store, error) {
	db := a.cfg.Database
	if db.URL == "" {
		return nil, srvErrors.NewConfigurationError("database.url", "a database url is required (--url)")
	}
	if db.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, db.ConnectTimeout)
		defer cancel()
	}
	return store.Open(ctx, db.URL, db.Username, db.Password, db.Driver)
}

func (a *app) bridgeClient() *bridge.Client {
	b := a.cfg.Bridge
	return bridge.NewClient(b.AgentURL,
		bridge.WithProxyURL(b.ProxyURL),
		bridge.WithTimeout(b.Timeout),
		bridge.WithToken(b.Token),
	)
}
