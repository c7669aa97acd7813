// Command pseudoword generates pseudowords from a seed vocabulary using a
// character-level Markov model, and serves the same over an HTTP API.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/CTAG07/Pseudoword/pkg/seedstore"
	"github.com/alecthomas/kong"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// Globals are the flags shared by every command.
type Globals struct {
	Config   string `help:"Path to the JSON config file; created with defaults if missing." default:"./config.json" type:"path"`
	LogLevel string `name:"log-level" help:"Log level (debug, info, warn, error); overrides the config file."`
	DB       string `name:"db" help:"SQLite data source for stored seeds; overrides the config file."`
}

// CLI defines the command-line interface for pseudoword.
type CLI struct {
	Globals

	Generate GenerateCmd `cmd:"" help:"Generate pseudowords from a seed"`
	Density  DensityCmd  `cmd:"" help:"Print density and statistics of the model built from a seed"`
	Seed     SeedGroup   `cmd:"" help:"Manage stored seed vocabularies"`
	Serve    ServeCmd    `cmd:"" help:"Start the HTTP API server"`
	Version  VersionCmd  `cmd:"" help:"Print version information"`
}

// App carries the state shared by commands once flags and config are loaded.
type App struct {
	config *Config
	logger *slog.Logger
	out    io.Writer
}

// newApp loads the config file and builds the logger, applying global flag
// overrides.
func newApp(g *Globals, out io.Writer) (*App, error) {
	config, err := LoadConfig(g.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if g.LogLevel != "" {
		config.Server.LogLevel = g.LogLevel
	}
	if g.DB != "" {
		config.Server.DatabasePath = g.DB
	}

	// Logs go to stderr so generated words can be piped cleanly.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLogLevel(config.Server.LogLevel)}))
	return &App{config: config, logger: logger, out: out}, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// openStore opens the seed database, making sure its schema exists. The
// returned function releases both the store and the database.
func (a *App) openStore() (*seedstore.Store, func(), error) {
	dbFile, _, _ := strings.Cut(a.config.Server.DatabasePath, "?")
	if dir := filepath.Dir(dbFile); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := initDB(a.config.Server.DatabasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	store, err := openStoreDB(db)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	store.SetLogger(a.logger)
	return store, func() {
		store.Close()
		if err := db.Close(); err != nil {
			a.logger.Error("Failed to close database", "error", err)
		}
	}, nil
}

func openStoreDB(db *sql.DB) (*seedstore.Store, error) {
	if err := seedstore.SetupSchema(db); err != nil {
		return nil, fmt.Errorf("failed to setup seed schema: %w", err)
	}
	store, err := seedstore.NewStore(db)
	if err != nil {
		return nil, fmt.Errorf("error creating seed store: %w", err)
	}
	return store, nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pseudoword"),
		kong.Description("Generate pseudowords from a seed vocabulary with character-level Markov chains."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	app, err := newApp(&cli.Globals, os.Stdout)
	ctx.FatalIfErrorf(err)

	runCtx, cancel := signalContext(context.Background())
	defer cancel()

	ctx.BindTo(runCtx, (*context.Context)(nil))
	ctx.FatalIfErrorf(ctx.Run(app))
}
