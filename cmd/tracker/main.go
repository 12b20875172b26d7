// Package main provides the tracker binary: a local activity log that keeps
// its document in SQLite and syncs it with the tracker server.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"asura/tracker/internal/config"
	"asura/tracker/internal/repository"
	"asura/tracker/internal/repository/sqlite"
	"asura/tracker/internal/seed"
	"asura/tracker/internal/store"
	"asura/tracker/internal/syncer"
	"asura/tracker/pkg/logger"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const (
	Version = "0.1.0"
	appName = "tracker"
)

// errNoChange is returned when a mutation was rejected by the store, e.g. a
// negative amount or an index out of range.
var errNoChange = errors.New("no change applied")

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type localDB interface {
	repository.KeyValueRepository
	Close() error
}

type app struct {
	configDir string
	dbPath    string
	apiBase   string
	logLevel  string

	openDB func(path string) (localDB, error)

	cfg   config.Config
	log   *logrus.Logger
	db    localDB
	store *store.Store
}

func openSQLite(path string) (localDB, error) {
	return sqlite.Open(path)
}

func rootCmd() *cobra.Command {
	return newRootCmd(&app{openDB: openSQLite})
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   appName,
		Short: "Personal activity tracker",
		Long: `Tracker logs practice hours, fights, lifts, body weight and daily
minutes for a fixed set of activities plus your own custom ones.

The document lives in a local SQLite file. Sign in with "tracker login"
and use "tracker sync" to exchange it with the server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.open(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	cmd.PersistentFlags().StringVarP(&a.configDir, "config", "c", ".", "Directory holding config.yaml and .env")
	cmd.PersistentFlags().StringVar(&a.dbPath, "db", "", "Local database file (overrides client.db_path)")
	cmd.PersistentFlags().StringVar(&a.apiBase, "api", "", "Server base URL (overrides client.api_base)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
		},
	})

	cmd.AddCommand(showCmd(a), listCmd(a), levelCmd(a))
	cmd.AddCommand(activityCmds(a)...)
	cmd.AddCommand(catalogCmds(a)...)
	cmd.AddCommand(sessionCmds(a)...)
	return cmd
}

func (a *app) open(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.LoadConfig(a.configDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.dbPath != "" {
		cfg.Client.DBPath = a.dbPath
	}
	if a.apiBase != "" {
		cfg.Client.APIBase = a.apiBase
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	a.cfg = cfg
	a.log = logger.NewWithOutput(os.Stderr, cfg.Log.Level, "text")

	profile, err := seed.Load(cfg.Seed.ClientProfile)
	if err != nil {
		return fmt.Errorf("client seed profile: %w", err)
	}
	db, err := a.openDB(cfg.Client.DBPath)
	if err != nil {
		return fmt.Errorf("open local database: %w", err)
	}
	a.db = db
	a.log.WithField("path", cfg.Client.DBPath).Debug("local database opened")

	persist := store.NewPersistence(db, profile, a.log)
	a.store = store.Open(ctx, persist, store.WithLogger(a.log))
	return nil
}

func (a *app) close() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}

// client returns an API client carrying the stored session token, if any.
func (a *app) client(ctx context.Context) (*syncer.Client, error) {
	if a.cfg.Client.APIBase == "" {
		return nil, errors.New("no server configured: set client.api_base or pass --api")
	}
	c := syncer.NewClient(a.cfg.Client.APIBase, a.cfg.Client.Timeout)
	token, err := a.db.Get(ctx, store.TokenKey)
	if errors.Is(err, repository.ErrNotFound) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	return c.WithToken(string(token)), nil
}

// done reports the outcome of a store mutation.
func done(w io.Writer, applied bool) error {
	if !applied {
		return errNoChange
	}
	fmt.Fprintln(w, "ok")
	return nil
}
