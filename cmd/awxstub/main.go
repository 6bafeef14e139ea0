// Command awxstub runs a small AWX-compatible API server backed by SQLite
// for local development and end-to-end tests of awxctl.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/goawx/internal/config"
	"github.com/iudanet/goawx/internal/logger"
	"github.com/iudanet/goawx/internal/server"
	"github.com/iudanet/goawx/internal/server/jwt"
	"github.com/iudanet/goawx/internal/server/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

type flags struct {
	envFile  string
	addr     string
	db       string
	logLevel string
	tokenTTL time.Duration
	version  bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCommand().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "awxstub",
		Short: "Local AWX-compatible API server",
		Long: `awxstub serves /api/v2/ping/, /api/v2/me/, /api/v2/tokens/ and CRUD for every
catalogued resource, storing records in SQLite.

Settings come from a .env file and AWXSTUB_* environment variables;
flags override both. AWXSTUB_JWT_SECRET and AWXSTUB_ADMIN_PASSWORD are required.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.version {
				printVersion(cmd)
				return nil
			}
			return run(cmd, f)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.envFile, "env-file", ".env", "dotenv file loaded before reading AWXSTUB_* variables")
	fl.StringVar(&f.addr, "addr", "", "listen address (default :8052)")
	fl.StringVar(&f.db, "db", "", "SQLite database path (default awxstub.db)")
	fl.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")
	fl.DurationVar(&f.tokenTTL, "token-ttl", 0, "lifetime of issued tokens (default 24h)")
	fl.BoolVar(&f.version, "version", false, "show version information")

	return cmd
}

func run(cmd *cobra.Command, f flags) error {
	ctx := cmd.Context()

	cfg, err := config.LoadServer(f.envFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("addr") {
		cfg.Addr = f.addr
	}
	if cmd.Flags().Changed("db") {
		cfg.DBPath = f.db
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if cmd.Flags().Changed("token-ttl") {
		cfg.TokenTTL = f.tokenTTL
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	store, err := sqlite.New(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("failed to close storage", "error", err)
		}
	}()
	log.Info("Storage ready", "path", cfg.DBPath)

	if err := server.EnsureAdmin(ctx, log, store, cfg.AdminUser, cfg.AdminPassword); err != nil {
		return err
	}

	issuer := jwt.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	return server.New(log, store, issuer, cfg.Addr, Version).Run(ctx)
}

func printVersion(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "AWX stub server\n")
	fmt.Fprintf(out, "Version:    %s\n", Version)
	fmt.Fprintf(out, "Build Date: %s\n", BuildDate)
	fmt.Fprintf(out, "Git Commit: %s\n", GitCommit)
}
