package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/goawx/internal/client/iocli"
	"github.com/iudanet/goawx/internal/config"
)

// offline помечает команды, которым не нужны ни конфигурация, ни локальная база
const offline = "offline"

type globalFlags struct {
	configFile string
	envFile    string
	url        string
	token      string
	username   string
	db         string
	logLevel   string
	logFormat  string
	timeout    time.Duration
}

// NewRootCommand builds the awxctl command tree around c.
func NewRootCommand(c *Cli) *cobra.Command {
	var flags globalFlags

	root := &cobra.Command{
		Use:   "awxctl",
		Short: "Stage and commit changes to AWX resources",
		Long: `awxctl reads AWX resources, stages local edits between invocations and
commits them back to the server in the order they were staged.

Configuration is read from ~/.config/goawx/config.yaml, a .env file,
AWX_* environment variables and flags (later sources win).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[offline] == "true" || c.ready {
				return nil
			}
			if err := c.configure(cmd, flags); err != nil {
				return err
			}
			return c.setup(cmd.Context())
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configFile, "config", "", "config file (default ~/.config/goawx/config.yaml)")
	pf.StringVar(&flags.envFile, "env-file", ".env", "dotenv file loaded before reading AWX_* variables")
	pf.StringVar(&flags.url, "url", "", "AWX base URL, e.g. https://awx.example.com")
	pf.StringVar(&flags.token, "token", "", "AWX OAuth2 token")
	pf.StringVar(&flags.username, "username", "", "AWX username")
	pf.StringVar(&flags.db, "db", "", "path to the local database")
	pf.DurationVar(&flags.timeout, "timeout", config.DefaultTimeout, "HTTP request timeout")
	pf.StringVar(&flags.logLevel, "log-level", config.DefaultLogLevel, "log level: debug, info, warn, error")
	pf.StringVar(&flags.logFormat, "log-format", config.DefaultLogFormat, "log format: text or json")

	root.AddCommand(
		c.newLoginCommand(),
		c.newLogoutCommand(),
		c.newWhoamiCommand(),
		c.newResourcesCommand(),
		c.newListCommand(),
		c.newGetCommand(),
		c.newCreateCommand(),
		c.newSetCommand(),
		c.newDeleteCommand(),
		c.newRevertCommand(),
		c.newStatusCommand(),
		c.newDiscardCommand(),
		c.newCommitCommand(),
		c.newVersionCommand(),
	)
	return root
}

// configure загружает конфигурацию и применяет явно заданные флаги
func (c *Cli) configure(cmd *cobra.Command, flags globalFlags) error {
	cfg, err := config.Load(config.Options{File: flags.configFile, EnvFile: flags.envFile})
	if err != nil {
		return err
	}

	changed := cmd.Flags().Changed
	if changed("url") {
		cfg.URL = flags.url
	}
	if changed("token") {
		cfg.Token = flags.token
	}
	if changed("username") {
		cfg.Username = flags.username
	}
	if changed("db") {
		cfg.DBPath = flags.db
	}
	if changed("timeout") {
		cfg.Timeout = flags.timeout
	}
	if changed("log-level") {
		cfg.LogLevel = flags.logLevel
	}
	if changed("log-format") {
		cfg.LogFormat = flags.logFormat
	}

	c.cfg = cfg
	return nil
}

// Execute runs awxctl with args and returns the process exit code.
func Execute(ctx context.Context, args []string) int {
	c := New(iocli.NewStdio())
	defer func() {
		if err := c.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close local database: %v\n", err)
		}
	}()

	root := NewRootCommand(c)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
