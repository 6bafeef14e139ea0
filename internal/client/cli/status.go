package cli

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/goawx/internal/client/auth"
	"github.com/iudanet/goawx/internal/client/writeback"
)

func (c *Cli) newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the session and the staged changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runStatus(cmd.Context())
		},
	}
}

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Session ===")

	session, err := c.authService.Session(ctx)
	switch {
	case errors.Is(err, auth.ErrNotLoggedIn):
		c.io.Println("Status: Not logged in")
		if c.authenticated {
			c.io.Println("Using credentials from configuration.")
		} else {
			c.io.Println("Run 'awxctl login' to authenticate.")
		}
	case err != nil:
		return fmt.Errorf("failed to get session: %w", err)
	default:
		c.io.Println("Status: Logged in")
		c.io.Printf("Server: %s\n", session.URL)
		c.io.Printf("Username: %s\n", session.Username)
		if session.ExpiresAt > 0 {
			expiresAt := time.Unix(session.ExpiresAt, 0)
			c.io.Printf("Token expires: %s (in %s)\n", expiresAt.Format(time.RFC3339),
				time.Until(expiresAt).Round(time.Second))
		} else {
			c.io.Println("Token expires: never")
		}
	}

	c.io.Println()
	c.io.Println("=== Staged changes ===")

	entries, err := c.syncService.Staged(ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		c.io.Println("✓ Nothing staged")
	} else {
		w := tabwriter.NewWriter(c.io, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "KEY\tACTION\tCHANGED FIELDS")
		for _, e := range entries {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", e.Key, writeback.Route(e.Record), joinNames(e.Record.Changed()))
		}
		if err := w.Flush(); err != nil {
			return err
		}
		c.io.Println()
		c.io.Printf("⚠️  %d record(s) waiting to be committed\n", len(entries))
		c.io.Println("Run 'awxctl commit' to apply them.")
	}

	last, err := c.syncService.LastCommit(ctx)
	if err != nil {
		// Не прерываем выполнение, просто предупреждаем
		c.io.Printf("Warning: failed to get last commit time: %v\n", err)
		return nil
	}
	if !last.IsZero() {
		c.io.Printf("Last commit: %s\n", last.Format(time.RFC3339))
	}
	return nil
}
