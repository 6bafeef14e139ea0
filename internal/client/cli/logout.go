package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/goawx/internal/client/auth"
)

func (c *Cli) newLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the stored token and forget the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLogout(cmd.Context())
		},
	}
}

func (c *Cli) runLogout(ctx context.Context) error {
	if err := c.authService.Logout(ctx); err != nil {
		if errors.Is(err, auth.ErrNotLoggedIn) {
			c.io.Println("Not logged in.")
			return nil
		}
		return err
	}
	c.io.Println("✓ Logged out")
	return nil
}

func (c *Cli) newWhoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the user the current credentials belong to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWhoami(cmd.Context())
		},
	}
}

func (c *Cli) runWhoami(ctx context.Context) error {
	if err := c.requireAuth(); err != nil {
		return err
	}
	me, err := c.authService.Verify(ctx)
	if err != nil {
		return err
	}

	c.io.Printf("Server:    %s\n", c.cfg.URL)
	c.io.Printf("Username:  %v\n", me["username"])
	c.io.Printf("User ID:   %s\n", formatValue(me["id"]))
	if su, ok := me["is_superuser"].(bool); ok {
		c.io.Printf("Superuser: %s\n", fmt.Sprint(su))
	}
	return nil
}
