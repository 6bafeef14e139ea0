package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/goawx/internal/client/writeback"
)

func (c *Cli) newCommitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "commit",
		Short: "Apply staged records to the server in staging order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCommit(cmd.Context())
		},
	}
}

func (c *Cli) runCommit(ctx context.Context) error {
	c.io.Println("=== Commit ===")

	if err := c.requireAuth(); err != nil {
		return err
	}

	pending, err := c.syncService.GetPendingCount(ctx)
	if err != nil {
		return err
	}
	if pending == 0 {
		c.io.Println("Nothing to commit.")
		return nil
	}
	c.io.Printf("Applying %d staged record(s)...\n", pending)

	result, err := c.syncService.Commit(ctx)
	if err != nil {
		var commitErr *writeback.CommitError
		if errors.As(err, &commitErr) && commitErr.Partial() {
			c.io.Printf("%d record(s) were committed before the failure and removed from staging.\n",
				commitErr.Committed)
		}
		c.io.Println("Remaining records stay staged; fix the problem and run 'awxctl commit' again.")
		return fmt.Errorf("commit failed: %w", err)
	}

	c.io.Println()
	c.io.Println("✓ Commit completed successfully!")
	c.io.Println()
	c.io.Printf("Created:   %d\n", result.Created)
	c.io.Printf("Updated:   %d\n", result.Updated)
	c.io.Printf("Deleted:   %d\n", result.Deleted)
	if result.Discarded > 0 {
		c.io.Printf("Discarded: %d\n", result.Discarded)
	}
	if result.Skipped > 0 {
		c.io.Printf("Unchanged: %d\n", result.Skipped)
	}
	return nil
}
