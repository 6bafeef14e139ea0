package cli

import (
	"context"

	"github.com/spf13/cobra"
)

func (c *Cli) newDiscardCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "discard [key]",
		Short: "Drop one staged record, or every staged record without a key",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return c.runDiscard(cmd.Context(), args[0])
			}
			return c.runDiscardAll(cmd.Context())
		},
	}
}

func (c *Cli) runDiscard(ctx context.Context, key string) error {
	if err := c.syncService.Unstage(ctx, key); err != nil {
		return err
	}
	c.io.Printf("✓ Discarded %s\n", key)
	return nil
}

func (c *Cli) runDiscardAll(ctx context.Context) error {
	entries, err := c.syncService.Staged(ctx)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err := c.syncService.Unstage(ctx, e.Key); err != nil {
			return err
		}
	}
	c.io.Printf("✓ Discarded %d staged record(s)\n", len(entries))
	return nil
}
