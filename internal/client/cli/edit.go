package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iudanet/goawx/internal/client/storage"
	"github.com/iudanet/goawx/internal/client/writeback"
	"github.com/iudanet/goawx/internal/models"
)

func (c *Cli) newCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "create <resource> field=value...",
		Short:   "Stage a new record",
		Example: `  awxctl create project name=demo scm_type=git scm_url=https://github.com/ansible/ansible-tower-samples organization=1`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCreate(cmd.Context(), args[0], args[1:])
		},
	}
}

func (c *Cli) runCreate(ctx context.Context, resourceName string, assignments []string) error {
	schema, err := models.Lookup(resourceName)
	if err != nil {
		return err
	}

	rec := models.NewRecord(schema, nil)
	if err := applyAssignments(rec, assignments); err != nil {
		return err
	}

	key, err := c.syncService.Stage(ctx, rec)
	if err != nil {
		return err
	}
	c.io.Printf("✓ Staged new %s as %s\n", schema.Singular, key)
	return nil
}

func (c *Cli) newSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "set <resource> <id> field=value...",
		Short:   "Stage changes to an existing or staged record",
		Example: `  awxctl set project 7 scm_branch=main description="nightly build"`,
		Args:    cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSet(cmd.Context(), args[0], args[1], args[2:])
		},
	}
}

func (c *Cli) runSet(ctx context.Context, resourceName, id string, assignments []string) error {
	rec, key, err := c.loadForEdit(ctx, resourceName, id)
	if err != nil {
		return err
	}
	if err := applyAssignments(rec, assignments); err != nil {
		return err
	}

	key, err = c.save(ctx, key, rec)
	if err != nil {
		return err
	}
	c.io.Printf("✓ Staged %s (changed: %s)\n", key, joinNames(rec.Changed()))
	return nil
}

func (c *Cli) newDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <resource> <id>",
		Short: "Stage deletion of a record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDelete(cmd.Context(), args[0], args[1])
		},
	}
}

func (c *Cli) runDelete(ctx context.Context, resourceName, id string) error {
	rec, key, err := c.loadForEdit(ctx, resourceName, id)
	if err != nil {
		return err
	}
	rec.MarkDeleted()

	key, err = c.save(ctx, key, rec)
	if err != nil {
		return err
	}
	if writeback.Route(rec) == writeback.ActionDiscard {
		c.io.Printf("✓ Draft %s will be discarded on commit\n", key)
		return nil
	}
	c.io.Printf("✓ Staged deletion of %s\n", key)
	return nil
}

func (c *Cli) newRevertCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "revert <key> <field>",
		Short: "Undo the staged edit of one field",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRevert(cmd.Context(), args[0], args[1])
		},
	}
}

func (c *Cli) runRevert(ctx context.Context, key, field string) error {
	rec, err := c.syncService.Get(ctx, key)
	if err != nil {
		return err
	}
	if !slices.Contains(rec.Changed(), field) {
		return fmt.Errorf("field %q of %s has no staged change", field, key)
	}
	rec.Revert(field)

	// Чистая существующая запись больше ничего не меняет на сервере
	if writeback.Route(rec) == writeback.ActionSkip {
		if err := c.syncService.Unstage(ctx, key); err != nil {
			return err
		}
		c.io.Printf("✓ Reverted %s of %s; no changes left, record unstaged\n", field, key)
		return nil
	}

	if err := c.syncService.Restage(ctx, key, rec); err != nil {
		return err
	}
	c.io.Printf("✓ Reverted %s of %s\n", field, key)
	return nil
}

// loadForEdit возвращает staged версию записи или, если ее нет, свежую с сервера.
// Для записи с сервера key пустой.
func (c *Cli) loadForEdit(ctx context.Context, resourceName, id string) (*models.Record, string, error) {
	schema, err := models.Lookup(resourceName)
	if err != nil {
		return nil, "", err
	}

	key := stagingKey(schema, id)
	rec, err := c.syncService.Get(ctx, key)
	if err == nil {
		return rec, key, nil
	}
	if !errors.Is(err, storage.ErrStagedNotFound) {
		return nil, "", err
	}
	if strings.HasPrefix(id, "~") {
		return nil, "", fmt.Errorf("no staged draft %s", key)
	}

	if err := c.requireAuth(); err != nil {
		return nil, "", err
	}
	rec, err = c.resourceService.Get(ctx, schema, id)
	if err != nil {
		return nil, "", err
	}
	return rec, "", nil
}

func (c *Cli) save(ctx context.Context, key string, rec *models.Record) (string, error) {
	if key == "" {
		return c.syncService.Stage(ctx, rec)
	}
	return key, c.syncService.Restage(ctx, key, rec)
}
