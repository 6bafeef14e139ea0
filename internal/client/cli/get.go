package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iudanet/goawx/internal/models"
)

func (c *Cli) newGetCommand() *cobra.Command {
	var (
		opts   renderOptions
		staged bool
	)
	cmd := &cobra.Command{
		Use:   "get <resource> <id>",
		Short: "Show one record",
		Long: `Show one record from the server. With --staged (or an id starting with "~")
the locally staged version is shown instead, including unsaved edits.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGet(cmd.Context(), args[0], args[1], staged, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.output, "output", "o", outputTable, "output format: table, json, yaml")
	cmd.Flags().StringVarP(&opts.query, "query", "q", "", "JSONPath applied to the record")
	cmd.Flags().BoolVar(&staged, "staged", false, "show the staged version of the record")
	return cmd
}

func (c *Cli) runGet(ctx context.Context, resourceName, id string, staged bool, opts renderOptions) error {
	if err := opts.validate(); err != nil {
		return err
	}
	schema, err := models.Lookup(resourceName)
	if err != nil {
		return err
	}

	var rec *models.Record
	if staged || strings.HasPrefix(id, "~") {
		rec, err = c.syncService.Get(ctx, stagingKey(schema, id))
	} else {
		if err := c.requireAuth(); err != nil {
			return err
		}
		rec, err = c.resourceService.Get(ctx, schema, id)
	}
	if err != nil {
		return err
	}

	return c.render(rec.Export(), opts, fieldsTable(rec.Export()))
}

func stagingKey(schema *models.Schema, id string) string {
	return schema.Name + "/" + id
}
