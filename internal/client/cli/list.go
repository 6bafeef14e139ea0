package cli

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/iudanet/goawx/internal/models"
)

func (c *Cli) newListCommand() *cobra.Command {
	var (
		opts    renderOptions
		filters []string
	)
	cmd := &cobra.Command{
		Use:   "list <resource>",
		Short: "List every record of a resource collection",
		Example: `  awxctl list projects
  awxctl list hosts --filter inventory=3 --output yaml
  awxctl list job_templates --query '$[*].name'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runList(cmd.Context(), args[0], filters, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.output, "output", "o", outputTable, "output format: table, json, yaml")
	cmd.Flags().StringVarP(&opts.query, "query", "q", "", "JSONPath applied to the list of records")
	cmd.Flags().StringArrayVar(&filters, "filter", nil, "server-side filter field=value (repeatable)")
	return cmd
}

func (c *Cli) runList(ctx context.Context, resourceName string, filters []string, opts renderOptions) error {
	if err := opts.validate(); err != nil {
		return err
	}
	schema, err := models.Lookup(resourceName)
	if err != nil {
		return err
	}
	query, err := parseFilters(filters)
	if err != nil {
		return err
	}
	if err := c.requireAuth(); err != nil {
		return err
	}

	records, err := c.resourceService.List(ctx, schema, query)
	if err != nil {
		return err
	}

	snapshots := make([]any, 0, len(records))
	for _, rec := range records {
		snapshots = append(snapshots, rec.Export())
	}

	return c.render(snapshots, opts, func(w *tabwriter.Writer) {
		_, _ = fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION")
		for _, rec := range records {
			id, _ := rec.ID()
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", id, displayName(rec), fieldText(rec, "description"))
		}
	})
}

func parseFilters(filters []string) (url.Values, error) {
	query := url.Values{}
	for _, f := range filters {
		k, v, ok := strings.Cut(f, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid filter %q, expected field=value", f)
		}
		query.Add(k, v)
	}
	return query, nil
}

// displayName - name, а для пользователей username
func displayName(rec *models.Record) string {
	if v, ok := rec.Get("name"); ok && v != nil {
		return formatValue(v)
	}
	if v, ok := rec.Get("username"); ok && v != nil {
		return formatValue(v)
	}
	return "-"
}

func fieldText(rec *models.Record, name string) string {
	v, ok := rec.Get(name)
	if !ok || v == nil || v == "" {
		return ""
	}
	return formatValue(v)
}
