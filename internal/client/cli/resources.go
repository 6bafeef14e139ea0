package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/iudanet/goawx/internal/models"
)

func (c *Cli) newResourcesCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "resources [resource]",
		Short:       "List supported resource types or the fields of one type",
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{offline: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return c.runResources()
			}
			return c.runResourceFields(args[0])
		},
	}
}

func (c *Cli) runResources() error {
	w := tabwriter.NewWriter(c.io, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tSINGULAR\tENDPOINT\tWRITABLE FIELDS")
	for _, s := range models.Schemas() {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s/\t%d\n", s.Name, s.Singular, s.Endpoint, len(s.Writable()))
	}
	return w.Flush()
}

func (c *Cli) runResourceFields(name string) error {
	schema, err := models.Lookup(name)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(c.io, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "FIELD\tKIND\tFLAGS\tALLOWED\tHELP")
	for _, f := range schema.Fields() {
		var flags []string
		if f.ReadOnly {
			flags = append(flags, "read-only")
		}
		if f.Required {
			flags = append(flags, "required")
		}
		allowed := make([]string, 0, len(f.Allowed))
		for _, a := range f.Allowed {
			allowed = append(allowed, fmt.Sprintf("%q", fmt.Sprint(a)))
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			f.Name, f.Kind, joinNames(flags), strings.Join(allowed, " "), f.Help)
	}
	return w.Flush()
}
