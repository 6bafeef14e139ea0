package cli

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/ohler55/ojg/jp"
	"gopkg.in/yaml.v3"
)

const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

type renderOptions struct {
	output string
	query  string // JSONPath над снимками записей
}

func (o renderOptions) validate() error {
	switch o.output {
	case outputTable, outputJSON, outputYAML:
	default:
		return fmt.Errorf("unknown output format %q (want table, json or yaml)", o.output)
	}
	if o.query != "" {
		if _, err := jp.ParseString(o.query); err != nil {
			return fmt.Errorf("invalid query %q: %w", o.query, err)
		}
	}
	return nil
}

// render выводит data в выбранном формате. table вызывается только для
// табличного вывода без query.
func (c *Cli) render(data any, opts renderOptions, table func(w *tabwriter.Writer)) error {
	if err := opts.validate(); err != nil {
		return err
	}

	if opts.query != "" {
		expr, _ := jp.ParseString(opts.query)
		results := expr.Get(data)
		if opts.output == outputTable {
			for _, r := range results {
				c.io.Println(formatValue(r))
			}
			return nil
		}
		data = results
	}

	switch opts.output {
	case outputJSON:
		b, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		_, err = c.io.Write(append(b, '\n'))
		return err
	case outputYAML:
		b, err := yaml.Marshal(data)
		if err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		_, err = c.io.Write(b)
		return err
	}

	w := tabwriter.NewWriter(c.io, 0, 0, 2, ' ', 0)
	table(w)
	return w.Flush()
}

// formatValue печатает значение поля в одну строку
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case float64:
		if val == math.Trunc(val) && math.Abs(val) < 1e15 {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case map[string]any, []any:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	}
	return fmt.Sprint(v)
}

// fieldsTable печатает поля одной записи по алфавиту
func fieldsTable(fields map[string]any) func(w *tabwriter.Writer) {
	return func(w *tabwriter.Writer) {
		names := make([]string, 0, len(fields))
		for name := range fields {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			_, _ = fmt.Fprintf(w, "%s\t%s\n", name, formatValue(fields[name]))
		}
	}
}

func joinNames(names []string) string {
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ", ")
}
