package outfmt

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
)

// Formatter handles output formatting for commands.
type Formatter struct {
	ctx       context.Context
	out       io.Writer
	errOut    io.Writer
	tabWriter *tabwriter.Writer
}

// NewFormatter creates a new Formatter
func NewFormatter(ctx context.Context, out, errOut io.Writer) *Formatter {
	return &Formatter{
		ctx:       ctx,
		out:       out,
		errOut:    errOut,
		tabWriter: tabwriter.NewWriter(out, 0, 4, 2, ' ', 0),
	}
}

// Output writes data as JSON when the context asks for it. It reports whether it wrote.
func (f *Formatter) Output(data any) (bool, error) {
	if !IsJSON(f.ctx) {
		return false, nil
	}
	return true, WriteFiltered(f.ctx, f.out, data)
}

// StartTable writes table headers.
func (f *Formatter) StartTable(headers []string) {
	f.Row(headers...)
}

// Row writes a single row to the table.
func (f *Formatter) Row(columns ...string) {
	_, _ = fmt.Fprintln(f.tabWriter, strings.Join(columns, "\t"))
}

// EndTable flushes the table output.
func (f *Formatter) EndTable() error {
	return f.tabWriter.Flush()
}

// Empty writes a message to stderr indicating no results.
func (f *Formatter) Empty(message string) {
	_, _ = fmt.Fprintln(f.errOut, message)
}

// Table renders a list of records with the given columns. Missing fields print as "-".
func (f *Formatter) Table(records []any, columns []string) error {
	if len(records) == 0 {
		f.Empty("No results")
		return nil
	}
	headers := make([]string, len(columns))
	for i, c := range columns {
		headers[i] = strings.ToUpper(c)
	}
	f.StartTable(headers)
	for _, rec := range records {
		m, _ := rec.(map[string]any)
		row := make([]string, len(columns))
		for i, c := range columns {
			row[i] = Cell(m[c])
		}
		f.Row(row...)
	}
	return f.EndTable()
}

// KeyValues renders a record as sorted "key: value" lines, nested keys joined with dots.
func (f *Formatter) KeyValues(record map[string]any) error {
	lines := map[string]string{}
	flattenLines(lines, "", record)
	keys := make([]string, 0, len(lines))
	for k := range lines {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		_, _ = fmt.Fprintf(f.tabWriter, "%s:\t%s\n", k, lines[k])
	}
	return f.EndTable()
}

func flattenLines(lines map[string]string, prefix string, v any) {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			flattenLines(lines, key, child)
		}
	case []any:
		if len(t) == 0 {
			lines[prefix] = "[]"
		}
		for i, child := range t {
			flattenLines(lines, fmt.Sprintf("%s[%d]", prefix, i), child)
		}
	default:
		lines[prefix] = Cell(t)
	}
}

// Cell formats a scalar JSON value for a table cell.
func Cell(v any) string {
	switch t := v.(type) {
	case nil:
		return "-"
	case string:
		if t == "" {
			return "-"
		}
		return t
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	case bool:
		if t {
			return "yes"
		}
		return "no"
	case map[string]any, []any:
		return "…"
	default:
		return fmt.Sprintf("%v", t)
	}
}
