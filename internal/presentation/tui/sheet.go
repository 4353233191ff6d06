package tui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/tabula/internal/config"
	"github.com/aretw0/tabula/pkg/domain"
	"github.com/aretw0/tabula/pkg/grid"
	"github.com/aretw0/tabula/pkg/schema"
	"github.com/aretw0/tabula/pkg/view"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Sheet is a flattened, display-ready copy of a grid.
type Sheet struct {
	Fields  []string
	Headers []string
	Rows    [][]string
	Records []map[string]any
}

// SheetOf flattens the latest snapshot of t.
func SheetOf[R any](t *grid.Table[R]) Sheet {
	headers := t.Headers()
	s := Sheet{
		Fields:  t.Fields(),
		Headers: make([]string, len(headers)),
		Records: t.Records(),
	}
	for i, h := range headers {
		s.Headers[i] = headerText(h)
	}
	for _, cells := range t.Render() {
		row := make([]string, len(cells))
		for i, c := range cells {
			row[i] = c.PlainText()
		}
		s.Rows = append(s.Rows, row)
	}
	return s
}

// headerText flattens a header node. Grouped headers keep their title ahead
// of the sub-field labels.
func headerText(h view.Node) string {
	if h.Kind == view.KindGroup && h.Label != "" {
		return fmt.Sprintf("%s (%s)", h.Label, h.PlainText())
	}
	return h.PlainText()
}

// Render writes the sheet in the requested format. Markdown goes through
// render when it is not nil.
func Render(w io.Writer, s Sheet, format string, render func(string) (string, error)) error {
	switch format {
	case config.FormatJSON:
		return renderJSON(w, s.Records)
	case config.FormatMarkdown:
		md := Markdown(s)
		if render != nil {
			out, err := render(md)
			if err != nil {
				return fmt.Errorf("failed to render markdown: %w", err)
			}
			md = out
		}
		_, err := io.WriteString(w, md)
		return err
	default:
		renderTable(w, s)
		return nil
	}
}

func renderTable(w io.Writer, s Sheet) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := make(table.Row, 0, len(s.Headers)+1)
	header = append(header, "#")
	for _, h := range s.Headers {
		header = append(header, h)
	}
	t.AppendHeader(header)

	for i, cells := range s.Rows {
		row := make(table.Row, 0, len(cells)+1)
		row = append(row, i)
		for _, c := range cells {
			row = append(row, c)
		}
		t.AppendRow(row)
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "(%d rows)\n", len(s.Rows))
}

// Markdown renders the sheet as a markdown table.
func Markdown(s Sheet) string {
	var b strings.Builder
	b.WriteString("| # | " + strings.Join(s.Headers, " | ") + " |\n")

	seps := make([]string, len(s.Headers)+1)
	for i := range seps {
		seps[i] = "---"
	}
	b.WriteString("| " + strings.Join(seps, " | ") + " |\n")

	for i, cells := range s.Rows {
		escaped := make([]string, len(cells))
		for j, c := range cells {
			escaped[j] = strings.ReplaceAll(c, "|", `\|`)
		}
		fmt.Fprintf(&b, "| %d | %s |\n", i, strings.Join(escaped, " | "))
	}
	return b.String()
}

// RenderChanges writes a list of changed cells.
func RenderChanges(w io.Writer, changes []domain.CellChange, format string) error {
	if format == config.FormatJSON {
		if changes == nil {
			changes = []domain.CellChange{}
		}
		return renderJSON(w, changes)
	}
	if len(changes) == 0 {
		_, _ = fmt.Fprintln(w, "(no changes)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Row", "Field", "Old", "New"})
	for _, c := range changes {
		t.AppendRow(table.Row{c.Row, c.Field, FormatValue(c.Old), FormatValue(c.New)})
	}
	t.Render()
	return nil
}

// FormatValue renders a field value for display.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case float64:
		return schema.FormatNumber(x)
	default:
		return fmt.Sprintf("%v", x)
	}
}

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
