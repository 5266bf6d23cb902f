package output

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

// TableFormatter renders results as an ASCII table.
type TableFormatter struct{}

func (f *TableFormatter) Format(value any) (string, error) {
	sections, err := sectionsFor(value)
	if err != nil {
		return "", err
	}

	rendered := make([]string, 0, len(sections))
	for _, s := range sections {
		t := table.NewWriter()
		t.SetStyle(table.StyleRounded)
		if s.Title != "" {
			t.SetTitle(s.Title)
		}
		t.AppendHeader(toRow(s.Header))
		for _, row := range s.Rows {
			t.AppendRow(toRow(row))
		}
		if s.Footer != "" && len(s.Header) > 0 {
			footer := make(table.Row, len(s.Header))
			footer[len(footer)-1] = s.Footer
			t.AppendFooter(footer)
		}
		rendered = append(rendered, t.Render())
	}
	return strings.Join(rendered, "\n\n"), nil
}

func toRow(values []string) table.Row {
	row := make(table.Row, len(values))
	for i, v := range values {
		row[i] = v
	}
	return row
}
