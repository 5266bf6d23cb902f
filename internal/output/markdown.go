package output

import (
	"fmt"
	"strings"
)

// MarkdownFormatter renders results as markdown tables.
type MarkdownFormatter struct{}

func (f *MarkdownFormatter) Format(value any) (string, error) {
	sections, err := sectionsFor(value)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for i, s := range sections {
		if i > 0 {
			sb.WriteString("\n")
		}
		if s.Title != "" {
			sb.WriteString(fmt.Sprintf("## %s\n\n", escapeMarkdownCell(s.Title)))
		}
		writeMarkdownRow(&sb, s.Header)

		sep := make([]string, len(s.Header))
		for j := range sep {
			sep[j] = "---"
		}
		writeMarkdownRow(&sb, sep)

		for _, row := range s.Rows {
			writeMarkdownRow(&sb, row)
		}
		if s.Footer != "" {
			sb.WriteString(fmt.Sprintf("\n*%s*\n", s.Footer))
		}
	}
	return sb.String(), nil
}

func writeMarkdownRow(sb *strings.Builder, cells []string) {
	escaped := make([]string, len(cells))
	for i, cell := range cells {
		escaped[i] = escapeMarkdownCell(cell)
	}
	sb.WriteString("| " + strings.Join(escaped, " | ") + " |\n")
}

func escapeMarkdownCell(value string) string {
	value = strings.ReplaceAll(value, "\n", " ")
	return strings.ReplaceAll(value, "|", "\\|")
}
