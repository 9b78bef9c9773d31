package formats

import (
	"fmt"
	"strings"
	"time"

	"objcunused/internal/shared/util"
)

type MarkdownGenerator struct {
	// CollapseAfter wraps the diagnostics table in <details> once it has more
	// rows than this; zero disables collapsing.
	CollapseAfter int
}

func NewMarkdownGenerator() *MarkdownGenerator {
	return &MarkdownGenerator{CollapseAfter: 15}
}

func (m *MarkdownGenerator) Generate(data Data) (string, error) {
	if data.GeneratedAt.IsZero() {
		data.GeneratedAt = time.Now().UTC()
	}
	mainFile := util.RelativeTo(data.ProjectRoot, data.MainFile)

	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("title: Unused Import Report\n")
	b.WriteString("main_file: " + nonEmpty(mainFile, "unknown") + "\n")
	b.WriteString("generated_at: " + data.GeneratedAt.UTC().Format(time.RFC3339) + "\n")
	b.WriteString("version: " + nonEmpty(data.Version, "unknown") + "\n")
	b.WriteString("---\n\n")

	b.WriteString("# Unused Imports\n\n")
	b.WriteString("## Summary\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("| --- | --- |\n")
	b.WriteString(fmt.Sprintf("| Events | %d |\n", data.Events))
	b.WriteString(fmt.Sprintf("| Dropped Events | %d |\n", data.Dropped))
	b.WriteString(fmt.Sprintf("| Import Candidates | %d |\n", data.Candidates))
	b.WriteString(fmt.Sprintf("| Unused Imports | %d |\n\n", len(data.Diagnostics)))

	b.WriteString("## Diagnostics\n")
	if len(data.Diagnostics) == 0 {
		b.WriteString("No unused imports detected.\n")
		return b.String(), nil
	}
	rows := make([]string, 0, len(data.Diagnostics))
	for _, d := range data.Diagnostics {
		rows = append(rows, fmt.Sprintf("| %d | `%s` | %s | %d |\n", d.Line, d.Scope, d.Origin, d.SymbolCount))
	}
	m.writeTable(
		&b,
		"Unused import details",
		[]string{"| Line | Import | Origin | Symbols |\n", "| --- | --- | --- | --- |\n"},
		rows,
	)
	return b.String(), nil
}

func (m *MarkdownGenerator) writeTable(b *strings.Builder, summary string, header, rows []string) {
	collapse := m.CollapseAfter > 0 && len(rows) > m.CollapseAfter
	if collapse {
		b.WriteString("<details>\n")
		b.WriteString("<summary>")
		b.WriteString(summary)
		b.WriteString("</summary>\n\n")
	}
	for _, line := range header {
		b.WriteString(line)
	}
	for _, line := range rows {
		b.WriteString(line)
	}
	b.WriteString("\n")
	if collapse {
		b.WriteString("</details>\n\n")
	}
}

func nonEmpty(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
