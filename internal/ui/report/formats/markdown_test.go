package formats

import (
	"fmt"
	"strings"
	"testing"

	"objcunused/internal/engine/report"
	"objcunused/internal/engine/symbols"
)

func TestMarkdownGenerator_NoDiagnostics(t *testing.T) {
	out, err := NewMarkdownGenerator().Generate(Data{MainFile: "App/main.m"})
	if err != nil {
		t.Fatalf("generate markdown: %v", err)
	}
	if !strings.Contains(out, "No unused imports detected.") {
		t.Fatal("expected empty-state message")
	}
	if strings.Contains(out, "| Line | Import |") {
		t.Fatal("expected diagnostics table to be omitted")
	}
}

func TestMarkdownGenerator_ListsDiagnostics(t *testing.T) {
	out, err := NewMarkdownGenerator().Generate(Data{
		MainFile:    "/work/App/main.m",
		ProjectRoot: "/work",
		Candidates:  3,
		Diagnostics: []report.Diagnostic{
			{File: "/work/App/main.m", Line: 2, Scope: "Unused.h", Origin: "header", SymbolCount: 4},
		},
	})
	if err != nil {
		t.Fatalf("generate markdown: %v", err)
	}
	if !strings.Contains(out, "main_file: App/main.m") {
		t.Fatalf("expected main file relative to project root:\n%s", out)
	}
	if !strings.Contains(out, "| 2 | `Unused.h` | header | 4 |") {
		t.Fatalf("expected diagnostic row:\n%s", out)
	}
	if !strings.Contains(out, "| Import Candidates | 3 |") {
		t.Fatal("expected candidate count in summary")
	}
	if strings.Contains(out, "<details>") {
		t.Fatal("short tables should not collapse")
	}
}

func TestMarkdownGenerator_CollapsesLongTables(t *testing.T) {
	diags := make([]report.Diagnostic, 0, 20)
	for i := 0; i < 20; i++ {
		diags = append(diags, report.Diagnostic{Line: i + 1, Scope: symbols.FileScope(fmt.Sprintf("H%d.h", i)), Origin: "header"})
	}
	out, err := NewMarkdownGenerator().Generate(Data{Diagnostics: diags})
	if err != nil {
		t.Fatalf("generate markdown: %v", err)
	}
	if !strings.Contains(out, "<summary>Unused import details</summary>") {
		t.Fatal("expected long table to collapse")
	}
}
