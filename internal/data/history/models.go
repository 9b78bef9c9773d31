package history

import "time"

const SchemaVersion = 1

// Run is one completed analysis of a main file.
type Run struct {
	ID             string
	ProjectKey     string
	MainFile       string
	Timestamp      time.Time
	ExitCode       int
	EventCount     int
	DroppedCount   int
	CandidateCount int
	UnusedCount    int
	DurationMillis int64
	Diagnostics    []Diagnostic
}

// Diagnostic is the persisted form of one unused-import warning.
type Diagnostic struct {
	Line        int
	Scope       string
	Origin      string
	SymbolCount int
}

// Delta compares two runs of the same main file by scope.
type Delta struct {
	Introduced []Diagnostic
	Resolved   []Diagnostic
	Persisting []Diagnostic
}

// Diff reports which unused imports appeared or disappeared between prev and
// cur. A nil prev treats every diagnostic in cur as introduced.
func Diff(prev, cur *Run) Delta {
	var d Delta
	before := make(map[string]Diagnostic)
	if prev != nil {
		for _, diag := range prev.Diagnostics {
			before[diag.Scope] = diag
		}
	}
	after := make(map[string]bool)
	if cur != nil {
		for _, diag := range cur.Diagnostics {
			after[diag.Scope] = true
			if _, ok := before[diag.Scope]; ok {
				d.Persisting = append(d.Persisting, diag)
			} else {
				d.Introduced = append(d.Introduced, diag)
			}
		}
	}
	if prev != nil {
		for _, diag := range prev.Diagnostics {
			if !after[diag.Scope] {
				d.Resolved = append(d.Resolved, diag)
			}
		}
	}
	return d
}
