package formats

import (
	"encoding/json"
	"time"

	"objcunused/internal/engine/report"
)

type jsonReport struct {
	MainFile    string              `json:"main_file"`
	Version     string              `json:"version,omitempty"`
	GeneratedAt string              `json:"generated_at"`
	Events      int                 `json:"events"`
	Dropped     int                 `json:"dropped"`
	Candidates  int                 `json:"candidates"`
	Unused      int                 `json:"unused"`
	Diagnostics []report.Diagnostic `json:"diagnostics"`
}

func GenerateJSON(data Data) ([]byte, error) {
	generated := data.GeneratedAt
	if generated.IsZero() {
		generated = time.Now().UTC()
	}
	diags := data.Diagnostics
	if diags == nil {
		diags = []report.Diagnostic{}
	}
	out, err := json.MarshalIndent(jsonReport{
		MainFile:    data.MainFile,
		Version:     data.Version,
		GeneratedAt: generated.UTC().Format(time.RFC3339),
		Events:      data.Events,
		Dropped:     data.Dropped,
		Candidates:  data.Candidates,
		Unused:      len(diags),
		Diagnostics: diags,
	}, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}
