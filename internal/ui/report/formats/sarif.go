package formats

import (
	"encoding/json"
	"fmt"

	"objcunused/internal/shared/util"
	"objcunused/internal/shared/version"
)

// SARIF v2.1.0 schema – see https://schemastore.azurewebsites.net/schemas/json/sarif-2.1.0-rtm.5.json

const (
	sarifSchema  = "https://schemastore.azurewebsites.net/schemas/json/sarif-2.1.0-rtm.5.json"
	sarifVersion = "2.1.0"

	ruleIDUnusedImport = "OBJC001"
)

// sarifReport is the top-level SARIF document.
type sarifReport struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version"`
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string                 `json:"id"`
	Name             string                 `json:"name"`
	ShortDescription sarifMessage           `json:"shortDescription"`
	DefaultConfig    sarifRuleDefaultConfig `json:"defaultConfiguration"`
}

type sarifRuleDefaultConfig struct {
	Level string `json:"level"`
}

type sarifResult struct {
	RuleID     string            `json:"ruleId"`
	Level      string            `json:"level"`
	Message    sarifMessage      `json:"message"`
	Locations  []sarifLocation   `json:"locations,omitempty"`
	Properties map[string]string `json:"properties,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           *sarifRegion          `json:"region,omitempty"`
}

type sarifArtifactLocation struct {
	URI       string `json:"uri"`
	URIBaseID string `json:"uriBaseId"`
}

type sarifRegion struct {
	StartLine int `json:"startLine,omitempty"`
}

// GenerateSARIF builds a SARIF v2.1.0 document with one OBJC001 result per
// unused import. File URIs are made relative to projectRoot.
func GenerateSARIF(projectRoot string, data Data) ([]byte, error) {
	results := make([]sarifResult, 0, len(data.Diagnostics))
	for _, d := range data.Diagnostics {
		result := sarifResult{
			RuleID:  ruleIDUnusedImport,
			Level:   "warning",
			Message: sarifMessage{Text: fmt.Sprintf("Unused import %s", d.Scope)},
			Locations: []sarifLocation{{
				PhysicalLocation: sarifPhysicalLocation{
					ArtifactLocation: sarifArtifactLocation{
						URI:       util.RelativeTo(projectRoot, d.File),
						URIBaseID: "%SRCROOT%",
					},
				},
			}},
			Properties: map[string]string{
				"scope":  string(d.Scope),
				"origin": d.Origin,
			},
		}
		if d.Line > 0 {
			result.Locations[0].PhysicalLocation.Region = &sarifRegion{StartLine: d.Line}
		}
		results = append(results, result)
	}

	toolVersion := data.Version
	if toolVersion == "" {
		toolVersion = version.Version
	}
	report := sarifReport{
		Schema:  sarifSchema,
		Version: sarifVersion,
		Runs: []sarifRun{
			{
				Tool: sarifTool{
					Driver: sarifDriver{
						Name:    "objc-unused-imports",
						Version: toolVersion,
						Rules: []sarifRule{{
							ID:               ruleIDUnusedImport,
							Name:             "UnusedImport",
							ShortDescription: sarifMessage{Text: "An imported header or module contributes no symbol used by the file."},
							DefaultConfig:    sarifRuleDefaultConfig{Level: "warning"},
						}},
					},
				},
				Results: results,
			},
		},
	}

	return json.MarshalIndent(report, "", "  ")
}
