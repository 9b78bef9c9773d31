package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"objcunused/internal/data/history"
)

type historyRow struct {
	RunID      string `json:"run_id"`
	MainFile   string `json:"main_file"`
	Timestamp  string `json:"timestamp"`
	ExitCode   int    `json:"exit_code"`
	Events     int    `json:"events"`
	Dropped    int    `json:"dropped"`
	Candidates int    `json:"candidates"`
	Unused     int    `json:"unused"`
	Introduced int    `json:"introduced"`
	Resolved   int    `json:"resolved"`
	DurationMS int64  `json:"duration_ms"`
}

// buildHistoryRows expects runs newest first, as LoadRuns returns them, and
// diffs each run against the next older run of the same main file.
func buildHistoryRows(runs []history.Run) []historyRow {
	rows := make([]historyRow, 0, len(runs))
	for i := range runs {
		var prev *history.Run
		for j := i + 1; j < len(runs); j++ {
			if runs[j].MainFile == runs[i].MainFile {
				prev = &runs[j]
				break
			}
		}
		delta := history.Diff(prev, &runs[i])
		rows = append(rows, historyRow{
			RunID:      runs[i].ID,
			MainFile:   runs[i].MainFile,
			Timestamp:  runs[i].Timestamp.UTC().Format(time.RFC3339),
			ExitCode:   runs[i].ExitCode,
			Events:     runs[i].EventCount,
			Dropped:    runs[i].DroppedCount,
			Candidates: runs[i].CandidateCount,
			Unused:     runs[i].UnusedCount,
			Introduced: len(delta.Introduced),
			Resolved:   len(delta.Resolved),
			DurationMS: runs[i].DurationMillis,
		})
	}
	return rows
}

func RenderHistoryTSV(runs []history.Run) ([]byte, error) {
	var buf strings.Builder

	buf.WriteString("Timestamp\tRunID\tMainFile\tExitCode\tEvents\tDropped\tCandidates\tUnused\tIntroduced\tResolved\tDurationMS\n")
	for _, row := range buildHistoryRows(runs) {
		buf.WriteString(fmt.Sprintf(
			"%s\t%s\t%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\n",
			row.Timestamp,
			row.RunID,
			row.MainFile,
			row.ExitCode,
			row.Events,
			row.Dropped,
			row.Candidates,
			row.Unused,
			row.Introduced,
			row.Resolved,
			row.DurationMS,
		))
	}

	return []byte(buf.String()), nil
}

func RenderHistoryJSON(runs []history.Run) ([]byte, error) {
	return json.MarshalIndent(buildHistoryRows(runs), "", "  ")
}
