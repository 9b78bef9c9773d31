package report

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"objcunused/internal/data/history"
)

func sampleRuns() []history.Run {
	base := time.Date(2026, 2, 13, 0, 0, 0, 0, time.UTC)
	return []history.Run{
		{
			ID:          "run-3",
			MainFile:    "main.m",
			Timestamp:   base.Add(2 * time.Hour),
			UnusedCount: 1,
			Diagnostics: []history.Diagnostic{{Scope: "C.h"}},
		},
		{
			ID:          "run-other",
			MainFile:    "other.m",
			Timestamp:   base.Add(time.Hour),
			UnusedCount: 0,
		},
		{
			ID:          "run-1",
			MainFile:    "main.m",
			Timestamp:   base,
			UnusedCount: 2,
			Diagnostics: []history.Diagnostic{{Scope: "A.h"}, {Scope: "B.h"}},
		},
	}
}

func TestRenderHistoryTSV(t *testing.T) {
	out, err := RenderHistoryTSV(sampleRuns())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "Timestamp\tRunID\tMainFile"))

	newest := strings.Split(lines[1], "\t")
	assert.Equal(t, "2026-02-13T02:00:00Z", newest[0])
	assert.Equal(t, "run-3", newest[1])
	assert.Equal(t, "1", newest[8], "C.h introduced")
	assert.Equal(t, "2", newest[9], "A.h and B.h resolved")

	oldest := strings.Split(lines[3], "\t")
	assert.Equal(t, "2", oldest[8], "first run introduces everything")
	assert.Equal(t, "0", oldest[9])
}

func TestRenderHistoryJSON(t *testing.T) {
	out, err := RenderHistoryJSON(sampleRuns())
	require.NoError(t, err)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(out, &rows))
	require.Len(t, rows, 3)
	assert.Equal(t, "other.m", rows[1]["main_file"])
	assert.EqualValues(t, 0, rows[1]["introduced"])
}
