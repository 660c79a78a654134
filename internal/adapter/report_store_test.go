package adapter

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	m "github.com/mouse-blink/gorald/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportStore_SaveAndLoad(t *testing.T) {
	t.Parallel()

	path := m.Path(filepath.Join(t.TempDir(), "stats", "run.json"))
	store := NewReportStore(NewLocalSourceFSAdapter())

	started := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	stats := m.RunStatistics{
		RunID:      "abc",
		StartedAt:  started,
		FinishedAt: started.Add(time.Second),
		Rules: []m.RuleStatistics{{
			RuleKey:          "self-assignment",
			FoundWarnings:    2,
			PerformedRepairs: []m.RepairLocation{{File: "a.go", StartLine: 3, StartCol: 2}},
			CrashedRepairs:   []m.RepairLocation{},
		}},
		Crashes: []m.CrashRecord{},
	}

	require.NoError(t, store.SaveStatistics(path, stats))

	raw, err := os.ReadFile(string(path))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"runId": "abc"`)
	assert.Contains(t, string(raw), `"nbFoundWarnings": 2`)

	loaded, err := store.LoadStatistics(path)
	require.NoError(t, err)
	assert.Equal(t, stats, loaded)
}

func TestReportStore_LoadErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := NewReportStore(NewLocalSourceFSAdapter())

	_, err := store.LoadStatistics(m.Path(filepath.Join(dir, "missing.json")))
	assert.ErrorContains(t, err, "failed to read statistics")

	bad := filepath.Join(dir, "bad.json")
	writeTestFile(t, bad, "{")

	_, err = store.LoadStatistics(m.Path(bad))
	assert.ErrorContains(t, err, "failed to decode statistics")
}
