package adapter

import (
	"encoding/json"
	"fmt"

	m "github.com/mouse-blink/gorald/internal/model"
)

// ReportStore persists and retrieves run statistics.
type ReportStore interface {
	SaveStatistics(path m.Path, stats m.RunStatistics) error
	LoadStatistics(path m.Path) (m.RunStatistics, error)
}

type reportStore struct {
	fs SourceFSAdapter
}

// NewReportStore constructs a ReportStore writing JSON files through fs.
func NewReportStore(fs SourceFSAdapter) ReportStore {
	return &reportStore{fs: fs}
}

func (rs *reportStore) SaveStatistics(path m.Path, stats m.RunStatistics) error {
	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode statistics: %w", err)
	}

	if err := rs.fs.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write statistics %s: %w", path, err)
	}

	return nil
}

func (rs *reportStore) LoadStatistics(path m.Path) (m.RunStatistics, error) {
	var stats m.RunStatistics

	data, err := rs.fs.ReadFile(path)
	if err != nil {
		return stats, fmt.Errorf("failed to read statistics %s: %w", path, err)
	}

	if err := json.Unmarshal(data, &stats); err != nil {
		return stats, fmt.Errorf("failed to decode statistics %s: %w", path, err)
	}

	return stats, nil
}
