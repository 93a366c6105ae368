package stats

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"evogrid/internal/model"
)

const runIndexFile = "run_index.json"

// RunArtifacts is everything exported for one run.
type RunArtifacts struct {
	Run     model.Run               `json:"run"`
	Samples []model.GenerationStats `json:"samples"`
	Report  RunReport               `json:"report"`
}

// RunIndexEntry is one line of the per-directory run index.
type RunIndexEntry struct {
	RunID        string `json:"run_id"`
	World        string `json:"world"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	Seed         uint64 `json:"seed"`
	Generations  int    `json:"generations"`
	StopReason   string `json:"stop_reason"`
	CreatedAtUTC string `json:"created_at_utc"`
}

// WriteRunArtifacts exports a run into baseDir/<run-id>/ and returns the
// run directory.
func WriteRunArtifacts(baseDir string, artifacts RunArtifacts) (string, error) {
	if artifacts.Run.ID == "" {
		return "", fmt.Errorf("run id is required")
	}

	runDir := filepath.Join(baseDir, artifacts.Run.ID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(runDir, "run.json"), artifacts.Run); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(runDir, "generation_stats.json"), artifacts.Samples); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(runDir, "report.json"), artifacts.Report); err != nil {
		return "", err
	}
	return runDir, nil
}

// AppendRunIndex records or replaces an entry in baseDir's run index.
func AppendRunIndex(baseDir string, entry RunIndexEntry) error {
	if entry.RunID == "" {
		return fmt.Errorf("run id is required")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return err
	}

	index, err := ListRunIndex(baseDir)
	if err != nil {
		return err
	}

	for i := range index {
		if index[i].RunID == entry.RunID {
			index[i] = entry
			return writeJSON(filepath.Join(baseDir, runIndexFile), index)
		}
	}

	index = append(index, entry)
	return writeJSON(filepath.Join(baseDir, runIndexFile), index)
}

// ListRunIndex reads baseDir's run index; a missing file is an empty index.
func ListRunIndex(baseDir string) ([]RunIndexEntry, error) {
	path := filepath.Join(baseDir, runIndexFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunIndexEntry{}, nil
		}
		return nil, err
	}

	var entries []RunIndexEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func writeJSON(path string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
