package report

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/google/uuid"
)

// HistoryEntry is one row of the append-only run history, used to track
// retrieval quality across commits.
type HistoryEntry struct {
	RunID            string   `json:"run_id"`
	Timestamp        string   `json:"timestamp"`
	GitSHA           string   `json:"git_sha"`
	Tool             string   `json:"tool"`
	Server           string   `json:"server"`
	Cases            int      `json:"cases"`
	FlowHitRate      float64  `json:"flow_hit_rate"`
	FileHitRate      float64  `json:"file_hit_rate"`
	PrecisionAtK     float64  `json:"precision_at_k"`
	ContextPrecision *float64 `json:"context_precision,omitempty"`
	ContextRecall    *float64 `json:"context_recall,omitempty"`
}

// NewHistoryEntry derives a history row from a finished report. The tool
// field names the judge backend that graded the run, or "deterministic"
// when only exact scoring ran.
func NewHistoryEntry(r *RunReport) HistoryEntry {
	tool := r.Judge
	if tool == "" {
		tool = "deterministic"
	}
	return HistoryEntry{
		RunID:            uuid.NewString(),
		Timestamp:        r.Timestamp,
		GitSHA:           GitSHA(),
		Tool:             tool,
		Server:           r.Server,
		Cases:            len(r.Cases),
		FlowHitRate:      r.Aggregate.FlowHitRate,
		FileHitRate:      r.Aggregate.FileHitRate,
		PrecisionAtK:     r.Aggregate.PrecisionAtK,
		ContextPrecision: r.Aggregate.ContextPrecision,
		ContextRecall:    r.Aggregate.ContextRecall,
	}
}

// AppendHistory appends the entry to the JSON array at path. A missing
// or unreadable file starts a fresh history rather than failing the run.
func AppendHistory(path string, entry HistoryEntry) error {
	var entries []HistoryEntry
	if data, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(data, &entries); err != nil {
			entries = nil
		}
	}

	entries = append(entries, entry)

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}

// GitSHA returns the short SHA of the working tree's HEAD, or "unknown"
// when not inside a git repository.
func GitSHA() string {
	out, err := exec.Command("git", "rev-parse", "--short", "HEAD").Output()
	if err != nil {
		return "unknown"
	}
	return strings.TrimSpace(string(out))
}
