package bench

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"
)

// File is the persisted multi-project benchmark document.
type File struct {
	GeneratedAt string          `json:"generated_at"`
	Projects    []ProjectEntry  `json:"projects"`
	Aggregate   GlobalAggregate `json:"aggregate"`
}

// LoadFile reads an existing benchmark file. A missing file yields an empty
// document so the first run and the append path share one code path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &File{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read benchmark file: %w", err)
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse benchmark file: %w", err)
	}
	return &f, nil
}

// Upsert merges the entry into the document and refreshes the cross-project
// aggregate and timestamp.
func (f *File) Upsert(entry ProjectEntry, now time.Time) {
	f.Projects = Merge(f.Projects, entry)
	f.Aggregate = ComputeGlobalAggregate(f.Projects)
	f.GeneratedAt = now.UTC().Format(time.RFC3339)
}

func WriteFile(f *File, path string) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal benchmark file: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write benchmark file: %w", err)
	}
	return nil
}
