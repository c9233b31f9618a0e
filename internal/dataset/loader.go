package dataset

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/srcmap/evalkit/internal/apperr"
)

func LoadFromFile(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperr.NewDataWrap("read dataset file", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Dataset, error) {
	var d Dataset
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, apperr.NewDataWrap("parse dataset JSON", err)
	}
	if err := validate(&d); err != nil {
		return nil, err
	}
	return &d, nil
}

func validate(d *Dataset) error {
	if len(d.TestCases) == 0 {
		return apperr.NewData("dataset has no test cases")
	}

	seen := make(map[string]bool, len(d.TestCases))
	for i, tc := range d.TestCases {
		if tc.ID == "" {
			return apperr.NewData(fmt.Sprintf("test case at index %d has no id", i))
		}
		if seen[tc.ID] {
			return apperr.NewData(fmt.Sprintf("duplicate test case id %q", tc.ID))
		}
		seen[tc.ID] = true
		if tc.Query == "" {
			return apperr.NewData(fmt.Sprintf("test case %q has no query", tc.ID))
		}
	}
	return nil
}

func Save(d *Dataset, path string) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal dataset: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write dataset: %w", err)
	}
	return nil
}
