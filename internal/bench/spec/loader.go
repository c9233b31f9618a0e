package spec

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultOutput = "benchmarks.json"
	DefaultLimit  = 10
)

func LoadFromFile(path string) (*BenchSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spec file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*BenchSpec, error) {
	var s BenchSpec
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse spec YAML: %w", err)
	}
	if err := validate(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

func validate(s *BenchSpec) error {
	if len(s.Projects) == 0 {
		return fmt.Errorf("spec has no projects")
	}
	if s.Output == "" {
		s.Output = DefaultOutput
	}
	if s.Limit <= 0 {
		s.Limit = DefaultLimit
	}

	seen := make(map[string]bool, len(s.Projects))
	for i := range s.Projects {
		p := &s.Projects[i]
		if p.Name == "" {
			return fmt.Errorf("project at index %d has no name", i)
		}
		if seen[p.Name] {
			return fmt.Errorf("duplicate project name %q", p.Name)
		}
		seen[p.Name] = true
		if p.Server == "" {
			return fmt.Errorf("project %q has no server", p.Name)
		}
		if p.Dataset == "" {
			return fmt.Errorf("project %q has no dataset", p.Name)
		}
		if p.Repo == "" {
			p.Repo = p.Name
		}
		if p.Language == "" {
			p.Language = "Unknown"
		}
		if p.Framework == "" {
			p.Framework = "Unknown"
		}
		if p.Limit <= 0 {
			p.Limit = s.Limit
		}
	}
	return nil
}
