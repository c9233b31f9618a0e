package srcmap

import (
	"encoding/json"
	"strings"

	"github.com/srcmap/evalkit/pkg/stringsutil"
)

// CrossServiceSeparator joins the constituent service names inside a
// cross-service flow identifier, e.g. "Billing ↔ Invoicing".
const CrossServiceSeparator = "↔"

// Card is one retrievable unit of indexed knowledge.
type Card struct {
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	CardType    string   `json:"card_type"`
	Flow        string   `json:"flow"`
	Score       float64  `json:"score"`
	Source      string   `json:"source"`
	SourceFiles FileList `json:"source_files"`
}

// Flow is a named cluster of related cards in the indexed corpus.
type Flow struct {
	Name      string   `json:"flow"`
	CardCount int      `json:"cardCount"`
	FileCount int      `json:"fileCount"`
	Repos     RepoList `json:"repos"`
}

func (f Flow) IsCrossService() bool {
	return strings.Contains(f.Name, CrossServiceSeparator)
}

// ServiceParts returns the constituent service names of a cross-service
// flow, or nil for a regular flow.
func (f Flow) ServiceParts() []string {
	if !f.IsCrossService() {
		return nil
	}

	var parts []string
	for _, p := range strings.Split(f.Name, CrossServiceSeparator) {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}

// ReadableParts returns the humanized service names of a cross-service flow.
func (f Flow) ReadableParts() []string {
	parts := f.ServiceParts()
	readable := make([]string, len(parts))
	for i, p := range parts {
		readable[i] = stringsutil.Humanize(p)
	}
	return readable
}

// Health reports corpus size as exposed by /api/health.
type Health struct {
	Cards int `json:"cards"`
	Flows int `json:"flows"`
}

// FileList unmarshals a source-file field that arrives either as a native
// JSON array or as a JSON-string-encoded array. A malformed field decodes
// to an empty list rather than failing the whole payload.
type FileList []string

func (fl *FileList) UnmarshalJSON(data []byte) error {
	var direct []string
	if err := json.Unmarshal(data, &direct); err == nil {
		*fl = direct
		return nil
	}

	var encoded string
	if err := json.Unmarshal(data, &encoded); err == nil {
		var nested []string
		if err := json.Unmarshal([]byte(encoded), &nested); err == nil {
			*fl = nested
			return nil
		}
	}

	*fl = nil
	return nil
}

// RepoList unmarshals a repository field that arrives either as a JSON
// array or as a single comma-separated string.
type RepoList []string

func (rl *RepoList) UnmarshalJSON(data []byte) error {
	var direct []string
	if err := json.Unmarshal(data, &direct); err == nil {
		*rl = direct
		return nil
	}

	var joined string
	if err := json.Unmarshal(data, &joined); err == nil {
		var repos []string
		for _, r := range strings.Split(joined, ",") {
			if trimmed := strings.TrimSpace(r); trimmed != "" {
				repos = append(repos, trimmed)
			}
		}
		*rl = repos
		return nil
	}

	*rl = nil
	return nil
}
