package dataset

import (
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/srcmap/evalkit/internal/srcmap"
	"github.com/srcmap/evalkit/pkg/stringsutil"
)

const (
	maxFileFragments   = 6
	maxExpectedFrags   = 5
	maxFileListEntries = 4
	minFragmentLen     = 3
)

type caseTemplate struct {
	Query  string
	Answer string
}

var queryTemplates = []caseTemplate{
	{
		Query: "How does {{readable}} work in the codebase?",
		Answer: "{{readable}} is implemented across {{file_count}} files in {{repo_text}}. " +
			"Key card types include {{card_types}}. Related source files include {{file_list}}.",
	},
	{
		Query: "What is the {{readable}} flow and which files are involved?",
		Answer: "The {{readable}} flow contains {{card_count}} cards covering {{card_types}}. " +
			"Source files span {{repo_text}} and include {{file_list}}.",
	},
	{
		Query: "Explain the {{readable}} implementation - models, controllers, and frontend components",
		Answer: "{{readable}} touches {{file_count}} source files across {{repo_text}}. " +
			"The flow includes card types: {{card_types}}. Key files: {{file_list}}.",
	},
	{
		Query: "Where is {{readable}} defined and how is it used across services?",
		Answer: "{{readable}} has {{card_count}} knowledge cards ({{card_types}}) in {{repo_text}}. " +
			"Important files include {{file_list}}.",
	},
}

var crossServiceTemplate = caseTemplate{
	Query: "How do {{part_a}} and {{part_b}} interact across the frontend and backend?",
	Answer: "The cross-service flow {{flow_name}} connects {{part_a}} and {{part_b}}. " +
		"It spans {{repo_text}} with {{card_count}} cards covering {{card_types}}. " +
		"Key files include {{file_list}}.",
}

var placeholderRegex = regexp.MustCompile(`\{\{(\w+)\}\}`)

func render(tpl string, params map[string]string) string {
	return placeholderRegex.ReplaceAllStringFunc(tpl, func(match string) string {
		key := match[2 : len(match)-2]
		if val, ok := params[key]; ok {
			return val
		}
		return match
	})
}

// Synthesize builds one test case from a flow and its cards. Regular flows
// cycle through the query templates by index; cross-service flows use a
// dedicated template. The case id is the slugified flow name; two flows
// slugifying to the same token produce colliding ids, which is left as-is.
func (s *Sampler) Synthesize(flow srcmap.Flow, cards []srcmap.Card, idx int) TestCase {
	cardCount := flow.CardCount
	if cardCount == 0 {
		cardCount = len(cards)
	}

	repoText := strings.Join(flow.Repos, ", ")
	if repoText == "" {
		repoText = "the indexed repository"
	}

	types := strings.Join(cardTypes(cards), ", ")
	if types == "" {
		types = "general"
	}

	frags := fileFragments(cards)
	fileList := strings.Join(frags[:min(len(frags), maxFileListEntries)], ", ")
	if fileList == "" {
		fileList = strings.ToLower(flow.Name)
	}

	params := map[string]string{
		"readable":   stringsutil.Humanize(flow.Name),
		"flow_name":  flow.Name,
		"card_count": strconv.Itoa(cardCount),
		"file_count": strconv.Itoa(flow.FileCount),
		"repo_text":  repoText,
		"card_types": types,
		"file_list":  fileList,
	}

	parts := flow.ReadableParts()
	tpl := queryTemplates[idx%len(queryTemplates)]
	if len(parts) >= 2 {
		tpl = crossServiceTemplate
		params["part_a"] = parts[0]
		params["part_b"] = parts[1]
	}

	expectedFlows := []string{flow.Name}
	expectedFlows = append(expectedFlows, flow.ServiceParts()...)

	return TestCase{
		ID:                    stringsutil.Slugify(flow.Name),
		Query:                 render(tpl.Query, params),
		GroundTruth:           render(tpl.Answer, params),
		ExpectedFlows:         expectedFlows,
		ExpectedFileFragments: frags[:min(len(frags), maxExpectedFrags)],
	}
}

// fileFragments extracts up to six distinct lower-cased file-name stems
// from the cards' source files, skipping stems too short to be meaningful.
func fileFragments(cards []srcmap.Card) []string {
	seen := make(map[string]bool)
	for _, card := range cards {
		for _, f := range card.SourceFiles {
			base := path.Base(f)
			stem := strings.ToLower(strings.TrimSuffix(base, path.Ext(base)))
			if len(stem) >= minFragmentLen {
				seen[stem] = true
			}
		}
	}

	frags := make([]string, 0, len(seen))
	for stem := range seen {
		frags = append(frags, stem)
	}
	sort.Strings(frags)

	return frags[:min(len(frags), maxFileFragments)]
}

func cardTypes(cards []srcmap.Card) []string {
	seen := make(map[string]bool)
	for _, c := range cards {
		if c.CardType != "" {
			seen[c.CardType] = true
		}
	}

	types := make([]string, 0, len(seen))
	for t := range seen {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
