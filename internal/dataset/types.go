package dataset

// Dataset is the persisted golden dataset: the curated or generated set of
// test cases the harness scores a srcmap instance against.
type Dataset struct {
	Version     string     `json:"version"`
	Description string     `json:"description"`
	TestCases   []TestCase `json:"test_cases"`
}

// TestCase is one natural-language query with its known expected answer.
type TestCase struct {
	ID                    string   `json:"id"`
	Ticket                string   `json:"ticket,omitempty"`
	Query                 string   `json:"query"`
	GroundTruth           string   `json:"ground_truth"`
	ExpectedFlows         []string `json:"expected_flows"`
	ExpectedFileFragments []string `json:"expected_file_fragments"`
}

// FindCase returns the test case with the given id, or false.
func (d *Dataset) FindCase(id string) (TestCase, bool) {
	for _, tc := range d.TestCases {
		if tc.ID == id {
			return tc, true
		}
	}
	return TestCase{}, false
}
