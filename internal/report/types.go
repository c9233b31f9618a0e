package report

// RunReport is the JSON artifact of one evaluation run.
type RunReport struct {
	Timestamp string          `json:"timestamp"`
	Server    string          `json:"server"`
	Judge     string          `json:"judge,omitempty"`
	Cases     []CaseReport    `json:"test_cases"`
	Aggregate AggregateScores `json:"aggregate"`
}

type CaseReport struct {
	ID               string           `json:"id"`
	Query            string           `json:"query"`
	Ticket           string           `json:"ticket,omitempty"`
	FlowHitRate      float64          `json:"flow_hit_rate"`
	FileHitRate      float64          `json:"file_hit_rate"`
	PrecisionAtK     float64          `json:"precision_at_k"`
	FoundFlows       []string         `json:"found_flows"`
	MissingFlows     []string         `json:"missing_flows"`
	ResultCount      int              `json:"result_count"`
	CacheHit         bool             `json:"cache_hit"`
	LatencyMS        int64            `json:"latency_ms"`
	ContextPrecision *float64         `json:"context_precision,omitempty"`
	ContextRecall    *float64         `json:"context_recall,omitempty"`
	Results          []ResultSnapshot `json:"results"`
}

// ResultSnapshot keeps enough of a returned card to audit a score by hand.
type ResultSnapshot struct {
	Title       string   `json:"title"`
	Flow        string   `json:"flow"`
	CardType    string   `json:"card_type,omitempty"`
	Score       float64  `json:"score"`
	SourceFiles []string `json:"source_files,omitempty"`
}

// AggregateScores are unweighted means over the run's cases. The judge
// means cover only the cases a judge actually graded; JudgedCases says
// how many that was.
type AggregateScores struct {
	FlowHitRate      float64  `json:"flow_hit_rate"`
	FileHitRate      float64  `json:"file_hit_rate"`
	PrecisionAtK     float64  `json:"precision_at_k"`
	AvgLatencyMS     int64    `json:"avg_latency_ms"`
	ContextPrecision *float64 `json:"context_precision,omitempty"`
	ContextRecall    *float64 `json:"context_recall,omitempty"`
	JudgedCases      int      `json:"judged_cases,omitempty"`
}
