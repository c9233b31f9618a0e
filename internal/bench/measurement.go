package bench

// CaseMeasurement is one benchmarked query: wall-clock latency of the
// search call, the service-reported cache flag, token-cost estimates under
// the two retrieval strategies, and the deterministic scores.
type CaseMeasurement struct {
	Query        string  `json:"query"`
	Ticket       string  `json:"ticket,omitempty"`
	ToolTokens   int     `json:"srcmap_tokens"`
	NaiveTokens  int     `json:"naive_tokens"`
	LatencyMS    int64   `json:"latency_ms"`
	CacheHit     bool    `json:"cache_hit"`
	FlowHitRate  float64 `json:"flow_hit_rate"`
	FileHitRate  float64 `json:"file_hit_rate"`
	PrecisionAtK float64 `json:"precision_at_k"`
	ResultCount  int     `json:"result_count"`
}
