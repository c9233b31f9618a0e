package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

const barWidth = 20

func WriteTable(r *RunReport, w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "\n=== srcmap Evaluation ===\n")
	fmt.Fprintf(tw, "Server: %s\n", r.Server)
	if r.Judge != "" {
		fmt.Fprintf(tw, "Judge: %s\n", r.Judge)
	}

	writeCaseTable(tw, r)
	writeSummary(tw, r)

	tw.Flush()
}

func writeCaseTable(tw *tabwriter.Writer, r *RunReport) {
	fmt.Fprintf(tw, "\nPer-Case Results\n\n")

	header := []string{"Case", "Flow Hit", "File Hit", "P@K", "Results", "Latency", "Cache", "Missing"}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	fmt.Fprintln(tw, strings.Join(sep, "\t"))

	for _, c := range r.Cases {
		cache := ""
		if c.CacheHit {
			cache = "hit"
		}
		row := []string{
			c.ID,
			fmt.Sprintf("%.3f", c.FlowHitRate),
			fmt.Sprintf("%.3f", c.FileHitRate),
			fmt.Sprintf("%.3f", c.PrecisionAtK),
			fmt.Sprintf("%d", c.ResultCount),
			fmt.Sprintf("%dms", c.LatencyMS),
			cache,
			strings.Join(c.MissingFlows, ", "),
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	fmt.Fprintln(tw)
}

func writeSummary(tw *tabwriter.Writer, r *RunReport) {
	fmt.Fprintf(tw, "Summary (mean across %d cases)\n\n", len(r.Cases))

	writeBar(tw, "Flow hit rate", r.Aggregate.FlowHitRate)
	writeBar(tw, "File hit rate", r.Aggregate.FileHitRate)
	writeBar(tw, "Precision@K", r.Aggregate.PrecisionAtK)

	if r.Aggregate.ContextPrecision != nil {
		writeBar(tw, "Context precision", *r.Aggregate.ContextPrecision)
	}
	if r.Aggregate.ContextRecall != nil {
		writeBar(tw, "Context recall", *r.Aggregate.ContextRecall)
	}
	if r.Aggregate.JudgedCases > 0 && r.Aggregate.JudgedCases < len(r.Cases) {
		fmt.Fprintf(tw, "(judge graded %d/%d cases)\n", r.Aggregate.JudgedCases, len(r.Cases))
	}

	fmt.Fprintf(tw, "\nAvg latency\t%dms\n", r.Aggregate.AvgLatencyMS)
}

// writeBar prints a score with a proportional block bar, e.g.
// "Flow hit rate  ████████████        0.600".
func writeBar(w io.Writer, label string, rate float64) {
	filled := int(rate * barWidth)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	bar := strings.Repeat("█", filled) + strings.Repeat(" ", barWidth-filled)
	fmt.Fprintf(w, "%s\t%s\t%.3f\n", label, bar, rate)
}
