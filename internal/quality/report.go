package quality

import (
	"fmt"
	"strings"
)

// Report renders the deterministic textual summary emitted once per
// evaluation run.
func Report(m Metrics) string {
	var sb strings.Builder
	sb.WriteString("=== Knowledge Graph Quality Assessment Report ===\n")
	fmt.Fprintf(&sb, "Total Nodes: %d\n", m.NodeCount)
	fmt.Fprintf(&sb, "Total Edges: %d\n", m.EdgeCount)
	sb.WriteString(strings.Repeat("-", 40) + "\n")
	fmt.Fprintf(&sb, "1. Reaction Context Completeness (RCS): %.2f%% (Target: >80%%)\n", m.RCS*100)
	fmt.Fprintf(&sb, "2. Chemical Specificity Rate (CRS):     %.2f%% (Target: >50%%)\n", m.CRS*100)
	fmt.Fprintf(&sb, "3. Knowledge Density (KD):              %.1f nodes/paper\n", m.KD)
	sb.WriteString(strings.Repeat("-", 40) + "\n")
	fmt.Fprintf(&sb, "FINAL OBJECTIVE QUALITY SCORE: %.2f%%\n", m.FinalScore*100)
	sb.WriteString(strings.Repeat("=", 40) + "\n")
	return sb.String()
}
