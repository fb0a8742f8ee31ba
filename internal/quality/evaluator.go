package quality

import (
	"strings"

	"chemgraph/internal/graph"
)

// Metrics is the outcome of one evaluation pass. KD is reported but not
// part of the composite: density measures extraction effort, not
// correctness.
type Metrics struct {
	RCS        float64 `json:"rcs"`
	CRS        float64 `json:"crs"`
	KD         float64 `json:"kd"`
	FinalScore float64 `json:"final_score"`
	NodeCount  int     `json:"node_count"`
	EdgeCount  int     `json:"edge_count"`
}

// Config carries the peptide-specificity heuristic knobs. The heuristic is
// deliberately preserved as-is: a prefix match or a long label is taken as
// evidence of a fully resolved sequence.
type Config struct {
	PeptideSpecificMinLen int
	PeptideSpecificPrefix string
}

func DefaultConfig() Config {
	return Config{PeptideSpecificMinLen: 10, PeptideSpecificPrefix: "Ac-"}
}

// Evaluate scores a finished graph. It is a pure read-only pass: nodes
// with a missing or unexpected type simply match no category.
func Evaluate(g *graph.Graph, cfg Config) Metrics {
	m := Metrics{
		NodeCount: g.NodeCount(),
		EdgeCount: g.EdgeCount(),
	}
	m.RCS = reactionContextScore(g)
	m.CRS = chemicalSpecificityRate(g, cfg)
	m.KD = knowledgeDensity(g)
	m.FinalScore = 0.5*m.RCS + 0.5*m.CRS
	return m
}

// reactionContextScore averages per-reaction completeness. A named
// catalyst is the strongest evidence of an actionable reaction record,
// hence the 0.4 weight against 0.3 for conditions and participants.
func reactionContextScore(g *graph.Graph) float64 {
	var sum float64
	var reactions int
	for _, n := range g.Nodes() {
		if n.Type != graph.NodeReaction {
			continue
		}
		reactions++
		hasCatalyst, hasCondition, hasParticipant := false, false, false
		for _, nb := range g.Linked(n.ID) {
			switch nb.Type {
			case graph.NodePeptide, graph.NodeChemical:
				hasCatalyst = true
			case graph.NodeCondition:
				hasCondition = true
			case graph.NodeMolecule:
				hasParticipant = true
			}
		}
		score := 0.0
		if hasCatalyst {
			score += 0.4
		}
		if hasCondition {
			score += 0.3
		}
		if hasParticipant {
			score += 0.3
		}
		sum += score
	}
	if reactions == 0 {
		return 0.0
	}
	return sum / float64(reactions)
}

func chemicalSpecificityRate(g *graph.Graph, cfg Config) float64 {
	total, specific := 0, 0
	for _, n := range g.Nodes() {
		switch n.Type {
		case graph.NodeMolecule:
			total++
			if n.ReactivityClass != "" && n.ReactivityClass != "Unknown" {
				specific++
			}
		case graph.NodePeptide:
			total++
			if strings.HasPrefix(n.Label, cfg.PeptideSpecificPrefix) || len(n.Label) > cfg.PeptideSpecificMinLen {
				specific++
			}
		}
	}
	if total == 0 {
		return 0.0
	}
	return float64(specific) / float64(total)
}

func knowledgeDensity(g *graph.Graph) float64 {
	papers := 0
	for _, n := range g.Nodes() {
		if n.Type == graph.NodePaper {
			papers++
		}
	}
	if papers == 0 {
		return 0.0
	}
	return float64(g.NodeCount()-papers) / float64(papers)
}
