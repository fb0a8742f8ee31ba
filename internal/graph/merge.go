package graph

import (
	"strings"

	"chemgraph/internal/chem"
	"chemgraph/internal/models"
	"chemgraph/internal/util"
)

// FallbackReactionLabel is the placeholder used when a record carries no
// reaction-type strings. It never overwrites a specific label.
const FallbackReactionLabel = "Catalytic Process"

// MergeConfig carries the calibration knobs of the merge pass.
type MergeConfig struct {
	MinNotationLen        int
	LabelPreviewLen       int
	ReactionLabelMaxTypes int
}

func DefaultMergeConfig() MergeConfig {
	return MergeConfig{
		MinNotationLen:        10,
		LabelPreviewLen:       20,
		ReactionLabelMaxTypes: 2,
	}
}

type MergeStats struct {
	Merged  int `json:"merged"`
	Skipped int `json:"skipped"`
}

// MergeDocument folds one extraction record into the graph. It is
// idempotent on node identity: re-merging the same record adds no new
// nodes, only parallel edges. A record without a source identifier is
// rejected as malformed and leaves the graph untouched.
func MergeDocument(g *Graph, rec models.DocumentRecord, cfg MergeConfig) error {
	paperID := util.SanitizeText(rec.SourceFile)
	if paperID == "" {
		return util.ErrRecordMalformed
	}
	g.UpsertNode(Node{ID: paperID, Type: NodePaper, Label: paperID})

	label := FallbackReactionLabel
	if types := sanitizeAll(rec.TextEntities.ReactionTypes); len(types) > 0 {
		n := cfg.ReactionLabelMaxTypes
		if n > len(types) {
			n = len(types)
		}
		label = strings.Join(types[:n], " / ")
	}
	reactionID := "Reaction_" + paperID
	if node, ok := g.Node(reactionID); ok {
		// refinement: a specific label may replace whatever is stored,
		// the fallback never replaces anything
		if label != FallbackReactionLabel {
			node.Label = label
		}
	} else {
		g.UpsertNode(Node{ID: reactionID, Type: NodeReaction, Label: label})
	}
	g.AddEdge(paperID, reactionID, RelReports)

	for _, ve := range rec.VisualEntities {
		raw := util.SanitizeText(ve.PredictedSMILES)
		if len(raw) < cfg.MinNotationLen {
			continue
		}
		canonical, _ := chem.Canonicalize(chem.FirstFragment(raw))
		class := "Unknown"
		if tags, _ := chem.Classify(canonical); len(tags) > 0 {
			class = strings.Join(tags, " | ")
		}
		molID := "MOL_" + canonical
		g.UpsertNode(Node{
			ID:              molID,
			Type:            NodeMolecule,
			Label:           labelPreview(canonical, cfg.LabelPreviewLen),
			SMILES:          canonical,
			ReactivityClass: class,
		})
		g.AddEdge(molID, reactionID, RelParticipantIn)
	}

	for _, pep := range sanitizeAll(rec.TextEntities.Peptides) {
		id := "PEP_" + pep
		g.UpsertNode(Node{ID: id, Type: NodePeptide, Label: pep})
		g.AddEdge(id, reactionID, RelCatalyzes)
	}
	for _, cond := range sanitizeAll(rec.TextEntities.Conditions) {
		id := "COND_" + cond
		g.UpsertNode(Node{ID: id, Type: NodeCondition, Label: cond})
		g.AddEdge(reactionID, id, RelHasCondition)
	}
	for _, ch := range sanitizeAll(rec.TextEntities.Chemicals) {
		id := "CHEM_" + ch
		g.UpsertNode(Node{ID: id, Type: NodeChemical, Label: ch})
		g.AddEdge(id, reactionID, RelInvolvedIn)
	}
	return nil
}

// sanitizeAll strips extractor artifacts (NUL bytes, stray controls) from
// entity strings and drops entries that are empty after cleaning. Entity
// strings become node keys and Postgres payloads, so they must be clean.
func sanitizeAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = util.SanitizeText(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// MergeBatch merges an unordered collection of records into one graph.
// A malformed record is counted as skipped and never disturbs nodes
// already merged from other documents.
func MergeBatch(records []models.DocumentRecord, cfg MergeConfig) (*Graph, MergeStats) {
	g := New()
	var stats MergeStats
	for _, rec := range records {
		if err := MergeDocument(g, rec, cfg); err != nil {
			stats.Skipped++
			continue
		}
		stats.Merged++
	}
	return g, stats
}

// labelPreview truncates on rune boundaries so OCR artifacts in a raw
// notation can never split a multi-byte character in the label.
func labelPreview(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		r = r[:n]
	}
	return string(r) + "..."
}
