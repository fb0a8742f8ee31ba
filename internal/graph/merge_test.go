package graph

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"chemgraph/internal/models"
	"chemgraph/internal/util"
)

func hydrolysisRecord() models.DocumentRecord {
	return models.DocumentRecord{
		SourceFile: "paper1.pdf",
		VisualEntities: []models.VisualEntity{
			{ImageID: "img1", PredictedSMILES: "[N-]=[N+]=CC(=O)OCC"},
		},
		TextEntities: models.TextEntities{
			Peptides:      []string{"Ac-HLVFFAE"},
			ReactionTypes: []string{"Hydrolysis"},
		},
	}
}

func TestMergeDocumentBuildsExpectedNodes(t *testing.T) {
	g := New()
	if err := MergeDocument(g, hydrolysisRecord(), DefaultMergeConfig()); err != nil {
		t.Fatal(err)
	}

	if g.NodeCount() != 4 {
		t.Fatalf("node count = %d, want 4", g.NodeCount())
	}
	if _, ok := g.Node("paper1.pdf"); !ok {
		t.Fatal("missing paper node")
	}
	rxn, ok := g.Node("Reaction_paper1.pdf")
	if !ok {
		t.Fatal("missing reaction node")
	}
	if rxn.Label != "Hydrolysis" {
		t.Fatalf("reaction label = %q", rxn.Label)
	}
	if _, ok := g.Node("PEP_Ac-HLVFFAE"); !ok {
		t.Fatal("missing peptide node")
	}

	var mol *Node
	for _, n := range g.Nodes() {
		if n.Type == NodeMolecule {
			mol = n
		}
	}
	if mol == nil {
		t.Fatal("missing molecule node")
	}
	if mol.ReactivityClass != "Alpha-Diazo-Ester | Diazo-Group" {
		t.Fatalf("reactivity class = %q", mol.ReactivityClass)
	}

	rels := map[RelationType]int{}
	for _, e := range g.Edges() {
		rels[e.Relation]++
	}
	if rels[RelReports] != 1 || rels[RelCatalyzes] != 1 || rels[RelParticipantIn] != 1 {
		t.Fatalf("unexpected edge relations %v", rels)
	}
}

func TestMergeDocumentIdempotentNodeIdentity(t *testing.T) {
	g := New()
	cfg := DefaultMergeConfig()
	if err := MergeDocument(g, hydrolysisRecord(), cfg); err != nil {
		t.Fatal(err)
	}
	nodes, edges := g.NodeCount(), g.EdgeCount()
	if err := MergeDocument(g, hydrolysisRecord(), cfg); err != nil {
		t.Fatal(err)
	}
	if g.NodeCount() != nodes {
		t.Fatalf("re-merge created nodes: %d -> %d", nodes, g.NodeCount())
	}
	if g.EdgeCount() != 2*edges {
		t.Fatalf("re-merge edge count = %d, want %d", g.EdgeCount(), 2*edges)
	}
}

func TestMergeEquivalentNotationsShareMoleculeNode(t *testing.T) {
	g := New()
	cfg := DefaultMergeConfig()
	a := models.DocumentRecord{
		SourceFile:     "a.pdf",
		VisualEntities: []models.VisualEntity{{PredictedSMILES: "Clc1ccccc1"}},
	}
	b := models.DocumentRecord{
		SourceFile:     "b.pdf",
		VisualEntities: []models.VisualEntity{{PredictedSMILES: "C1=CC=CC=C1Cl"}},
	}
	if err := MergeDocument(g, a, cfg); err != nil {
		t.Fatal(err)
	}
	if err := MergeDocument(g, b, cfg); err != nil {
		t.Fatal(err)
	}
	mols := 0
	for _, n := range g.Nodes() {
		if n.Type == NodeMolecule {
			mols++
		}
	}
	if mols != 1 {
		t.Fatalf("molecule nodes = %d, want 1", mols)
	}
}

func TestMergeOrderIndependentNodeSet(t *testing.T) {
	cfg := DefaultMergeConfig()
	a := hydrolysisRecord()
	b := models.DocumentRecord{
		SourceFile:     "b.pdf",
		VisualEntities: []models.VisualEntity{{PredictedSMILES: "Clc1ccccc1"}},
		TextEntities:   models.TextEntities{Conditions: []string{"40 C"}},
	}

	ids := func(recs ...models.DocumentRecord) map[string]bool {
		g, _ := MergeBatch(recs, cfg)
		out := map[string]bool{}
		for _, n := range g.Nodes() {
			out[n.ID] = true
		}
		return out
	}
	ab, ba := ids(a, b), ids(b, a)
	if len(ab) != len(ba) {
		t.Fatalf("node sets differ in size: %d vs %d", len(ab), len(ba))
	}
	for id := range ab {
		if !ba[id] {
			t.Fatalf("node %q missing after reordering", id)
		}
	}
}

func TestMergeShortNotationSkipped(t *testing.T) {
	g := New()
	rec := models.DocumentRecord{
		SourceFile:     "short.pdf",
		VisualEntities: []models.VisualEntity{{PredictedSMILES: "CCO"}},
	}
	if err := MergeDocument(g, rec, DefaultMergeConfig()); err != nil {
		t.Fatal(err)
	}
	for _, n := range g.Nodes() {
		if n.Type == NodeMolecule {
			t.Fatal("short notation produced a molecule node")
		}
	}
}

func TestMergeUnparseableNotationKeptRaw(t *testing.T) {
	g := New()
	raw := "XYZ!!!####@@"
	rec := models.DocumentRecord{
		SourceFile:     "raw.pdf",
		VisualEntities: []models.VisualEntity{{PredictedSMILES: raw}},
	}
	if err := MergeDocument(g, rec, DefaultMergeConfig()); err != nil {
		t.Fatal(err)
	}
	n, ok := g.Node("MOL_" + raw)
	if !ok {
		t.Fatal("unparseable notation should key the node by its raw form")
	}
	if n.ReactivityClass != "Unknown" {
		t.Fatalf("reactivity class = %q, want Unknown", n.ReactivityClass)
	}
	if n.Label != raw+"..." {
		t.Fatalf("label = %q", n.Label)
	}
}

func TestMergeReactionLabelRefinement(t *testing.T) {
	g := New()
	cfg := DefaultMergeConfig()
	bare := models.DocumentRecord{SourceFile: "p.pdf"}
	typed := models.DocumentRecord{
		SourceFile:   "p.pdf",
		TextEntities: models.TextEntities{ReactionTypes: []string{"Oxidation", "Reduction", "Ignored"}},
	}

	if err := MergeDocument(g, bare, cfg); err != nil {
		t.Fatal(err)
	}
	rxn, _ := g.Node("Reaction_p.pdf")
	if rxn.Label != FallbackReactionLabel {
		t.Fatalf("label = %q", rxn.Label)
	}

	if err := MergeDocument(g, typed, cfg); err != nil {
		t.Fatal(err)
	}
	if rxn.Label != "Oxidation / Reduction" {
		t.Fatalf("label after refinement = %q", rxn.Label)
	}

	// the fallback must never demote a specific label
	if err := MergeDocument(g, bare, cfg); err != nil {
		t.Fatal(err)
	}
	if rxn.Label != "Oxidation / Reduction" {
		t.Fatalf("fallback overwrote specific label: %q", rxn.Label)
	}
}

func TestMergeMalformedRecordRejected(t *testing.T) {
	g := New()
	err := MergeDocument(g, models.DocumentRecord{SourceFile: "  "}, DefaultMergeConfig())
	if !errors.Is(err, util.ErrRecordMalformed) {
		t.Fatalf("got %v", err)
	}
	if g.NodeCount() != 0 {
		t.Fatal("malformed record disturbed the graph")
	}
}

func TestMergeBatchCountsSkipped(t *testing.T) {
	records := []models.DocumentRecord{
		hydrolysisRecord(),
		{SourceFile: ""},
		{SourceFile: "other.pdf"},
	}
	g, stats := MergeBatch(records, DefaultMergeConfig())
	if stats.Merged != 2 || stats.Skipped != 1 {
		t.Fatalf("stats = %+v", stats)
	}
	if g.NodeCount() == 0 {
		t.Fatal("expected merged nodes")
	}
}

func TestMergeSanitizesNotation(t *testing.T) {
	g := New()
	rec := models.DocumentRecord{
		SourceFile:     "noisy.pdf",
		VisualEntities: []models.VisualEntity{{PredictedSMILES: "CC\x00CCCCCCCCO"}},
	}
	if err := MergeDocument(g, rec, DefaultMergeConfig()); err != nil {
		t.Fatal(err)
	}
	mols := 0
	for _, n := range g.Nodes() {
		if strings.ContainsRune(n.ID, 0) || strings.ContainsRune(n.Label, 0) {
			t.Fatalf("control byte survived into node %q", n.ID)
		}
		if n.Type == NodeMolecule {
			mols++
			if n.SMILES == "" {
				t.Fatalf("sanitized notation did not parse: %+v", n)
			}
		}
	}
	if mols != 1 {
		t.Fatalf("molecule nodes = %d, want 1", mols)
	}
}

func TestMergeLabelPreviewRuneSafe(t *testing.T) {
	g := New()
	raw := strings.Repeat("Δ", 22) // unparseable, multi-byte, past the preview cut
	rec := models.DocumentRecord{
		SourceFile:     "ocr.pdf",
		VisualEntities: []models.VisualEntity{{PredictedSMILES: raw}},
	}
	if err := MergeDocument(g, rec, DefaultMergeConfig()); err != nil {
		t.Fatal(err)
	}
	n, ok := g.Node("MOL_" + raw)
	if !ok {
		t.Fatal("missing molecule node")
	}
	if !utf8.ValidString(n.Label) {
		t.Fatalf("label is not valid UTF-8: %q", n.Label)
	}
	if n.Label != strings.Repeat("Δ", 20)+"..." {
		t.Fatalf("label = %q", n.Label)
	}
}

func TestMergeSanitizesEntityStrings(t *testing.T) {
	g := New()
	rec := models.DocumentRecord{
		SourceFile:   "clean.pdf",
		TextEntities: models.TextEntities{Chemicals: []string{"Rh\x002(OAc)4", "\x01"}},
	}
	if err := MergeDocument(g, rec, DefaultMergeConfig()); err != nil {
		t.Fatal(err)
	}
	if _, ok := g.Node("CHEM_Rh2(OAc)4"); !ok {
		t.Fatal("control bytes not stripped from chemical entity")
	}
	chems := 0
	for _, n := range g.Nodes() {
		if n.Type == NodeChemical {
			chems++
		}
	}
	if chems != 1 {
		t.Fatalf("chemical nodes = %d, want 1 (empty entity must be dropped)", chems)
	}
}
