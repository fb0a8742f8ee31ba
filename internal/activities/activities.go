package activities

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"chemgraph/internal/config"
	"chemgraph/internal/graph"
	"chemgraph/internal/models"
	"chemgraph/internal/quality"
	"chemgraph/internal/storage"
	"chemgraph/internal/util"
)

type Activities struct {
	cfg       config.Config
	runRepo   *storage.RunRepo
	graphRepo *storage.GraphRepo
}

func New(cfg config.Config, db *storage.DB) *Activities {
	return &Activities{
		cfg:       cfg,
		runRepo:   storage.NewRunRepo(db),
		graphRepo: storage.NewGraphRepo(db),
	}
}

func (a *Activities) mergeConfig() graph.MergeConfig {
	return graph.MergeConfig{
		MinNotationLen:        a.cfg.MinNotationLen,
		LabelPreviewLen:       a.cfg.LabelPreviewLen,
		ReactionLabelMaxTypes: a.cfg.ReactionLabelMaxTypes,
	}
}

func (a *Activities) qualityConfig() quality.Config {
	return quality.Config{
		PeptideSpecificMinLen: a.cfg.PeptideSpecificMinLen,
		PeptideSpecificPrefix: a.cfg.PeptideSpecificPrefix,
	}
}

func (a *Activities) ListRecordsActivity(ctx context.Context, in ListRecordsInput) (ListRecordsOutput, error) {
	_ = ctx
	entries, err := os.ReadDir(in.InputDir)
	if err != nil {
		return ListRecordsOutput{}, fmt.Errorf("read input dir: %w", err)
	}
	paths := make([]string, 0)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(e.Name()), ".json") {
			paths = append(paths, filepath.Join(in.InputDir, e.Name()))
		}
	}
	sort.Strings(paths)
	return ListRecordsOutput{Paths: paths}, nil
}

// MergeBatchActivity runs the entire merge pass on one goroutine: node
// identity resolution needs a single shared view of existing keys, so all
// graph mutations are serialized here. Per-document failures are skipped
// and logged; only an artifact write failure fails the run.
func (a *Activities) MergeBatchActivity(ctx context.Context, in MergeBatchInput) (MergeBatchOutput, error) {
	_ = ctx
	g := graph.New()
	cfg := a.mergeConfig()
	merged, skipped := 0, 0
	for _, path := range in.Paths {
		rec, err := readRecord(path)
		if err != nil {
			log.Printf("skip document %s: %v", path, err)
			skipped++
			continue
		}
		if err := graph.MergeDocument(g, rec, cfg); err != nil {
			log.Printf("skip document %s: %v", path, err)
			skipped++
			continue
		}
		merged++
	}

	if g.NodeCount() == 0 {
		return MergeBatchOutput{}, fmt.Errorf("merged %d of %d documents: %w", merged, len(in.Paths), util.ErrEmptyGraph)
	}

	base := filepath.Join(a.cfg.DataOutRoot, in.RunID)
	artifactPath := filepath.Join(base, "graph.json")
	if err := util.WriteJSONAtomic(artifactPath, g); err != nil {
		return MergeBatchOutput{}, fmt.Errorf("write graph artifact: %w", err)
	}
	artifactBytes, err := os.ReadFile(artifactPath)
	if err != nil {
		return MergeBatchOutput{}, fmt.Errorf("checksum graph artifact: %w", err)
	}
	graphmlPath := filepath.Join(base, "graph.graphml")
	var sb strings.Builder
	if err := g.WriteGraphML(&sb); err != nil {
		return MergeBatchOutput{}, err
	}
	if err := util.WriteTextAtomic(graphmlPath, sb.String()); err != nil {
		return MergeBatchOutput{}, fmt.Errorf("write graphml export: %w", err)
	}

	return MergeBatchOutput{
		DocsMerged:     merged,
		DocsSkipped:    skipped,
		NodeCount:      g.NodeCount(),
		EdgeCount:      g.EdgeCount(),
		ArtifactPath:   artifactPath,
		ArtifactSHA256: util.SHA256Hex(artifactBytes),
		GraphMLPath:    graphmlPath,
	}, nil
}

func (a *Activities) PersistGraphActivity(ctx context.Context, in PersistGraphInput) error {
	g, err := loadGraph(in.ArtifactPath)
	if err != nil {
		return err
	}
	return a.graphRepo.ReplaceGraph(ctx, in.RunID, g)
}

func (a *Activities) EvaluateGraphActivity(ctx context.Context, in EvaluateGraphInput) (EvaluateGraphOutput, error) {
	_ = ctx
	g, err := loadGraph(in.ArtifactPath)
	if err != nil {
		return EvaluateGraphOutput{}, err
	}
	return EvaluateGraphOutput{Metrics: quality.Evaluate(g, a.qualityConfig())}, nil
}

func (a *Activities) WriteQualityReportActivity(ctx context.Context, in WriteQualityReportInput) (WriteQualityReportOutput, error) {
	_ = ctx
	path := filepath.Join(a.cfg.DataOutRoot, in.RunID, "quality_report.txt")
	if err := util.WriteTextAtomic(path, quality.Report(in.Metrics)); err != nil {
		return WriteQualityReportOutput{}, err
	}
	return WriteQualityReportOutput{Path: path}, nil
}

func (a *Activities) WriteRunManifestActivity(ctx context.Context, in WriteRunManifestInput) (WriteRunManifestOutput, error) {
	_ = ctx
	path := filepath.Join(a.cfg.DataOutRoot, in.RunID, "manifest.json")
	if err := util.WriteJSONAtomic(path, in.Manifest); err != nil {
		return WriteRunManifestOutput{}, err
	}
	return WriteRunManifestOutput{Path: path}, nil
}

func (a *Activities) MarkRunActivity(ctx context.Context, in MarkRunInput) error {
	return a.runRepo.UpsertRun(ctx, models.MergeRun{
		RunID:        in.RunID,
		InputDir:     in.InputDir,
		Status:       in.Status,
		DocsMerged:   in.DocsMerged,
		DocsSkipped:  in.DocsSkipped,
		NodeCount:    in.NodeCount,
		EdgeCount:    in.EdgeCount,
		ArtifactPath: in.ArtifactPath,
		ReportPath:   in.ReportPath,
		FinalScore:   in.FinalScore,
		FailReason:   in.FailReason,
	})
}

func readRecord(path string) (models.DocumentRecord, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return models.DocumentRecord{}, fmt.Errorf("read record: %w", err)
	}
	var rec models.DocumentRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return models.DocumentRecord{}, fmt.Errorf("decode record: %w", err)
	}
	return rec, nil
}

func loadGraph(path string) (*graph.Graph, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read graph artifact: %w", err)
	}
	g := graph.New()
	if err := json.Unmarshal(b, g); err != nil {
		return nil, fmt.Errorf("decode graph artifact: %w", err)
	}
	return g, nil
}
