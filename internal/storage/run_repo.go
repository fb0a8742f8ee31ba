package storage

import (
	"context"
	"fmt"

	"chemgraph/internal/models"
)

type RunRepo struct {
	db *DB
}

func NewRunRepo(db *DB) *RunRepo {
	return &RunRepo{db: db}
}

func (r *RunRepo) UpsertRun(ctx context.Context, run models.MergeRun) error {
	if err := r.db.ensureSchema(ctx); err != nil {
		return err
	}
	_, err := r.db.Pool.Exec(ctx, `
INSERT INTO merge_runs(run_id, input_dir, status, docs_merged, docs_skipped, node_count, edge_count,
                       artifact_path, report_path, final_score, fail_reason, updated_at, completed_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8,''), NULLIF($9,''), $10, NULLIF($11,''), NOW(),
        CASE WHEN $3 IN ('completed','failed') THEN NOW() ELSE NULL END)
ON CONFLICT (run_id) DO UPDATE SET
  status = EXCLUDED.status,
  docs_merged = EXCLUDED.docs_merged,
  docs_skipped = EXCLUDED.docs_skipped,
  node_count = EXCLUDED.node_count,
  edge_count = EXCLUDED.edge_count,
  artifact_path = COALESCE(EXCLUDED.artifact_path, merge_runs.artifact_path),
  report_path = COALESCE(EXCLUDED.report_path, merge_runs.report_path),
  final_score = COALESCE(EXCLUDED.final_score, merge_runs.final_score),
  fail_reason = EXCLUDED.fail_reason,
  updated_at = NOW(),
  completed_at = EXCLUDED.completed_at`,
		run.RunID, run.InputDir, run.Status, run.DocsMerged, run.DocsSkipped,
		run.NodeCount, run.EdgeCount, run.ArtifactPath, run.ReportPath,
		run.FinalScore, run.FailReason)
	if err != nil {
		return fmt.Errorf("upsert merge run: %w", err)
	}
	return nil
}

func (r *RunRepo) GetRun(ctx context.Context, runID string) (models.MergeRun, error) {
	if err := r.db.ensureSchema(ctx); err != nil {
		return models.MergeRun{}, err
	}
	row := r.db.Pool.QueryRow(ctx, `
SELECT run_id, input_dir, status, docs_merged, docs_skipped, node_count, edge_count,
       COALESCE(artifact_path,''), COALESCE(report_path,''), final_score,
       COALESCE(fail_reason,''), created_at, updated_at, completed_at
FROM merge_runs WHERE run_id = $1`, runID)
	var run models.MergeRun
	if err := row.Scan(&run.RunID, &run.InputDir, &run.Status, &run.DocsMerged, &run.DocsSkipped,
		&run.NodeCount, &run.EdgeCount, &run.ArtifactPath, &run.ReportPath, &run.FinalScore,
		&run.FailReason, &run.CreatedAt, &run.UpdatedAt, &run.CompletedAt); err != nil {
		return models.MergeRun{}, fmt.Errorf("get merge run: %w", err)
	}
	return run, nil
}

func (r *RunRepo) ListRuns(ctx context.Context) ([]models.MergeRun, error) {
	if err := r.db.ensureSchema(ctx); err != nil {
		return nil, err
	}
	rows, err := r.db.Pool.Query(ctx, `
SELECT run_id, input_dir, status, docs_merged, docs_skipped, node_count, edge_count,
       COALESCE(artifact_path,''), COALESCE(report_path,''), final_score,
       COALESCE(fail_reason,''), created_at, updated_at, completed_at
FROM merge_runs ORDER BY created_at DESC LIMIT 200`)
	if err != nil {
		return nil, fmt.Errorf("list merge runs: %w", err)
	}
	defer rows.Close()
	out := make([]models.MergeRun, 0)
	for rows.Next() {
		var run models.MergeRun
		if err := rows.Scan(&run.RunID, &run.InputDir, &run.Status, &run.DocsMerged, &run.DocsSkipped,
			&run.NodeCount, &run.EdgeCount, &run.ArtifactPath, &run.ReportPath, &run.FinalScore,
			&run.FailReason, &run.CreatedAt, &run.UpdatedAt, &run.CompletedAt); err != nil {
			return nil, fmt.Errorf("scan merge run: %w", err)
		}
		out = append(out, run)
	}
	return out, rows.Err()
}
