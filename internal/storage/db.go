package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
)

type DB struct {
	Pool *pgxpool.Pool

	schemaMu       sync.Mutex
	schemaPrepared bool
}

func NewDB(ctx context.Context, dsn string) (*DB, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return &DB{Pool: pool}, nil
}

func (d *DB) Close() {
	if d != nil && d.Pool != nil {
		d.Pool.Close()
	}
}

// ensureSchema keeps the schema resilient even if the operator forgot to
// run migrations.
func (d *DB) ensureSchema(ctx context.Context) error {
	d.schemaMu.Lock()
	defer d.schemaMu.Unlock()
	if d.schemaPrepared {
		return nil
	}

	ddl := `
CREATE TABLE IF NOT EXISTS merge_runs (
  run_id TEXT PRIMARY KEY,
  input_dir TEXT NOT NULL,
  status TEXT NOT NULL CHECK (status IN ('running','completed','failed')),
  docs_merged INT NOT NULL DEFAULT 0,
  docs_skipped INT NOT NULL DEFAULT 0,
  node_count INT NOT NULL DEFAULT 0,
  edge_count INT NOT NULL DEFAULT 0,
  artifact_path TEXT,
  report_path TEXT,
  final_score DOUBLE PRECISION,
  fail_reason TEXT,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  completed_at TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS graph_nodes (
  run_id TEXT NOT NULL REFERENCES merge_runs(run_id) ON DELETE CASCADE,
  node_id TEXT NOT NULL,
  node_type TEXT NOT NULL,
  label TEXT NOT NULL,
  payload JSONB NOT NULL DEFAULT '{}'::jsonb,
  PRIMARY KEY (run_id, node_id)
);

CREATE TABLE IF NOT EXISTS graph_edges (
  edge_id BIGSERIAL PRIMARY KEY,
  run_id TEXT NOT NULL REFERENCES merge_runs(run_id) ON DELETE CASCADE,
  source_node_id TEXT NOT NULL,
  target_node_id TEXT NOT NULL,
  relation TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_merge_runs_created ON merge_runs(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_graph_nodes_type ON graph_nodes(run_id, node_type);
CREATE INDEX IF NOT EXISTS idx_graph_edges_run ON graph_edges(run_id, relation);
`
	if _, err := d.Pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	d.schemaPrepared = true
	return nil
}
