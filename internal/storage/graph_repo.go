package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"chemgraph/internal/graph"
)

type GraphRepo struct {
	db *DB
}

func NewGraphRepo(db *DB) *GraphRepo {
	return &GraphRepo{db: db}
}

// ReplaceGraph stores the merged graph for a run, replacing any earlier
// snapshot of the same run. Parallel edges survive via the serial edge id.
func (r *GraphRepo) ReplaceGraph(ctx context.Context, runID string, g *graph.Graph) error {
	if err := r.db.ensureSchema(ctx); err != nil {
		return err
	}
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin graph tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx, `DELETE FROM graph_edges WHERE run_id = $1`, runID); err != nil {
		return fmt.Errorf("clear graph edges: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM graph_nodes WHERE run_id = $1`, runID); err != nil {
		return fmt.Errorf("clear graph nodes: %w", err)
	}

	for _, n := range g.Nodes() {
		payload := map[string]any{}
		if n.SMILES != "" {
			payload["smiles"] = n.SMILES
		}
		if n.ReactivityClass != "" {
			payload["reactivity_class"] = n.ReactivityClass
		}
		pj, _ := json.Marshal(payload)
		if _, err := tx.Exec(ctx, `
INSERT INTO graph_nodes(run_id, node_id, node_type, label, payload)
VALUES ($1, $2, $3, $4, $5::jsonb)`,
			runID, n.ID, string(n.Type), n.Label, string(pj)); err != nil {
			return fmt.Errorf("insert graph node: %w", err)
		}
	}
	for _, e := range g.Edges() {
		if _, err := tx.Exec(ctx, `
INSERT INTO graph_edges(run_id, source_node_id, target_node_id, relation)
VALUES ($1, $2, $3, $4)`,
			runID, e.From, e.To, string(e.Relation)); err != nil {
			return fmt.Errorf("insert graph edge: %w", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit graph tx: %w", err)
	}
	return nil
}

type NodeTypeCount struct {
	NodeType string `json:"node_type"`
	Count    int    `json:"count"`
}

func (r *GraphRepo) CountNodesByType(ctx context.Context, runID string) ([]NodeTypeCount, error) {
	if err := r.db.ensureSchema(ctx); err != nil {
		return nil, err
	}
	rows, err := r.db.Pool.Query(ctx, `
SELECT node_type, COUNT(*) FROM graph_nodes WHERE run_id = $1
GROUP BY node_type ORDER BY node_type`, runID)
	if err != nil {
		return nil, fmt.Errorf("count nodes by type: %w", err)
	}
	defer rows.Close()
	out := make([]NodeTypeCount, 0)
	for rows.Next() {
		var c NodeTypeCount
		if err := rows.Scan(&c.NodeType, &c.Count); err != nil {
			return nil, fmt.Errorf("scan node type count: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
