package workflows

import "chemgraph/internal/quality"

type GraphBuildInput struct {
	RunID    string `json:"run_id"`
	InputDir string `json:"input_dir"`
}

type GraphBuildProgress struct {
	RunID       string           `json:"run_id"`
	Stage       string           `json:"stage"`
	DocsMerged  int              `json:"docs_merged"`
	DocsSkipped int              `json:"docs_skipped"`
	NodeCount   int              `json:"node_count"`
	EdgeCount   int              `json:"edge_count"`
	Metrics     *quality.Metrics `json:"metrics,omitempty"`
}

type EvaluateGraphWorkflowInput struct {
	RunID        string `json:"run_id,omitempty"`
	ArtifactPath string `json:"artifact_path"`
}
