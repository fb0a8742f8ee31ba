package activities

import "chemgraph/internal/quality"

type ListRecordsInput struct {
	InputDir string `json:"input_dir"`
}

type ListRecordsOutput struct {
	Paths []string `json:"paths"`
}

type MergeBatchInput struct {
	RunID string   `json:"run_id"`
	Paths []string `json:"paths"`
}

type MergeBatchOutput struct {
	DocsMerged     int    `json:"docs_merged"`
	DocsSkipped    int    `json:"docs_skipped"`
	NodeCount      int    `json:"node_count"`
	EdgeCount      int    `json:"edge_count"`
	ArtifactPath   string `json:"artifact_path"`
	ArtifactSHA256 string `json:"artifact_sha256"`
	GraphMLPath    string `json:"graphml_path"`
}

type PersistGraphInput struct {
	RunID        string `json:"run_id"`
	ArtifactPath string `json:"artifact_path"`
}

type EvaluateGraphInput struct {
	ArtifactPath string `json:"artifact_path"`
}

type EvaluateGraphOutput struct {
	Metrics quality.Metrics `json:"metrics"`
}

type WriteQualityReportInput struct {
	RunID   string          `json:"run_id"`
	Metrics quality.Metrics `json:"metrics"`
}

type WriteQualityReportOutput struct {
	Path string `json:"path"`
}

type RunManifest struct {
	RunID          string          `json:"run_id"`
	InputDir       string          `json:"input_dir"`
	DocsMerged     int             `json:"docs_merged"`
	DocsSkipped    int             `json:"docs_skipped"`
	NodeCount      int             `json:"node_count"`
	EdgeCount      int             `json:"edge_count"`
	ArtifactPath   string          `json:"artifact_path"`
	ArtifactSHA256 string          `json:"artifact_sha256"`
	GraphMLPath    string          `json:"graphml_path"`
	ReportPath     string          `json:"report_path"`
	Metrics        quality.Metrics `json:"metrics"`
}

type WriteRunManifestInput struct {
	RunID    string      `json:"run_id"`
	Manifest RunManifest `json:"manifest"`
}

type WriteRunManifestOutput struct {
	Path string `json:"path"`
}

type MarkRunInput struct {
	RunID        string   `json:"run_id"`
	InputDir     string   `json:"input_dir"`
	Status       string   `json:"status"`
	DocsMerged   int      `json:"docs_merged"`
	DocsSkipped  int      `json:"docs_skipped"`
	NodeCount    int      `json:"node_count"`
	EdgeCount    int      `json:"edge_count"`
	ArtifactPath string   `json:"artifact_path,omitempty"`
	ReportPath   string   `json:"report_path,omitempty"`
	FinalScore   *float64 `json:"final_score,omitempty"`
	FailReason   string   `json:"fail_reason,omitempty"`
}
