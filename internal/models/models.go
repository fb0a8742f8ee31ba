package models

import "time"

// DocumentRecord is the per-paper JSON record produced by the external
// extraction front-end. Fields outside this shape are passthrough and ignored.
type DocumentRecord struct {
	SourceFile     string         `json:"source_file"`
	VisualEntities []VisualEntity `json:"extracted_visual_entities"`
	TextEntities   TextEntities   `json:"extracted_text_entities"`
}

type VisualEntity struct {
	ImageID         string `json:"image_id,omitempty"`
	Page            int    `json:"page,omitempty"`
	FilePath        string `json:"file_path,omitempty"`
	PredictedSMILES string `json:"predicted_smiles"`
}

type TextEntities struct {
	Peptides      []string `json:"peptides"`
	Conditions    []string `json:"conditions"`
	Chemicals     []string `json:"chemicals"`
	ReactionTypes []string `json:"reaction_types"`
}

type MergeRun struct {
	RunID        string     `json:"run_id"`
	InputDir     string     `json:"input_dir"`
	Status       string     `json:"status"`
	DocsMerged   int        `json:"docs_merged"`
	DocsSkipped  int        `json:"docs_skipped"`
	NodeCount    int        `json:"node_count"`
	EdgeCount    int        `json:"edge_count"`
	ArtifactPath string     `json:"artifact_path,omitempty"`
	ReportPath   string     `json:"report_path,omitempty"`
	FinalScore   *float64   `json:"final_score,omitempty"`
	FailReason   string     `json:"fail_reason,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}
