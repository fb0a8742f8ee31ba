package workflows

import (
	"time"

	"chemgraph/internal/activities"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

const (
	QueryGetGraphBuildProgress = "GetGraphBuildProgress"
)

// GraphBuildWorkflow runs one batch: list extraction records, merge them
// into a single graph, persist and export it, then score it. The merge is
// one activity so all graph mutations stay serialized; every document
// failure inside it is isolated and only reduces the merged count.
func GraphBuildWorkflow(ctx workflow.Context, input GraphBuildInput) (string, error) {
	progress := GraphBuildProgress{RunID: input.RunID, Stage: "listing"}
	if err := workflow.SetQueryHandler(ctx, QueryGetGraphBuildProgress, func() (GraphBuildProgress, error) {
		return progress, nil
	}); err != nil {
		return "", err
	}
	ao := workflow.ActivityOptions{
		StartToCloseTimeout: 5 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2,
			MaximumInterval:    20 * time.Second,
			MaximumAttempts:    2,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)

	_ = workflow.ExecuteActivity(ctx, "MarkRunActivity", activities.MarkRunInput{
		RunID:    input.RunID,
		InputDir: input.InputDir,
		Status:   "running",
	}).Get(ctx, nil)

	fail := func(reason string, merge activities.MergeBatchOutput) (string, error) {
		progress.Stage = "failed"
		_ = workflow.ExecuteActivity(ctx, "MarkRunActivity", activities.MarkRunInput{
			RunID:       input.RunID,
			InputDir:    input.InputDir,
			Status:      "failed",
			DocsMerged:  merge.DocsMerged,
			DocsSkipped: merge.DocsSkipped,
			NodeCount:   merge.NodeCount,
			EdgeCount:   merge.EdgeCount,
			FailReason:  reason,
		}).Get(ctx, nil)
		return "failed", nil
	}

	var records activities.ListRecordsOutput
	if err := workflow.ExecuteActivity(ctx, "ListRecordsActivity", activities.ListRecordsInput{
		InputDir: input.InputDir,
	}).Get(ctx, &records); err != nil {
		return fail("list records: "+err.Error(), activities.MergeBatchOutput{})
	}

	progress.Stage = "merging"
	var merge activities.MergeBatchOutput
	if err := workflow.ExecuteActivity(ctx, "MergeBatchActivity", activities.MergeBatchInput{
		RunID: input.RunID,
		Paths: records.Paths,
	}).Get(ctx, &merge); err != nil {
		return fail("merge batch: "+err.Error(), activities.MergeBatchOutput{})
	}
	progress.DocsMerged = merge.DocsMerged
	progress.DocsSkipped = merge.DocsSkipped
	progress.NodeCount = merge.NodeCount
	progress.EdgeCount = merge.EdgeCount

	progress.Stage = "persisting"
	if err := workflow.ExecuteActivity(ctx, "PersistGraphActivity", activities.PersistGraphInput{
		RunID:        input.RunID,
		ArtifactPath: merge.ArtifactPath,
	}).Get(ctx, nil); err != nil {
		return fail("persist graph: "+err.Error(), merge)
	}

	progress.Stage = "evaluating"
	var eval activities.EvaluateGraphOutput
	if err := workflow.ExecuteActivity(ctx, "EvaluateGraphActivity", activities.EvaluateGraphInput{
		ArtifactPath: merge.ArtifactPath,
	}).Get(ctx, &eval); err != nil {
		return fail("evaluate graph: "+err.Error(), merge)
	}
	progress.Metrics = &eval.Metrics

	var report activities.WriteQualityReportOutput
	if err := workflow.ExecuteActivity(ctx, "WriteQualityReportActivity", activities.WriteQualityReportInput{
		RunID:   input.RunID,
		Metrics: eval.Metrics,
	}).Get(ctx, &report); err != nil {
		return fail("write quality report: "+err.Error(), merge)
	}

	_ = workflow.ExecuteActivity(ctx, "WriteRunManifestActivity", activities.WriteRunManifestInput{
		RunID: input.RunID,
		Manifest: activities.RunManifest{
			RunID:          input.RunID,
			InputDir:       input.InputDir,
			DocsMerged:     merge.DocsMerged,
			DocsSkipped:    merge.DocsSkipped,
			NodeCount:      merge.NodeCount,
			EdgeCount:      merge.EdgeCount,
			ArtifactPath:   merge.ArtifactPath,
			ArtifactSHA256: merge.ArtifactSHA256,
			GraphMLPath:    merge.GraphMLPath,
			ReportPath:     report.Path,
			Metrics:        eval.Metrics,
		},
	}).Get(ctx, nil)

	progress.Stage = "completed"
	score := eval.Metrics.FinalScore
	_ = workflow.ExecuteActivity(ctx, "MarkRunActivity", activities.MarkRunInput{
		RunID:        input.RunID,
		InputDir:     input.InputDir,
		Status:       "completed",
		DocsMerged:   merge.DocsMerged,
		DocsSkipped:  merge.DocsSkipped,
		NodeCount:    merge.NodeCount,
		EdgeCount:    merge.EdgeCount,
		ArtifactPath: merge.ArtifactPath,
		ReportPath:   report.Path,
		FinalScore:   &score,
	}).Get(ctx, nil)
	return "completed", nil
}

// EvaluateGraphWorkflow re-scores an existing graph artifact without
// re-running the merge. When a run id is supplied the report is written
// next to the run's other artifacts.
func EvaluateGraphWorkflow(ctx workflow.Context, input EvaluateGraphWorkflowInput) (activities.EvaluateGraphOutput, error) {
	ao := workflow.ActivityOptions{
		StartToCloseTimeout: 2 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    1 * time.Second,
			BackoffCoefficient: 2,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    2,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)

	var eval activities.EvaluateGraphOutput
	if err := workflow.ExecuteActivity(ctx, "EvaluateGraphActivity", activities.EvaluateGraphInput{
		ArtifactPath: input.ArtifactPath,
	}).Get(ctx, &eval); err != nil {
		return activities.EvaluateGraphOutput{}, err
	}
	if input.RunID != "" {
		_ = workflow.ExecuteActivity(ctx, "WriteQualityReportActivity", activities.WriteQualityReportInput{
			RunID:   input.RunID,
			Metrics: eval.Metrics,
		}).Get(ctx, nil)
	}
	return eval, nil
}
