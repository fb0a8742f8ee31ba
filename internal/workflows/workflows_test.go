package workflows

import (
	"context"
	"errors"
	"testing"

	"chemgraph/internal/activities"
	"chemgraph/internal/quality"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/testsuite"
)

func registerActivityName[T any](env *testsuite.TestWorkflowEnvironment, name string, fn T) {
	env.RegisterActivityWithOptions(fn, activity.RegisterOptions{Name: name})
}

func registerGraphBuildActivities(env *testsuite.TestWorkflowEnvironment) {
	registerActivityName(env, "MarkRunActivity", func(context.Context, activities.MarkRunInput) error { return nil })
	registerActivityName(env, "ListRecordsActivity", func(context.Context, activities.ListRecordsInput) (activities.ListRecordsOutput, error) {
		return activities.ListRecordsOutput{}, nil
	})
	registerActivityName(env, "MergeBatchActivity", func(context.Context, activities.MergeBatchInput) (activities.MergeBatchOutput, error) {
		return activities.MergeBatchOutput{}, nil
	})
	registerActivityName(env, "PersistGraphActivity", func(context.Context, activities.PersistGraphInput) error { return nil })
	registerActivityName(env, "EvaluateGraphActivity", func(context.Context, activities.EvaluateGraphInput) (activities.EvaluateGraphOutput, error) {
		return activities.EvaluateGraphOutput{}, nil
	})
	registerActivityName(env, "WriteQualityReportActivity", func(context.Context, activities.WriteQualityReportInput) (activities.WriteQualityReportOutput, error) {
		return activities.WriteQualityReportOutput{}, nil
	})
	registerActivityName(env, "WriteRunManifestActivity", func(context.Context, activities.WriteRunManifestInput) (activities.WriteRunManifestOutput, error) {
		return activities.WriteRunManifestOutput{}, nil
	})
}

func TestGraphBuildWorkflowSuccess(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(GraphBuildWorkflow)
	registerGraphBuildActivities(env)

	metrics := quality.Metrics{RCS: 1.0, CRS: 0.5, KD: 4.0, FinalScore: 0.75, NodeCount: 5, EdgeCount: 4}
	env.OnActivity("MarkRunActivity", mock.Anything, mock.Anything).Return(nil)
	env.OnActivity("ListRecordsActivity", mock.Anything, activities.ListRecordsInput{InputDir: "/data/in"}).
		Return(activities.ListRecordsOutput{Paths: []string{"/data/in/a.json", "/data/in/b.json"}}, nil)
	env.OnActivity("MergeBatchActivity", mock.Anything, mock.Anything).
		Return(activities.MergeBatchOutput{
			DocsMerged:   2,
			NodeCount:    5,
			EdgeCount:    4,
			ArtifactPath: "/data/out/run1/graph.json",
			GraphMLPath:  "/data/out/run1/graph.graphml",
		}, nil)
	env.OnActivity("PersistGraphActivity", mock.Anything, mock.Anything).Return(nil)
	env.OnActivity("EvaluateGraphActivity", mock.Anything, activities.EvaluateGraphInput{ArtifactPath: "/data/out/run1/graph.json"}).
		Return(activities.EvaluateGraphOutput{Metrics: metrics}, nil)
	env.OnActivity("WriteQualityReportActivity", mock.Anything, mock.Anything).
		Return(activities.WriteQualityReportOutput{Path: "/data/out/run1/quality_report.txt"}, nil)
	env.OnActivity("WriteRunManifestActivity", mock.Anything, mock.Anything).
		Return(activities.WriteRunManifestOutput{Path: "/data/out/run1/manifest.json"}, nil)

	env.ExecuteWorkflow(GraphBuildWorkflow, GraphBuildInput{RunID: "run1", InputDir: "/data/in"})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var out string
	require.NoError(t, env.GetWorkflowResult(&out))
	require.Equal(t, "completed", out)

	resp, err := env.QueryWorkflow(QueryGetGraphBuildProgress)
	require.NoError(t, err)
	var prog GraphBuildProgress
	require.NoError(t, resp.Get(&prog))
	require.Equal(t, "completed", prog.Stage)
	require.Equal(t, 2, prog.DocsMerged)
	require.NotNil(t, prog.Metrics)
}

func TestGraphBuildWorkflowMergeFailureFailsGracefully(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(GraphBuildWorkflow)
	registerGraphBuildActivities(env)

	env.OnActivity("MarkRunActivity", mock.Anything, mock.Anything).Return(nil)
	env.OnActivity("ListRecordsActivity", mock.Anything, mock.Anything).
		Return(activities.ListRecordsOutput{Paths: []string{"/data/in/a.json"}}, nil)
	env.OnActivity("MergeBatchActivity", mock.Anything, mock.Anything).
		Return(activities.MergeBatchOutput{}, errors.New("write graph artifact: disk full"))

	env.ExecuteWorkflow(GraphBuildWorkflow, GraphBuildInput{RunID: "run1", InputDir: "/data/in"})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var out string
	require.NoError(t, env.GetWorkflowResult(&out))
	require.Equal(t, "failed", out)
}

func TestEvaluateGraphWorkflow(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(EvaluateGraphWorkflow)
	registerActivityName(env, "EvaluateGraphActivity", func(context.Context, activities.EvaluateGraphInput) (activities.EvaluateGraphOutput, error) {
		return activities.EvaluateGraphOutput{}, nil
	})
	registerActivityName(env, "WriteQualityReportActivity", func(context.Context, activities.WriteQualityReportInput) (activities.WriteQualityReportOutput, error) {
		return activities.WriteQualityReportOutput{}, nil
	})

	metrics := quality.Metrics{RCS: 0.3, CRS: 1.0, FinalScore: 0.65}
	env.OnActivity("EvaluateGraphActivity", mock.Anything, activities.EvaluateGraphInput{ArtifactPath: "/data/out/run1/graph.json"}).
		Return(activities.EvaluateGraphOutput{Metrics: metrics}, nil)
	env.OnActivity("WriteQualityReportActivity", mock.Anything, mock.Anything).
		Return(activities.WriteQualityReportOutput{Path: "/data/out/run1/quality_report.txt"}, nil)

	env.ExecuteWorkflow(EvaluateGraphWorkflow, EvaluateGraphWorkflowInput{RunID: "run1", ArtifactPath: "/data/out/run1/graph.json"})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var out activities.EvaluateGraphOutput
	require.NoError(t, env.GetWorkflowResult(&out))
	require.Equal(t, metrics, out.Metrics)
}
