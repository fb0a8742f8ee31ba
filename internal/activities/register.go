package activities

import "go.temporal.io/sdk/worker"

func Register(w worker.Worker, a *Activities) {
	w.RegisterActivity(a.ListRecordsActivity)
	w.RegisterActivity(a.MergeBatchActivity)
	w.RegisterActivity(a.PersistGraphActivity)
	w.RegisterActivity(a.EvaluateGraphActivity)
	w.RegisterActivity(a.WriteQualityReportActivity)
	w.RegisterActivity(a.WriteRunManifestActivity)
	w.RegisterActivity(a.MarkRunActivity)
}
