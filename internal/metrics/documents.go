package metrics

import (
	"context"
	"io"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/custodia-labs/docshelf/internal/core/domain"
	"github.com/custodia-labs/docshelf/internal/core/ports/driving"
)

var (
	pipelineRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pipeline_runs_total",
			Help:      "Upload and delete pipeline runs by outcome",
		},
		[]string{"pipeline", "outcome"},
	)

	pipelineStepFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pipeline_step_failures_total",
			Help:      "Absorbed secondary step failures",
		},
		[]string{"step"},
	)
)

func init() {
	prometheus.MustRegister(pipelineRunsTotal)
	prometheus.MustRegister(pipelineStepFailuresTotal)
}

// Pipeline outcomes.
const (
	outcomeOK      = "ok"
	outcomePartial = "partial"
	outcomeError   = "error"
)

type instrumentedDocuments struct {
	driving.DocumentService
}

// InstrumentDocuments wraps next, counting pipeline runs and the secondary
// step failures listed in their reports.
func InstrumentDocuments(next driving.DocumentService) driving.DocumentService {
	return &instrumentedDocuments{DocumentService: next}
}

func recordRun(pipeline string, report domain.OperationReport, err error) {
	switch {
	case err != nil:
		pipelineRunsTotal.WithLabelValues(pipeline, outcomeError).Inc()
		return
	case report.OK():
		pipelineRunsTotal.WithLabelValues(pipeline, outcomeOK).Inc()
	default:
		pipelineRunsTotal.WithLabelValues(pipeline, outcomePartial).Inc()
	}
	for _, step := range report.Steps() {
		pipelineStepFailuresTotal.WithLabelValues(string(step)).Inc()
	}
}

func (d *instrumentedDocuments) Upload(
	ctx context.Context, req domain.UploadRequest, r io.Reader,
) (*domain.UploadResult, error) {
	res, err := d.DocumentService.Upload(ctx, req, r)
	var report domain.OperationReport
	if res != nil {
		report = res.Report
	}
	recordRun("upload", report, err)
	return res, err
}

func (d *instrumentedDocuments) Delete(ctx context.Context, id int64) (*domain.DeleteResult, error) {
	res, err := d.DocumentService.Delete(ctx, id)
	var report domain.OperationReport
	if res != nil {
		report = res.Report
	}
	recordRun("delete", report, err)
	return res, err
}
