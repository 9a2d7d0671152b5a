package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Step names a secondary step of an upload or delete.
type Step string

// Steps whose failures are absorbed and reported rather than aborting.
const (
	StepResolveFile Step = "resolve_file"
	StepEnrich      Step = "persist_enrichment"
	StepIndexUpsert Step = "index_upsert"
	StepDeleteBlob  Step = "delete_blob"
	StepIndexDelete Step = "index_delete"
)

// StepFailure is one absorbed failure.
type StepFailure struct {
	Step Step
	Err  error
}

// OperationReport lists the secondary steps that failed during an operation
// whose primary effect still succeeded.
type OperationReport struct {
	Failures []StepFailure
}

// Record adds a failure for step. A nil err is ignored.
func (r *OperationReport) Record(step Step, err error) {
	if err == nil {
		return
	}
	r.Failures = append(r.Failures, StepFailure{Step: step, Err: err})
}

// OK reports whether every step succeeded.
func (r OperationReport) OK() bool {
	return len(r.Failures) == 0
}

// Failed reports whether step recorded a failure.
func (r OperationReport) Failed(step Step) bool {
	for _, f := range r.Failures {
		if f.Step == step {
			return true
		}
	}
	return false
}

// Steps returns the failed step names in order.
func (r OperationReport) Steps() []Step {
	steps := make([]Step, 0, len(r.Failures))
	for _, f := range r.Failures {
		steps = append(steps, f.Step)
	}
	return steps
}

// Err joins all failures, or returns nil when OK.
func (r OperationReport) Err() error {
	if r.OK() {
		return nil
	}
	errs := make([]error, 0, len(r.Failures))
	for _, f := range r.Failures {
		errs = append(errs, fmt.Errorf("%s: %w", f.Step, f.Err))
	}
	return errors.Join(errs...)
}

// String renders a one-line summary.
func (r OperationReport) String() string {
	if r.OK() {
		return "ok"
	}
	parts := make([]string, 0, len(r.Failures))
	for _, f := range r.Failures {
		parts = append(parts, fmt.Sprintf("%s (%v)", f.Step, f.Err))
	}
	return "failed: " + strings.Join(parts, "; ")
}

// UploadRequest carries a new file into the repository.
type UploadRequest struct {
	// Filename is the client-supplied name. Required.
	Filename string

	// Title defaults to the filename without its extension.
	Title string

	// Tags are user-supplied. When blank the auto-tagger fills them.
	Tags string
}

// UploadResult is the outcome of an upload whose record was persisted.
type UploadResult struct {
	Document Document
	Report   OperationReport
}

// DeleteResult is the outcome of a delete whose record was removed.
type DeleteResult struct {
	ID     int64
	Report OperationReport
}
