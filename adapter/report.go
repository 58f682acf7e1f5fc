package adapter

import (
	"time"

	"github.com/kbukum/nexus/errors"
)

// Status is the outcome of a run.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// Kind tags which adapter variant produced a Report.
type Kind string

const (
	KindRecord    Kind = "record"
	KindDelimited Kind = "delimited"
	KindStream    Kind = "stream"
)

// Report is the structured outcome of one adapter run.
type Report struct {
	// RunID identifies this run; chains share one RunID across steps.
	RunID        string  `json:"run_id"`
	Status       Status  `json:"status"`
	ProducerID   string  `json:"producer_id"`
	ProducerKind Kind    `json:"producer_kind"`
	Summary      Summary `json:"summary,omitempty"`
	Cause        error   `json:"-"`
	Recovered    bool    `json:"recovered"`
	// PrimaryCause is the failure that triggered a fallback attempt.
	PrimaryCause error `json:"-"`
	// Halt is set when a coordinator chain stopped at this report.
	Halt     error         `json:"-"`
	Duration time.Duration `json:"duration"`
}

// Succeeded reports whether the run succeeded.
func (r Report) Succeeded() bool { return r.Status == StatusSuccess }

// Code returns the error code of Cause, or "" on success.
func (r Report) Code() errors.ErrorCode {
	if appErr, ok := errors.AsAppError(r.Cause); ok {
		return appErr.Code
	}
	if r.Cause != nil {
		return errors.ErrCodeInternal
	}
	return ""
}

// Fields flattens the report for structured logs and external formatters.
func (r Report) Fields() map[string]any {
	f := map[string]any{
		"run_id":        r.RunID,
		"status":        string(r.Status),
		"producer_id":   r.ProducerID,
		"producer_kind": string(r.ProducerKind),
		"recovered":     r.Recovered,
		"duration_ms":   r.Duration.Milliseconds(),
	}
	if r.Summary != nil {
		f["summary"] = r.Summary.String()
	}
	if r.Cause != nil {
		f["cause"] = r.Cause.Error()
		f["code"] = string(r.Code())
	}
	if r.PrimaryCause != nil {
		f["primary_cause"] = r.PrimaryCause.Error()
	}
	if r.Halt != nil {
		f["halt"] = r.Halt.Error()
	}
	return f
}

// FilterByKind returns the reports produced by adapters of kind, in order.
func FilterByKind(reports []Report, kind Kind) []Report {
	var out []Report
	for _, r := range reports {
		if r.ProducerKind == kind {
			out = append(out, r)
		}
	}
	return out
}
