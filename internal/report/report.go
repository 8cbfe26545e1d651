// Package report defines the evaluation report and its renderers.
package report

import (
	"time"
)

// Severity of a finding. Warnings are advisory; failures block the merge.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityFailure Severity = "failure"
)

// Finding is one message produced by a rule. File and Line are set only
// for findings tied to a diff position.
type Finding struct {
	RuleID   string   `json:"rule_id"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	File     string   `json:"file,omitempty"`
	Line     int      `json:"line,omitempty"`
}

// Report accumulates findings for one evaluation run. Once the evaluator
// returns it, nothing appends to it anymore.
type Report struct {
	Failures []Finding `json:"failures"`
	Warnings []Finding `json:"warnings"`
	Infos    []Finding `json:"infos"`

	// Success carries the all-clear message; set only when the run
	// produced no warnings and no failures.
	Success string `json:"success,omitempty"`

	// Run metadata
	Title        string        `json:"title,omitempty"`
	FilesChanged int           `json:"files_changed"`
	LinesChanged int           `json:"lines_changed"`
	Duration     time.Duration `json:"duration"`
	Cached       bool          `json:"cached,omitempty"`
}

// Add routes a finding to the list matching its severity.
func (r *Report) Add(f Finding) {
	switch f.Severity {
	case SeverityFailure:
		r.Failures = append(r.Failures, f)
	case SeverityWarning:
		r.Warnings = append(r.Warnings, f)
	default:
		r.Infos = append(r.Infos, f)
	}
}

// AddAll adds every finding.
func (r *Report) AddAll(findings []Finding) {
	for _, f := range findings {
		r.Add(f)
	}
}

// Clean reports whether the run produced no warnings and no failures.
func (r *Report) Clean() bool {
	return len(r.Failures) == 0 && len(r.Warnings) == 0
}

// Passed reports whether the run produced no failures.
func (r *Report) Passed() bool {
	return len(r.Failures) == 0
}

// Total returns the number of findings across all severities.
func (r *Report) Total() int {
	return len(r.Failures) + len(r.Warnings) + len(r.Infos)
}

// All returns every finding ordered failures, warnings, infos.
func (r *Report) All() []Finding {
	all := make([]Finding, 0, r.Total())
	all = append(all, r.Failures...)
	all = append(all, r.Warnings...)
	all = append(all, r.Infos...)
	return all
}
