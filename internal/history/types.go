package history

import "time"

// Run is one recorded check run.
type Run struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	Branch       string    `json:"branch"`
	Commit       string    `json:"commit"`
	Title        string    `json:"title"`
	FilesChanged int       `json:"files_changed"`
	LinesChanged int       `json:"lines_changed"`
	Failures     int       `json:"failures"`
	Warnings     int       `json:"warnings"`
	Infos        int       `json:"infos"`
	Passed       bool      `json:"passed"`
}

// RunFinding is one finding attached to a recorded run.
type RunFinding struct {
	RunID    string `json:"run_id"`
	RuleID   string `json:"rule_id"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	File     string `json:"file,omitempty"`
	Line     int    `json:"line,omitempty"`
}

// Stats aggregates the stored runs.
type Stats struct {
	TotalRuns   int64            `json:"total_runs"`
	PassedRuns  int64            `json:"passed_runs"`
	ByRule      map[string]int64 `json:"by_rule"`
	BySeverity  map[string]int64 `json:"by_severity"`
	LastRunAt   time.Time        `json:"last_run_at"`
	FirstRunAt  time.Time        `json:"first_run_at"`
	AvgWarnings float64          `json:"avg_warnings"`
}
