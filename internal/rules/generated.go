package rules

import (
	"fmt"

	"github.com/prguard/prguard/internal/report"
)

// GeneratedRule notes changes to files matching a generated-code marker
// so reviewers double-check they were intentional.
type GeneratedRule struct{}

func (GeneratedRule) ID() string { return "generated-files" }

func (GeneratedRule) Description() string {
	return "Notes changed files that match generated-code markers."
}

func (GeneratedRule) Check(ctx *Context) []report.Finding {
	var findings []report.Finding
	for _, path := range ctx.Change.AllPaths() {
		if !ctx.Classes.IsGenerated(path) {
			continue
		}
		findings = append(findings, report.Finding{
			RuleID:   "generated-files",
			Severity: report.SeverityInfo,
			Message:  fmt.Sprintf("%s looks generated; double-check this change is intentional", path),
			File:     path,
		})
	}
	return findings
}
