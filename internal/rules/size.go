package rules

import (
	"fmt"

	"github.com/prguard/prguard/internal/report"
)

// SizeRule warns on large changesets. Both thresholds fire independently:
// a 1200-line PR gets the "large" and the "very large" warning.
type SizeRule struct{}

func (SizeRule) ID() string { return "pr-size" }

func (SizeRule) Description() string {
	return "Warns when the changed line count exceeds the configured thresholds."
}

func (SizeRule) Check(ctx *Context) []report.Finding {
	total := ctx.Change.TotalChanged()

	var findings []report.Finding
	if total > ctx.Policy.LargeChangeLines {
		findings = append(findings, report.Finding{
			RuleID:   "pr-size",
			Severity: report.SeverityWarning,
			Message:  fmt.Sprintf("large PR: %d lines changed (threshold %d); consider splitting it", total, ctx.Policy.LargeChangeLines),
		})
	}
	if total > ctx.Policy.HugeChangeLines {
		findings = append(findings, report.Finding{
			RuleID:   "pr-size",
			Severity: report.SeverityWarning,
			Message:  fmt.Sprintf("very large PR: %d lines changed (threshold %d); review may be slow or superficial", total, ctx.Policy.HugeChangeLines),
		})
	}
	return findings
}
