package rules

import (
	"github.com/prguard/prguard/internal/config"
	"github.com/prguard/prguard/internal/report"
)

// ChangelogRule enforces a changelog entry for source changes. Whether a
// missing entry warns or blocks the merge is a policy choice; with
// policy "fail" this is the only rule that produces a failure.
type ChangelogRule struct{}

func (ChangelogRule) ID() string { return "changelog-entry" }

func (ChangelogRule) Description() string {
	return "Requires a changelog change alongside source changes (configurable policy)."
}

func (ChangelogRule) Check(ctx *Context) []report.Finding {
	if ctx.Policy.ChangelogPolicy == config.ChangelogOff {
		return nil
	}
	if len(ctx.SourcePaths()) == 0 {
		return nil
	}
	if ctx.HasChangelogChange() {
		return nil
	}

	severity := report.SeverityWarning
	message := "source changed without a CHANGELOG entry; consider adding one"
	if ctx.Policy.ChangelogPolicy == config.ChangelogFail {
		severity = report.SeverityFailure
		message = "source changed without a CHANGELOG entry"
	}

	return []report.Finding{{
		RuleID:   "changelog-entry",
		Severity: severity,
		Message:  message,
	}}
}
