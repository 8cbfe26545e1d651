package rules

import (
	"fmt"
	"strings"

	"github.com/prguard/prguard/internal/report"
)

// NeedsTestsRule warns when production source changed past the configured
// size without any test change alongside it.
type NeedsTestsRule struct{}

func (NeedsTestsRule) ID() string { return "needs-tests" }

func (NeedsTestsRule) Description() string {
	return "Warns when source changes above the size threshold come without test changes."
}

func (NeedsTestsRule) Check(ctx *Context) []report.Finding {
	if len(ctx.SourcePaths()) == 0 {
		return nil
	}
	if ctx.HasTestChange() {
		return nil
	}
	if ctx.Change.TotalChanged() <= ctx.Policy.NeedsTestsMinLines {
		return nil
	}
	return []report.Finding{{
		RuleID:   "needs-tests",
		Severity: report.SeverityWarning,
		Message: fmt.Sprintf("source files changed (%d lines) without any test changes; consider adding tests",
			ctx.Change.TotalChanged()),
	}}
}

// AddedWithoutTestsRule warns when brand-new source files arrive with no
// test changes at all, naming the files.
type AddedWithoutTestsRule struct{}

func (AddedWithoutTestsRule) ID() string { return "added-without-tests" }

func (AddedWithoutTestsRule) Description() string {
	return "Warns when newly added source files come without any test changes."
}

func (AddedWithoutTestsRule) Check(ctx *Context) []report.Finding {
	added := ctx.AddedSourcePaths()
	if len(added) == 0 || ctx.HasTestChange() {
		return nil
	}
	return []report.Finding{{
		RuleID:   "added-without-tests",
		Severity: report.SeverityWarning,
		Message:  "new source files without test changes: " + strings.Join(added, ", "),
	}}
}
