package rules

import (
	"regexp"

	"github.com/prguard/prguard/internal/report"
)

// Conventional commit prefix: type(scope)?: subject
var conventionalTitle = regexp.MustCompile(`^(feat|fix|docs|style|refactor|perf|test|build|ci|chore|revert)(\([\w\-./]+\))?!?: \S`)

// TitleRule warns when the PR title does not follow the conventional
// commit format.
type TitleRule struct{}

func (TitleRule) ID() string { return "title-format" }

func (TitleRule) Description() string {
	return "Warns when the PR title lacks a conventional-commit prefix."
}

func (TitleRule) Check(ctx *Context) []report.Finding {
	title := ctx.Change.Title
	if title == "" || conventionalTitle.MatchString(title) {
		return nil
	}
	return []report.Finding{{
		RuleID:   "title-format",
		Severity: report.SeverityWarning,
		Message:  `PR title does not follow "type(scope): subject" (e.g. "feat(parser): handle renames")`,
	}}
}
