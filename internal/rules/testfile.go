package rules

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/prguard/prguard/internal/report"
)

// ExpectedTestFileRule derives the expected test file name for every
// added source file and checks whether it exists. An existing but
// untouched test file is only an informational note; a test file that
// exists nowhere in the tree is a warning.
//
// Requires a working tree; skips itself when none is available.
type ExpectedTestFileRule struct{}

func (ExpectedTestFileRule) ID() string { return "expected-test-file" }

func (ExpectedTestFileRule) Description() string {
	return "Checks that every added source file has a matching test file."
}

func (r ExpectedTestFileRule) Check(ctx *Context) []report.Finding {
	if ctx.Tree == nil {
		return nil
	}

	var findings []report.Finding
	for _, path := range ctx.AddedSourcePaths() {
		if r.skipped(ctx, path) {
			continue
		}

		expected := ExpectedTestName(path)
		if expected == "" {
			continue
		}

		if touchedInChangeSet(ctx, expected) {
			continue
		}

		if ctx.Tree.Exists(expected) {
			findings = append(findings, report.Finding{
				RuleID:   "expected-test-file",
				Severity: report.SeverityInfo,
				Message:  fmt.Sprintf("%s exists but was not updated for new file %s", expected, path),
				File:     path,
			})
			continue
		}

		findings = append(findings, report.Finding{
			RuleID:   "expected-test-file",
			Severity: report.SeverityWarning,
			Message:  fmt.Sprintf("no test file %s found for new file %s", expected, path),
			File:     path,
		})
	}
	return findings
}

func (ExpectedTestFileRule) skipped(ctx *Context, path string) bool {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	for _, prefix := range ctx.Policy.SkipTestPrefixes {
		if strings.HasPrefix(stem, prefix) {
			return true
		}
	}
	return false
}

func touchedInChangeSet(ctx *Context, base string) bool {
	for _, path := range ctx.Change.AllPaths() {
		if filepath.Base(path) == base {
			return true
		}
	}
	return false
}

// ExpectedTestName derives the conventional test file name for a source
// file, following each ecosystem's naming convention. Returns "" when no
// convention is known for the extension.
func ExpectedTestName(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	switch strings.ToLower(ext) {
	case ".go":
		return stem + "_test.go"
	case ".swift":
		return stem + "Tests.swift"
	case ".java", ".kt", ".cs":
		return stem + "Test" + ext
	case ".py":
		return "test_" + base
	case ".rb":
		return stem + "_spec.rb"
	case ".js", ".jsx", ".ts", ".tsx":
		return stem + ".test" + ext
	default:
		return ""
	}
}
