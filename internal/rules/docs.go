package rules

import (
	"fmt"
	"regexp"

	"github.com/prguard/prguard/internal/report"
)

// publicDeclPatterns match added lines introducing or touching a
// public-visibility declaration, per language family.
var publicDeclPatterns = []*regexp.Regexp{
	// Go exported declarations
	regexp.MustCompile(`^func (\([^)]+\) )?[A-Z]\w*\(`),
	regexp.MustCompile(`^type [A-Z]\w* `),
	// public keyword languages (Swift, Java, Kotlin, C#)
	regexp.MustCompile(`\bpublic\s+(func|class|struct|enum|protocol|interface|fun|var|let|void|static|final)\b`),
	regexp.MustCompile(`\bopen\s+(class|func)\b`),
	// ES module exports
	regexp.MustCompile(`^export\s+(default\s+)?(function|class|const|interface|type|enum)\b`),
}

// PublicAPIRule warns when a diff touches public-visibility declarations
// while no documentation file changed in the same PR.
type PublicAPIRule struct{}

func (PublicAPIRule) ID() string { return "public-api-docs" }

func (PublicAPIRule) Description() string {
	return "Warns when public declarations change without a documentation change."
}

func (r PublicAPIRule) Check(ctx *Context) []report.Finding {
	if ctx.HasDocChange() {
		return nil
	}

	var findings []report.Finding
	for _, path := range ctx.Change.AllPaths() {
		if !ctx.Classes.IsSource(path) {
			continue
		}
		file := ctx.Change.File(path)
		if file == nil {
			continue
		}

		// One finding per file, citing the first public declaration.
		for _, line := range file.AddedLines() {
			if isCommentLine(line.Content) {
				continue
			}
			if matchesPublicDecl(line.Content) {
				findings = append(findings, report.Finding{
					RuleID:   "public-api-docs",
					Severity: report.SeverityWarning,
					Message:  fmt.Sprintf("public declaration changed in %s without a documentation change", path),
					File:     path,
					Line:     line.NewNumber,
				})
				break
			}
		}
	}
	return findings
}

func matchesPublicDecl(line string) bool {
	for _, pattern := range publicDeclPatterns {
		if pattern.MatchString(line) {
			return true
		}
	}
	return false
}
