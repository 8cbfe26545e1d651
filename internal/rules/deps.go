package rules

import (
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/prguard/prguard/internal/git"
	"github.com/prguard/prguard/internal/report"
)

// depAddPatterns detect a dependency declaration in added manifest lines,
// keyed by manifest basename.
var depAddPatterns = map[string]*regexp.Regexp{
	"go.mod":           regexp.MustCompile(`^\s*(require\s+)?[\w.\-]+\.[\w.\-]+(/[\w.\-~/]+)*\s+v\d`),
	"package.json":     regexp.MustCompile(`^\s*"[@\w][\w\-./]*"\s*:\s*"[~^]?\d`),
	"Package.swift":    regexp.MustCompile(`\.package\s*\(`),
	"Cargo.toml":       regexp.MustCompile(`^\s*[\w\-]+\s*=\s*("|\{)`),
	"Gemfile":          regexp.MustCompile(`^\s*gem\s+['"]`),
	"requirements.txt": regexp.MustCompile(`^\s*[A-Za-z0-9][\w\-.\[\]]*\s*([=<>~!]|$)`),
	"pyproject.toml":   regexp.MustCompile(`^\s*[\w\-]+\s*=\s*["^~>=<]`),
	"Podfile":          regexp.MustCompile(`^\s*pod\s+['"]`),
}

// ManifestRule emits guidance when a build manifest changes, and warns
// when a dependency declaration is added without any documentation change.
type ManifestRule struct{}

func (ManifestRule) ID() string { return "manifest-change" }

func (ManifestRule) Description() string {
	return "Flags build manifest changes and undocumented dependency additions."
}

func (r ManifestRule) Check(ctx *Context) []report.Finding {
	var findings []report.Finding
	for _, path := range ctx.Change.AllPaths() {
		if !ctx.Classes.IsManifest(path) {
			continue
		}

		findings = append(findings, report.Finding{
			RuleID:   "manifest-change",
			Severity: report.SeverityInfo,
			Message:  fmt.Sprintf("%s changed: verify lockfiles are regenerated and CI still passes", path),
			File:     path,
		})

		file := ctx.Change.File(path)
		if file == nil {
			continue
		}
		if r.addsDependency(file) && !ctx.HasDocChange() {
			findings = append(findings, report.Finding{
				RuleID:   "manifest-change",
				Severity: report.SeverityWarning,
				Message:  fmt.Sprintf("new dependency declared in %s without a documentation change", path),
				File:     path,
			})
		}
	}
	return findings
}

func (ManifestRule) addsDependency(file *git.FileDiff) bool {
	pattern, ok := depAddPatterns[filepath.Base(file.Path)]
	if !ok {
		return false
	}
	for _, line := range file.AddedLines() {
		if isCommentLine(line.Content) {
			continue
		}
		if pattern.MatchString(line.Content) {
			return true
		}
	}
	return false
}
