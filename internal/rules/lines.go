package rules

import (
	"fmt"
	"regexp"

	"github.com/prguard/prguard/internal/git"
	"github.com/prguard/prguard/internal/report"
)

// LinePattern is one data-driven check applied to added diff lines.
// Patterns are declared in YAML (embedded defaults plus an optional
// custom directory) rather than hardcoded.
type LinePattern struct {
	ID           string   `yaml:"id"`
	Severity     string   `yaml:"severity"`
	Message      string   `yaml:"message"`
	Pattern      string   `yaml:"pattern"`
	Languages    []string `yaml:"languages"`
	SkipComments bool     `yaml:"skip_comments"`

	compiled *regexp.Regexp
}

// PatternSet is a named collection of line patterns, the unit one YAML
// file declares.
type PatternSet struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Patterns    []LinePattern `yaml:"patterns"`
}

func (p *LinePattern) appliesTo(language string) bool {
	if len(p.Languages) == 0 {
		return true
	}
	for _, l := range p.Languages {
		if l == language {
			return true
		}
	}
	return false
}

func (p *LinePattern) severity() report.Severity {
	switch p.Severity {
	case "info":
		return report.SeverityInfo
	case "failure":
		return report.SeverityFailure
	default:
		return report.SeverityWarning
	}
}

// LineScanRule runs every configured line pattern over the added lines
// of source-file diffs. A malformed diff in one file must not stop the
// scan of the others: each file is scanned under its own recover, and a
// single tool-diagnostic warning summarizes any scan errors.
type LineScanRule struct {
	patterns []LinePattern
}

// NewLineScanRule creates the rule from loaded patterns.
func NewLineScanRule(patterns []LinePattern) *LineScanRule {
	return &LineScanRule{patterns: patterns}
}

func (*LineScanRule) ID() string { return "line-patterns" }

func (*LineScanRule) Description() string {
	return "Scans added lines for TODO markers, debug output and unchecked patterns."
}

func (r *LineScanRule) Check(ctx *Context) []report.Finding {
	var findings []report.Finding
	failedFiles := 0

	for _, path := range ctx.Change.AllPaths() {
		if !ctx.Classes.IsSource(path) && !ctx.Classes.IsTest(path) {
			continue
		}
		file := ctx.Change.File(path)
		if file == nil || file.IsBinary {
			continue
		}

		fileFindings, err := r.scanFile(file)
		if err != nil {
			failedFiles++
			continue
		}
		findings = append(findings, fileFindings...)
	}

	if failedFiles > 0 {
		findings = append(findings, report.Finding{
			RuleID:   "line-patterns",
			Severity: report.SeverityWarning,
			Message:  fmt.Sprintf("prguard could not scan %d file diff(s); results may be incomplete", failedFiles),
		})
	}
	return findings
}

// scanFile scans one file's added lines, converting panics on malformed
// input into an error for the caller to count.
func (r *LineScanRule) scanFile(file *git.FileDiff) (findings []report.Finding, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			findings = nil
			err = fmt.Errorf("scanning %s: %v", file.Path, rec)
		}
	}()

	language := detectLanguage(file.Path)

	for _, line := range file.AddedLines() {
		comment := isCommentLine(line.Content)
		for i := range r.patterns {
			p := &r.patterns[i]
			if !p.appliesTo(language) {
				continue
			}
			if p.SkipComments && comment {
				continue
			}
			if p.compiled == nil || !p.compiled.MatchString(line.Content) {
				continue
			}
			findings = append(findings, report.Finding{
				RuleID:   p.ID,
				Severity: p.severity(),
				Message:  p.Message,
				File:     file.Path,
				Line:     line.NewNumber,
			})
		}
	}
	return findings, nil
}
