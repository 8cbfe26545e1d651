package report

import (
	"fmt"
	"io"
	"strings"
)

// MarkdownReporter renders a report as Markdown, suitable for posting
// as a PR comment.
type MarkdownReporter struct{}

func (r *MarkdownReporter) Format() string { return "markdown" }

func (r *MarkdownReporter) Generate(rep *Report) (string, error) {
	var sb strings.Builder
	if err := r.Write(rep, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (r *MarkdownReporter) Write(rep *Report, w io.Writer) error {
	fmt.Fprintf(w, "# PR Check Report\n\n")

	fmt.Fprintf(w, "## Summary\n\n")
	if rep.Title != "" {
		fmt.Fprintf(w, "- **Title:** %s\n", rep.Title)
	}
	fmt.Fprintf(w, "- **Files Changed:** %d\n", rep.FilesChanged)
	fmt.Fprintf(w, "- **Lines Changed:** %d\n", rep.LinesChanged)
	fmt.Fprintf(w, "- **Duration:** %s\n", rep.Duration)
	fmt.Fprintf(w, "\n")

	if rep.Success != "" {
		fmt.Fprintf(w, "%s\n", rep.Success)
		return nil
	}

	r.writeSection(w, "Failures", rep.Failures)
	r.writeSection(w, "Warnings", rep.Warnings)
	r.writeSection(w, "Notes", rep.Infos)

	return nil
}

func (r *MarkdownReporter) writeSection(w io.Writer, heading string, findings []Finding) {
	if len(findings) == 0 {
		return
	}

	fmt.Fprintf(w, "## %s\n\n", heading)
	for _, f := range findings {
		if f.File != "" && f.Line > 0 {
			fmt.Fprintf(w, "- `%s:%d` %s _(%s)_\n", f.File, f.Line, f.Message, f.RuleID)
		} else if f.File != "" {
			fmt.Fprintf(w, "- `%s` %s _(%s)_\n", f.File, f.Message, f.RuleID)
		} else {
			fmt.Fprintf(w, "- %s _(%s)_\n", f.Message, f.RuleID)
		}
	}
	fmt.Fprintf(w, "\n")
}
