package report

import (
	"fmt"
	"io"
	"strings"
)

// GitHubReporter renders findings as GitHub Actions workflow commands so
// they show up as inline annotations on the PR.
//
// Format: ::warning file=app.js,line=1::Missing semicolon
type GitHubReporter struct{}

func (r *GitHubReporter) Format() string { return "github" }

func (r *GitHubReporter) Generate(rep *Report) (string, error) {
	var sb strings.Builder
	if err := r.Write(rep, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (r *GitHubReporter) Write(rep *Report, w io.Writer) error {
	for _, f := range rep.Failures {
		r.writeCommand(w, "error", f)
	}
	for _, f := range rep.Warnings {
		r.writeCommand(w, "warning", f)
	}
	for _, f := range rep.Infos {
		r.writeCommand(w, "notice", f)
	}

	if rep.Success != "" {
		fmt.Fprintf(w, "::notice::%s\n", escapeData(rep.Success))
	}
	return nil
}

func (r *GitHubReporter) writeCommand(w io.Writer, level string, f Finding) {
	props := ""
	if f.File != "" {
		props = "file=" + escapeProperty(f.File)
		if f.Line > 0 {
			props += fmt.Sprintf(",line=%d", f.Line)
		}
	}
	if props != "" {
		props = " " + props
	}
	fmt.Fprintf(w, "::%s%s::%s\n", level, props, escapeData(f.Message))
}

// Workflow command escaping rules, per the GitHub Actions toolkit.
func escapeData(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	s = strings.ReplaceAll(s, "\n", "%0A")
	return s
}

func escapeProperty(s string) string {
	s = escapeData(s)
	s = strings.ReplaceAll(s, ":", "%3A")
	s = strings.ReplaceAll(s, ",", "%2C")
	return s
}
