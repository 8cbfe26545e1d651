package report

import (
	"fmt"
	"io"
	"strings"
)

// TextReporter renders plain console output, one finding per line.
type TextReporter struct{}

func (r *TextReporter) Format() string { return "text" }

func (r *TextReporter) Generate(rep *Report) (string, error) {
	var sb strings.Builder
	if err := r.Write(rep, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (r *TextReporter) Write(rep *Report, w io.Writer) error {
	for _, f := range rep.All() {
		fmt.Fprintf(w, "%-7s %s%s\n", strings.ToUpper(string(f.Severity)), location(f), f.Message)
	}

	if rep.Success != "" {
		fmt.Fprintf(w, "%s\n", rep.Success)
		return nil
	}

	fmt.Fprintf(w, "\n%d failure(s), %d warning(s), %d info(s) across %d file(s), %d line(s) changed\n",
		len(rep.Failures), len(rep.Warnings), len(rep.Infos), rep.FilesChanged, rep.LinesChanged)
	return nil
}

func location(f Finding) string {
	if f.File == "" {
		return ""
	}
	if f.Line > 0 {
		return fmt.Sprintf("%s:%d: ", f.File, f.Line)
	}
	return f.File + ": "
}
