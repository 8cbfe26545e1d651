package report

import (
	"encoding/json"
	"io"
	"strings"
)

// JSONReporter renders a report as JSON for machine consumers.
type JSONReporter struct {
	Indent bool
}

func (r *JSONReporter) Format() string { return "json" }

func (r *JSONReporter) Generate(rep *Report) (string, error) {
	var sb strings.Builder
	if err := r.Write(rep, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (r *JSONReporter) Write(rep *Report, w io.Writer) error {
	enc := json.NewEncoder(w)
	if r.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(jsonEnvelope{
		Report: rep,
		Passed: rep.Passed(),
	})
}

type jsonEnvelope struct {
	*Report
	Passed bool `json:"passed"`
}
