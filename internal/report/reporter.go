package report

import (
	"fmt"
	"io"
)

// Reporter defines the interface for rendering reports.
type Reporter interface {
	// Generate renders the report as a string.
	Generate(r *Report) (string, error)

	// Write renders the report to a writer.
	Write(r *Report, w io.Writer) error

	// Format returns the format name.
	Format() string
}

// NewReporter creates a reporter for the given format.
func NewReporter(format string) (Reporter, error) {
	switch format {
	case "text":
		return &TextReporter{}, nil
	case "markdown", "md":
		return &MarkdownReporter{}, nil
	case "json":
		return &JSONReporter{Indent: true}, nil
	case "github":
		return &GitHubReporter{}, nil
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

// AvailableFormats returns the list of supported formats.
func AvailableFormats() []string {
	return []string{"text", "markdown", "json", "github"}
}
