// Package git provides access to local git diffs for prguard.
package git

import "context"

// Repository defines the interface for git operations.
// This abstraction allows for testing with mock implementations.
type Repository interface {
	// GetStagedDiff returns the diff of staged changes.
	GetStagedDiff(ctx context.Context) (*Diff, error)

	// GetCommitDiff returns the diff of a specific commit.
	GetCommitDiff(ctx context.Context, sha string) (*Diff, error)

	// GetBranchDiff returns the diff between HEAD and the merge base with baseBranch.
	GetBranchDiff(ctx context.Context, baseBranch string) (*Diff, error)

	// GetCurrentBranch returns the current branch name.
	GetCurrentBranch(ctx context.Context) (string, error)

	// GetHeadSHA returns the abbreviated HEAD commit hash.
	GetHeadSHA(ctx context.Context) (string, error)

	// GetRepoRoot returns the root directory of the repository.
	GetRepoRoot(ctx context.Context) (string, error)
}

// Diff represents a complete diff with multiple files.
type Diff struct {
	Files []FileDiff `json:"files"`
	Stats DiffStats  `json:"stats"`
}

// FileDiff represents the diff for a single file.
type FileDiff struct {
	Path      string     `json:"path"`
	OldPath   string     `json:"old_path,omitempty"`
	Status    FileStatus `json:"status"`
	IsBinary  bool       `json:"is_binary"`
	Hunks     []Hunk     `json:"hunks"`
	Additions int        `json:"additions"`
	Deletions int        `json:"deletions"`
}

// FileStatus represents the status of a file in the diff.
type FileStatus string

const (
	FileAdded    FileStatus = "added"
	FileModified FileStatus = "modified"
	FileDeleted  FileStatus = "deleted"
	FileRenamed  FileStatus = "renamed"
)

// Hunk represents a section of changes in a file.
type Hunk struct {
	Header   string `json:"header"` // @@ -start,count +start,count @@
	OldStart int    `json:"old_start"`
	OldLines int    `json:"old_lines"`
	NewStart int    `json:"new_start"`
	NewLines int    `json:"new_lines"`
	Lines    []Line `json:"lines"`
}

// Line represents a single line in a hunk. NewNumber is the line number
// in the post-change file, zero for deletions.
type Line struct {
	Type      LineType `json:"type"`
	Content   string   `json:"content"`
	OldNumber int      `json:"old_number,omitempty"`
	NewNumber int      `json:"new_number,omitempty"`
}

// LineType represents the type of a diff line.
type LineType string

const (
	LineContext  LineType = "context"
	LineAddition LineType = "addition"
	LineDeletion LineType = "deletion"
)

// DiffStats contains summary statistics about a diff.
type DiffStats struct {
	FilesChanged int `json:"files_changed"`
	Additions    int `json:"additions"`
	Deletions    int `json:"deletions"`
}

// TotalChanged returns the aggregate changed line count.
func (s DiffStats) TotalChanged() int {
	return s.Additions + s.Deletions
}

// CalculateStats recalculates statistics from the diff contents.
func (d *Diff) CalculateStats() {
	d.Stats = DiffStats{
		FilesChanged: len(d.Files),
	}
	for _, f := range d.Files {
		d.Stats.Additions += f.Additions
		d.Stats.Deletions += f.Deletions
	}
}

// AddedLines returns the addition lines of the file with their line numbers.
func (f *FileDiff) AddedLines() []Line {
	var lines []Line
	for _, h := range f.Hunks {
		for _, l := range h.Lines {
			if l.Type == LineAddition {
				lines = append(lines, l)
			}
		}
	}
	return lines
}

// UnifiedText reassembles the hunks of the file into unified diff text.
func (f *FileDiff) UnifiedText() string {
	var b []byte
	for _, h := range f.Hunks {
		b = append(b, h.Header...)
		b = append(b, '\n')
		for _, l := range h.Lines {
			switch l.Type {
			case LineAddition:
				b = append(b, '+')
			case LineDeletion:
				b = append(b, '-')
			default:
				b = append(b, ' ')
			}
			b = append(b, l.Content...)
			b = append(b, '\n')
		}
	}
	return string(b)
}
