// Package changeset models the facts about one pull request's changes.
package changeset

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/prguard/prguard/internal/git"
)

// ChangeSet describes one PR evaluation run: which files changed, which
// were added, the per-file diffs, and the PR metadata. It is built once
// per run and never mutated by rules.
type ChangeSet struct {
	// Title is the PR title (or HEAD commit subject for local runs)
	Title string `json:"title"`

	// Body is the PR description, may be empty
	Body string `json:"body,omitempty"`

	// Modified holds paths of changed (non-added) files in diff order
	Modified []string `json:"modified"`

	// Added holds paths of newly added files in diff order
	Added []string `json:"added"`

	// Files holds the per-file diffs for every path in the changeset
	Files []git.FileDiff `json:"files"`

	// Stats aggregates line counts across the diff
	Stats git.DiffStats `json:"stats"`
}

// FromDiff builds a ChangeSet from a parsed diff and PR metadata.
func FromDiff(diff *git.Diff, title, body string) *ChangeSet {
	cs := &ChangeSet{
		Title: title,
		Body:  body,
		Files: diff.Files,
		Stats: diff.Stats,
	}
	for _, f := range diff.Files {
		switch f.Status {
		case git.FileAdded:
			cs.Added = append(cs.Added, f.Path)
		case git.FileDeleted:
			// Deleted paths still count as modified for path rules.
			cs.Modified = append(cs.Modified, f.Path)
		default:
			cs.Modified = append(cs.Modified, f.Path)
		}
	}
	return cs
}

// AllPaths returns every changed path, modified first then added,
// preserving diff order within each group.
func (c *ChangeSet) AllPaths() []string {
	paths := make([]string, 0, len(c.Modified)+len(c.Added))
	paths = append(paths, c.Modified...)
	paths = append(paths, c.Added...)
	return paths
}

// File returns the diff for a path, or nil if the path is not in the changeset.
func (c *ChangeSet) File(path string) *git.FileDiff {
	for i := range c.Files {
		if c.Files[i].Path == path {
			return &c.Files[i]
		}
	}
	return nil
}

// TotalChanged returns the aggregate changed line count.
func (c *ChangeSet) TotalChanged() int {
	return c.Stats.TotalChanged()
}

// Fingerprint returns a stable hash of the changeset contents, used as
// the result cache key. Title is included since title rules depend on it.
func (c *ChangeSet) Fingerprint() string {
	h := sha256.New()
	h.Write([]byte(c.Title))
	h.Write([]byte{0})
	for _, f := range c.Files {
		h.Write([]byte(f.Path))
		h.Write([]byte{0})
		h.Write([]byte(f.Status))
		h.Write([]byte{0})
		h.Write([]byte(f.UnifiedText()))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
