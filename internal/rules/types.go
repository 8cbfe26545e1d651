// Package rules implements the PR lint rules prguard evaluates.
package rules

import (
	"path/filepath"
	"strings"

	"github.com/prguard/prguard/internal/changeset"
	"github.com/prguard/prguard/internal/config"
	"github.com/prguard/prguard/internal/project"
	"github.com/prguard/prguard/internal/report"
)

// Rule is one independent check mapping changeset facts to findings.
// Rules never mutate the context; each produces its findings in isolation.
type Rule interface {
	// ID returns the unique identifier for this rule.
	ID() string

	// Description returns what the rule checks.
	Description() string

	// Check evaluates the rule against the changeset.
	Check(ctx *Context) []report.Finding
}

// Context carries the read-only inputs rules evaluate against.
type Context struct {
	// Change is the changeset under evaluation
	Change *changeset.ChangeSet

	// Classes buckets paths into source/test/doc/manifest/generated
	Classes *changeset.Classifier

	// Tree indexes the working tree; nil when no checkout is available
	// (rules needing filesystem lookups skip themselves)
	Tree *project.Tree

	// Policy holds the configured thresholds
	Policy config.CheckConfig
}

// HasTestChange reports whether any changed path is test code.
func (c *Context) HasTestChange() bool {
	for _, path := range c.Change.AllPaths() {
		if c.Classes.IsTest(path) {
			return true
		}
	}
	return false
}

// HasDocChange reports whether any changed path is documentation.
func (c *Context) HasDocChange() bool {
	for _, path := range c.Change.AllPaths() {
		if c.Classes.IsDoc(path) {
			return true
		}
	}
	return false
}

// HasChangelogChange reports whether any changed path is a changelog file.
func (c *Context) HasChangelogChange() bool {
	for _, path := range c.Change.AllPaths() {
		if c.Classes.IsChangelog(path) {
			return true
		}
	}
	return false
}

// SourcePaths returns every changed path classified as production source.
func (c *Context) SourcePaths() []string {
	var paths []string
	for _, path := range c.Change.AllPaths() {
		if c.Classes.IsSource(path) {
			paths = append(paths, path)
		}
	}
	return paths
}

// AddedSourcePaths returns added paths classified as production source.
func (c *Context) AddedSourcePaths() []string {
	var paths []string
	for _, path := range c.Change.Added {
		if c.Classes.IsSource(path) {
			paths = append(paths, path)
		}
	}
	return paths
}

// extToLanguage maps file extensions to language names for the
// data-driven line patterns.
var extToLanguage = map[string]string{
	".go":    "go",
	".py":    "python",
	".js":    "javascript",
	".jsx":   "javascript",
	".ts":    "typescript",
	".tsx":   "typescript",
	".java":  "java",
	".kt":    "kotlin",
	".rb":    "ruby",
	".rs":    "rust",
	".swift": "swift",
	".c":     "c",
	".cpp":   "cpp",
	".cs":    "csharp",
	".php":   "php",
	".sh":    "shell",
}

// detectLanguage returns the language for a path, or "" when unknown.
func detectLanguage(path string) string {
	return extToLanguage[strings.ToLower(filepath.Ext(path))]
}

// commentPrefixes cover the line-comment styles of the supported languages.
var commentPrefixes = []string{"//", "#", "/*", "*", "--", ";", "<!--"}

// isCommentLine reports whether the line is itself a comment.
func isCommentLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	for _, prefix := range commentPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return false
}
