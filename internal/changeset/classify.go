package changeset

import (
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/prguard/prguard/internal/config"
)

// Class is a coarse path category used by the rules.
type Class string

const (
	ClassSource    Class = "source"
	ClassTest      Class = "test"
	ClassDoc       Class = "doc"
	ClassManifest  Class = "manifest"
	ClassGenerated Class = "generated"
	ClassOther     Class = "other"
)

// Classifier buckets changed paths into source/test/doc/manifest/generated
// using the configured doublestar globs. Test patterns win over source
// patterns so that test files under src/ are not treated as production code.
type Classifier struct {
	source    []string
	test      []string
	doc       []string
	manifest  []string
	generated []string
	changelog []string
}

// NewClassifier creates a classifier from the check configuration.
func NewClassifier(cfg config.CheckConfig) *Classifier {
	return &Classifier{
		source:    cfg.SourcePatterns,
		test:      cfg.TestPatterns,
		doc:       cfg.DocPatterns,
		manifest:  cfg.ManifestPatterns,
		generated: cfg.GeneratedPatterns,
		changelog: cfg.ChangelogPatterns,
	}
}

// Classify returns the category for a path. Order matters: generated and
// manifest markers are checked before the broad source globs.
func (c *Classifier) Classify(path string) Class {
	switch {
	case c.IsGenerated(path):
		return ClassGenerated
	case c.IsManifest(path):
		return ClassManifest
	case c.IsTest(path):
		return ClassTest
	case c.IsDoc(path):
		return ClassDoc
	case c.IsSource(path):
		return ClassSource
	default:
		return ClassOther
	}
}

// IsSource reports whether path is production source (not test code).
func (c *Classifier) IsSource(path string) bool {
	return matchAny(c.source, path) && !matchAny(c.test, path)
}

// IsTest reports whether path is test code.
func (c *Classifier) IsTest(path string) bool {
	return matchAny(c.test, path)
}

// IsDoc reports whether path is documentation.
func (c *Classifier) IsDoc(path string) bool {
	return matchAny(c.doc, path) || c.IsChangelog(path)
}

// IsManifest reports whether path is a build or dependency manifest.
func (c *Classifier) IsManifest(path string) bool {
	return matchAny(c.manifest, path)
}

// IsGenerated reports whether path matches a generated-code marker.
func (c *Classifier) IsGenerated(path string) bool {
	return matchAny(c.generated, path)
}

// IsChangelog reports whether path is a changelog file.
func (c *Classifier) IsChangelog(path string) bool {
	return matchAny(c.changelog, path)
}

// matchAny matches the path, or its basename for bare patterns like
// "README*" that carry no directory component.
func matchAny(patterns []string, path string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, path); err == nil && ok {
			return true
		}
		if !containsSlash(pattern) {
			if ok, err := doublestar.Match(pattern, filepath.Base(path)); err == nil && ok {
				return true
			}
		}
	}
	return false
}

func containsSlash(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == '/' {
			return true
		}
	}
	return false
}
