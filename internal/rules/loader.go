package rules

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/*.yaml
var embeddedPatterns embed.FS

// Loader loads line patterns from the embedded defaults and an optional
// custom directory.
type Loader struct {
	patternsDir string
	disabled    map[string]bool
}

// NewLoader creates a pattern loader. patternsDir may be empty; disabled
// lists pattern IDs to drop.
func NewLoader(patternsDir string, disabled []string) *Loader {
	d := make(map[string]bool, len(disabled))
	for _, id := range disabled {
		d[id] = true
	}
	return &Loader{patternsDir: patternsDir, disabled: d}
}

// Load returns all enabled, compiled line patterns.
func (l *Loader) Load() ([]LinePattern, error) {
	var all []LinePattern

	embedded, err := l.loadEmbedded()
	if err != nil {
		return nil, fmt.Errorf("loading embedded patterns: %w", err)
	}
	all = append(all, embedded...)

	if l.patternsDir != "" {
		custom, err := l.loadFromDir(l.patternsDir)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("loading custom patterns: %w", err)
		}
		all = append(all, custom...)
	}

	return l.compile(all)
}

func (l *Loader) loadEmbedded() ([]LinePattern, error) {
	var all []LinePattern

	entries, err := embeddedPatterns.ReadDir("defaults")
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := embeddedPatterns.ReadFile("defaults/" + entry.Name())
		if err != nil {
			return nil, err
		}
		patterns, err := parsePatternsYAML(data)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", entry.Name(), err)
		}
		all = append(all, patterns...)
	}

	return all, nil
}

func (l *Loader) loadFromDir(dir string) ([]LinePattern, error) {
	var all []LinePattern

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		patterns, err := parsePatternsYAML(data)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
		all = append(all, patterns...)
		return nil
	})

	return all, err
}

// compile drops disabled patterns and compiles the remainder. A pattern
// that fails to compile is an error, not a silent skip: broken custom
// rules should be fixed, not ignored.
func (l *Loader) compile(patterns []LinePattern) ([]LinePattern, error) {
	result := make([]LinePattern, 0, len(patterns))
	for _, p := range patterns {
		if l.disabled[p.ID] {
			continue
		}
		compiled, err := regexp.Compile(p.Pattern)
		if err != nil {
			return nil, fmt.Errorf("pattern %s: %w", p.ID, err)
		}
		p.compiled = compiled
		result = append(result, p)
	}
	return result, nil
}

func parsePatternsYAML(data []byte) ([]LinePattern, error) {
	var set PatternSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, err
	}
	return set.Patterns, nil
}
