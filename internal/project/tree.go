// Package project indexes the working tree for companion-file lookups.
package project

import (
	"io/fs"
	"path/filepath"
	"sort"
)

// Directories that never contain project files worth indexing.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
	".idea":        true,
	".vscode":      true,
	"dist":         true,
	"build":        true,
}

// Tree is a one-shot index of a project working tree. Rules use it to
// answer "does a file with this name exist anywhere" without re-walking
// the filesystem per rule.
type Tree struct {
	root   string
	byBase map[string][]string
}

// Scan walks the tree rooted at root and builds the index. Paths in the
// index are relative to root with forward slashes.
func Scan(root string) (*Tree, error) {
	t := &Tree{
		root:   root,
		byBase: make(map[string][]string),
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)
		base := d.Name()
		t.byBase[base] = append(t.byBase[base], rel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return t, nil
}

// Root returns the tree root.
func (t *Tree) Root() string {
	return t.root
}

// Exists reports whether any file with the given basename exists in the tree.
func (t *Tree) Exists(base string) bool {
	return len(t.byBase[base]) > 0
}

// FindByName returns all relative paths whose basename matches, sorted.
func (t *Tree) FindByName(base string) []string {
	paths := append([]string(nil), t.byBase[base]...)
	sort.Strings(paths)
	return paths
}

// NumFiles returns the number of indexed files.
func (t *Tree) NumFiles() int {
	n := 0
	for _, paths := range t.byBase {
		n += len(paths)
	}
	return n
}
