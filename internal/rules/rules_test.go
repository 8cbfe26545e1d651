package rules

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prguard/prguard/internal/changeset"
	"github.com/prguard/prguard/internal/config"
	"github.com/prguard/prguard/internal/git"
	"github.com/prguard/prguard/internal/project"
	"github.com/prguard/prguard/internal/report"
)

// addedFile builds a FileDiff of added lines starting at line 1.
func addedFile(path string, status git.FileStatus, lines ...string) git.FileDiff {
	f := git.FileDiff{Path: path, Status: status}
	if len(lines) == 0 {
		return f
	}
	hunk := git.Hunk{NewStart: 1, NewLines: len(lines)}
	for i, content := range lines {
		hunk.Lines = append(hunk.Lines, git.Line{
			Type:      git.LineAddition,
			Content:   content,
			NewNumber: i + 1,
		})
	}
	f.Hunks = []git.Hunk{hunk}
	f.Additions = len(lines)
	return f
}

// paddedFile builds a FileDiff with n synthetic added lines.
func paddedFile(path string, n int) git.FileDiff {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = "x := 1"
	}
	return addedFile(path, git.FileModified, lines...)
}

func newContext(title string, files ...git.FileDiff) *Context {
	diff := &git.Diff{Files: files}
	diff.CalculateStats()

	cfg := config.DefaultConfig()
	return &Context{
		Change:  changeset.FromDiff(diff, title, ""),
		Classes: changeset.NewClassifier(cfg.Check),
		Policy:  cfg.Check,
	}
}

func TestSizeRule(t *testing.T) {
	tests := []struct {
		name  string
		lines int
		want  int
	}{
		{name: "small change", lines: 100, want: 0},
		{name: "exactly at threshold", lines: 500, want: 0},
		{name: "large change", lines: 600, want: 1},
		{name: "huge change fires both", lines: 1200, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := newContext("feat: x", paddedFile("internal/a.go", tt.lines))

			got := SizeRule{}.Check(ctx)
			if len(got) != tt.want {
				t.Errorf("Check() = %d findings, want %d: %v", len(got), tt.want, got)
			}
			for _, f := range got {
				if f.Severity != report.SeverityWarning {
					t.Errorf("severity = %s, want warning", f.Severity)
				}
			}
		})
	}
}

func TestTitleRule(t *testing.T) {
	tests := []struct {
		title string
		warn  bool
	}{
		{title: "feat: add rename support", warn: false},
		{title: "fix(parser): handle empty hunks", warn: false},
		{title: "refactor!: drop legacy flags", warn: false},
		{title: "chore(deps/ci): bump actions", warn: false},
		{title: "added rename support", warn: true},
		{title: "Fix the parser", warn: true},
		{title: "feat:missing space", warn: true},
		{title: "", warn: false},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			ctx := newContext(tt.title, paddedFile("internal/a.go", 5))
			got := TitleRule{}.Check(ctx)
			if (len(got) > 0) != tt.warn {
				t.Errorf("title %q: findings = %v, want warn=%v", tt.title, got, tt.warn)
			}
		})
	}
}

func TestNeedsTestsRule(t *testing.T) {
	t.Run("source only above threshold", func(t *testing.T) {
		ctx := newContext("feat: x", paddedFile("internal/a.go", 60))
		got := NeedsTestsRule{}.Check(ctx)
		if len(got) != 1 {
			t.Fatalf("findings = %v, want 1 warning", got)
		}
	})

	t.Run("source with test change", func(t *testing.T) {
		ctx := newContext("feat: x",
			paddedFile("internal/a.go", 60),
			paddedFile("internal/a_test.go", 10),
		)
		if got := (NeedsTestsRule{}).Check(ctx); len(got) != 0 {
			t.Errorf("findings = %v, want none when tests changed", got)
		}
	})

	t.Run("below threshold", func(t *testing.T) {
		ctx := newContext("feat: x", paddedFile("internal/a.go", 40))
		if got := (NeedsTestsRule{}).Check(ctx); len(got) != 0 {
			t.Errorf("findings = %v, want none below threshold", got)
		}
	})

	t.Run("doc only change", func(t *testing.T) {
		ctx := newContext("docs: x", paddedFile("README.md", 200))
		if got := (NeedsTestsRule{}).Check(ctx); len(got) != 0 {
			t.Errorf("findings = %v, want none for doc-only change", got)
		}
	})
}

func TestAddedWithoutTestsRule(t *testing.T) {
	t.Run("new source without tests", func(t *testing.T) {
		f := paddedFile("Sources/Widget.swift", 30)
		f.Status = git.FileAdded
		ctx := newContext("feat: x", f)

		got := AddedWithoutTestsRule{}.Check(ctx)
		if len(got) != 1 {
			t.Fatalf("findings = %v, want 1", got)
		}
		if !strings.Contains(got[0].Message, "Sources/Widget.swift") {
			t.Errorf("message should name the file: %q", got[0].Message)
		}
	})

	t.Run("new source with test change", func(t *testing.T) {
		f := paddedFile("Sources/Widget.swift", 30)
		f.Status = git.FileAdded
		ctx := newContext("feat: x", f, paddedFile("Tests/WidgetTests.swift", 10))

		if got := (AddedWithoutTestsRule{}).Check(ctx); len(got) != 0 {
			t.Errorf("findings = %v, want none", got)
		}
	})
}

func TestExpectedTestFileRule(t *testing.T) {
	scanTree := func(t *testing.T, paths ...string) *project.Tree {
		t.Helper()
		root := t.TempDir()
		for _, p := range paths {
			full := filepath.Join(root, filepath.FromSlash(p))
			if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
				t.Fatal(err)
			}
			if err := os.WriteFile(full, []byte("x"), 0o644); err != nil {
				t.Fatal(err)
			}
		}
		tree, err := project.Scan(root)
		if err != nil {
			t.Fatal(err)
		}
		return tree
	}

	newAdded := func(path string) git.FileDiff {
		f := paddedFile(path, 10)
		f.Status = git.FileAdded
		return f
	}

	t.Run("no tree skips the rule", func(t *testing.T) {
		ctx := newContext("feat: x", newAdded("Sources/Foo.swift"))
		if got := (ExpectedTestFileRule{}).Check(ctx); got != nil {
			t.Errorf("findings = %v, want nil without a tree", got)
		}
	})

	t.Run("missing test file warns", func(t *testing.T) {
		ctx := newContext("feat: x", newAdded("Sources/Foo.swift"))
		ctx.Tree = scanTree(t, "Sources/Foo.swift")

		got := ExpectedTestFileRule{}.Check(ctx)
		if len(got) != 1 || got[0].Severity != report.SeverityWarning {
			t.Fatalf("findings = %v, want 1 warning", got)
		}
		if !strings.Contains(got[0].Message, "FooTests.swift") {
			t.Errorf("message should name the expected test file: %q", got[0].Message)
		}
	})

	t.Run("existing untouched test file is info", func(t *testing.T) {
		ctx := newContext("feat: x", newAdded("Sources/Foo.swift"))
		ctx.Tree = scanTree(t, "Sources/Foo.swift", "Tests/FooTests.swift")

		got := ExpectedTestFileRule{}.Check(ctx)
		if len(got) != 1 || got[0].Severity != report.SeverityInfo {
			t.Fatalf("findings = %v, want 1 info", got)
		}
	})

	t.Run("test file in changeset is clean", func(t *testing.T) {
		ctx := newContext("feat: x",
			newAdded("Sources/Foo.swift"),
			newAdded("Tests/FooTests.swift"),
		)
		ctx.Tree = scanTree(t, "Sources/Foo.swift")

		if got := (ExpectedTestFileRule{}).Check(ctx); len(got) != 0 {
			t.Errorf("findings = %v, want none", got)
		}
	})

	t.Run("skip prefixes exempt entry points", func(t *testing.T) {
		ctx := newContext("feat: x", newAdded("cmd/tool/main.go"))
		ctx.Tree = scanTree(t, "cmd/tool/main.go")

		if got := (ExpectedTestFileRule{}).Check(ctx); len(got) != 0 {
			t.Errorf("findings = %v, want none for main.go", got)
		}
	})
}

func TestExpectedTestName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{path: "internal/parser/parser.go", want: "parser_test.go"},
		{path: "Sources/App/Login.swift", want: "LoginTests.swift"},
		{path: "src/main/java/Foo.java", want: "FooTest.java"},
		{path: "app/models/user.rb", want: "user_spec.rb"},
		{path: "src/utils/date.py", want: "test_date.py"},
		{path: "src/components/Button.tsx", want: "Button.test.tsx"},
		{path: "assets/logo.png", want: ""},
	}

	for _, tt := range tests {
		if got := ExpectedTestName(tt.path); got != tt.want {
			t.Errorf("ExpectedTestName(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestManifestRule(t *testing.T) {
	goMod := addedFile("go.mod", git.FileModified,
		"require github.com/google/uuid v1.6.0",
	)

	t.Run("dependency without docs warns", func(t *testing.T) {
		ctx := newContext("feat: x", goMod)
		got := ManifestRule{}.Check(ctx)

		if len(got) != 2 {
			t.Fatalf("findings = %v, want info + warning", got)
		}
		if got[0].Severity != report.SeverityInfo || got[1].Severity != report.SeverityWarning {
			t.Errorf("severities = %s, %s", got[0].Severity, got[1].Severity)
		}
	})

	t.Run("dependency with docs is info only", func(t *testing.T) {
		ctx := newContext("feat: x", goMod, paddedFile("docs/deps.md", 3))
		got := ManifestRule{}.Check(ctx)

		if len(got) != 1 || got[0].Severity != report.SeverityInfo {
			t.Errorf("findings = %v, want info only", got)
		}
	})

	t.Run("manifest change without new deps is info only", func(t *testing.T) {
		bump := addedFile("go.mod", git.FileModified, "go 1.24.0")
		ctx := newContext("chore: x", bump)
		got := ManifestRule{}.Check(ctx)

		if len(got) != 1 || got[0].Severity != report.SeverityInfo {
			t.Errorf("findings = %v, want info only", got)
		}
	})
}

func TestPublicAPIRule(t *testing.T) {
	exported := addedFile("internal/widget.go", git.FileModified,
		"package widget",
		"",
		"func Render(w io.Writer) error {",
	)

	t.Run("public change without docs warns", func(t *testing.T) {
		ctx := newContext("feat: x", exported)
		got := PublicAPIRule{}.Check(ctx)

		if len(got) != 1 {
			t.Fatalf("findings = %v, want 1", got)
		}
		if got[0].File != "internal/widget.go" || got[0].Line != 3 {
			t.Errorf("location = %s:%d, want internal/widget.go:3", got[0].File, got[0].Line)
		}
	})

	t.Run("doc change silences the rule", func(t *testing.T) {
		ctx := newContext("feat: x", exported, paddedFile("docs/api.md", 3))
		if got := (PublicAPIRule{}).Check(ctx); len(got) != 0 {
			t.Errorf("findings = %v, want none", got)
		}
	})

	t.Run("unexported change is clean", func(t *testing.T) {
		private := addedFile("internal/widget.go", git.FileModified,
			"func render(w io.Writer) error {",
		)
		ctx := newContext("feat: x", private)
		if got := (PublicAPIRule{}).Check(ctx); len(got) != 0 {
			t.Errorf("findings = %v, want none", got)
		}
	})
}

func TestGeneratedRule(t *testing.T) {
	ctx := newContext("chore: x",
		paddedFile("go.sum", 40),
		paddedFile("internal/a.go", 5),
	)
	got := GeneratedRule{}.Check(ctx)

	if len(got) != 1 || got[0].File != "go.sum" {
		t.Errorf("findings = %v, want one info for go.sum", got)
	}
}

func TestChangelogRule(t *testing.T) {
	source := paddedFile("internal/a.go", 20)

	tests := []struct {
		name     string
		policy   string
		files    []git.FileDiff
		severity report.Severity
		want     int
	}{
		{name: "warn policy", policy: config.ChangelogWarn, files: []git.FileDiff{source}, severity: report.SeverityWarning, want: 1},
		{name: "fail policy", policy: config.ChangelogFail, files: []git.FileDiff{source}, severity: report.SeverityFailure, want: 1},
		{name: "off policy", policy: config.ChangelogOff, files: []git.FileDiff{source}, want: 0},
		{name: "changelog present", policy: config.ChangelogFail, files: []git.FileDiff{source, paddedFile("CHANGELOG.md", 2)}, want: 0},
		{name: "no source change", policy: config.ChangelogFail, files: []git.FileDiff{paddedFile("README.md", 5)}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := newContext("feat: x", tt.files...)
			ctx.Policy.ChangelogPolicy = tt.policy

			got := ChangelogRule{}.Check(ctx)
			if len(got) != tt.want {
				t.Fatalf("findings = %v, want %d", got, tt.want)
			}
			if tt.want == 1 && got[0].Severity != tt.severity {
				t.Errorf("severity = %s, want %s", got[0].Severity, tt.severity)
			}
		})
	}
}

func TestLineScanRule(t *testing.T) {
	patterns, err := NewLoader("", nil).Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	rule := NewLineScanRule(patterns)

	t.Run("swift debug print", func(t *testing.T) {
		f := addedFile("Sources/App/Login.swift", git.FileModified,
			"let user = fetchUser()",
			"    print(user)",
		)
		ctx := newContext("feat: x", f)

		got := rule.Check(ctx)
		if len(got) != 1 {
			t.Fatalf("findings = %v, want 1", got)
		}
		if got[0].RuleID != "debug-print-swift" {
			t.Errorf("rule id = %s", got[0].RuleID)
		}
		if got[0].File != "Sources/App/Login.swift" || got[0].Line != 2 {
			t.Errorf("location = %s:%d, want line 2", got[0].File, got[0].Line)
		}
	})

	t.Run("todo marker matches in comments too", func(t *testing.T) {
		f := addedFile("internal/a.go", git.FileModified,
			"// TODO: remove after the migration",
		)
		ctx := newContext("feat: x", f)

		got := rule.Check(ctx)
		if len(got) != 1 || got[0].RuleID != "todo-marker" {
			t.Errorf("findings = %v, want todo-marker", got)
		}
	})

	t.Run("debug print in comment is skipped", func(t *testing.T) {
		f := addedFile("internal/a.go", git.FileModified,
			"// fmt.Println(x) used to live here",
		)
		ctx := newContext("feat: x", f)

		if got := rule.Check(ctx); len(got) != 0 {
			t.Errorf("findings = %v, want none for commented-out print", got)
		}
	})

	t.Run("non-source paths are ignored", func(t *testing.T) {
		f := addedFile("README.md", git.FileModified, "print(something)")
		ctx := newContext("docs: x", f)

		if got := rule.Check(ctx); len(got) != 0 {
			t.Errorf("findings = %v, want none for docs", got)
		}
	})

	t.Run("binary files are skipped", func(t *testing.T) {
		f := git.FileDiff{Path: "internal/blob.go", Status: git.FileModified, IsBinary: true}
		ctx := newContext("feat: x", f)

		if got := rule.Check(ctx); len(got) != 0 {
			t.Errorf("findings = %v, want none for binary files", got)
		}
	})
}

func TestLoaderDisablesPatterns(t *testing.T) {
	patterns, err := NewLoader("", []string{"todo-marker"}).Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	for _, p := range patterns {
		if p.ID == "todo-marker" {
			t.Error("disabled pattern should not be loaded")
		}
	}
	if len(patterns) == 0 {
		t.Error("other patterns should still load")
	}
}

func TestLoaderCustomDir(t *testing.T) {
	dir := t.TempDir()
	custom := `patterns:
  - id: custom-ban
    severity: warning
    message: "banned call"
    pattern: 'legacyCall\('
`
	if err := os.WriteFile(filepath.Join(dir, "team.yaml"), []byte(custom), 0o644); err != nil {
		t.Fatal(err)
	}

	patterns, err := NewLoader(dir, nil).Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	found := false
	for _, p := range patterns {
		if p.ID == "custom-ban" {
			found = true
		}
	}
	if !found {
		t.Error("custom pattern not loaded")
	}
}

func TestLoaderBadPatternIsError(t *testing.T) {
	dir := t.TempDir()
	bad := `patterns:
  - id: broken
    severity: warning
    message: "x"
    pattern: '[unclosed'
`
	if err := os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte(bad), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewLoader(dir, nil).Load(); err == nil {
		t.Error("expected error for invalid regex")
	}
}

func TestDefaultRulesOrderAndFilter(t *testing.T) {
	all := DefaultRules(nil)
	if len(all) != 10 {
		t.Fatalf("DefaultRules() = %d rules, want 10", len(all))
	}
	if all[0].ID() != "pr-size" || all[len(all)-1].ID() != "changelog-entry" {
		ids := make([]string, 0, len(all))
		for _, r := range all {
			ids = append(ids, r.ID())
		}
		t.Errorf("unexpected order: %v", ids)
	}

	filtered := Filter(all, []string{"pr-size", "changelog-entry"})
	if len(filtered) != 8 {
		t.Errorf("Filter() = %d rules, want 8", len(filtered))
	}
	for _, r := range filtered {
		if r.ID() == "pr-size" || r.ID() == "changelog-entry" {
			t.Errorf("rule %s should be filtered out", r.ID())
		}
	}
}
