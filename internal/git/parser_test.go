package git

import (
	"testing"
)

const sampleDiff = `diff --git a/internal/app/server.go b/internal/app/server.go
index 1234567..89abcde 100644
--- a/internal/app/server.go
+++ b/internal/app/server.go
@@ -10,6 +10,8 @@ func Start() {
 	listen()
+	warmup()
+	serve()
 	shutdown()
@@ -40,4 +42,3 @@ func stop() {
 	drain()
-	flush()
 	close()
diff --git a/docs/usage.md b/docs/usage.md
new file mode 100644
index 0000000..f00ba45
--- /dev/null
+++ b/docs/usage.md
@@ -0,0 +1,2 @@
+# Usage
+Run the server.
`

func TestParseDiff(t *testing.T) {
	diff, err := ParseDiff(sampleDiff)
	if err != nil {
		t.Fatalf("ParseDiff() error = %v", err)
	}

	if len(diff.Files) != 2 {
		t.Fatalf("len(Files) = %d, want 2", len(diff.Files))
	}

	first := diff.Files[0]
	if first.Path != "internal/app/server.go" {
		t.Errorf("Path = %q", first.Path)
	}
	if first.Status != FileModified {
		t.Errorf("Status = %q, want modified", first.Status)
	}
	if first.Additions != 2 || first.Deletions != 1 {
		t.Errorf("Additions/Deletions = %d/%d, want 2/1", first.Additions, first.Deletions)
	}
	if len(first.Hunks) != 2 {
		t.Fatalf("len(Hunks) = %d, want 2", len(first.Hunks))
	}

	second := diff.Files[1]
	if second.Status != FileAdded {
		t.Errorf("Status = %q, want added", second.Status)
	}
	if second.Additions != 2 {
		t.Errorf("Additions = %d, want 2", second.Additions)
	}
}

func TestParseDiffLineNumbers(t *testing.T) {
	diff, err := ParseDiff(sampleDiff)
	if err != nil {
		t.Fatalf("ParseDiff() error = %v", err)
	}

	added := diff.Files[0].AddedLines()
	if len(added) != 2 {
		t.Fatalf("len(added) = %d, want 2", len(added))
	}
	// Hunk starts at new line 10; first line is context, additions follow.
	if added[0].NewNumber != 11 {
		t.Errorf("first addition NewNumber = %d, want 11", added[0].NewNumber)
	}
	if added[1].NewNumber != 12 {
		t.Errorf("second addition NewNumber = %d, want 12", added[1].NewNumber)
	}
	if added[0].Content != "\twarmup()" {
		t.Errorf("first addition Content = %q", added[0].Content)
	}
}

func TestParseDiffEmpty(t *testing.T) {
	diff, err := ParseDiff("")
	if err != nil {
		t.Fatalf("ParseDiff(empty) error = %v", err)
	}
	if len(diff.Files) != 0 {
		t.Errorf("len(Files) = %d, want 0", len(diff.Files))
	}
}

func TestParseDiffBinary(t *testing.T) {
	text := "diff --git a/logo.png b/logo.png\nBinary files a/logo.png and b/logo.png differ\n"
	diff, err := ParseDiff(text)
	if err != nil {
		t.Fatalf("ParseDiff() error = %v", err)
	}
	if len(diff.Files) != 1 || !diff.Files[0].IsBinary {
		t.Error("binary file not detected")
	}
}

func TestParseHunkHeader(t *testing.T) {
	hunk := parseHunkHeader("@@ -1,10 +2,12 @@ func main() {")
	if hunk.OldStart != 1 || hunk.OldLines != 10 {
		t.Errorf("old range = %d,%d", hunk.OldStart, hunk.OldLines)
	}
	if hunk.NewStart != 2 || hunk.NewLines != 12 {
		t.Errorf("new range = %d,%d", hunk.NewStart, hunk.NewLines)
	}
}

func TestParseHunkHeaderSingleLine(t *testing.T) {
	hunk := parseHunkHeader("@@ -5 +7 @@")
	if hunk.OldStart != 5 || hunk.OldLines != 1 {
		t.Errorf("old range = %d,%d", hunk.OldStart, hunk.OldLines)
	}
	if hunk.NewStart != 7 || hunk.NewLines != 1 {
		t.Errorf("new range = %d,%d", hunk.NewStart, hunk.NewLines)
	}
}

func TestUnifiedTextRoundTrip(t *testing.T) {
	diff, err := ParseDiff(sampleDiff)
	if err != nil {
		t.Fatalf("ParseDiff() error = %v", err)
	}

	text := diff.Files[0].UnifiedText()
	reparsed, err := ParseDiff("diff --git a/x b/x\n" + text)
	if err != nil {
		t.Fatalf("reparse error = %v", err)
	}
	if reparsed.Files[0].Additions != 2 || reparsed.Files[0].Deletions != 1 {
		t.Error("unified text does not round-trip")
	}
}

func TestCalculateStats(t *testing.T) {
	diff := &Diff{Files: []FileDiff{
		{Additions: 3, Deletions: 1},
		{Additions: 2, Deletions: 4},
	}}
	diff.CalculateStats()

	if diff.Stats.FilesChanged != 2 {
		t.Errorf("FilesChanged = %d", diff.Stats.FilesChanged)
	}
	if diff.Stats.TotalChanged() != 10 {
		t.Errorf("TotalChanged = %d, want 10", diff.Stats.TotalChanged())
	}
}
