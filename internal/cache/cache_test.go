package cache

import (
	"testing"
	"time"

	"github.com/prguard/prguard/internal/report"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestPutAndGet(t *testing.T) {
	c := openTestCache(t)

	rep := &report.Report{
		Title: "fix: handle empty diff",
		Warnings: []report.Finding{
			{RuleID: "pr-size", Severity: report.SeverityWarning, Message: "big PR"},
		},
	}

	if err := c.Put("abc123", rep); err != nil {
		t.Fatalf("Put() error: %v", err)
	}

	got := c.Get("abc123")
	if got == nil {
		t.Fatal("Get() returned nil for stored fingerprint")
	}
	if !got.Cached {
		t.Error("Get() should mark the report as cached")
	}
	if got.Title != rep.Title {
		t.Errorf("Title = %q, want %q", got.Title, rep.Title)
	}
	if len(got.Warnings) != 1 || got.Warnings[0].RuleID != "pr-size" {
		t.Errorf("Warnings = %+v", got.Warnings)
	}
}

func TestGetMiss(t *testing.T) {
	c := openTestCache(t)

	if got := c.Get("never-stored"); got != nil {
		t.Errorf("Get() on a miss = %+v, want nil", got)
	}
}

func TestClear(t *testing.T) {
	c := openTestCache(t)

	if err := c.Put("abc", &report.Report{Title: "x"}); err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	if err := c.Clear(); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if got := c.Get("abc"); got != nil {
		t.Errorf("Get() after Clear() = %+v, want nil", got)
	}
}

func TestNilCacheIsDisabled(t *testing.T) {
	var c *Cache

	if got := c.Get("anything"); got != nil {
		t.Errorf("nil cache Get() = %+v, want nil", got)
	}
	if err := c.Put("anything", &report.Report{}); err != nil {
		t.Errorf("nil cache Put() error: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("nil cache Close() error: %v", err)
	}
}
