package metrics

import (
	"strings"
	"testing"
	"time"
)

func TestCounters(t *testing.T) {
	c := NewCollector()
	c.Inc("rules_run")
	c.Inc("rules_run")
	c.Add("findings", 5)

	if got := c.Counter("rules_run"); got != 2 {
		t.Errorf("Counter(rules_run) = %d, want 2", got)
	}
	if got := c.Counter("findings"); got != 5 {
		t.Errorf("Counter(findings) = %d, want 5", got)
	}
	if got := c.Counter("missing"); got != 0 {
		t.Errorf("Counter(missing) = %d, want 0", got)
	}
}

func TestObserve(t *testing.T) {
	c := NewCollector()
	c.Observe("rule.pr-size", 10*time.Millisecond)
	c.Observe("rule.pr-size", 5*time.Millisecond)

	if got := c.Duration("rule.pr-size"); got != 15*time.Millisecond {
		t.Errorf("Duration = %v, want 15ms", got)
	}
}

func TestTime(t *testing.T) {
	c := NewCollector()
	c.Time("work", func() { time.Sleep(time.Millisecond) })

	if c.Duration("work") <= 0 {
		t.Error("Time() should record a positive duration")
	}
}

func TestSummary(t *testing.T) {
	c := NewCollector()
	c.Inc("findings")
	c.Observe("total", time.Second)

	out := c.Summary()
	if !strings.Contains(out, "findings=1") {
		t.Errorf("summary missing counter: %s", out)
	}
	if !strings.Contains(out, "total=1s") {
		t.Errorf("summary missing duration: %s", out)
	}
}
