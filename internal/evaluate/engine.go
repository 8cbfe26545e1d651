// Package evaluate runs the rule list against a changeset and builds the report.
package evaluate

import (
	"fmt"
	"time"

	"github.com/prguard/prguard/internal/logger"
	"github.com/prguard/prguard/internal/metrics"
	"github.com/prguard/prguard/internal/report"
	"github.com/prguard/prguard/internal/rules"
)

// SuccessMessage is emitted when a run produces no warnings and no failures.
const SuccessMessage = "All checks passed. LGTM!"

// Engine evaluates rules in a fixed order, each in isolation. A rule
// that panics is reported as a tool-internal warning and never stops
// the remaining rules or fails the PR.
type Engine struct {
	rules   []rules.Rule
	log     *logger.Logger
	metrics *metrics.Collector
}

// NewEngine creates an engine over an ordered rule list.
func NewEngine(ruleList []rules.Rule) *Engine {
	return &Engine{
		rules:   ruleList,
		log:     logger.Default().WithPrefix("ENGINE"),
		metrics: metrics.NewCollector(),
	}
}

// Metrics returns the collector for this engine.
func (e *Engine) Metrics() *metrics.Collector {
	return e.metrics
}

// Run evaluates every rule against the context and returns the sealed
// report. The success check runs last because it inspects the
// accumulated report.
func (e *Engine) Run(ctx *rules.Context) *report.Report {
	start := time.Now()

	rep := &report.Report{
		Title:        ctx.Change.Title,
		FilesChanged: ctx.Change.Stats.FilesChanged,
		LinesChanged: ctx.Change.TotalChanged(),
	}

	for _, rule := range e.rules {
		e.runRule(rule, ctx, rep)
	}

	if rep.Clean() {
		rep.Success = SuccessMessage
	}

	rep.Duration = time.Since(start)
	e.metrics.Observe("evaluate.total", rep.Duration)
	e.log.Debug("evaluated %d rules: %d failures, %d warnings, %d infos in %v",
		len(e.rules), len(rep.Failures), len(rep.Warnings), len(rep.Infos), rep.Duration)

	return rep
}

// runRule executes one rule under its own recover so a panicking rule
// cannot abort the rest of the evaluation.
func (e *Engine) runRule(rule rules.Rule, ctx *rules.Context, rep *report.Report) {
	defer func() {
		if rec := recover(); rec != nil {
			e.log.Warn("rule %s panicked: %v", rule.ID(), rec)
			e.metrics.Inc("rules_panicked")
			rep.Add(report.Finding{
				RuleID:   rule.ID(),
				Severity: report.SeverityWarning,
				Message:  fmt.Sprintf("prguard internal: rule %s failed and was skipped (%v)", rule.ID(), rec),
			})
		}
	}()

	ruleStart := time.Now()
	findings := rule.Check(ctx)
	e.metrics.Observe("rule."+rule.ID(), time.Since(ruleStart))
	e.metrics.Inc("rules_run")
	e.metrics.Add("findings", int64(len(findings)))

	rep.AddAll(findings)
}
