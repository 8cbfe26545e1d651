package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/prguard/prguard/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect recorded check runs",
	Long: `Inspect the check runs recorded in the history database.

History recording is off by default; enable it with history.enabled in
the config file.

Examples:
  # List the 20 most recent runs
  prguard history list

  # Show one run with its findings
  prguard history show <run-id>

  # Aggregate statistics
  prguard history stats`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent runs",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one run and its findings",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate statistics",
	Args:  cobra.NoArgs,
	RunE:  runHistoryStats,
}

var historyLimit int

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyStatsCmd)

	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of runs to list")
}

func openHistory() (*history.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if cfg.History.Path == "" {
		return nil, fmt.Errorf("history is not configured, set history.path")
	}
	return history.Open(cfg.History.Path)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.ListRuns(context.Background(), historyLimit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No recorded runs.")
		return nil
	}

	for _, r := range runs {
		status := "PASS"
		if !r.Passed {
			status = "FAIL"
		}
		fmt.Printf("%s  %s  %s  %-6s %df/%dw/%di  %s\n",
			r.ID[:8], r.CreatedAt.Format(time.RFC3339), r.Branch, status,
			r.Failures, r.Warnings, r.Infos, r.Title)
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	run, findings, err := store.GetRun(context.Background(), args[0])
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("run %q not found", args[0])
	}

	fmt.Printf("Run:     %s\n", run.ID)
	fmt.Printf("Date:    %s\n", run.CreatedAt.Format(time.RFC3339))
	fmt.Printf("Branch:  %s @ %s\n", run.Branch, run.Commit)
	fmt.Printf("Title:   %s\n", run.Title)
	fmt.Printf("Changed: %d files, %d lines\n", run.FilesChanged, run.LinesChanged)
	fmt.Printf("Result:  %d failures, %d warnings, %d infos\n\n", run.Failures, run.Warnings, run.Infos)

	for _, f := range findings {
		loc := ""
		if f.File != "" {
			loc = " (" + f.File
			if f.Line > 0 {
				loc += fmt.Sprintf(":%d", f.Line)
			}
			loc += ")"
		}
		fmt.Printf("  [%s] %s: %s%s\n", f.Severity, f.RuleID, f.Message, loc)
	}
	return nil
}

func runHistoryStats(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := store.GetStats(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("Total runs:   %d\n", stats.TotalRuns)
	fmt.Printf("Passed runs:  %d\n", stats.PassedRuns)
	fmt.Printf("Avg warnings: %.1f\n", stats.AvgWarnings)
	if !stats.FirstRunAt.IsZero() {
		fmt.Printf("First run:    %s\n", stats.FirstRunAt.Format(time.RFC3339))
		fmt.Printf("Last run:     %s\n", stats.LastRunAt.Format(time.RFC3339))
	}

	if len(stats.ByRule) > 0 {
		fmt.Println("\nFindings by rule:")
		for rule, count := range stats.ByRule {
			fmt.Printf("  %-22s %d\n", rule, count)
		}
	}
	if len(stats.BySeverity) > 0 {
		fmt.Println("\nFindings by severity:")
		for sev, count := range stats.BySeverity {
			fmt.Printf("  %-10s %d\n", sev, count)
		}
	}
	return nil
}
