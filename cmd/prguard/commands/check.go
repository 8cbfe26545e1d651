package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/prguard/prguard/internal/cache"
	"github.com/prguard/prguard/internal/changeset"
	"github.com/prguard/prguard/internal/config"
	"github.com/prguard/prguard/internal/evaluate"
	"github.com/prguard/prguard/internal/git"
	"github.com/prguard/prguard/internal/github"
	"github.com/prguard/prguard/internal/history"
	"github.com/prguard/prguard/internal/logger"
	"github.com/prguard/prguard/internal/project"
	"github.com/prguard/prguard/internal/report"
	"github.com/prguard/prguard/internal/rules"
)

// errChecksFailed signals failure findings. Execute suppresses the
// error prefix for it so the report stays the last thing printed.
var errChecksFailed = fmt.Errorf("checks failed")

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run the PR checks against a changeset",
	Long: `Run the full check list against a changeset and print the report.

The changeset comes from one of four sources:

  --base BRANCH   diff of HEAD against the merge base with BRANCH
  --commit SHA    diff introduced by a single commit
  --staged        staged changes in the index
  --pr REF        a GitHub pull request (owner/repo#number), no checkout needed

Exit status is non-zero when any check produces a failure.

Examples:
  prguard check --base main
  prguard check --staged --format markdown
  prguard check --pr octocat/hello-world#42 --format github`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	// Mode flags (mutually exclusive)
	checkCmd.Flags().String("base", "", "Check against the merge base with this branch")
	checkCmd.Flags().String("commit", "", "Check a specific commit")
	checkCmd.Flags().Bool("staged", false, "Check staged changes")
	checkCmd.Flags().String("pr", "", "Check a GitHub pull request (owner/repo#number)")

	// Output flags
	checkCmd.Flags().StringP("format", "f", "", "Output format (text, markdown, json, github)")
	checkCmd.Flags().StringP("output", "o", "", "Write report to file")

	// Behavior flags
	checkCmd.Flags().Bool("no-cache", false, "Disable the result cache")
	checkCmd.Flags().String("title", "", "Override the changeset title")

	_ = viper.BindPFlag("check.base", checkCmd.Flags().Lookup("base"))
	_ = viper.BindPFlag("output.format", checkCmd.Flags().Lookup("format"))
}

func runCheck(cmd *cobra.Command, args []string) error {
	if err := validateCheckFlags(cmd); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	log := logger.Default().WithPrefix("CHECK")

	cs, tree, branch, commit, err := buildChangeSet(ctx, cmd, cfg)
	if err != nil {
		return err
	}

	if len(cs.Files) == 0 {
		log.Info("changeset is empty, nothing to check")
	}

	// Result cache, keyed by changeset fingerprint.
	var resultCache *cache.Cache
	noCache, _ := cmd.Flags().GetBool("no-cache")
	if !noCache && cfg.Cache.Enabled {
		resultCache, err = cache.Open(cfg.Cache.Dir, cfg.Cache.TTL)
		if err != nil {
			log.Warn("cache unavailable: %v", err)
		} else {
			defer resultCache.Close()
		}
	}

	fingerprint := cs.Fingerprint()
	rep := resultCache.Get(fingerprint)
	if rep != nil {
		log.Debug("cache hit for fingerprint %s", fingerprint[:12])
	} else {
		rep, err = evaluateChangeSet(cs, tree, cfg)
		if err != nil {
			return err
		}
		if err := resultCache.Put(fingerprint, rep); err != nil {
			log.Warn("caching result: %v", err)
		}
	}

	if cfg.History.Enabled {
		recordRun(ctx, cfg, branch, commit, rep, log)
	}

	if err := renderReport(cmd, cfg, rep); err != nil {
		return err
	}

	if !rep.Passed() {
		return errChecksFailed
	}
	return nil
}

// buildChangeSet resolves the selected mode into a changeset. The tree
// is nil for PR mode since there is no checkout to scan.
func buildChangeSet(ctx context.Context, cmd *cobra.Command, cfg *config.Config) (*changeset.ChangeSet, *project.Tree, string, string, error) {
	titleOverride, _ := cmd.Flags().GetString("title")

	if prRef, _ := cmd.Flags().GetString("pr"); prRef != "" {
		cs, err := buildFromPR(ctx, cfg, prRef, titleOverride)
		return cs, nil, "", "", err
	}

	repoPath := cfg.Git.RepoPath
	if repoPath == "" {
		repoPath = "."
	}
	repo, err := git.NewRepo(repoPath)
	if err != nil {
		return nil, nil, "", "", err
	}

	var diff *git.Diff
	switch {
	case mustGetString(cmd, "commit") != "":
		diff, err = repo.GetCommitDiff(ctx, mustGetString(cmd, "commit"))
	case mustGetBool(cmd, "staged"):
		diff, err = repo.GetStagedDiff(ctx)
	default:
		base := mustGetString(cmd, "base")
		if base == "" {
			base = cfg.Git.BaseBranch
		}
		diff, err = repo.GetBranchDiff(ctx, base)
	}
	if err != nil {
		return nil, nil, "", "", err
	}

	title := titleOverride
	if title == "" {
		// Local runs have no PR title; the HEAD subject is the best stand-in.
		title, _ = repo.GetLastCommitSubject(ctx)
	}

	cs := changeset.FromDiff(diff, title, "")

	root, err := repo.GetRepoRoot(ctx)
	if err != nil {
		return nil, nil, "", "", err
	}
	tree, err := project.Scan(root)
	if err != nil {
		return nil, nil, "", "", fmt.Errorf("scanning working tree: %w", err)
	}

	branch, _ := repo.GetCurrentBranch(ctx)
	commit, _ := repo.GetHeadSHA(ctx)

	return cs, tree, branch, commit, nil
}

func buildFromPR(ctx context.Context, cfg *config.Config, prRef, titleOverride string) (*changeset.ChangeSet, error) {
	owner, repoName, number, err := github.ParsePRRef(prRef)
	if err != nil {
		return nil, err
	}

	client, err := github.NewClient(ctx, cfg.GitHub.Token, cfg.GitHub.BaseURL)
	if err != nil {
		return nil, err
	}

	pr, err := client.GetPullRequest(ctx, owner, repoName, number)
	if err != nil {
		return nil, err
	}

	rawDiff, err := client.GetDiff(ctx, owner, repoName, number)
	if err != nil {
		return nil, err
	}

	diff, err := git.ParseDiff(rawDiff)
	if err != nil {
		return nil, fmt.Errorf("parsing PR diff: %w", err)
	}

	title := titleOverride
	if title == "" {
		title = pr.Title
	}
	return changeset.FromDiff(diff, title, pr.Body), nil
}

func evaluateChangeSet(cs *changeset.ChangeSet, tree *project.Tree, cfg *config.Config) (*report.Report, error) {
	patterns, err := rules.NewLoader(cfg.Rules.RulesDir, cfg.Rules.Disabled).Load()
	if err != nil {
		return nil, fmt.Errorf("loading line patterns: %w", err)
	}

	active := rules.Filter(rules.DefaultRules(patterns), cfg.Rules.Disabled)

	engine := evaluate.NewEngine(active)
	rep := engine.Run(&rules.Context{
		Change:  cs,
		Classes: changeset.NewClassifier(cfg.Check),
		Tree:    tree,
		Policy:  cfg.Check,
	})

	if isVerbose() {
		fmt.Fprint(os.Stderr, engine.Metrics().Summary())
	}

	return rep, nil
}

func recordRun(ctx context.Context, cfg *config.Config, branch, commit string, rep *report.Report, log *logger.Logger) {
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		log.Warn("history unavailable: %v", err)
		return
	}
	defer store.Close()

	if _, err := store.Record(ctx, branch, commit, rep); err != nil {
		log.Warn("recording run: %v", err)
	}
}

func renderReport(cmd *cobra.Command, cfg *config.Config, rep *report.Report) error {
	format, _ := cmd.Flags().GetString("format")
	if format == "" {
		format = cfg.Output.Format
	}

	reporter, err := report.NewReporter(format)
	if err != nil {
		return err
	}

	output, err := reporter.Generate(rep)
	if err != nil {
		return fmt.Errorf("generating report: %w", err)
	}

	outputFile, _ := cmd.Flags().GetString("output")
	if outputFile == "" {
		outputFile = cfg.Output.File
	}
	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(output), 0o644); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		if !isQuiet() {
			fmt.Fprintf(os.Stderr, "Report written to %s\n", outputFile)
		}
		return nil
	}

	if !isQuiet() {
		fmt.Print(output)
	}
	return nil
}

func validateCheckFlags(cmd *cobra.Command) error {
	modeCount := 0
	if mustGetString(cmd, "base") != "" {
		modeCount++
	}
	if mustGetString(cmd, "commit") != "" {
		modeCount++
	}
	if mustGetBool(cmd, "staged") {
		modeCount++
	}
	if mustGetString(cmd, "pr") != "" {
		modeCount++
	}
	if modeCount > 1 {
		return fmt.Errorf("only one of --base, --commit, --staged, --pr is allowed")
	}

	if format := mustGetString(cmd, "format"); format != "" {
		valid := false
		for _, f := range report.AvailableFormats() {
			if f == format {
				valid = true
			}
		}
		if !valid {
			return fmt.Errorf("invalid format %q, must be one of: text, markdown, json, github", format)
		}
	}

	return nil
}

func mustGetString(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}

func mustGetBool(cmd *cobra.Command, name string) bool {
	v, _ := cmd.Flags().GetBool(name)
	return v
}
