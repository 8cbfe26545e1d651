package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prguard/prguard/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the available checks",
	Long: `List every check prguard can run, with its ID and description.

Rule IDs can be disabled via the rules.disabled config key.

Examples:
  prguard rules
  prguard rules --patterns`,
	RunE: runRules,
}

var rulesShowPatterns bool

func init() {
	rootCmd.AddCommand(rulesCmd)

	rulesCmd.Flags().BoolVar(&rulesShowPatterns, "patterns", false, "also list the line patterns")
}

func runRules(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	patterns, err := rules.NewLoader(cfg.Rules.RulesDir, cfg.Rules.Disabled).Load()
	if err != nil {
		return fmt.Errorf("loading line patterns: %w", err)
	}

	disabled := make(map[string]bool, len(cfg.Rules.Disabled))
	for _, id := range cfg.Rules.Disabled {
		disabled[id] = true
	}

	fmt.Println("Checks:")
	for _, r := range rules.DefaultRules(patterns) {
		marker := " "
		if disabled[r.ID()] {
			marker = "-"
		}
		fmt.Printf("  %s %-22s %s\n", marker, r.ID(), r.Description())
	}

	if rulesShowPatterns {
		fmt.Println("\nLine patterns:")
		for _, p := range patterns {
			langs := "all languages"
			if len(p.Languages) > 0 {
				langs = fmt.Sprintf("%v", p.Languages)
			}
			fmt.Printf("  %-22s [%s] %s (%s)\n", p.ID, p.Severity, p.Message, langs)
		}
	}

	return nil
}
