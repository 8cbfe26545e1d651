// Package config handles all configuration management for prguard.
//
// Configuration is loaded from multiple sources in order of precedence:
// 1. Command-line flags (highest priority)
// 2. Environment variables (PRGUARD_*)
// 3. Configuration file (.prguard.yaml)
// 4. Default values (lowest priority)
package config

import (
	"time"
)

// Changelog policies. The strict variant blocks the merge, the lenient
// one only warns, and "off" disables the check entirely.
const (
	ChangelogOff  = "off"
	ChangelogWarn = "warn"
	ChangelogFail = "fail"
)

// Config is the main configuration structure for prguard.
type Config struct {
	// Git configures local git access
	Git GitConfig `mapstructure:"git" yaml:"git"`

	// GitHub configures the PR metadata source
	GitHub GitHubConfig `mapstructure:"github" yaml:"github"`

	// Check configures the rule thresholds and path classes
	Check CheckConfig `mapstructure:"check" yaml:"check"`

	// Rules configures the data-driven line pattern rules
	Rules RulesConfig `mapstructure:"rules" yaml:"rules"`

	// Output configures report rendering
	Output OutputConfig `mapstructure:"output" yaml:"output"`

	// Cache configures the result cache
	Cache CacheConfig `mapstructure:"cache" yaml:"cache"`

	// History configures the run history store
	History HistoryConfig `mapstructure:"history" yaml:"history"`
}

// GitConfig configures local git access.
type GitConfig struct {
	// RepoPath is the path to the git repository (default: current directory)
	RepoPath string `mapstructure:"repo_path" yaml:"repo_path"`

	// BaseBranch is the base branch for branch diffs (default: main)
	BaseBranch string `mapstructure:"base_branch" yaml:"base_branch"`
}

// GitHubConfig configures the GitHub PR source.
type GitHubConfig struct {
	// Token is the API token. Set via PRGUARD_GITHUB_TOKEN or GITHUB_TOKEN,
	// never via the config file.
	Token string `mapstructure:"token" yaml:"-"`

	// BaseURL overrides the API endpoint for GitHub Enterprise.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
}

// CheckConfig holds the thresholds and path classes the built-in rules use.
type CheckConfig struct {
	// LargeChangeLines triggers the "large PR" warning (default 500)
	LargeChangeLines int `mapstructure:"large_change_lines" yaml:"large_change_lines"`

	// HugeChangeLines triggers the "very large PR" warning (default 1000)
	HugeChangeLines int `mapstructure:"huge_change_lines" yaml:"huge_change_lines"`

	// NeedsTestsMinLines is the minimum changed-line count before source
	// changes without test changes are flagged (default 50)
	NeedsTestsMinLines int `mapstructure:"needs_tests_min_lines" yaml:"needs_tests_min_lines"`

	// SourcePatterns classify paths as production source (doublestar globs)
	SourcePatterns []string `mapstructure:"source_patterns" yaml:"source_patterns"`

	// TestPatterns classify paths as test code
	TestPatterns []string `mapstructure:"test_patterns" yaml:"test_patterns"`

	// DocPatterns classify paths as documentation
	DocPatterns []string `mapstructure:"doc_patterns" yaml:"doc_patterns"`

	// ManifestPatterns classify paths as build/dependency manifests
	ManifestPatterns []string `mapstructure:"manifest_patterns" yaml:"manifest_patterns"`

	// GeneratedPatterns classify paths as generated code
	GeneratedPatterns []string `mapstructure:"generated_patterns" yaml:"generated_patterns"`

	// ChangelogPatterns match changelog files
	ChangelogPatterns []string `mapstructure:"changelog_patterns" yaml:"changelog_patterns"`

	// SkipTestPrefixes are basename prefixes exempt from the expected-test
	// check (entry points, app delegates and the like)
	SkipTestPrefixes []string `mapstructure:"skip_test_prefixes" yaml:"skip_test_prefixes"`

	// ChangelogPolicy is one of "off", "warn", "fail" (default warn)
	ChangelogPolicy string `mapstructure:"changelog_policy" yaml:"changelog_policy"`
}

// RulesConfig configures the data-driven line pattern rules.
type RulesConfig struct {
	// RulesDir is a directory of additional YAML pattern files
	RulesDir string `mapstructure:"rules_dir" yaml:"rules_dir"`

	// Disabled lists rule IDs to skip
	Disabled []string `mapstructure:"disabled" yaml:"disabled"`
}

// OutputConfig configures report rendering.
type OutputConfig struct {
	// Format is the output format: "text", "markdown", "json", "github"
	Format string `mapstructure:"format" yaml:"format"`

	// File is the output file path (empty = stdout)
	File string `mapstructure:"file" yaml:"file"`

	// Verbose enables verbose output
	Verbose bool `mapstructure:"verbose" yaml:"verbose"`

	// Quiet suppresses all output except errors
	Quiet bool `mapstructure:"quiet" yaml:"quiet"`
}

// CacheConfig configures the result cache.
type CacheConfig struct {
	// Enabled enables caching of check results by changeset fingerprint
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Dir is the cache directory
	Dir string `mapstructure:"dir" yaml:"dir"`

	// TTL is the cache entry time-to-live
	TTL time.Duration `mapstructure:"ttl" yaml:"ttl"`
}

// HistoryConfig configures the run history store.
type HistoryConfig struct {
	// Enabled enables persisting check runs
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Path is the SQLite database file path
	Path string `mapstructure:"path" yaml:"path"`
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if c.Check.LargeChangeLines <= 0 {
		return &ValidationError{Field: "check.large_change_lines", Message: "must be positive"}
	}
	if c.Check.HugeChangeLines < c.Check.LargeChangeLines {
		return &ValidationError{Field: "check.huge_change_lines", Message: "must be >= large_change_lines"}
	}
	if c.Check.NeedsTestsMinLines < 0 {
		return &ValidationError{Field: "check.needs_tests_min_lines", Message: "must not be negative"}
	}

	switch c.Check.ChangelogPolicy {
	case ChangelogOff, ChangelogWarn, ChangelogFail:
	default:
		return &ValidationError{Field: "check.changelog_policy", Message: "must be one of: off, warn, fail"}
	}

	validFormats := map[string]bool{"text": true, "markdown": true, "json": true, "github": true}
	if !validFormats[c.Output.Format] {
		return &ValidationError{Field: "output.format", Message: "invalid format, must be one of: text, markdown, json, github"}
	}

	if c.Cache.Enabled && c.Cache.Dir == "" {
		return &ValidationError{Field: "cache.dir", Message: "cache directory is required when cache is enabled"}
	}
	if c.History.Enabled && c.History.Path == "" {
		return &ValidationError{Field: "history.path", Message: "history path is required when history is enabled"}
	}

	return nil
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return "config validation error: " + e.Field + ": " + e.Message
}
