package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const configFileName = ".prguard.yaml"

// Loader handles configuration loading from multiple sources.
type Loader struct {
	v          *viper.Viper
	configFile string
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	// CI jobs and local runs both commonly keep tokens in a .env file.
	// Missing file is fine; real env vars win over .env contents.
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName(".prguard")
	v.SetConfigType("yaml")

	// Search paths in order of priority
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME")
	v.AddConfigPath("/etc/prguard")

	v.SetEnvPrefix("PRGUARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Loader{v: v}
}

// SetConfigFile sets a specific config file to use.
func (l *Loader) SetConfigFile(path string) {
	l.configFile = path
	l.v.SetConfigFile(path)
}

// Load loads the configuration from all sources.
// Priority (highest to lowest):
// 1. Explicit config file (if set via SetConfigFile)
// 2. Environment variables (PRGUARD_*)
// 3. Config file from search paths (.prguard.yaml)
// 4. Default values
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	l.setDefaults(cfg)

	if err := l.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found - that's ok, we'll use defaults
	}

	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// The token never comes from the config file.
	if cfg.GitHub.Token == "" {
		cfg.GitHub.Token = os.Getenv("GITHUB_TOKEN")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setDefaults sets all default values in viper.
func (l *Loader) setDefaults(cfg *Config) {
	l.v.SetDefault("git.repo_path", cfg.Git.RepoPath)
	l.v.SetDefault("git.base_branch", cfg.Git.BaseBranch)

	l.v.SetDefault("github.base_url", cfg.GitHub.BaseURL)

	l.v.SetDefault("check.large_change_lines", cfg.Check.LargeChangeLines)
	l.v.SetDefault("check.huge_change_lines", cfg.Check.HugeChangeLines)
	l.v.SetDefault("check.needs_tests_min_lines", cfg.Check.NeedsTestsMinLines)
	l.v.SetDefault("check.source_patterns", cfg.Check.SourcePatterns)
	l.v.SetDefault("check.test_patterns", cfg.Check.TestPatterns)
	l.v.SetDefault("check.doc_patterns", cfg.Check.DocPatterns)
	l.v.SetDefault("check.manifest_patterns", cfg.Check.ManifestPatterns)
	l.v.SetDefault("check.generated_patterns", cfg.Check.GeneratedPatterns)
	l.v.SetDefault("check.changelog_patterns", cfg.Check.ChangelogPatterns)
	l.v.SetDefault("check.skip_test_prefixes", cfg.Check.SkipTestPrefixes)
	l.v.SetDefault("check.changelog_policy", cfg.Check.ChangelogPolicy)

	l.v.SetDefault("rules.rules_dir", cfg.Rules.RulesDir)
	l.v.SetDefault("rules.disabled", cfg.Rules.Disabled)

	l.v.SetDefault("output.format", cfg.Output.Format)
	l.v.SetDefault("output.file", cfg.Output.File)
	l.v.SetDefault("output.verbose", cfg.Output.Verbose)
	l.v.SetDefault("output.quiet", cfg.Output.Quiet)

	l.v.SetDefault("cache.enabled", cfg.Cache.Enabled)
	l.v.SetDefault("cache.dir", cfg.Cache.Dir)
	l.v.SetDefault("cache.ttl", cfg.Cache.TTL)

	l.v.SetDefault("history.enabled", cfg.History.Enabled)
	l.v.SetDefault("history.path", cfg.History.Path)
}

// ConfigFileUsed returns the path of the config file used, if any.
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

// LoadFromFile loads configuration from a specific file.
func LoadFromFile(path string) (*Config, error) {
	loader := NewLoader()
	loader.SetConfigFile(path)
	return loader.Load()
}

// LoadDefault loads configuration with default search paths.
func LoadDefault() (*Config, error) {
	loader := NewLoader()
	return loader.Load()
}

// FindConfigFile searches for a config file and returns its path.
// Returns empty string if no config file is found.
func FindConfigFile() string {
	if _, err := os.Stat(configFileName); err == nil {
		if abs, err := filepath.Abs(configFileName); err == nil {
			return abs
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(home, configFileName)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	etcPath := "/etc/prguard/" + configFileName
	if _, err := os.Stat(etcPath); err == nil {
		return etcPath
	}

	return ""
}
