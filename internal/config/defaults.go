package config

import (
	"os"
	"path/filepath"
	"time"
)

// DefaultConfig returns a Config with sensible default values.
// The path classes cover the ecosystems the bot is pointed at in practice:
// Go, Swift, JavaScript/TypeScript, Python, Ruby and Rust trees.
func DefaultConfig() *Config {
	cacheDir := defaultCacheDir()

	return &Config{
		Git:     defaultGitConfig(),
		GitHub:  GitHubConfig{},
		Check:   defaultCheckConfig(),
		Rules:   RulesConfig{},
		Output:  defaultOutputConfig(),
		Cache:   defaultCacheConfig(cacheDir),
		History: defaultHistoryConfig(cacheDir),
	}
}

// defaultCacheDir returns the default cache directory path.
func defaultCacheDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return filepath.Join(homeDir, ".cache", "prguard")
}

func defaultGitConfig() GitConfig {
	return GitConfig{
		RepoPath:   ".",
		BaseBranch: "main",
	}
}

func defaultCheckConfig() CheckConfig {
	return CheckConfig{
		LargeChangeLines:   500,
		HugeChangeLines:    1000,
		NeedsTestsMinLines: 50,
		SourcePatterns: []string{
			"src/**", "lib/**", "internal/**", "pkg/**", "cmd/**",
			"app/**", "Sources/**",
		},
		TestPatterns: []string{
			"test/**", "tests/**", "spec/**", "Tests/**",
			"**/*_test.go", "**/*_test.py", "**/*_spec.rb",
			"**/*.test.js", "**/*.test.ts", "**/*.spec.js", "**/*.spec.ts",
			"**/*Tests.swift", "**/*Test.java", "**/*Test.kt",
		},
		DocPatterns: []string{
			"README*", "docs/**", "doc/**", "**/*.md", "**/*.rst",
		},
		ManifestPatterns: []string{
			"go.mod", "package.json", "Package.swift", "Podfile",
			"Cargo.toml", "Gemfile", "requirements.txt", "pyproject.toml",
			"pom.xml", "build.gradle", "build.gradle.kts", "*.podspec",
		},
		GeneratedPatterns: []string{
			"**/*.pb.go", "**/*_generated.*", "**/*.gen.go",
			"**/generated/**", "**/*.g.swift", "**/*.g.dart",
			"go.sum", "package-lock.json", "yarn.lock", "pnpm-lock.yaml",
			"Cargo.lock", "Gemfile.lock", "Podfile.lock",
		},
		ChangelogPatterns: []string{
			"CHANGELOG*", "CHANGES*", "HISTORY*",
		},
		SkipTestPrefixes: []string{
			"main", "doc", "App", "Main", "index",
		},
		ChangelogPolicy: ChangelogWarn,
	}
}

func defaultOutputConfig() OutputConfig {
	return OutputConfig{
		Format:  "text",
		Verbose: false,
		Quiet:   false,
	}
}

func defaultCacheConfig(cacheDir string) CacheConfig {
	return CacheConfig{
		Enabled: false,
		Dir:     filepath.Join(cacheDir, "results"),
		TTL:     24 * time.Hour,
	}
}

func defaultHistoryConfig(cacheDir string) HistoryConfig {
	return HistoryConfig{
		Enabled: false,
		Path:    filepath.Join(cacheDir, "history.db"),
	}
}
