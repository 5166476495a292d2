package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration. It is constructed once at
// startup and passed explicitly to every component; nothing reads process
// environment after Load returns.
type Config struct {
	RepoPath     string       `yaml:"repo_path"`
	FindingsPath string       `yaml:"findings_path"`
	BaseRef      string       `yaml:"base_ref"`
	Review       ReviewConfig `yaml:"review"`
	GitHub       GitHubConfig `yaml:"github"`
	DryRun       bool         `yaml:"-"` // Set via CLI only
	Verbose      bool         `yaml:"-"` // Set via CLI only
}

// ReviewConfig holds LLM generation settings.
type ReviewConfig struct {
	Provider string        `yaml:"provider"` // openai, googleai
	Model    string        `yaml:"model"`
	APIKey   string        `yaml:"api_key"`
	BaseURL  string        `yaml:"base_url"` // Custom OpenAI-compatible endpoint
	Timeout  time.Duration `yaml:"timeout"`
}

// GitHubConfig holds comment delivery settings.
type GitHubConfig struct {
	APIBase    string        `yaml:"api_base"`
	Token      string        `yaml:"token"`
	Repository string        `yaml:"repository"` // owner/name
	PRNumber   int           `yaml:"pr_number"`
	Timeout    time.Duration `yaml:"timeout"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		RepoPath:     ".",
		FindingsPath: "semgrep_results.json",
		BaseRef:      "origin/main",
		Review: ReviewConfig{
			Provider: "openai",
			Model:    "gpt-4o-mini",
			Timeout:  60 * time.Second,
		},
		GitHub: GitHubConfig{
			APIBase: "https://api.github.com",
			Timeout: 30 * time.Second,
		},
	}
}

// Load reads configuration from an optional file, merges it over defaults,
// and fills credentials and CI identifiers from the environment.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = ".prsentry.yaml"
	}
	path = expandPath(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// No config file is fine; environment supplies the rest.
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.RepoPath = expandPath(cfg.RepoPath)
	cfg.fromEnvironment()

	return cfg, nil
}

// fromEnvironment fills values the CI job provides as environment variables.
// Explicit config-file values win over the environment.
func (c *Config) fromEnvironment() {
	if c.Review.APIKey == "" {
		for _, name := range []string{"LLM_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY"} {
			if v := os.Getenv(name); v != "" {
				c.Review.APIKey = v
				break
			}
		}
	}
	if c.GitHub.Token == "" {
		c.GitHub.Token = os.Getenv("GITHUB_TOKEN")
	}
	if c.GitHub.Repository == "" {
		c.GitHub.Repository = os.Getenv("GITHUB_REPOSITORY")
	}
	if c.GitHub.PRNumber == 0 {
		if v := os.Getenv("PR_NUMBER"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.GitHub.PRNumber = n
			}
		}
	}
	if v := os.Getenv("BASE_REF"); v != "" && c.BaseRef == DefaultConfig().BaseRef {
		c.BaseRef = v
	}
}

// Validate checks that every required setting is present. It is the single
// fatal gate: the pipeline makes no external call before this passes.
func (c *Config) Validate() error {
	if c.Review.APIKey == "" {
		return fmt.Errorf("generation API key is required (set LLM_API_KEY)")
	}
	if c.BaseRef == "" {
		return fmt.Errorf("base_ref is required")
	}
	if c.FindingsPath == "" {
		return fmt.Errorf("findings_path is required")
	}
	if c.DryRun {
		return nil // Delivery settings are not needed without delivery.
	}
	if c.GitHub.Token == "" {
		return fmt.Errorf("github token is required (set GITHUB_TOKEN)")
	}
	if c.GitHub.Repository == "" {
		return fmt.Errorf("github repository is required (set GITHUB_REPOSITORY as owner/name)")
	}
	if !strings.Contains(c.GitHub.Repository, "/") {
		return fmt.Errorf("github repository %q must be owner/name", c.GitHub.Repository)
	}
	if c.GitHub.PRNumber <= 0 {
		return fmt.Errorf("pull request number is required (set PR_NUMBER)")
	}
	return nil
}

// expandPath expands ~ to home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
