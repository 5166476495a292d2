package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/juparave/prsentry/internal/app"
	"github.com/juparave/prsentry/internal/config"
)

var (
	version      = "0.1.0"
	cfgFile      string
	repoPath     string
	findingsPath string
	baseRef      string
	repository   string
	prNumber     int
	dryRun       bool
	verbose      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "prsentry",
		Short:   "PR Sentry - automated pull-request review comments",
		Long:    `PR Sentry runs in CI after a static-analysis scan. It summarizes the change against a base reference, generates a remediation suggestion for every scanner finding, and posts the combined report as a pull-request comment.`,
		Version: version,
		RunE:    run,
	}

	rootCmd.Flags().StringVarP(&cfgFile, "config", "c", "", "Path to config file (default: .prsentry.yaml)")
	rootCmd.Flags().StringVar(&repoPath, "repo-path", "", "Path to the repository checkout (default: .)")
	rootCmd.Flags().StringVar(&findingsPath, "findings", "", "Path to the scanner results JSON (default: semgrep_results.json)")
	rootCmd.Flags().StringVar(&baseRef, "base", "", "Base reference to diff against (default: origin/main)")
	rootCmd.Flags().StringVar(&repository, "repo", "", "Repository as owner/name (default: $GITHUB_REPOSITORY)")
	rootCmd.Flags().IntVar(&prNumber, "pr", 0, "Pull request number (default: $PR_NUMBER)")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the report to stdout instead of posting it")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Override config with CLI flags
	if repoPath != "" {
		cfg.RepoPath = repoPath
	}
	if findingsPath != "" {
		cfg.FindingsPath = findingsPath
	}
	if baseRef != "" {
		cfg.BaseRef = baseRef
	}
	if repository != "" {
		cfg.GitHub.Repository = repository
	}
	if prNumber != 0 {
		cfg.GitHub.PRNumber = prNumber
	}
	cfg.DryRun = dryRun
	cfg.Verbose = verbose

	runner := app.NewRunner(cfg)
	return runner.Run(cmd.Context())
}
