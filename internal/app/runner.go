package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/juparave/prsentry/internal/config"
	"github.com/juparave/prsentry/internal/domain"
	"github.com/juparave/prsentry/internal/findings"
	"github.com/juparave/prsentry/internal/git"
	"github.com/juparave/prsentry/internal/llm"
	"github.com/juparave/prsentry/internal/publish"
	"github.com/juparave/prsentry/internal/report"
	"github.com/juparave/prsentry/internal/review"
)

// Runner orchestrates the full review pipeline: diff, findings, generation,
// formatting, delivery. Fully sequential; each step's failure contract is
// decided here.
type Runner struct {
	config *config.Config
	logger hclog.Logger
	git    *git.Client
	loader *findings.Loader
}

// NewRunner creates a new Runner instance.
func NewRunner(cfg *config.Config) *Runner {
	level := hclog.Info
	if cfg.Verbose {
		level = hclog.Debug
	}
	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "prsentry",
		Level: level,
	})

	return &Runner{
		config: cfg,
		logger: logger,
		git:    git.NewClient(cfg.RepoPath),
		loader: findings.NewLoader(logger),
	}
}

// Run executes the pipeline. Configuration and acquisition failures abort
// the run; generation failures are absorbed into the report; delivery
// failure is logged but the run is still considered complete.
func (r *Runner) Run(ctx context.Context) error {
	startTime := time.Now()

	if err := r.config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	r.logger.Debug("acquiring diff", "base", r.config.BaseRef)
	diff, err := r.git.Diff(ctx, r.config.BaseRef)
	if err != nil {
		return err
	}
	r.logger.Debug("diff acquired", "bytes", len(diff))

	r.logger.Debug("loading findings", "path", r.config.FindingsPath)
	batch, err := r.loader.Load(r.config.FindingsPath)
	if err != nil {
		return err
	}
	r.logger.Debug("findings loaded", "count", len(batch))

	gen, err := llm.NewGenerator(r.config.Review)
	if err != nil {
		return fmt.Errorf("initializing generator: %w", err)
	}
	reviewer := review.NewReviewer(gen, r.config.RepoPath, r.logger)

	r.logger.Debug("summarizing diff")
	summary := reviewer.Summarize(ctx, diff)

	r.logger.Debug("generating fix suggestions")
	suggestions := reviewer.SuggestFixes(ctx, batch)

	rpt := &domain.Report{
		Date:        time.Now(),
		Summary:     summary,
		Suggestions: suggestions,
		Model:       gen.ModelID(),
	}
	markdown := report.Render(rpt)

	if r.config.DryRun {
		fmt.Fprintln(os.Stdout, markdown)
		r.logger.Info("dry run, skipping delivery")
	} else {
		commenter := publish.NewCommenter(r.config.GitHub, r.logger)
		if err := commenter.Publish(ctx, markdown); err != nil {
			// Diagnostic only. The report was produced and delivery was
			// attempted, so the run still counts as complete.
			r.logger.Error("delivery failed", "error", err)
		}
	}

	r.logger.Info("review complete",
		"findings", len(batch),
		"elapsed", time.Since(startTime).Round(time.Millisecond))

	return nil
}
