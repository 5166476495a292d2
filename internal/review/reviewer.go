package review

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/juparave/prsentry/internal/domain"
	"github.com/juparave/prsentry/internal/llm"
	"github.com/juparave/prsentry/internal/snippet"
)

// ErrorTag prefixes text embedded in the report when a generation call
// fails. Failures are absorbed into the report on purpose: a reader should
// see that a tool tried and failed rather than silence, and tests can match
// on the tag.
const ErrorTag = "[generation-error]"

const summarySystemPrompt = `You are a senior software engineer summarizing a code change for reviewers.
Summarize the diff below. Focus on why the change was made, not a line-by-line
restatement. Use bullet points. Be concise.`

const fixSystemPrompt = `You are a security engineer reviewing a static-analysis finding.
First explain the risk the finding poses in this code, then give a concrete fix.
Label the sections "Risk" and "Suggestion".`

// Reviewer turns a diff and a findings batch into report content.
type Reviewer struct {
	gen      llm.Generator
	logger   hclog.Logger
	repoPath string
}

// NewReviewer creates a Reviewer. repoPath is the checkout root that finding
// paths are relative to.
func NewReviewer(gen llm.Generator, repoPath string, logger hclog.Logger) *Reviewer {
	return &Reviewer{gen: gen, logger: logger, repoPath: repoPath}
}

// Summarize produces a prose summary of the diff. A failed generation call
// is absorbed: the returned string carries the error tag instead of a
// summary, and the pipeline continues.
func (r *Reviewer) Summarize(ctx context.Context, diff string) string {
	if strings.TrimSpace(diff) == "" {
		return "No changes detected against the base reference."
	}

	text, err := r.gen.Generate(ctx, summarySystemPrompt, diff)
	if err != nil {
		r.logger.Warn("summary generation failed", "error", err)
		return fmt.Sprintf("%s summary: %v", ErrorTag, err)
	}

	return text
}

// SuggestFixes produces one suggestion per finding, in input order. Each
// finding is processed independently: a failed call yields tagged error text
// as that item's body rather than aborting the batch. An empty batch yields
// an empty slice.
func (r *Reviewer) SuggestFixes(ctx context.Context, batch []domain.Finding) []domain.Suggestion {
	suggestions := make([]domain.Suggestion, 0, len(batch))

	for _, f := range batch {
		code := snippet.Extract(r.repoPath, f.Path, f.StartLine, f.EndLine)

		body, err := r.gen.Generate(ctx, fixSystemPrompt, buildFixPrompt(f, code))
		if err != nil {
			r.logger.Warn("fix generation failed", "finding", f.Location(), "error", err)
			body = fmt.Sprintf("%s fix for %s: %v", ErrorTag, f.Location(), err)
		}

		suggestions = append(suggestions, domain.Suggestion{
			Path:      f.Path,
			StartLine: f.StartLine,
			EndLine:   f.EndLine,
			Body:      body,
		})
	}

	return suggestions
}

func buildFixPrompt(f domain.Finding, code string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("File: %s\n", f.Path))
	sb.WriteString(fmt.Sprintf("Lines: %d-%d\n", f.StartLine, f.EndLine))
	sb.WriteString(fmt.Sprintf("Issue: %s\n\n", f.Message))
	sb.WriteString("Code:\n```\n")
	sb.WriteString(code)
	sb.WriteString("\n```")

	return sb.String()
}
