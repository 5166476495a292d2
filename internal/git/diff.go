package git

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/juparave/prsentry/internal/domain"
)

// diffTimeout bounds the git subprocess; a hung repository query fails the
// run instead of stalling it.
const diffTimeout = 30 * time.Second

// ErrAcquisitionFailed indicates the diff could not be obtained from the
// repository (unknown ref, not a repository, git not available).
var ErrAcquisitionFailed = errors.New("diff acquisition failed")

// Client obtains diffs from a local repository checkout.
type Client struct {
	repoPath string
}

// NewClient creates a git client rooted at repoPath.
func NewClient(repoPath string) *Client {
	return &Client{repoPath: repoPath}
}

// Diff returns the unified diff between the working tree and baseRef.
// Diffs longer than domain.MaxDiffLines are truncated with a marker.
func (c *Client) Diff(ctx context.Context, baseRef string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, diffTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", "diff", "--no-color", baseRef)
	cmd.Dir = c.repoPath

	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return "", fmt.Errorf("%w: git diff %s: %s", ErrAcquisitionFailed, baseRef, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("%w: git diff %s: %v", ErrAcquisitionFailed, baseRef, err)
	}

	return truncate(string(output)), nil
}

func truncate(diff string) string {
	lines := strings.Split(diff, "\n")
	if len(lines) <= domain.MaxDiffLines {
		return diff
	}
	return strings.Join(lines[:domain.MaxDiffLines], "\n") + "\n... [truncated]"
}
