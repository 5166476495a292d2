package publish

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-hclog"

	"github.com/juparave/prsentry/internal/config"
)

// ErrDeliveryFailed indicates the collaboration endpoint rejected the comment.
var ErrDeliveryFailed = errors.New("comment delivery failed")

// commentBody is the comment-creation request payload.
type commentBody struct {
	Body string `json:"body"`
}

// Commenter delivers a report as a pull-request comment.
type Commenter struct {
	client     *resty.Client
	logger     hclog.Logger
	apiBase    string
	repository string
	prNumber   int
}

// NewCommenter creates a Commenter from delivery settings.
func NewCommenter(cfg config.GitHubConfig, logger hclog.Logger) *Commenter {
	client := resty.New().
		SetAuthToken(cfg.Token).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/vnd.github+json")

	return &Commenter{
		client:     client,
		logger:     logger,
		apiBase:    cfg.APIBase,
		repository: cfg.Repository,
		prNumber:   cfg.PRNumber,
	}
}

// Publish posts the markdown report to the pull request's comment thread.
// On a non-2xx response the body is logged for the operator and
// ErrDeliveryFailed is returned; there is no retry and no queuing.
func (c *Commenter) Publish(ctx context.Context, markdown string) error {
	url := fmt.Sprintf("%s/repos/%s/issues/%d/comments", c.apiBase, c.repository, c.prNumber)

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(commentBody{Body: markdown}).
		Post(url)
	if err != nil {
		return fmt.Errorf("%w: posting comment: %v", ErrDeliveryFailed, err)
	}

	if resp.IsError() {
		c.logger.Error("comment endpoint rejected the report",
			"status", resp.StatusCode(), "body", resp.String())
		return fmt.Errorf("%w: endpoint returned %d", ErrDeliveryFailed, resp.StatusCode())
	}

	c.logger.Info("comment posted", "repository", c.repository, "pr", c.prNumber)
	return nil
}
