package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	oai "github.com/firebase/genkit/go/plugins/compat_oai/openai"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"github.com/openai/openai-go/option"

	"github.com/juparave/prsentry/internal/config"
)

// Generator is the capability the review steps depend on: one bounded,
// blocking text-generation call. Implementations own all network concerns;
// callers only see text or an error.
type Generator interface {
	Generate(ctx context.Context, system, user string) (string, error)
}

// GenkitGenerator is the real Generator backed by a genkit model provider.
type GenkitGenerator struct {
	genkit  *genkit.Genkit
	modelID string
	timeout time.Duration
}

// NewGenerator initializes the configured provider and returns a Generator.
func NewGenerator(cfg config.ReviewConfig) (*GenkitGenerator, error) {
	ctx := context.Background()

	var g *genkit.Genkit
	var modelID string

	switch cfg.Provider {
	case "openai":
		// OpenAI or any OpenAI-compatible endpoint.
		var opts []option.RequestOption
		if cfg.BaseURL != "" {
			opts = append(opts, option.WithBaseURL(cfg.BaseURL))
		}

		plugin := &oai.OpenAI{
			APIKey: cfg.APIKey,
			Opts:   opts,
		}

		modelID = cfg.Model
		if modelID == "" {
			modelID = "gpt-4o-mini"
		}
		if !strings.Contains(modelID, "/") {
			modelID = "openai/" + modelID
		}

		g = genkit.Init(ctx,
			genkit.WithDefaultModel(modelID),
			genkit.WithPlugins(plugin),
		)

	case "googleai":
		modelID = cfg.Model
		if modelID == "" {
			modelID = "gemini-2.0-flash"
		}
		if !strings.Contains(modelID, "/") {
			modelID = "googleai/" + modelID
		}

		g = genkit.Init(ctx,
			genkit.WithDefaultModel(modelID),
			genkit.WithPlugins(&googlegenai.GoogleAI{
				APIKey: cfg.APIKey,
			}),
		)

	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &GenkitGenerator{
		genkit:  g,
		modelID: modelID,
		timeout: timeout,
	}, nil
}

// ModelID returns the fully qualified model identifier in use.
func (g *GenkitGenerator) ModelID() string {
	return g.modelID
}

// Generate sends a {system, user} message pair to the model and returns its
// text output verbatim. The call is bounded by the configured timeout.
func (g *GenkitGenerator) Generate(ctx context.Context, system, user string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	text, err := genkit.GenerateText(ctx, g.genkit,
		ai.WithModelName(g.modelID),
		ai.WithMessages(
			ai.NewSystemTextMessage(system),
			ai.NewUserTextMessage(user),
		),
	)
	if err != nil {
		return "", fmt.Errorf("generating text: %w", err)
	}

	return text, nil
}
