package findings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"

	"github.com/juparave/prsentry/internal/domain"
)

// ErrMissingFile indicates the findings file does not exist or is unreadable.
var ErrMissingFile = errors.New("findings file unavailable")

// ErrInvalidFinding indicates a finding record is missing a required field.
var ErrInvalidFinding = errors.New("invalid finding record")

// scanResult mirrors the scanner's JSON result shape:
// {"results": [{"path", "start": {"line"}, "end": {"line"}, "extra": {"message"}}]}.
type scanResult struct {
	Results []scanRecord `json:"results"`
}

type scanRecord struct {
	Path  string `json:"path"`
	Start struct {
		Line int `json:"line"`
	} `json:"start"`
	End struct {
		Line int `json:"line"`
	} `json:"end"`
	Extra struct {
		Message string `json:"message"`
	} `json:"extra"`
}

// Loader reads static-analysis findings from a results file.
type Loader struct {
	logger hclog.Logger
}

// NewLoader creates a Loader.
func NewLoader(logger hclog.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load reads the findings file at path and returns the findings in report
// order. An absent or unreadable file is a hard failure. A document that is
// not valid JSON, or that lacks a results field, degrades to an empty batch
// so the run can still produce a summary-only report. A record missing a
// required field is a hard failure: silently skipping it would break the
// one-suggestion-per-finding guarantee without any operator-visible signal.
func (l *Loader) Load(path string) ([]domain.Finding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMissingFile, path, err)
	}

	var result scanResult
	if err := json.Unmarshal(data, &result); err != nil {
		l.logger.Warn("findings file is not valid JSON, continuing with no findings", "path", path, "error", err)
		return nil, nil
	}
	if result.Results == nil {
		l.logger.Warn("findings file has no results field, continuing with no findings", "path", path)
		return nil, nil
	}

	batch := make([]domain.Finding, 0, len(result.Results))
	for i, rec := range result.Results {
		f := domain.Finding{
			Path:      rec.Path,
			StartLine: rec.Start.Line,
			EndLine:   rec.End.Line,
			Message:   rec.Extra.Message,
		}
		if err := f.Validate(); err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrInvalidFinding, i, err)
		}
		batch = append(batch, f)
	}

	return batch, nil
}
