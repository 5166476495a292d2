package domain

import "fmt"

// Finding represents one issue reported by the static-analysis scanner,
// localized to a file and an inclusive 1-based line range.
type Finding struct {
	Path      string
	StartLine int
	EndLine   int
	Message   string
}

// Location returns the finding's position as "path:start-end".
func (f *Finding) Location() string {
	return fmt.Sprintf("%s:%d-%d", f.Path, f.StartLine, f.EndLine)
}

// Validate checks that all required fields are present and consistent.
func (f *Finding) Validate() error {
	if f.Path == "" {
		return fmt.Errorf("finding has no path")
	}
	if f.StartLine < 1 {
		return fmt.Errorf("finding %s has invalid start line %d", f.Path, f.StartLine)
	}
	if f.EndLine < f.StartLine {
		return fmt.Errorf("finding %s has end line %d before start line %d", f.Path, f.EndLine, f.StartLine)
	}
	if f.Message == "" {
		return fmt.Errorf("finding %s has no message", f.Location())
	}
	return nil
}

// Suggestion is the generated remediation text for one finding. Suggestions
// are produced in the same order as the findings batch they came from.
type Suggestion struct {
	Path      string
	StartLine int
	EndLine   int
	Body      string
}

// Header returns the fixed header line prefixed to the suggestion body.
func (s *Suggestion) Header() string {
	return fmt.Sprintf("File: %s (Lines %d-%d)", s.Path, s.StartLine, s.EndLine)
}
