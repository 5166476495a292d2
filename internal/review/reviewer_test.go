package review

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juparave/prsentry/internal/domain"
	"github.com/juparave/prsentry/internal/report"
	"github.com/juparave/prsentry/internal/snippet"
)

// fakeGenerator is a deterministic Generator double. Responses are returned
// in call order; err, when set, makes every call fail.
type fakeGenerator struct {
	responses []string
	err       error
	calls     []call
}

type call struct {
	system string
	user   string
}

func (f *fakeGenerator) Generate(ctx context.Context, system, user string) (string, error) {
	f.calls = append(f.calls, call{system: system, user: user})
	if f.err != nil {
		return "", f.err
	}
	i := len(f.calls) - 1
	if i < len(f.responses) {
		return f.responses[i], nil
	}
	return fmt.Sprintf("generated-%d", i), nil
}

func newTestReviewer(gen *fakeGenerator, repoPath string) *Reviewer {
	return NewReviewer(gen, repoPath, hclog.NewNullLogger())
}

func TestSummarize(t *testing.T) {
	gen := &fakeGenerator{responses: []string{"- tightened input handling"}}
	r := newTestReviewer(gen, t.TempDir())

	summary := r.Summarize(context.Background(), "+print('hi')")
	assert.Equal(t, "- tightened input handling", summary)

	require.Len(t, gen.calls, 1)
	assert.Contains(t, gen.calls[0].system, "bullet points")
	assert.Equal(t, "+print('hi')", gen.calls[0].user)
}

func TestSummarizeEmptyDiff(t *testing.T) {
	gen := &fakeGenerator{}
	r := newTestReviewer(gen, t.TempDir())

	summary := r.Summarize(context.Background(), "  \n")
	assert.Contains(t, summary, "No changes detected")
	assert.Empty(t, gen.calls, "no generation call for an empty diff")
}

func TestSummarizeFailureIsAbsorbed(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("request timed out")}
	r := newTestReviewer(gen, t.TempDir())

	summary := r.Summarize(context.Background(), "+print('hi')")
	assert.Contains(t, summary, ErrorTag)
	assert.Contains(t, summary, "request timed out")
}

func TestSuggestFixesPreservesOrderAndLength(t *testing.T) {
	batch := []domain.Finding{
		{Path: "a.py", StartLine: 3, EndLine: 4, Message: "hardcoded secret"},
		{Path: "b.py", StartLine: 7, EndLine: 7, Message: "command injection"},
		{Path: "c.py", StartLine: 1, EndLine: 2, Message: "weak hash"},
	}

	gen := &fakeGenerator{responses: []string{"fix-a", "fix-b", "fix-c"}}
	r := newTestReviewer(gen, t.TempDir())

	suggestions := r.SuggestFixes(context.Background(), batch)
	require.Len(t, suggestions, len(batch))

	for i, s := range suggestions {
		assert.Equal(t, batch[i].Path, s.Path)
		assert.Equal(t, batch[i].StartLine, s.StartLine)
		assert.Equal(t, batch[i].EndLine, s.EndLine)
	}
	assert.Equal(t, "fix-a", suggestions[0].Body)
	assert.Equal(t, "fix-c", suggestions[2].Body)
}

func TestSuggestFixesEmptyBatch(t *testing.T) {
	gen := &fakeGenerator{}
	r := newTestReviewer(gen, t.TempDir())

	suggestions := r.SuggestFixes(context.Background(), nil)
	assert.Empty(t, suggestions)
	assert.Empty(t, gen.calls)
}

func TestSuggestFixesIncludesSnippet(t *testing.T) {
	dir := t.TempDir()
	src := "import os\n\ndef run(cmd):\n    os.system(cmd)\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.py"), []byte(src), 0o644))

	gen := &fakeGenerator{responses: []string{"Risk: ...\nSuggestion: ..."}}
	r := newTestReviewer(gen, dir)

	batch := []domain.Finding{{Path: "a.py", StartLine: 3, EndLine: 4, Message: "command injection"}}
	suggestions := r.SuggestFixes(context.Background(), batch)
	require.Len(t, suggestions, 1)

	require.Len(t, gen.calls, 1)
	assert.Contains(t, gen.calls[0].system, "Risk")
	assert.Contains(t, gen.calls[0].user, "File: a.py")
	assert.Contains(t, gen.calls[0].user, "Lines: 3-4")
	assert.Contains(t, gen.calls[0].user, "command injection")
	assert.Contains(t, gen.calls[0].user, "os.system(cmd)")
}

func TestSuggestFixesUnreadableFileUsesMarker(t *testing.T) {
	gen := &fakeGenerator{}
	r := newTestReviewer(gen, t.TempDir())

	batch := []domain.Finding{{Path: "gone.py", StartLine: 1, EndLine: 2, Message: "x"}}
	suggestions := r.SuggestFixes(context.Background(), batch)

	// One unreadable file does not abort the batch; the prompt carries the
	// unavailable marker instead of source text.
	require.Len(t, suggestions, 1)
	require.Len(t, gen.calls, 1)
	assert.Contains(t, gen.calls[0].user, snippet.Unavailable)
}

// failFirstGenerator fails the first call only, like a summary call timing
// out while per-finding calls succeed.
type failFirstGenerator struct {
	calls int
}

func (f *failFirstGenerator) Generate(ctx context.Context, system, user string) (string, error) {
	f.calls++
	if f.calls == 1 {
		return "", errors.New("deadline exceeded")
	}
	return "Risk: r.\nSuggestion: s.", nil
}

func TestSummaryFailureStillYieldsFullReport(t *testing.T) {
	gen := &failFirstGenerator{}
	r := NewReviewer(gen, t.TempDir(), hclog.NewNullLogger())

	summary := r.Summarize(context.Background(), "+print('hi')")
	suggestions := r.SuggestFixes(context.Background(), []domain.Finding{
		{Path: "a.py", StartLine: 3, EndLine: 4, Message: "hardcoded secret"},
	})

	out := report.Render(&domain.Report{Summary: summary, Suggestions: suggestions})
	assert.Contains(t, out, ErrorTag)
	assert.Contains(t, out, "Anomalies Detected")
	assert.Contains(t, out, "File: a.py (Lines 3-4)")
	assert.Contains(t, out, "Risk: r.")
}

func TestSuggestFixesPerItemFailure(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("boom")}
	r := newTestReviewer(gen, t.TempDir())

	batch := []domain.Finding{
		{Path: "a.py", StartLine: 1, EndLine: 1, Message: "x"},
		{Path: "b.py", StartLine: 2, EndLine: 2, Message: "y"},
	}
	suggestions := r.SuggestFixes(context.Background(), batch)

	require.Len(t, suggestions, 2)
	for _, s := range suggestions {
		assert.Contains(t, s.Body, ErrorTag)
	}
}
