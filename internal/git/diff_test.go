package git

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juparave/prsentry/internal/domain"
)

func TestDiffBadRepository(t *testing.T) {
	c := NewClient(filepath.Join(t.TempDir(), "does-not-exist"))
	_, err := c.Diff(context.Background(), "origin/main")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAcquisitionFailed)
}

func TestTruncate(t *testing.T) {
	short := "line one\nline two"
	assert.Equal(t, short, truncate(short))

	long := strings.Repeat("x\n", domain.MaxDiffLines+100)
	out := truncate(long)
	assert.True(t, strings.HasSuffix(out, "... [truncated]"))
	assert.Equal(t, domain.MaxDiffLines+1, len(strings.Split(out, "\n")))
}
