package snippet

import (
	"os"
	"path/filepath"
	"strings"
)

// Unavailable is the fixed marker returned when a finding's file cannot be
// read. Extraction never fails hard: one unreadable file must not abort the
// whole batch.
const Unavailable = "(source snippet unavailable)"

// Extract returns the literal text of the inclusive 1-based line range
// [start, end] of the file at path, resolved under root. The range is
// clamped to the file's line count, so an oversized range yields the whole
// available content rather than an error.
func Extract(root, path string, start, end int) string {
	data, err := os.ReadFile(filepath.Join(root, path))
	if err != nil {
		return Unavailable
	}

	lines := strings.Split(string(data), "\n")
	n := len(lines)

	if start < 1 {
		start = 1
	}
	if start > n {
		start = n
	}
	if end > n {
		end = n
	}
	if end < start {
		end = start
	}

	return strings.Join(lines[start-1:end], "\n")
}
