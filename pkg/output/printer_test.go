package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/CodeMonkeyCybersecurity/ship/pkg/git"
	"github.com/stretchr/testify/assert"
)

// A bytes.Buffer is not a terminal, so lipgloss renders plain text.

func TestPrinter_Changes(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	NewPrinter(&buf).Changes([]git.Change{
		{Path: "a.txt", Kind: git.Added},
		{Path: "b.txt", Kind: git.Deleted},
		{Path: "c.txt", Kind: git.Modified},
	})

	assert.Equal(t, "  + a.txt\n  - b.txt\n  M c.txt\n", buf.String())
}

func TestPrinter_Summary(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		files int
		stats git.Stats
		want  string
	}{
		{"plural", 2, git.Stats{FilesChanged: 2, Insertions: 3, Deletions: 2}, "Summary: 2 files changed, +3, -2\n"},
		{"singular", 1, git.Stats{FilesChanged: 1, Insertions: 1}, "Summary: 1 file changed, +1, -0\n"},
		{"counts listed changes", 3, git.Stats{FilesChanged: 2, Insertions: 1}, "Summary: 3 files changed, +1, -0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			NewPrinter(&buf).Summary(tt.files, tt.stats)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestPrinter_Banners(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.Success("Committed %s", "abc1234")
	p.Warn("push skipped")
	p.Notice("No changes")
	p.Failure("boom")

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Equal(t, []string{"✓ Committed abc1234", "! push skipped", "No changes", "✗ boom"}, lines)
}
