package commit

import (
	"fmt"
	"strings"
	"testing"

	"github.com/CodeMonkeyCybersecurity/ship/pkg/git"
	"github.com/stretchr/testify/assert"
)

func TestBuildTitle(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		changes []git.Change
		stats   git.Stats
		want    string
	}{
		{
			name:    "single_add",
			changes: []git.Change{{Path: "a.txt", Kind: git.Added}},
			stats:   git.Stats{FilesChanged: 1, Insertions: 3},
			want:    "Add a.txt (+3/-0)",
		},
		{
			name:    "single_modify",
			changes: []git.Change{{Path: "main.go", Kind: git.Modified}},
			stats:   git.Stats{FilesChanged: 1, Insertions: 2, Deletions: 1},
			want:    "Update main.go (+2/-1)",
		},
		{
			name: "all_deleted",
			changes: []git.Change{
				{Path: "x", Kind: git.Deleted},
				{Path: "y", Kind: git.Deleted},
			},
			stats: git.Stats{FilesChanged: 2, Deletions: 9},
			want:  "Remove 2 files (+0/-9)",
		},
		{
			name: "mixed",
			changes: []git.Change{
				{Path: "a.txt", Kind: git.Added},
				{Path: "b.txt", Kind: git.Deleted},
			},
			stats: git.Stats{FilesChanged: 2, Insertions: 3, Deletions: 2},
			want:  "Update 2 files (+3/-2)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, BuildTitle(tt.changes, tt.stats))
		})
	}
}

func TestDefaultMessage_Sections(t *testing.T) {
	t.Parallel()
	changes := []git.Change{
		{Path: "a.txt", Kind: git.Added},
		{Path: "b.txt", Kind: git.Deleted},
		{Path: "c.txt", Kind: git.Modified},
	}

	msg := DefaultMessage(changes, git.Stats{FilesChanged: 3, Insertions: 4, Deletions: 2})

	assert.Equal(t, "Update 3 files (+4/-2)\n\nAdded:\n- a.txt\n\nModified:\n- c.txt\n\nDeleted:\n- b.txt", msg)
}

func TestDefaultMessage_TruncatesLongSections(t *testing.T) {
	t.Parallel()
	var changes []git.Change
	for i := 0; i < maxListed+3; i++ {
		changes = append(changes, git.Change{Path: fmt.Sprintf("f%02d.txt", i), Kind: git.Added})
	}

	msg := DefaultMessage(changes, git.Stats{FilesChanged: len(changes), Insertions: len(changes)})

	assert.Contains(t, msg, "- ... and 3 more")
	assert.Equal(t, maxListed+1, strings.Count(msg, "\n- "))
}

func TestDefaultMessage_NoChanges(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Update project files", DefaultMessage(nil, git.Stats{}))
}
