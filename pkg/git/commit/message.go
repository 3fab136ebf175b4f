// Package commit synthesises commit messages for ship when the user
// leaves the prompt empty.
package commit

import (
	"fmt"
	"strings"

	"github.com/CodeMonkeyCybersecurity/ship/pkg/git"
)

// maxListed bounds how many paths are listed per section of the body.
const maxListed = 10

// DefaultMessage builds a subject summarising the change set and a body
// listing paths by kind.
func DefaultMessage(changes []git.Change, stats git.Stats) string {
	if len(changes) == 0 {
		return "Update project files"
	}

	title := BuildTitle(changes, stats)

	var sections []string
	for _, kind := range []git.ChangeKind{git.Added, git.Modified, git.Deleted} {
		var paths []string
		for _, c := range changes {
			if c.Kind == kind {
				paths = append(paths, c.Path)
			}
		}
		if len(paths) == 0 {
			continue
		}
		sections = append(sections, formatSection(kind, paths))
	}

	return title + "\n\n" + strings.Join(sections, "\n\n")
}

// BuildTitle produces the subject line, e.g. "Add main.go (+12/-0)" or
// "Update 3 files (+40/-7)".
func BuildTitle(changes []git.Change, stats git.Stats) string {
	counts := stats.String()

	if len(changes) == 1 {
		c := changes[0]
		return fmt.Sprintf("%s %s (%s)", verb(c.Kind), c.Path, counts)
	}

	kind := changes[0].Kind
	for _, c := range changes[1:] {
		if c.Kind != kind {
			return fmt.Sprintf("Update %d files (%s)", len(changes), counts)
		}
	}
	return fmt.Sprintf("%s %d files (%s)", verb(kind), len(changes), counts)
}

func verb(kind git.ChangeKind) string {
	switch kind {
	case git.Added:
		return "Add"
	case git.Deleted:
		return "Remove"
	default:
		return "Update"
	}
}

func formatSection(kind git.ChangeKind, paths []string) string {
	var sb strings.Builder
	sb.WriteString(strings.ToUpper(kind.String()[:1]) + kind.String()[1:] + ":")

	shown := paths
	if len(shown) > maxListed {
		shown = shown[:maxListed]
	}
	for _, p := range shown {
		sb.WriteString("\n- " + p)
	}
	if rest := len(paths) - len(shown); rest > 0 {
		sb.WriteString(fmt.Sprintf("\n- ... and %d more", rest))
	}
	return sb.String()
}
