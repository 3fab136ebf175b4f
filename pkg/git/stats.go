package git

import (
	"context"

	"github.com/CodeMonkeyCybersecurity/ship/pkg/ship_err"
	"github.com/CodeMonkeyCybersecurity/ship/pkg/telemetry"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"go.opentelemetry.io/otel/attribute"
)

// DiffStats compares the parent commit's tree (an empty tree for NoParent)
// with the staged tree and returns line counts. It only reads storage.
func (r *Repository) DiffStats(ctx context.Context, parent ParentResolution, staged plumbing.Hash) (Stats, error) {
	ctx, span := telemetry.Start(ctx, "git.DiffStats")
	defer span.End()

	to, err := r.repo.TreeObject(staged)
	if err != nil {
		return Stats{}, ship_err.NewStorageError("failed to load staged tree", err)
	}

	from := &object.Tree{}
	if p, ok := parent.(HasParent); ok {
		from, err = p.Commit.Tree()
		if err != nil {
			return Stats{}, ship_err.NewStorageError("failed to load parent tree", err)
		}
	}

	patch, err := from.PatchContext(ctx, to)
	if err != nil {
		return Stats{}, ship_err.NewStorageError("failed to diff trees", err)
	}

	var s Stats
	for _, fs := range patch.Stats() {
		s.FilesChanged++
		s.Insertions += fs.Addition
		s.Deletions += fs.Deletion
	}

	span.SetAttributes(
		attribute.Int("insertions", s.Insertions),
		attribute.Int("deletions", s.Deletions))
	return s, nil
}
