package git

import (
	"context"
	"errors"
	"sort"

	"github.com/CodeMonkeyCybersecurity/ship/pkg/ship_err"
	"github.com/CodeMonkeyCybersecurity/ship/pkg/telemetry"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// StageChanges scans the working tree (untracked files included, recursing
// into untracked directories, ignored files excluded), classifies every
// divergent path and applies the matching index mutation in the same pass.
// The index is written exactly once after the scan, and not at all when
// nothing was classified. Changes are returned in path order.
func (r *Repository) StageChanges(ctx context.Context) ([]Change, error) {
	ctx, span := telemetry.Start(ctx, "git.StageChanges")
	defer span.End()
	logger := otelzap.Ctx(ctx)

	status, err := r.wt.Status()
	if err != nil {
		return nil, ship_err.NewStorageError("failed to scan working tree status", err)
	}

	idx, err := r.repo.Storer.Index()
	if err != nil {
		return nil, ship_err.NewStorageError("failed to read index", err)
	}

	paths := make([]string, 0, len(status))
	for path := range status {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	changes := make([]Change, 0, len(paths))
	for _, path := range paths {
		fs := status[path]
		kind := Classify(fs.Staging, fs.Worktree)

		switch kind {
		case Skip:
			logger.Debug("Skipping entry",
				zap.String("path", path),
				zap.String("staging", string(fs.Staging)),
				zap.String("worktree", string(fs.Worktree)))
			continue
		case Added, Modified:
			if err := r.stagePath(idx, path); err != nil {
				if errors.Is(err, errNotAFile) {
					logger.Warn("Not staging directory entry", zap.String("path", path))
					continue
				}
				return nil, ship_err.NewStorageError("failed to stage "+path, err)
			}
		case Deleted:
			if err := unstagePath(idx, path); err != nil {
				return nil, ship_err.NewStorageError("failed to unstage "+path, err)
			}
		}

		changes = append(changes, Change{Path: path, Kind: kind})
	}

	span.SetAttributes(attribute.Int("changes", len(changes)))
	if len(changes) == 0 {
		logger.Debug("Working tree is clean")
		return changes, nil
	}

	if err := r.repo.Storer.SetIndex(idx); err != nil {
		return nil, ship_err.NewStorageError("failed to persist index", err,
			"Check permissions on the repository's .git directory",
			"Remove a stale .git/index.lock if no other git process is running")
	}

	logger.Info("Changes staged", zap.Int("count", len(changes)))
	return changes, nil
}
