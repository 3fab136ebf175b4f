package git

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/CodeMonkeyCybersecurity/ship/pkg/ship_err"
	"github.com/CodeMonkeyCybersecurity/ship/pkg/telemetry"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ErrNothingToCommit means the staged tree records no change against the
// commit it would follow.
var ErrNothingToCommit = errors.New("nothing to commit")

// emptyTreeHash is the hash of the tree with no entries.
var emptyTreeHash = plumbing.NewHash("4b825dc642cb6eb9a060e54bf8d69288fbee4904")

// Unchanged reports whether committing tree on parent would record nothing:
// the tree equals the parent's tree, or is empty on an unborn branch.
func Unchanged(parent ParentResolution, tree plumbing.Hash) bool {
	switch p := parent.(type) {
	case HasParent:
		return p.Commit.TreeHash == tree
	case NoParent:
		return tree == emptyTreeHash
	default:
		return false
	}
}

// CommitResult describes a commit written by Compose.
type CommitResult struct {
	Hash   plumbing.Hash
	Tree   plumbing.Hash
	Parent ParentResolution
}

// ResolveParent resolves HEAD to the commit a new commit should follow.
// An unborn branch is reported as NoParent, not as an error.
func (r *Repository) ResolveParent(ctx context.Context) (ParentResolution, error) {
	head, err := r.repo.Storer.Reference(plumbing.HEAD)
	if err != nil {
		return nil, ship_err.NewCommitError("failed to read HEAD", err)
	}

	if head.Type() == plumbing.HashReference {
		commit, err := r.repo.CommitObject(head.Hash())
		if err != nil {
			return nil, ship_err.NewCommitError("failed to load detached HEAD commit", err)
		}
		return HasParent{Branch: plumbing.HEAD, Commit: commit}, nil
	}

	branch := head.Target()
	tip, err := r.repo.Storer.Reference(branch)
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		otelzap.Ctx(ctx).Debug("Branch is unborn", zap.String("branch", branch.String()))
		return NoParent{Branch: branch}, nil
	}
	if err != nil {
		return nil, ship_err.NewCommitError("failed to resolve "+branch.String(), err)
	}

	commit, err := r.repo.CommitObject(tip.Hash())
	if err != nil {
		return nil, ship_err.NewCommitError("failed to load tip of "+branch.String(), err)
	}
	return HasParent{Branch: branch, Commit: commit}, nil
}

// Compose writes the persisted index as a tree and commits it on top of
// the current branch tip, or as a root commit on an unborn branch.
func (r *Repository) Compose(ctx context.Context, message string) (*CommitResult, error) {
	tree, err := r.WriteTree(ctx)
	if err != nil {
		return nil, err
	}
	parent, err := r.ResolveParent(ctx)
	if err != nil {
		return nil, err
	}
	return r.CommitTree(ctx, tree, parent, message)
}

// CommitTree commits tree with parent and advances parent's ref. The ref only
// moves after the commit object is stored, and only if it still points where
// parent says it did.
func (r *Repository) CommitTree(ctx context.Context, tree plumbing.Hash, parent ParentResolution, message string) (*CommitResult, error) {
	ctx, span := telemetry.Start(ctx, "git.CommitTree")
	defer span.End()
	logger := otelzap.Ctx(ctx)

	id, err := r.ResolveIdentity(ctx)
	if err != nil {
		return nil, err
	}

	sig := object.Signature{Name: id.Name, Email: id.Email, When: time.Now()}
	commit := &object.Commit{
		Author:    sig,
		Committer: sig,
		Message:   normaliseMessage(message),
		TreeHash:  tree,
	}
	if p, ok := parent.(HasParent); ok {
		commit.ParentHashes = []plumbing.Hash{p.Commit.Hash}
	}

	obj := r.repo.Storer.NewEncodedObject()
	if err := commit.Encode(obj); err != nil {
		return nil, ship_err.NewCommitError("failed to encode commit", err)
	}
	hash, err := r.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return nil, ship_err.NewCommitError("failed to write commit", err)
	}

	ref := plumbing.NewHashReference(parent.Ref(), hash)
	switch p := parent.(type) {
	case HasParent:
		err = r.repo.Storer.CheckAndSetReference(ref, plumbing.NewHashReference(p.Branch, p.Commit.Hash))
	case NoParent:
		err = r.repo.Storer.SetReference(ref)
	}
	if err != nil {
		return nil, ship_err.NewCommitError("failed to update "+parent.Ref().String(), err)
	}

	span.SetAttributes(
		attribute.String("commit", hash.String()),
		attribute.Int("parents", len(commit.ParentHashes)))
	logger.Info("Commit created",
		zap.String("commit", hash.String()),
		zap.String("ref", parent.Ref().String()),
		zap.Int("parents", len(commit.ParentHashes)))

	return &CommitResult{Hash: hash, Tree: tree, Parent: parent}, nil
}

func normaliseMessage(message string) string {
	message = strings.TrimRight(message, "\n")
	return message + "\n"
}
