// Package git stages working-tree changes, composes commits and pushes
// branches for ship, using go-git as the repository storage engine.
package git

import (
	"strconv"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// ChangeKind is the normalised classification of a working-tree entry.
type ChangeKind int

const (
	// Skip marks entries that are neither reported nor staged.
	Skip ChangeKind = iota
	Added
	Modified
	Deleted
)

func (k ChangeKind) String() string {
	switch k {
	case Added:
		return "added"
	case Modified:
		return "modified"
	case Deleted:
		return "deleted"
	default:
		return "skip"
	}
}

// Symbol is the one-character prefix used in change listings.
func (k ChangeKind) Symbol() string {
	switch k {
	case Added:
		return "+"
	case Modified:
		return "M"
	case Deleted:
		return "-"
	default:
		return " "
	}
}

// Change is one classified, staged path.
type Change struct {
	Path string
	Kind ChangeKind
}

// Stats are line counts between the prior commit's tree and the staged tree.
type Stats struct {
	FilesChanged int
	Insertions   int
	Deletions    int
}

// Identity is the author/committer recorded on new commits.
type Identity struct {
	Name  string `validate:"required"`
	Email string `validate:"required"`
}

// ParentResolution is the outcome of resolving the branch tip: either
// HasParent or NoParent. Ref is the reference a new commit advances.
type ParentResolution interface {
	Ref() plumbing.ReferenceName
	isParentResolution()
}

// HasParent means the branch (or detached HEAD) points at Commit.
type HasParent struct {
	Branch plumbing.ReferenceName
	Commit *object.Commit
}

func (p HasParent) Ref() plumbing.ReferenceName { return p.Branch }
func (HasParent) isParentResolution()           {}

// NoParent means the branch is unborn; the next commit is a root commit.
type NoParent struct {
	Branch plumbing.ReferenceName
}

func (p NoParent) Ref() plumbing.ReferenceName { return p.Branch }
func (NoParent) isParentResolution()           {}

// IsDetached reports whether the resolution targets HEAD directly.
func IsDetached(p ParentResolution) bool {
	return p.Ref() == plumbing.HEAD
}

// String renders the counts as "+insertions/-deletions".
func (s Stats) String() string {
	return "+" + strconv.Itoa(s.Insertions) + "/-" + strconv.Itoa(s.Deletions)
}
