package git

import gogit "github.com/go-git/go-git/v5"

// Classify maps an entry's index and worktree status codes to a ChangeKind.
// The mapping is total:
//
//   - either side unmerged            -> Skip
//   - worktree deleted                -> Deleted
//   - index added/renamed/copied, or
//     worktree untracked              -> Added
//   - either side modified            -> Modified
//   - index deleted                   -> Deleted
//   - anything else                   -> Skip
//
// A worktree deletion wins over a staged add or modify because the file
// can no longer be hashed; the only consistent index mutation is removal.
func Classify(staging, worktree gogit.StatusCode) ChangeKind {
	switch {
	case staging == gogit.UpdatedButUnmerged || worktree == gogit.UpdatedButUnmerged:
		return Skip
	case worktree == gogit.Deleted:
		return Deleted
	case staging == gogit.Added || staging == gogit.Renamed || staging == gogit.Copied || worktree == gogit.Untracked:
		return Added
	case staging == gogit.Modified || worktree == gogit.Modified:
		return Modified
	case staging == gogit.Deleted:
		return Deleted
	default:
		return Skip
	}
}
