package git

import (
	"context"
	"path/filepath"

	"github.com/CodeMonkeyCybersecurity/ship/pkg/ship_err"
	"github.com/go-git/go-billy/v5"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/storage/filesystem"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Repository is a working tree plus its object and reference storage.
type Repository struct {
	repo        *gogit.Repository
	wt          *gogit.Worktree
	fs          billy.Filesystem
	root        string
	gitDir      string
	configScope config.Scope
}

// Option customises Open.
type Option func(*Repository)

// WithConfigScope limits which git config files identity and remotes are
// read from. The default merges global and repository-local config.
func WithConfigScope(scope config.Scope) Option {
	return func(r *Repository) { r.configScope = scope }
}

// Open discovers the repository containing dir, walking up parent directories.
func Open(ctx context.Context, dir string, opts ...Option) (*Repository, error) {
	logger := otelzap.Ctx(ctx)

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, ship_err.NewRepositoryOpenError(dir, err)
	}

	repo, err := gogit.PlainOpenWithOptions(abs, &gogit.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		return nil, ship_err.NewRepositoryOpenError(abs, err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, ship_err.NewRepositoryOpenError(abs, err)
	}
	wt.Excludes = append(wt.Excludes, userExcludes(ctx)...)

	r := &Repository{
		repo:        repo,
		wt:          wt,
		fs:          wt.Filesystem,
		root:        wt.Filesystem.Root(),
		configScope: config.GlobalScope,
	}
	if fs, ok := repo.Storer.(*filesystem.Storage); ok {
		r.gitDir = fs.Filesystem().Root()
	} else {
		r.gitDir = filepath.Join(r.root, gogit.GitDirName)
	}
	for _, opt := range opts {
		opt(r)
	}

	logger.Debug("Repository opened",
		zap.String("root", r.root),
		zap.String("git_dir", r.gitDir))

	return r, nil
}

// Root is the top of the working tree.
func (r *Repository) Root() string { return r.root }

// GitDir is the repository storage directory.
func (r *Repository) GitDir() string { return r.gitDir }
