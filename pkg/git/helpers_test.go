package git

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/CodeMonkeyCybersecurity/ship/pkg/ship_err"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sigSeed = object.Signature{Name: "Seed", Email: "seed@example.com", When: time.Unix(1700000000, 0)}

// testContext carries no logger; otelzap falls back to its no-op global,
// which parallel tests can share safely.
func testContext(t *testing.T) context.Context {
	t.Helper()
	return context.Background()
}

// initRepo creates an empty repository with a local identity configured.
func initRepo(t *testing.T) (string, *gogit.Repository) {
	t.Helper()
	dir := t.TempDir()
	raw, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	setIdentity(t, raw, "Test User", "test@example.com")
	return dir, raw
}

func setIdentity(t *testing.T, raw *gogit.Repository, name, email string) {
	t.Helper()
	cfg, err := raw.Config()
	require.NoError(t, err)
	cfg.User.Name = name
	cfg.User.Email = email
	require.NoError(t, raw.SetConfig(cfg))
}

func openRepo(t *testing.T, dir string) *Repository {
	t.Helper()
	r, err := Open(context.Background(), dir, WithConfigScope(config.LocalScope))
	require.NoError(t, err)
	return r
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func removeFile(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.Remove(filepath.Join(dir, filepath.FromSlash(name))))
}

// commitAll records the whole working tree with go-git's own worktree API,
// independent of the code under test.
func commitAll(t *testing.T, raw *gogit.Repository, msg string) plumbing.Hash {
	t.Helper()
	wt, err := raw.Worktree()
	require.NoError(t, err)
	require.NoError(t, wt.AddWithOptions(&gogit.AddOptions{All: true}))
	hash, err := wt.Commit(msg, &gogit.CommitOptions{
		Author: &object.Signature{Name: sigSeed.Name, Email: sigSeed.Email, When: time.Now()},
	})
	require.NoError(t, err)
	return hash
}

func headCommit(t *testing.T, raw *gogit.Repository) *object.Commit {
	t.Helper()
	ref, err := raw.Head()
	require.NoError(t, err)
	c, err := raw.CommitObject(ref.Hash())
	require.NoError(t, err)
	return c
}

func indexPaths(t *testing.T, raw *gogit.Repository) map[string]plumbing.Hash {
	t.Helper()
	idx, err := raw.Storer.Index()
	require.NoError(t, err)
	out := make(map[string]plumbing.Hash, len(idx.Entries))
	for _, e := range idx.Entries {
		out[e.Name] = e.Hash
	}
	return out
}

func assertCategory(t *testing.T, want ship_err.ErrorCategory, err error) {
	t.Helper()
	got, ok := ship_err.CategoryOf(err)
	if assert.True(t, ok, "error is not classified: %v", err) {
		assert.Equal(t, want, got, "error: %v", err)
	}
}
