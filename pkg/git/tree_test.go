package git

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// WriteTree must produce the same tree go-git would build for the same index.
func TestWriteTree_MatchesReferenceCommit(t *testing.T) {
	t.Parallel()
	ctx := testContext(t)
	dir, raw := initRepo(t)
	writeFile(t, dir, "a.txt", "a\n")
	writeFile(t, dir, "a-b.txt", "dash sorts before slash\n")
	writeFile(t, dir, "a/inner.txt", "inner\n")
	writeFile(t, dir, "z/y/x.txt", "deep\n")
	want := commitAll(t, raw, "reference")

	wantCommit, err := raw.CommitObject(want)
	require.NoError(t, err)

	got, err := openRepo(t, dir).WriteTree(ctx)
	require.NoError(t, err)
	assert.Equal(t, wantCommit.TreeHash, got)
}

func TestWriteTree_ExecutableAndSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes and symlinks are not portable to windows")
	}
	t.Parallel()
	ctx := testContext(t)
	dir, raw := initRepo(t)
	writeFile(t, dir, "run.sh", "#!/bin/sh\n")
	require.NoError(t, os.Chmod(filepath.Join(dir, "run.sh"), 0o755))
	require.NoError(t, os.Symlink("run.sh", filepath.Join(dir, "link")))

	r := openRepo(t, dir)
	_, err := r.StageChanges(ctx)
	require.NoError(t, err)
	hash, err := r.WriteTree(ctx)
	require.NoError(t, err)

	tree, err := raw.TreeObject(hash)
	require.NoError(t, err)

	run, err := tree.FindEntry("run.sh")
	require.NoError(t, err)
	assert.Equal(t, filemode.Executable, run.Mode)

	link, err := tree.FindEntry("link")
	require.NoError(t, err)
	assert.Equal(t, filemode.Symlink, link.Mode)
}

func TestWriteTree_EmptyIndex(t *testing.T) {
	t.Parallel()
	ctx := testContext(t)
	dir, raw := initRepo(t)

	hash, err := openRepo(t, dir).WriteTree(ctx)
	require.NoError(t, err)

	tree, err := raw.TreeObject(hash)
	require.NoError(t, err)
	assert.Empty(t, tree.Entries)
}
