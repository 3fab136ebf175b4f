package git

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/format/index"
)

var errNotAFile = errors.New("path is a directory")

// stagePath hashes the worktree file at path into a blob and points the
// index entry at it, creating the entry if needed. The index is not written.
func (r *Repository) stagePath(idx *index.Index, path string) error {
	fi, err := r.fs.Lstat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if fi.IsDir() {
		return errNotAFile
	}

	mode, err := filemode.NewFromOSFileMode(fi.Mode())
	if err != nil {
		return fmt.Errorf("file mode of %s: %w", path, err)
	}

	hash, size, err := r.writeBlob(path, fi)
	if err != nil {
		return err
	}

	e, err := idx.Entry(path)
	if errors.Is(err, index.ErrEntryNotFound) {
		e = idx.Add(path)
	} else if err != nil {
		return err
	}

	e.Hash = hash
	e.Mode = mode
	e.ModifiedAt = fi.ModTime()
	e.Size = uint32(size)
	return nil
}

// unstagePath removes path from the index. Removing an absent entry is a no-op.
func unstagePath(idx *index.Index, path string) error {
	if _, err := idx.Remove(path); err != nil && !errors.Is(err, index.ErrEntryNotFound) {
		return err
	}
	return nil
}

// writeBlob stores the file (or symlink target) at path as a blob object.
func (r *Repository) writeBlob(path string, fi os.FileInfo) (plumbing.Hash, int64, error) {
	obj := r.repo.Storer.NewEncodedObject()
	obj.SetType(plumbing.BlobObject)

	w, err := obj.Writer()
	if err != nil {
		return plumbing.ZeroHash, 0, err
	}

	var size int64
	if fi.Mode()&os.ModeSymlink != 0 {
		target, err := r.fs.Readlink(path)
		if err != nil {
			_ = w.Close()
			return plumbing.ZeroHash, 0, fmt.Errorf("readlink %s: %w", path, err)
		}
		n, err := w.Write([]byte(target))
		if err != nil {
			_ = w.Close()
			return plumbing.ZeroHash, 0, err
		}
		size = int64(n)
	} else {
		f, err := r.fs.Open(path)
		if err != nil {
			_ = w.Close()
			return plumbing.ZeroHash, 0, fmt.Errorf("open %s: %w", path, err)
		}
		size, err = io.Copy(w, f)
		_ = f.Close()
		if err != nil {
			_ = w.Close()
			return plumbing.ZeroHash, 0, fmt.Errorf("read %s: %w", path, err)
		}
	}
	if err := w.Close(); err != nil {
		return plumbing.ZeroHash, 0, err
	}
	obj.SetSize(size)

	hash, err := r.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return plumbing.ZeroHash, 0, fmt.Errorf("store blob for %s: %w", path, err)
	}
	return hash, size, nil
}
