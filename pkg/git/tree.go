package git

import (
	"context"
	"path"
	"sort"
	"strings"

	"github.com/CodeMonkeyCybersecurity/ship/pkg/ship_err"
	"github.com/CodeMonkeyCybersecurity/ship/pkg/telemetry"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/format/index"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// WriteTree materialises the persisted index into tree objects and returns
// the root tree hash. The index is re-read from storage so the tree always
// matches what was written by StageChanges.
func (r *Repository) WriteTree(ctx context.Context) (plumbing.Hash, error) {
	ctx, span := telemetry.Start(ctx, "git.WriteTree")
	defer span.End()

	idx, err := r.repo.Storer.Index()
	if err != nil {
		return plumbing.ZeroHash, ship_err.NewStorageError("failed to read index", err)
	}

	b := &treeBuilder{s: r.repo.Storer}
	hash, err := b.build(idx)
	if err != nil {
		return plumbing.ZeroHash, ship_err.NewStorageError("failed to write tree", err)
	}

	otelzap.Ctx(ctx).Debug("Tree written",
		zap.String("tree", hash.String()),
		zap.Int("entries", len(idx.Entries)))
	return hash, nil
}

type treeBuilder struct {
	s       storer.EncodedObjectStorer
	trees   map[string]*object.Tree
	entries map[string]struct{}
}

func (b *treeBuilder) build(idx *index.Index) (plumbing.Hash, error) {
	const root = ""
	b.trees = map[string]*object.Tree{root: {}}
	b.entries = map[string]struct{}{}

	for _, e := range idx.Entries {
		b.addEntry(e)
	}
	return b.store(root, b.trees[root])
}

// addEntry creates the intermediate directory trees for e and links e into
// its parent.
func (b *treeBuilder) addEntry(e *index.Entry) {
	parts := strings.Split(e.Name, "/")

	var full string
	for _, part := range parts {
		parent := full
		full = path.Join(full, part)

		if _, ok := b.trees[full]; ok {
			continue
		}
		if _, ok := b.entries[full]; ok {
			continue
		}

		te := object.TreeEntry{Name: part}
		if full == e.Name {
			te.Mode = e.Mode
			te.Hash = e.Hash
			b.entries[full] = struct{}{}
		} else {
			te.Mode = filemode.Dir
			b.trees[full] = &object.Tree{}
		}
		b.trees[parent].Entries = append(b.trees[parent].Entries, te)
	}
}

// store writes t and its subtrees bottom-up in git's canonical entry order.
func (b *treeBuilder) store(dir string, t *object.Tree) (plumbing.Hash, error) {
	sort.Slice(t.Entries, func(i, j int) bool {
		return sortName(t.Entries[i]) < sortName(t.Entries[j])
	})

	for i, e := range t.Entries {
		if e.Mode != filemode.Dir {
			continue
		}
		sub := path.Join(dir, e.Name)
		hash, err := b.store(sub, b.trees[sub])
		if err != nil {
			return plumbing.ZeroHash, err
		}
		t.Entries[i].Hash = hash
	}

	obj := b.s.NewEncodedObject()
	if err := t.Encode(obj); err != nil {
		return plumbing.ZeroHash, err
	}
	return b.s.SetEncodedObject(obj)
}

// sortName orders directories as if their name had a trailing slash.
func sortName(e object.TreeEntry) string {
	if e.Mode == filemode.Dir {
		return e.Name + "/"
	}
	return e.Name
}
