// Package treesync copies a freshly generated tree over the project root.
//
// Every top-level entry of the generated tree first has its namesake at the
// project root deleted, then is copied in. Nothing else at the root is
// touched. The work is planned up front as removals, directory creations
// and file copies, and an Applier carries the plan out in that order. There
// is no backup and no rollback: a failure part way leaves whatever was
// already deleted or copied in place.
package treesync

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/vendorsync/pkg/errors"
	"github.com/arthur-debert/vendorsync/pkg/logging"
	"github.com/arthur-debert/vendorsync/pkg/types"
)

// Entry is one top-level name of the generated tree
type Entry struct {
	Name  string `json:"name" yaml:"name"`
	IsDir bool   `json:"is_dir" yaml:"is_dir"`
	// Replaced is set when the project root already had this name.
	Replaced bool `json:"replaced" yaml:"replaced"`
}

// Result summarizes a sync
type Result struct {
	Entries []Entry `json:"entries" yaml:"entries"`
	Files   int     `json:"files" yaml:"files"`
}

// Names returns the entry names in order
func (r Result) Names() []string {
	names := make([]string, len(r.Entries))
	for i, e := range r.Entries {
		names[i] = e.Name
	}
	return names
}

// OpKind names a planned filesystem change
type OpKind string

const (
	OpRemove OpKind = "remove"
	OpMkdir  OpKind = "mkdir"
	OpCopy   OpKind = "copy"
)

// Op is one planned change. Mode is the mode of the removed path for
// removals and the mode to create with otherwise.
type Op struct {
	Kind   OpKind
	Source string
	Target string
	Mode   fs.FileMode
}

// Plan holds the changes of a sync in execution order
type Plan struct {
	Removals []Op
	Dirs     []Op
	Copies   []Op
}

// Len is the number of planned operations
func (p Plan) Len() int {
	return len(p.Removals) + len(p.Dirs) + len(p.Copies)
}

// Applier carries out a plan: every removal, then every directory, then
// every file copy.
type Applier interface {
	Apply(ctx context.Context, plan Plan) error
}

// Options selects what is synced and how
type Options struct {
	TreeDir     string
	ProjectRoot string

	// Applier runs the plan; nil applies it directly through the FS
	Applier Applier
}

// TopLevelNames lists the entries directly under treeDir, sorted
func TopLevelNames(fsys types.FS, treeDir string) ([]string, error) {
	entries, err := readTopLevel(fsys, treeDir)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	return names, nil
}

// Sync replaces the project root's copy of every top-level entry of the
// generated tree. All deletions happen before the first copy.
func Sync(ctx context.Context, fsys types.FS, opts Options) (Result, error) {
	logger := logging.GetLogger("treesync")

	plan, res, err := NewPlan(fsys, opts.TreeDir, opts.ProjectRoot)
	if err != nil {
		return res, err
	}

	applier := opts.Applier
	if applier == nil {
		applier = &FSApplier{FS: fsys}
	}

	logger.Debug().
		Int("removals", len(plan.Removals)).
		Int("dirs", len(plan.Dirs)).
		Int("copies", len(plan.Copies)).
		Msg("Applying tree plan")

	if err := applier.Apply(ctx, plan); err != nil {
		return res, err
	}

	logger.Info().
		Int("entries", len(res.Entries)).
		Int("files", res.Files).
		Str("root", opts.ProjectRoot).
		Msg("Tree synchronized")

	return res, nil
}

// NewPlan inspects the generated tree and the project root and lists the
// changes a sync makes, without changing anything.
func NewPlan(fsys types.FS, treeDir, projectRoot string) (Plan, Result, error) {
	entries, err := readTopLevel(fsys, treeDir)
	if err != nil {
		return Plan{}, Result{}, err
	}

	var plan Plan
	res := Result{Entries: make([]Entry, 0, len(entries))}

	for _, e := range entries {
		src := filepath.Join(treeDir, e.Name())
		dst := filepath.Join(projectRoot, e.Name())
		entry := Entry{Name: e.Name(), IsDir: e.IsDir()}

		info, err := fsys.Lstat(dst)
		switch {
		case err == nil:
			entry.Replaced = true
			plan.Removals = append(plan.Removals, Op{Kind: OpRemove, Target: dst, Mode: info.Mode()})
		case !os.IsNotExist(err):
			return plan, res, errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", dst).
				WithDetail("path", dst)
		}

		if entry.IsDir {
			n, err := planTree(fsys, src, dst, &plan)
			if err != nil {
				return plan, res, err
			}
			res.Files += n
		} else {
			info, err := fsys.Stat(src)
			if err != nil {
				return plan, res, errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", src).
					WithDetail("path", src)
			}
			plan.Copies = append(plan.Copies, Op{Kind: OpCopy, Source: src, Target: dst, Mode: info.Mode().Perm()})
			res.Files++
		}

		res.Entries = append(res.Entries, entry)
	}

	return plan, res, nil
}

func readTopLevel(fsys types.FS, treeDir string) ([]fs.DirEntry, error) {
	entries, err := fsys.ReadDir(treeDir)
	if err != nil {
		code := errors.ErrFileAccess
		if os.IsNotExist(err) {
			code = errors.ErrNotFound
		}
		return nil, errors.Wrapf(err, code, "failed to list generated tree %s", treeDir).
			WithDetail("path", treeDir)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}

// planTree adds the directories and files under src to the plan, parents
// first, and returns the number of files.
func planTree(fsys types.FS, src, dst string, plan *Plan) (int, error) {
	files := 0
	err := fsys.Walk(src, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path).
				WithDetail("path", path)
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return errors.Wrapf(err, errors.ErrInternal, "failed to relativize %s", path)
		}
		target := filepath.Join(dst, rel)

		if info.IsDir() {
			plan.Dirs = append(plan.Dirs, Op{Kind: OpMkdir, Target: target, Mode: info.Mode().Perm() | 0700})
			return nil
		}

		files++
		plan.Copies = append(plan.Copies, Op{Kind: OpCopy, Source: path, Target: target, Mode: info.Mode().Perm()})
		return nil
	})
	return files, err
}

// FSApplier applies a plan with plain FS calls
type FSApplier struct {
	FS types.FS
}

// Apply runs the plan in order, stopping at the first failure
func (a *FSApplier) Apply(ctx context.Context, plan Plan) error {
	for _, op := range plan.Removals {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := remove(a.FS, op.Target, op.Mode.IsDir()); err != nil {
			return err
		}
	}

	for _, op := range plan.Dirs {
		if err := a.FS.MkdirAll(op.Target, op.Mode); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", op.Target).
				WithDetail("path", op.Target)
		}
	}

	for _, op := range plan.Copies {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := copyFile(a.FS, op.Source, op.Target, op.Mode); err != nil {
			return err
		}
	}
	return nil
}

func remove(fsys types.FS, path string, isDir bool) error {
	var err error
	if isDir {
		err = fsys.RemoveAll(path)
	} else {
		err = fsys.Remove(path)
	}
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to remove %s", path).
			WithDetail("path", path)
	}
	return nil
}

// copyFile overwrites dst with the content of src
func copyFile(fsys types.FS, src, dst string, mode fs.FileMode) error {
	data, err := fsys.ReadFile(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", src).
			WithDetail("path", src)
	}

	if err := fsys.WriteFile(dst, data, mode); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", dst).
			WithDetail("path", dst)
	}
	return nil
}
