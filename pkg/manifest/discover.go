package manifest

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/vendorsync/pkg/errors"
	"github.com/arthur-debert/vendorsync/pkg/types"
)

// DefaultExtensions are the source extensions listed in the manifest
var DefaultExtensions = []string{".c", ".cc", ".cxx", ".cpp"}

// Discover walks root/<subdir> for every subdir and returns the files whose
// extension is in exts, as slash-separated paths relative to root, sorted
// ascending. Subdirs that do not exist or are not directories contribute
// nothing.
func Discover(fsys types.FS, root string, subdirs, exts []string) ([]string, error) {
	extSet := make(map[string]bool, len(exts))
	for _, e := range exts {
		extSet[e] = true
	}

	seen := make(map[string]bool)
	var files []string

	for _, subdir := range subdirs {
		base := filepath.Join(root, filepath.FromSlash(subdir))

		info, err := fsys.Stat(base)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", base).
				WithDetail("path", base)
		}
		if !info.IsDir() {
			continue
		}

		err = fsys.Walk(base, func(path string, info fs.FileInfo, err error) error {
			if err != nil {
				return errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path).
					WithDetail("path", path)
			}
			if info.IsDir() || !extSet[filepath.Ext(path)] {
				return nil
			}

			rel, err := filepath.Rel(root, path)
			if err != nil {
				return errors.Wrapf(err, errors.ErrInternal, "failed to relativize %s", path)
			}
			rel = filepath.ToSlash(rel)
			if !seen[rel] {
				seen[rel] = true
				files = append(files, rel)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}
