// Package provenance records which upstream commit the vendored tree was
// generated from. The record is a single tagged line in the project's
// documentation file:
//
//	commit: [<sha>](<upstream>/commit/<sha>)
package provenance

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/arthur-debert/vendorsync/pkg/errors"
	"github.com/arthur-debert/vendorsync/pkg/filesystem"
	"github.com/arthur-debert/vendorsync/pkg/logging"
	"github.com/arthur-debert/vendorsync/pkg/types"
)

// DefaultTag starts the provenance line
const DefaultTag = "commit:"

var (
	commitPattern = regexp.MustCompile(`^[0-9a-fA-F]{40}$`)
	linkPattern   = regexp.MustCompile(`\[([^\]]*)\]\(([^)]*)\)`)
)

// ValidateCommit checks that commit is a full 40 character hex identifier
func ValidateCommit(commit string) error {
	if !commitPattern.MatchString(commit) {
		return errors.Newf(errors.ErrInvalidInput, "%q is not a 40 character hex commit id", commit).
			WithDetail("commit", commit)
	}
	return nil
}

// CommitURL links commit on the upstream web interface. A trailing ".git"
// on the clone URL is dropped.
func CommitURL(upstreamURL, commit string) string {
	base := strings.TrimSuffix(strings.TrimSuffix(upstreamURL, "/"), ".git")
	return base + "/commit/" + commit
}

// FormatLine renders the provenance line without its line ending
func FormatLine(tag, commit, upstreamURL string) string {
	return fmt.Sprintf("%s [%s](%s)", tag, commit, CommitURL(upstreamURL, commit))
}

// Result describes a provenance rewrite
type Result struct {
	Text    string `json:"-" yaml:"-"`
	Found   bool   `json:"found" yaml:"found"`
	Changed bool   `json:"changed" yaml:"changed"`
	// Lines is how many tagged lines were replaced.
	Lines int `json:"lines" yaml:"lines"`
}

// Rewrite replaces every line that starts with tag by the formatted
// provenance line. Line endings and all other lines are kept as they are.
func Rewrite(text, tag, commit, upstreamURL string) Result {
	var b strings.Builder
	b.Grow(len(text))

	res := Result{}
	replacement := FormatLine(tag, commit, upstreamURL)

	for _, line := range strings.SplitAfter(text, "\n") {
		if line == "" || !strings.HasPrefix(line, tag) {
			b.WriteString(line)
			continue
		}
		res.Found = true
		res.Lines++
		b.WriteString(replacement)
		b.WriteString(lineEnding(line))
	}

	res.Text = b.String()
	res.Changed = res.Text != text
	return res
}

// Record validates commit and rewrites the provenance line of the file at
// path. A file without a tag line is left untouched and reported with
// Found false.
func Record(fsys types.FS, path, tag, commit, upstreamURL string) (Result, error) {
	logger := logging.GetLogger("provenance")

	if err := ValidateCommit(commit); err != nil {
		return Result{}, err
	}

	info, err := fsys.Stat(path)
	if err != nil {
		return Result{}, errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", path).
			WithDetail("path", path)
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		return Result{}, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path).
			WithDetail("path", path)
	}

	res := Rewrite(string(data), tag, commit, upstreamURL)
	if !res.Found {
		logger.Warn().Str("path", path).Str("tag", tag).Msg("No provenance line found, file left unchanged")
		return res, nil
	}
	if !res.Changed {
		logger.Debug().Str("path", path).Msg("Provenance already current")
		return res, nil
	}

	if err := filesystem.WriteFileAtomic(fsys, path, []byte(res.Text), info.Mode().Perm()); err != nil {
		return res, errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path).
			WithDetail("path", path)
	}

	logger.Info().Str("path", path).Str("commit", commit).Msg("Provenance recorded")
	return res, nil
}

// Current returns the commit recorded on the first tag line of the file at
// path. A missing file or tag line is not an error: found is false.
func Current(fsys types.FS, path, tag string) (commit string, found bool, err error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path).
			WithDetail("path", path)
	}

	for _, line := range strings.Split(string(data), "\n") {
		if !strings.HasPrefix(line, tag) {
			continue
		}
		value := strings.TrimSpace(strings.TrimPrefix(line, tag))
		if m := linkPattern.FindStringSubmatch(value); m != nil {
			value = m[1]
		}
		return value, true, nil
	}
	return "", false, nil
}

func lineEnding(line string) string {
	switch {
	case strings.HasSuffix(line, "\r\n"):
		return "\r\n"
	case strings.HasSuffix(line, "\n"):
		return "\n"
	default:
		return ""
	}
}
