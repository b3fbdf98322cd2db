package manifest

import (
	"regexp"
	"strings"

	"github.com/arthur-debert/vendorsync/pkg/errors"
)

// Default block markers: the library target opener and a line starting
// with its closing parenthesis.
const (
	DefaultStartPattern = `^add_library\(\$\{PROJECT_NAME\}`
	DefaultEndPattern   = `^\)`
	DefaultIndent       = "    "
)

// Options controls which block is rewritten and how entries are written
type Options struct {
	Start  *regexp.Regexp
	End    *regexp.Regexp
	Indent string
}

// NewOptions compiles the block markers
func NewOptions(startPattern, endPattern, indent string) (Options, error) {
	start, err := regexp.Compile(startPattern)
	if err != nil {
		return Options{}, errors.Wrapf(err, errors.ErrConfigValid, "invalid start pattern %q", startPattern).
			WithDetail("pattern", startPattern)
	}
	end, err := regexp.Compile(endPattern)
	if err != nil {
		return Options{}, errors.Wrapf(err, errors.ErrConfigValid, "invalid end pattern %q", endPattern).
			WithDetail("pattern", endPattern)
	}
	return Options{Start: start, End: end, Indent: indent}, nil
}

// DefaultOptions matches add_library(${PROJECT_NAME} ... ) blocks
func DefaultOptions() Options {
	return Options{
		Start:  regexp.MustCompile(DefaultStartPattern),
		End:    regexp.MustCompile(DefaultEndPattern),
		Indent: DefaultIndent,
	}
}

// Result is the outcome of a rewrite
type Result struct {
	Text string `json:"-" yaml:"-"`
	// Found is false when no line matched the start pattern; Text is then
	// the input unchanged.
	Found bool `json:"found" yaml:"found"`
	// Closed is false when the input ended inside the block. Everything
	// after the opener was dropped.
	Closed  bool `json:"closed" yaml:"closed"`
	Changed bool `json:"changed" yaml:"changed"`
	// Removed and Added count the block lines that went away and the
	// source lines written in their place.
	Removed int `json:"removed" yaml:"removed"`
	Added   int `json:"added" yaml:"added"`
}

type state int

const (
	outside state = iota
	inside
	done
)

// Rewrite replaces the body of the first matching block with files, one per
// line. Lines outside that block, including later blocks matching the same
// opener, are emitted exactly as read.
func Rewrite(text string, files []string, opts Options) Result {
	var b strings.Builder
	b.Grow(len(text))

	res := Result{}
	st := outside

	for _, line := range strings.SplitAfter(text, "\n") {
		if line == "" {
			continue
		}
		content := strings.TrimRight(line, "\r\n")

		switch st {
		case outside:
			b.WriteString(line)
			if opts.Start.MatchString(content) {
				res.Found = true
				// Entries use the opener's line ending.
				eol := line[len(content):]
				if eol == "" && len(files) > 0 {
					eol = "\n"
					b.WriteString(eol)
				}
				for _, f := range files {
					b.WriteString(opts.Indent)
					b.WriteString(f)
					b.WriteString(eol)
				}
				res.Added = len(files)
				st = inside
			}
		case inside:
			if opts.End.MatchString(content) {
				b.WriteString(line)
				res.Closed = true
				st = done
				continue
			}
			res.Removed++
		case done:
			b.WriteString(line)
		}
	}

	res.Text = b.String()
	res.Changed = res.Text != text
	return res
}
