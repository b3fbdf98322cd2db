package treesync

import (
	"context"
	"fmt"

	"github.com/arthur-debert/synthfs/pkg/synthfs"
	"github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
	"github.com/arthur-debert/vendorsync/pkg/errors"
	"github.com/arthur-debert/vendorsync/pkg/logging"
	"github.com/arthur-debert/vendorsync/pkg/types"
	"github.com/rs/zerolog"
)

// PipelineApplier runs a plan on the real filesystem as synthfs operation
// batches, one batch per phase. synthfs creates the directories and copies
// the files; removals and the final file modes go through fsys, which must
// be backed by the same OS filesystem.
type PipelineApplier struct {
	logger zerolog.Logger
	fs     types.FS
	target filesystem.FullFileSystem
}

// NewPipelineApplier returns an applier working on absolute OS paths
func NewPipelineApplier(fsys types.FS) *PipelineApplier {
	osfs := filesystem.NewOSFileSystem("/")
	return &PipelineApplier{
		logger: logging.GetLogger("treesync.pipeline"),
		fs:     fsys,
		target: synthfs.NewPathAwareFileSystem(osfs, "/").WithAbsolutePaths(),
	}
}

// Apply runs the removals, the directories and the copies as three
// pipelines, so each phase sees the previous one on disk.
func (a *PipelineApplier) Apply(ctx context.Context, plan Plan) error {
	sfs := synthfs.New()

	phases := []struct {
		name string
		ops  []synthfs.Operation
	}{
		{"remove", a.removals(sfs, plan.Removals)},
		{"mkdir", a.dirs(sfs, plan.Dirs)},
		{"copy", a.copies(sfs, plan.Copies)},
	}

	for _, phase := range phases {
		if err := a.run(ctx, phase.name, phase.ops); err != nil {
			return err
		}
	}
	return nil
}

func (a *PipelineApplier) removals(sfs *synthfs.SynthFS, ops []Op) []synthfs.Operation {
	out := make([]synthfs.Operation, 0, len(ops))
	for i, op := range ops {
		id := fmt.Sprintf("treesync_remove_%d", i)
		out = append(out, sfs.CustomOperationWithID(id, func(ctx context.Context, _ filesystem.FileSystem) error {
			return remove(a.fs, op.Target, op.Mode.IsDir())
		}))
	}
	return out
}

func (a *PipelineApplier) dirs(sfs *synthfs.SynthFS, ops []Op) []synthfs.Operation {
	out := make([]synthfs.Operation, 0, len(ops))
	for i, op := range ops {
		out = append(out, sfs.CreateDirWithID(fmt.Sprintf("treesync_mkdir_%d", i), op.Target, op.Mode))
	}
	return out
}

// copies pairs every copy with a chmod to the planned mode
func (a *PipelineApplier) copies(sfs *synthfs.SynthFS, ops []Op) []synthfs.Operation {
	out := make([]synthfs.Operation, 0, 2*len(ops))
	for i, op := range ops {
		out = append(out, sfs.CopyWithID(fmt.Sprintf("treesync_copy_%d", i), op.Source, op.Target))
		out = append(out, sfs.CustomOperationWithID(fmt.Sprintf("treesync_mode_%d", i), func(ctx context.Context, _ filesystem.FileSystem) error {
			if err := a.fs.Chmod(op.Target, op.Mode); err != nil {
				return errors.Wrapf(err, errors.ErrFileWrite, "failed to set mode of %s", op.Target).
					WithDetail("path", op.Target)
			}
			return nil
		}))
	}
	return out
}

func (a *PipelineApplier) run(ctx context.Context, phase string, ops []synthfs.Operation) error {
	if len(ops) == 0 {
		return nil
	}

	options := synthfs.DefaultPipelineOptions()
	options.RollbackOnError = false

	a.logger.Debug().
		Str("phase", phase).
		Int("operationCount", len(ops)).
		Msg("Executing synthfs operations")

	if _, err := synthfs.RunWithOptions(ctx, a.target, options, ops...); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "tree %s phase failed", phase).
			WithDetail("phase", phase)
	}
	return nil
}
