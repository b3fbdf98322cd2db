package vendorsync

import (
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/vendorsync/internal/version"
	"github.com/arthur-debert/vendorsync/pkg/commands"
	"github.com/arthur-debert/vendorsync/pkg/errors"
	"github.com/arthur-debert/vendorsync/pkg/ui"
)

var stepBanners = map[commands.Step]string{
	commands.StepDeps:       MsgStepDeps,
	commands.StepMirror:     MsgStepMirror,
	commands.StepGenerate:   MsgStepGenerate,
	commands.StepTree:       MsgStepTree,
	commands.StepManifest:   MsgStepManifest,
	commands.StepProvenance: MsgStepProvenance,
}

// stepPrinter announces pipeline steps on w; structured output stays clean
func stepPrinter(w io.Writer, format ui.Format) func(commands.Step) {
	return func(s commands.Step) {
		msg, ok := stepBanners[s]
		if !ok {
			msg = string(s)
		}
		switch format {
		case ui.FormatJSON, ui.FormatYAML:
			return
		case ui.FormatTerminal:
			fmt.Fprintln(w, pterm.Info.Sprint(msg))
		default:
			fmt.Fprintln(w, msg)
		}
	}
}

func newSyncCmd(g *globalOptions) *cobra.Command {
	var skipDeps, skipUpdate bool

	cmd := &cobra.Command{
		Use:     "sync",
		Short:   MsgSyncShort,
		Long:    MsgSyncLong,
		Example: MsgSyncExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, format, err := g.renderer(cmd)
			if err != nil {
				return err
			}

			result, err := commands.Sync(cmd.Context(), commands.SyncOptions{
				Options:    g.commandOptions(),
				SkipDeps:   skipDeps,
				SkipUpdate: skipUpdate,
				OnStep:     stepPrinter(cmd.ErrOrStderr(), format),
			})
			if err != nil {
				return err
			}
			return renderer.RenderReport(syncReport(result))
		},
	}

	cmd.Flags().BoolVar(&skipDeps, "skip-deps", false, MsgFlagSkipDeps)
	cmd.Flags().BoolVar(&skipUpdate, "skip-update", false, MsgFlagSkipUpdate)
	return cmd
}

func newManifestCmd(g *globalOptions) *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:     "manifest",
		Short:   MsgManifestShort,
		Long:    MsgManifestLong,
		Example: MsgManifestExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, _, err := g.renderer(cmd)
			if err != nil {
				return err
			}

			result, err := commands.Manifest(cmd.Context(), commands.ManifestOptions{
				Options: g.commandOptions(),
				Check:   check,
			})
			if err != nil {
				return err
			}
			if err := renderer.RenderReport(manifestReport(result)); err != nil {
				return err
			}

			if result.Drifted() {
				return errors.Newf(errors.ErrManifestDrift, MsgManifestDrift, result.Path).
					WithDetail("path", result.Path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, MsgFlagCheck)
	return cmd
}

func newProvenanceCmd(g *globalOptions) *cobra.Command {
	var commit string

	cmd := &cobra.Command{
		Use:     "provenance",
		Short:   MsgProvenanceShort,
		Long:    MsgProvenanceLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, _, err := g.renderer(cmd)
			if err != nil {
				return err
			}

			result, err := commands.Provenance(cmd.Context(), commands.ProvenanceOptions{
				Options: g.commandOptions(),
				Commit:  commit,
			})
			if err != nil {
				return err
			}
			return renderer.RenderReport(provenanceReport(result))
		},
	}

	cmd.Flags().StringVar(&commit, "commit", "", MsgFlagCommit)
	return cmd
}

func newDepsCmd(g *globalOptions) *cobra.Command {
	var skipInstall bool

	cmd := &cobra.Command{
		Use:     "deps",
		Short:   MsgDepsShort,
		Long:    MsgDepsLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, _, err := g.renderer(cmd)
			if err != nil {
				return err
			}

			result, err := commands.Deps(cmd.Context(), commands.DepsOptions{
				Options:     g.commandOptions(),
				SkipInstall: skipInstall,
			})
			if err != nil {
				return err
			}
			return renderer.RenderReport(depsReport(result))
		},
	}

	cmd.Flags().BoolVar(&skipInstall, "skip-install", false, MsgFlagSkipInst)
	return cmd
}

func newStatusCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		Short:   MsgStatusShort,
		Long:    MsgStatusLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, _, err := g.renderer(cmd)
			if err != nil {
				return err
			}

			result, err := commands.Status(cmd.Context(), commands.StatusOptions{
				Options: g.commandOptions(),
			})
			if err != nil {
				return err
			}
			return renderer.RenderReport(statusReport(result))
		},
	}
}

func newGenConfigCmd(g *globalOptions) *cobra.Command {
	var defaults, write bool

	cmd := &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, _, err := g.renderer(cmd)
			if err != nil {
				return err
			}

			result, err := commands.GenConfig(cmd.Context(), commands.GenConfigOptions{
				Options:  g.commandOptions(),
				Defaults: defaults,
				Write:    write,
			})
			if err != nil {
				return err
			}
			return renderer.RenderReport(genConfigReport(result))
		},
	}

	cmd.Flags().BoolVar(&defaults, "defaults", false, MsgFlagDefaults)
	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	return cmd
}

func newVersionCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, _, err := g.renderer(cmd)
			if err != nil {
				return err
			}
			return renderer.RenderReport(versionReport(version.Get()))
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

func newManCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:     "man",
		Short:   MsgManShort,
		GroupID: "misc",
		Hidden:  true,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dir)
			}
			if err := doc.GenManTree(cmd.Root(), ManHeader(), dir); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgManPagesDone+"\n", dir)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", MsgFlagManDir)
	return cmd
}

// ManHeader is the header shared by every generated man page
func ManHeader() *doc.GenManHeader {
	return &doc.GenManHeader{
		Title:   "VENDORSYNC",
		Section: "1",
		Source:  "vendorsync " + version.Version,
		Manual:  "vendorsync manual",
	}
}
