// Package vendorsync is the command line interface of vendorsync.
package vendorsync

import (
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/vendorsync/internal/version"
	"github.com/arthur-debert/vendorsync/pkg/commands"
	"github.com/arthur-debert/vendorsync/pkg/logging"
	"github.com/arthur-debert/vendorsync/pkg/ui"
)

// globalOptions holds the persistent flags
type globalOptions struct {
	verbosity  int
	root       string
	configFile string
	output     string
	upstream   string
	branch     string
	backend    string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	g := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "vendorsync",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Get().String(),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetupLoggerTo(cmd.ErrOrStderr(), g.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
			if _, err := ui.ParseFormat(g.output); err != nil {
				return fmt.Errorf(MsgErrOutputFormat, err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&g.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.StringVar(&g.root, "root", "", MsgFlagRoot)
	flags.StringVar(&g.configFile, "config", "", MsgFlagConfig)
	flags.StringVarP(&g.output, "output", "o", "auto", MsgFlagOutput)
	flags.StringVar(&g.upstream, "upstream", "", MsgFlagUpstream)
	flags.StringVar(&g.branch, "branch", "", MsgFlagBranch)
	flags.StringVar(&g.backend, "backend", "", MsgFlagBackend)
	_ = rootCmd.RegisterFlagCompletionFunc("output", cobra.FixedCompletions(
		[]string{"auto", "term", "text", "json", "yaml"}, cobra.ShellCompDirectiveNoFileComp))
	_ = rootCmd.RegisterFlagCompletionFunc("backend", cobra.FixedCompletions(
		[]string{"git", "go-git"}, cobra.ShellCompDirectiveNoFileComp))

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})
	rootCmd.SetHelpCommandGroupID("misc")

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newSyncCmd(g))
	rootCmd.AddCommand(newManifestCmd(g))
	rootCmd.AddCommand(newProvenanceCmd(g))
	rootCmd.AddCommand(newDepsCmd(g))
	rootCmd.AddCommand(newStatusCmd(g))
	rootCmd.AddCommand(newGenConfigCmd(g))
	rootCmd.AddCommand(newVersionCmd(g))
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	return rootCmd
}

// commandOptions turns the persistent flags into the shared command options
func (g *globalOptions) commandOptions() commands.Options {
	opts := commands.Options{
		ProjectRoot: g.root,
		ConfigFile:  g.configFile,
	}

	overrides := map[string]interface{}{}
	if g.upstream != "" {
		overrides["upstream.url"] = g.upstream
	}
	if g.branch != "" {
		overrides["upstream.branch"] = g.branch
	}
	if g.backend != "" {
		overrides["upstream.backend"] = g.backend
	}
	if len(overrides) > 0 {
		opts.Overrides = overrides
	}

	return opts
}

// format resolves --output against the writer it will be rendered to
func (g *globalOptions) format(w io.Writer) ui.Format {
	format, err := ui.ParseFormat(g.output)
	if err != nil {
		return ui.FormatText
	}
	return ui.Resolve(format, w)
}

// renderer builds the renderer for the command's standard output
func (g *globalOptions) renderer(cmd *cobra.Command) (ui.Renderer, ui.Format, error) {
	format := g.format(cmd.OutOrStdout())
	r, err := ui.NewRenderer(format, cmd.OutOrStdout())
	return r, format, err
}
