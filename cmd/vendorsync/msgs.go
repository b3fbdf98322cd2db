package vendorsync

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Keep a vendored TensorFlow Lite Micro tree in step with upstream"
	MsgSyncShort       = "Mirror upstream, regenerate the tree and update the project"
	MsgManifestShort   = "Rewrite or check the build manifest's source list"
	MsgProvenanceShort = "Record the upstream commit in the project documentation"
	MsgDepsShort       = "Install the generator's Python dependencies"
	MsgStatusShort     = "Show recorded commit, mirror head and manifest drift"
	MsgGenConfigShort  = "Print or write the configuration"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man pages"

	// Step banners
	MsgStepDeps       = "Checking generator dependencies..."
	MsgStepMirror     = "Updating the upstream mirror..."
	MsgStepGenerate   = "Generating tree..."
	MsgStepTree       = "Setting up the project..."
	MsgStepManifest   = "Updating the build manifest..."
	MsgStepProvenance = "Recording the upstream commit..."

	// Status messages
	MsgConfigWritten = "Configuration written to %s"
	MsgManifestDrift = "%s is out of date"
	MsgManPagesDone  = "Man pages written to %s"

	// Error messages
	MsgErrOutputFormat = "invalid --output value: %w"

	// Flag descriptions
	MsgFlagVerbose    = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagRoot       = "Project root (default: discovered from the working directory)"
	MsgFlagConfig     = "Extra TOML config file layered over the project config"
	MsgFlagOutput     = "Output format: auto, term, text, json or yaml"
	MsgFlagUpstream   = "Upstream repository URL (overrides upstream.url)"
	MsgFlagBranch     = "Upstream branch (overrides upstream.branch)"
	MsgFlagBackend    = "Git backend: git or go-git (overrides upstream.backend)"
	MsgFlagSkipDeps   = "Skip the dependency step"
	MsgFlagSkipUpdate = "Reuse the existing clone without pulling"
	MsgFlagCheck      = "Report drift without writing; exit 1 when out of date"
	MsgFlagCommit     = "Record this commit instead of the mirror's head"
	MsgFlagSkipInst   = "Only check dependencies, never install"
	MsgFlagDefaults   = "Use the embedded defaults instead of the effective config"
	MsgFlagWrite      = "Write the output to .vendorsync.toml at the project root"
	MsgFlagManDir     = "Directory to write man pages to"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/sync-long.txt
	msgSyncLongRaw string
	MsgSyncLong    = strings.TrimSpace(msgSyncLongRaw)

	//go:embed msgs/sync-example.txt
	msgSyncExampleRaw string
	MsgSyncExample    = strings.TrimRight(msgSyncExampleRaw, "\n")

	//go:embed msgs/manifest-long.txt
	msgManifestLongRaw string
	MsgManifestLong    = strings.TrimSpace(msgManifestLongRaw)

	//go:embed msgs/manifest-example.txt
	msgManifestExampleRaw string
	MsgManifestExample    = strings.TrimRight(msgManifestExampleRaw, "\n")

	//go:embed msgs/provenance-long.txt
	msgProvenanceLongRaw string
	MsgProvenanceLong    = strings.TrimSpace(msgProvenanceLongRaw)

	//go:embed msgs/deps-long.txt
	msgDepsLongRaw string
	MsgDepsLong    = strings.TrimSpace(msgDepsLongRaw)

	//go:embed msgs/status-long.txt
	msgStatusLongRaw string
	MsgStatusLong    = strings.TrimSpace(msgStatusLongRaw)

	//go:embed msgs/genconfig-long.txt
	msgGenConfigLongRaw string
	MsgGenConfigLong    = strings.TrimSpace(msgGenConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
