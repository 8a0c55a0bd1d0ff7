package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Resolve package resource mappings into a repository"
	MsgMapShort        = "Map a repository path to one or more path references"
	MsgUnmapShort      = "Remove the root mapping of a repository path"
	MsgListShort       = "List the resource mappings of every package"
	MsgBuildShort      = "Rebuild the repository from every package"
	MsgCheckShort      = "Report every unresolved resource conflict"
	MsgOrderShort      = "Print the package build order"
	MsgConfigShort     = "Print the effective configuration"
	MsgVersionShort    = "Print version information"
	MsgVersionLong     = "Print detailed version information including commit hash and build date"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate the man page"

	// Status messages
	MsgMapped           = "Mapped %s"
	MsgUnmapped         = "Removed mapping for %s"
	MsgNoMapping        = "No mapping for %s"
	MsgBuilt            = "Built %d package(s) into %s"
	MsgNoConflicts      = "No conflicts."
	MsgConflictsFound   = "%d conflict(s) found"
	MsgVersionFormat    = "resman version %s\n"
	MsgCommitFormat     = "Commit: %s\n"
	MsgBuiltFormat      = "Built:  %s\n"
	MsgStoreMemoryNotes = "memory store (nothing written)"

	// Error messages
	MsgErrLoadConfig   = "failed to load configuration"
	MsgErrOpenStore    = "failed to open store"
	MsgErrLoadPackages = "failed to load packages"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagRoot     = "Project directory (env RESMAN_ROOT)"
	MsgFlagConfig   = "Configuration file used instead of the project's .resman.toml"
	MsgFlagColor    = "Color output: auto, always or never"
	MsgFlagFormat   = "Output format: auto, term, text or json"
	MsgFlagTemplate = "Print a commented configuration template instead"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/map-long.txt
	msgMapLongRaw string
	MsgMapLong    = strings.TrimSpace(msgMapLongRaw)

	//go:embed msgs/map-example.txt
	msgMapExampleRaw string
	MsgMapExample    = strings.TrimRight(msgMapExampleRaw, "\n")

	//go:embed msgs/unmap-long.txt
	msgUnmapLongRaw string
	MsgUnmapLong    = strings.TrimSpace(msgUnmapLongRaw)

	//go:embed msgs/build-long.txt
	msgBuildLongRaw string
	MsgBuildLong    = strings.TrimSpace(msgBuildLongRaw)

	//go:embed msgs/check-long.txt
	msgCheckLongRaw string
	MsgCheckLong    = strings.TrimSpace(msgCheckLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
