package cli

import (
	"embed"
	"os"

	"github.com/arthur-debert/resman/internal/version"
	"github.com/arthur-debert/resman/pkg/cobrax/topics"
	"github.com/arthur-debert/resman/pkg/config"
	"github.com/arthur-debert/resman/pkg/errors"
	"github.com/arthur-debert/resman/pkg/filesystem"
	"github.com/arthur-debert/resman/pkg/logging"
	"github.com/arthur-debert/resman/pkg/output"
	"github.com/arthur-debert/resman/pkg/output/styles"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed help/*.md
var helpFS embed.FS

// RootEnv names the environment variable holding the default project directory
const RootEnv = "RESMAN_ROOT"

// globalOptions are the persistent flags shared by every command
type globalOptions struct {
	verbosity  int
	root       string
	configFile string
	color      string
	format     string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "resman",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
			return opts.loadConfig(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	defaultRoot := os.Getenv(RootEnv)
	if defaultRoot == "" {
		defaultRoot = "."
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.StringVarP(&opts.root, "root", "r", defaultRoot, MsgFlagRoot)
	flags.StringVarP(&opts.configFile, "config", "c", "", MsgFlagConfig)
	flags.StringVar(&opts.color, "color", "", MsgFlagColor)
	flags.StringVarP(&opts.format, "format", "f", "auto", MsgFlagFormat)

	rootCmd.AddGroup(
		&cobra.Group{ID: "mappings", Title: "Mappings:"},
		&cobra.Group{ID: "repository", Title: "Repository:"},
		&cobra.Group{ID: "misc", Title: "Misc:"},
	)

	rootCmd.AddCommand(newMapCmd(opts))
	rootCmd.AddCommand(newUnmapCmd(opts))
	rootCmd.AddCommand(newListCmd(opts))
	rootCmd.AddCommand(newBuildCmd(opts))
	rootCmd.AddCommand(newCheckCmd(opts))
	rootCmd.AddCommand(newOrderCmd(opts))
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	// Topic help replaces cobra's help command. Logging is not set up yet,
	// so a broken topic tree only loses the topics.
	renderer := topics.Renderer(topics.NewPlainGlamourRenderer())
	if isatty.IsTerminal(os.Stdout.Fd()) && os.Getenv("NO_COLOR") == "" {
		renderer = topics.NewGlamourRenderer()
	}
	if _, err := topics.Install(rootCmd, helpFS, topics.Options{
		Dir:        "help",
		Extensions: []string{".md"},
		Renderer:   renderer,
	}); err != nil {
		rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})
	}

	return rootCmd
}

// loadConfig merges configuration files, environment and changed flags
func (o *globalOptions) loadConfig(cmd *cobra.Command) error {
	overrides := map[string]interface{}{}
	flags := cmd.Flags()
	if flags.Changed("color") {
		overrides["output.color"] = o.color
	}
	if flags.Changed("verbose") {
		overrides["logging.verbosity"] = o.verbosity
	}

	cfg, err := config.Load(config.LoadOptions{
		RootDir:   o.root,
		File:      o.configFile,
		Overrides: overrides,
	})
	if err != nil {
		if errors.GetErrorCode(err) == errors.ErrUnknown {
			return errors.Wrap(err, errors.ErrConfigLoad, MsgErrLoadConfig)
		}
		return err
	}

	if cfg.Logging.Verbosity != o.verbosity {
		logging.SetupLogger(cfg.Logging.Verbosity)
	}
	config.Initialize(cfg)
	return nil
}

// renderer creates the output renderer for cmd's output stream
func (o *globalOptions) renderer(cmd *cobra.Command) (*output.Renderer, error) {
	format, err := output.ParseFormat(o.format)
	if err != nil {
		return nil, err
	}
	cfg := config.Get()
	w := cmd.OutOrStdout()
	r := output.NewRenderer(w, output.Resolve(format, w, cfg.Output.Color))

	if path := cfg.ThemePath(o.root); path != "" {
		theme, err := styles.Load(filesystem.NewOS(), path)
		if err != nil {
			return nil, err
		}
		r.WithTheme(theme)
	}
	return r, nil
}
