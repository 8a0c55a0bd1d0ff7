package cli

import (
	"io"

	"github.com/arthur-debert/resman/internal/version"
	"github.com/arthur-debert/resman/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// ManHeader is the header of the generated man page
func ManHeader() *doc.GenManHeader {
	return &doc.GenManHeader{
		Title:   "RESMAN",
		Section: "1",
		Source:  "resman " + version.Version,
		Manual:  "resman manual",
	}
}

// GenCompletion writes the completion script of rootCmd for shell
func GenCompletion(rootCmd *cobra.Command, shell string, w io.Writer) error {
	switch shell {
	case "bash":
		return rootCmd.GenBashCompletionV2(w, true)
	case "zsh":
		return rootCmd.GenZshCompletion(w)
	case "fish":
		return rootCmd.GenFishCompletion(w, true)
	case "powershell":
		return rootCmd.GenPowerShellCompletionWithDesc(w)
	default:
		return errors.Newf(errors.ErrInvalidInput, "unknown shell %q; supported shells: bash, zsh, fish, powershell", shell).
			WithDetail("shell", shell)
	}
}
