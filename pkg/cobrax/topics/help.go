package topics

import (
	"io/fs"

	"github.com/spf13/cobra"
)

// Install loads the topics and replaces root's help command with one that
// also serves them. "help topics" prints the index.
func Install(root *cobra.Command, fsys fs.FS, opts Options) (*Manager, error) {
	m, err := Load(fsys, opts)
	if err != nil {
		return nil, err
	}

	commandHelp := root.HelpFunc()
	name := root.Name()

	helpCmd := &cobra.Command{
		Use:   "help [command or topic]",
		Short: "Help about any command or topic",
		Long: "Help shows the usage of any command, or one of the help topics.\n\n" +
			"To list the topics:\n  " + name + " help topics",
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			candidates := []string{"topics"}
			for _, c := range root.Commands() {
				if c.IsAvailableCommand() {
					candidates = append(candidates, c.Name())
				}
			}
			return append(candidates, m.Names()...), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch {
			case len(args) == 0:
				commandHelp(root, nil)
				return nil
			case args[0] == "topics":
				return m.WriteIndex(out, name)
			}
			if t, ok := m.Lookup(args[0]); ok {
				return m.Render(out, t)
			}
			if target, _, err := root.Find(args); err == nil && target != root {
				commandHelp(target, nil)
				return nil
			}
			commandHelp(root, args)
			return nil
		},
	}

	for _, c := range root.Commands() {
		if c.Name() == "help" {
			root.RemoveCommand(c)
		}
	}
	root.AddCommand(helpCmd)
	root.SetHelpCommand(helpCmd)
	return m, nil
}
