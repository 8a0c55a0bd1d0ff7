package cli

import (
	"fmt"
	"slices"

	"github.com/arthur-debert/resman/internal/version"
	"github.com/arthur-debert/resman/pkg/config"
	"github.com/arthur-debert/resman/pkg/errors"
	"github.com/arthur-debert/resman/pkg/output"
	"github.com/arthur-debert/resman/pkg/repository"
	"github.com/arthur-debert/resman/pkg/types"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

func newMapCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "map <repository-path> <path-reference>...",
		Short:   MsgMapShort,
		Long:    MsgMapLong,
		Example: MsgMapExample,
		Args:    cobra.MinimumNArgs(2),
		GroupID: "mappings",
		RunE: func(cmd *cobra.Command, args []string) error {
			rm, err := types.NewResourceMapping(args[0], args[1:]...)
			if err != nil {
				return errors.Wrap(err, errors.ErrInvalidInput, "invalid mapping")
			}

			s, err := opts.openSession()
			if err != nil {
				return err
			}
			if err := s.manager.AddResourceMapping(rm); err != nil {
				return err
			}

			r, err := opts.renderer(cmd)
			if err != nil {
				return err
			}
			return r.RenderMessage("Success", fmt.Sprintf(MsgMapped, rm))
		},
	}
}

func newUnmapCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "unmap <repository-path>",
		Short:   MsgUnmapShort,
		Long:    MsgUnmapLong,
		Args:    cobra.ExactArgs(1),
		GroupID: "mappings",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.openSession()
			if err != nil {
				return err
			}
			r, err := opts.renderer(cmd)
			if err != nil {
				return err
			}

			if !s.manager.HasResourceMapping(args[0]) {
				return r.RenderMessage("Muted", fmt.Sprintf(MsgNoMapping, args[0]))
			}
			if err := s.manager.RemoveResourceMapping(args[0]); err != nil {
				return err
			}
			return r.RenderMessage("Success", fmt.Sprintf(MsgUnmapped, args[0]))
		},
	}
}

func newListCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   MsgListShort,
		Args:    cobra.NoArgs,
		GroupID: "mappings",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.openSession()
			if err != nil {
				return err
			}
			all, err := s.manager.GetResourceMappings()
			if err != nil {
				return err
			}

			rows := make([]output.MappingRow, 0, len(all))
			for _, pm := range all {
				rows = append(rows, output.MappingRow{
					Package:        pm.Package,
					Root:           pm.Package == s.root.Name,
					RepositoryPath: pm.Mapping.RepositoryPath,
					References:     pm.Mapping.PathReferences,
				})
			}

			r, err := opts.renderer(cmd)
			if err != nil {
				return err
			}
			return r.RenderMappings(rows)
		},
	}
}

func newBuildCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "build",
		Short:   MsgBuildShort,
		Long:    MsgBuildLong,
		Args:    cobra.NoArgs,
		GroupID: "repository",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.openSession()
			if err != nil {
				return err
			}
			if err := s.manager.Build(); err != nil {
				return err
			}

			r, err := opts.renderer(cmd)
			if err != nil {
				return err
			}
			return r.RenderMessage("Success", fmt.Sprintf(MsgBuilt, s.packages.Len(), s.storePath))
		},
	}
}

func newCheckCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "check",
		Short:   MsgCheckShort,
		Long:    MsgCheckLong,
		Args:    cobra.NoArgs,
		GroupID: "repository",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.openSession(repository.WithoutConflictCheck())
			if err != nil {
				return err
			}
			found, err := s.manager.FindConflicts()
			if err != nil {
				return err
			}

			r, err := opts.renderer(cmd)
			if err != nil {
				return err
			}
			if len(found) == 0 {
				return r.RenderMessage("Success", MsgNoConflicts)
			}
			if err := r.RenderConflicts(found); err != nil {
				return err
			}
			return errors.Newf(errors.ErrResourceConflict, MsgConflictsFound, len(found)).
				WithDetail("count", len(found))
		},
	}
}

func newOrderCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "order",
		Short:   MsgOrderShort,
		Args:    cobra.NoArgs,
		GroupID: "repository",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.openSession(repository.WithoutConflictCheck())
			if err != nil {
				return err
			}
			order, err := s.manager.PackageOrder()
			if err != nil {
				return err
			}

			r, err := opts.renderer(cmd)
			if err != nil {
				return err
			}
			return r.RenderOrder(orderRows(s, order))
		},
	}
}

// orderRows lists, for every package, the packages it is written after
func orderRows(s *session, order []string) []output.OrderRow {
	overridden := make(map[string][]string, len(order))
	for _, name := range order {
		for _, by := range s.manager.Overrides(name) {
			overridden[by] = append(overridden[by], name)
		}
	}

	rows := make([]output.OrderRow, 0, len(order))
	for _, name := range order {
		below := overridden[name]
		slices.Sort(below)
		rows = append(rows, output.OrderRow{
			Package:   name,
			Root:      name == s.root.Name,
			Overrides: below,
		})
	}
	return rows
}

func newConfigCmd() *cobra.Command {
	var template bool

	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			if template {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), config.GenerateConfigContent())
				return err
			}
			content, err := config.Get().Encode()
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), content)
			return err
		},
	}

	cmd.Flags().BoolVar(&template, "template", false, MsgFlagTemplate)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		Long:    MsgVersionLong,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, MsgVersionFormat, version.Version)
			if version.Commit != "" {
				fmt.Fprintf(out, MsgCommitFormat, version.Commit)
			}
			if version.Date != "" {
				fmt.Fprintf(out, MsgBuiltFormat, version.Date)
			}
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
			return GenCompletion(cmd.Root(), args[0], cmd.OutOrStdout())
		},
	}
}

func newManCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "man",
		Short:   MsgManShort,
		Args:    cobra.NoArgs,
		Hidden:  true,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			return doc.GenMan(cmd.Root(), ManHeader(), cmd.OutOrStdout())
		},
	}
}
