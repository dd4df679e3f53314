package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/aurclient/pkg/depgraph"
	errs "github.com/matzehuels/aurclient/pkg/errors"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
)

func (c *CLI) depsCommand() *cobra.Command {
	var (
		format string
		output string
		kinds  []string
	)

	cmd := &cobra.Command{
		Use:   "deps <package>...",
		Short: "Draw the dependency graph of packages",
		Long: `Draw the direct dependencies of one or more AUR packages as a Graphviz graph.

Only the relations listed in the package records are drawn; dependencies are
not resolved further. Write DOT to stdout, or render SVG in-process:

  aurclient deps yay paru
  aurclient deps yay --format svg -o yay.svg
  aurclient deps yay --kinds depends,makedepends,optdepends`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatDOT && format != formatSVG {
				return errs.New(errs.ErrCodeInvalidInput, "unknown format %q (want dot or svg)", format)
			}
			if output != "" {
				if err := errs.ValidatePath(output); err != nil {
					return err
				}
			}
			parsed := make([]depgraph.Kind, 0, len(kinds))
			for _, k := range kinds {
				kind, err := depgraph.ParseKind(k)
				if err != nil {
					return errs.Wrap(errs.ErrCodeInvalidInput, err, "--kinds")
				}
				parsed = append(parsed, kind)
			}

			pkgs, err := c.lookup(cmd, args)
			if err != nil {
				return err
			}

			g := depgraph.Build(pkgs, parsed...)
			loggerFromContext(cmd.Context()).Debug("built graph", "nodes", len(g.Nodes()), "edges", len(g.Edges()))

			data := []byte(depgraph.ToDOT(g))
			if format == formatSVG {
				if data, err = depgraph.RenderSVG(cmd.Context(), string(data)); err != nil {
					return errs.Wrap(errs.ErrCodeInternal, err, "render svg")
				}
			}

			if output == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return errs.Wrap(errs.ErrCodeInvalidPath, err, "write %s", output)
			}
			printFile(cmd.ErrOrStderr(), output)
			return nil
		},
	}

	kindNames := make([]string, len(depgraph.Kinds))
	for i, k := range depgraph.Kinds {
		kindNames[i] = string(k)
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatDOT, "output format (dot or svg)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().StringSliceVar(&kinds, "kinds", []string{string(depgraph.Depends), string(depgraph.MakeDepends)}, "relations to draw")

	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{formatDOT, formatSVG}, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("kinds", cobra.FixedCompletions(kindNames, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}
