package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/aurclient/pkg/errors"
	"github.com/matzehuels/aurclient/pkg/integrations/aur"
)

func (c *CLI) infoCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "info <package>...",
		Short: "Show details for one or more packages",
		Long: `Show details for one or more AUR packages.

All names are looked up in a single request. Names the AUR does not know are
reported as warnings; the command fails only if none of them exist.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pkgs, err := c.lookup(cmd, args)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(w, pkgs)
			}
			client, err := c.newClient()
			if err != nil {
				return err
			}
			for i, p := range pkgs {
				if i > 0 {
					fmt.Fprintln(w)
				}
				printPackage(w, client, p)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw records as JSON")

	return cmd
}

// lookup fetches the records for names and warns about unknown names on
// stderr. It fails with PACKAGE_NOT_FOUND when no name resolves.
func (c *CLI) lookup(cmd *cobra.Command, names []string) ([]aur.Package, error) {
	ctx := cmd.Context()

	client, err := c.newClient()
	if err != nil {
		return nil, err
	}

	prog := newProgress(loggerFromContext(ctx))
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Looking up %s...", strings.Join(names, ", ")))
	spinner.Start()
	resp, err := client.Info(ctx, names)
	spinner.Stop()
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	prog.done(fmt.Sprintf("Resolved %d of %d packages", len(resp.Results), len(names)))

	found := make(map[string]bool, len(resp.Results))
	for _, p := range resp.Results {
		found[p.Name] = true
	}
	var missing []string
	for _, n := range names {
		if !found[n] {
			missing = append(missing, n)
		}
	}

	if len(resp.Results) == 0 {
		return nil, errs.New(errs.ErrCodePackageNotFound, "no such package: %s", strings.Join(missing, ", "))
	}
	for _, n := range missing {
		printWarning(cmd.ErrOrStderr(), "package %s not found", n)
	}
	return resp.Results, nil
}

func printPackage(w io.Writer, client *aur.Client, p aur.Package) {
	fmt.Fprintln(w, StyleTitle.Render(p.Name)+" "+StyleNumber.Render(p.Version))

	printKeyValue(w, "Description", orNone(p.Description))
	printKeyValue(w, "Upstream URL", orNone(p.URL))
	if base := packageBase(p); base != p.Name {
		printKeyValue(w, "Package Base", base)
	}
	printKeyValue(w, "Keywords", joinOrNone(p.Keywords))
	printKeyValue(w, "Licenses", joinOrNone(p.License))
	printKeyValue(w, "Groups", joinOrNone(p.Groups))
	printKeyValue(w, "Provides", joinOrNone(p.Provides))
	printKeyValue(w, "Depends On", joinOrNone(p.Depends))
	printKeyValue(w, "Make Deps", joinOrNone(p.MakeDepends))
	printKeyValue(w, "Check Deps", joinOrNone(p.CheckDepends))
	printKeyValue(w, "Optional Deps", joinOrNone(p.OptDepends))
	printKeyValue(w, "Conflicts With", joinOrNone(p.Conflicts))
	printKeyValue(w, "Replaces", joinOrNone(p.Replaces))

	maintainer := deref(p.Maintainer)
	if p.Orphaned() {
		maintainer = StyleWarning.Render("orphan")
	}
	printKeyValue(w, "Maintainer", maintainer)
	printKeyValue(w, "Votes", strconv.Itoa(p.NumVotes))
	printKeyValue(w, "Popularity", strconv.FormatFloat(p.Popularity, 'f', 6, 64))
	printKeyValue(w, "First Submitted", p.Submitted().UTC().Format(time.DateTime))
	printKeyValue(w, "Last Modified", p.Modified().UTC().Format(time.DateTime))

	outOfDate := "No"
	if since, ok := p.OutOfDateSince(); ok {
		outOfDate = StyleWarning.Render("Yes, since " + since.UTC().Format(time.DateOnly))
	}
	printKeyValue(w, "Out Of Date", outOfDate)

	printKeyValue(w, "Git Clone URL", StyleLink.Render(client.CloneURL(packageBase(p))))
	printKeyValue(w, "Snapshot", StyleLink.Render(client.SnapshotURL(p)))
}

func orNone(s *string) string {
	if s == nil || *s == "" {
		return "None"
	}
	return *s
}

func joinOrNone(ss []string) string {
	if len(ss) == 0 {
		return "None"
	}
	return strings.Join(ss, "  ")
}
