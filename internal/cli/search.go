package cli

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	errs "github.com/matzehuels/aurclient/pkg/errors"
	"github.com/matzehuels/aurclient/pkg/integrations/aur"
)

// Sort orders accepted by --sort.
const (
	sortVotes      = "votes"
	sortPopularity = "popularity"
	sortName       = "name"
)

type searchOptions struct {
	by          string
	sort        string
	limit       int
	json        bool
	interactive bool
}

func (c *CLI) searchCommand() *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Search the AUR",
		Long: `Search the AUR for packages matching a term.

By default the term is matched against names and descriptions. Use --by to
search a different field:

  aurclient search --by maintainer someone
  aurclient search --by depends python-requests`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSearch(cmd, args[0], opts)
		},
	}

	fields := make([]string, len(aur.SearchFields))
	for i, f := range aur.SearchFields {
		fields[i] = string(f)
	}

	cmd.Flags().StringVar(&opts.by, "by", "", "field to search ("+strings.Join(fields, ", ")+")")
	cmd.Flags().StringVar(&opts.sort, "sort", "", "sort results by votes, popularity or name")
	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 0, "show at most n results (0 for all)")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the raw results as JSON")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "pick a result interactively and print its clone URL")

	_ = cmd.RegisterFlagCompletionFunc("by", cobra.FixedCompletions(fields, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("sort", cobra.FixedCompletions(
		[]string{sortVotes, sortPopularity, sortName}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

func (c *CLI) runSearch(cmd *cobra.Command, term string, opts searchOptions) error {
	if err := validateSort(opts.sort); err != nil {
		return err
	}
	if opts.limit < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "--limit must not be negative")
	}

	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	client, err := c.newClient()
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Searching for %q...", term))
	spinner.Start()
	resp, err := client.SearchBy(ctx, aur.SearchField(opts.by), term)
	spinner.Stop()
	if err != nil {
		return err
	}
	if err := resp.Err(); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Found %d packages", resp.ResultCount))

	results := sortPackages(resp.Results, opts.sort)
	if opts.limit > 0 && len(results) > opts.limit {
		results = results[:opts.limit]
	}

	w := cmd.OutOrStdout()
	switch {
	case opts.json:
		return writeJSON(w, results)
	case opts.interactive:
		return c.pickPackage(cmd, client, results)
	}

	if len(results) == 0 {
		printDetail(w, "No packages found")
		return nil
	}
	fmt.Fprintln(w, searchTable(results))
	if len(results) < len(resp.Results) {
		printDetail(w, "Showing %d of %d results", len(results), len(resp.Results))
	}
	return nil
}

func (c *CLI) pickPackage(cmd *cobra.Command, client *aur.Client, pkgs []aur.Package) error {
	w := cmd.OutOrStdout()
	if len(pkgs) == 0 {
		printDetail(w, "No packages found")
		return nil
	}

	p := tea.NewProgram(NewPackageListModel(pkgs), tea.WithContext(cmd.Context()))
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	fm, ok := finalModel.(PackageListModel)
	if !ok || fm.Selected == nil {
		printDetail(w, "No selection made")
		return nil
	}
	fmt.Fprintln(w, client.CloneURL(packageBase(*fm.Selected)))
	return nil
}

func validateSort(s string) error {
	switch s {
	case "", sortVotes, sortPopularity, sortName:
		return nil
	}
	return errs.New(errs.ErrCodeInvalidInput, "unknown sort order %q (want votes, popularity or name)", s)
}

// sortPackages returns a sorted copy of pkgs. An empty order keeps the
// upstream order.
func sortPackages(pkgs []aur.Package, order string) []aur.Package {
	out := slices.Clone(pkgs)
	switch order {
	case sortVotes:
		slices.SortStableFunc(out, func(a, b aur.Package) int {
			return cmp.Or(cmp.Compare(b.NumVotes, a.NumVotes), cmp.Compare(a.Name, b.Name))
		})
	case sortPopularity:
		slices.SortStableFunc(out, func(a, b aur.Package) int {
			return cmp.Or(cmp.Compare(b.Popularity, a.Popularity), cmp.Compare(a.Name, b.Name))
		})
	case sortName:
		slices.SortStableFunc(out, func(a, b aur.Package) int {
			return cmp.Compare(a.Name, b.Name)
		})
	}
	return out
}

func searchTable(pkgs []aur.Package) string {
	rows := make([][]string, len(pkgs))
	for i, p := range pkgs {
		maintainer := deref(p.Maintainer)
		if p.Orphaned() {
			maintainer = "(orphan)"
		}
		rows[i] = []string{
			p.Name,
			p.Version,
			strconv.Itoa(p.NumVotes),
			strconv.FormatFloat(p.Popularity, 'f', 2, 64),
			maintainer,
			truncate(deref(p.Description), 60),
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Package", "Version", "Votes", "Popularity", "Maintainer", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if row < len(pkgs) && pkgs[row].OutOfDate != nil && col == 1 {
				return StyleWarning
			}
			if col == 0 {
				return StyleTitle
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

// packageBase returns the name of the git repository a package lives in.
// Split packages share the repository of their package base.
func packageBase(p aur.Package) string {
	if p.PackageBase != nil && *p.PackageBase != "" {
		return *p.PackageBase
	}
	return p.Name
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
