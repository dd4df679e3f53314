package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/go-git/go-git/v5"
	"github.com/spf13/cobra"

	errs "github.com/matzehuels/aurclient/pkg/errors"
)

func (c *CLI) cloneURLCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clone-url <package>...",
		Short: "Print the git clone URL of packages",
		Long: `Print the git clone URL of each package, one per line.

No request is made: the URL is derived from the configured AUR base URL, so
it is printed even for packages that do not exist. For split packages pass
the package base name.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range args {
				if err := errs.ValidatePackageName(name); err != nil {
					return err
				}
			}
			client, err := c.newClient()
			if err != nil {
				return err
			}
			for _, name := range args {
				fmt.Fprintln(cmd.OutOrStdout(), client.CloneURL(name))
			}
			return nil
		},
	}
}

func (c *CLI) cloneCommand() *cobra.Command {
	var depth int

	cmd := &cobra.Command{
		Use:   "clone <package> [dir]",
		Short: "Clone the git repository of a package",
		Long: `Clone the git repository of an AUR package.

The package is looked up first so that split packages resolve to the
repository of their package base. The directory defaults to the package base
name and must not exist yet.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if err := errs.ValidatePackageName(name); err != nil {
				return err
			}
			if depth < 0 {
				return errs.New(errs.ErrCodeInvalidInput, "--depth must not be negative")
			}

			pkgs, err := c.lookup(cmd, []string{name})
			if err != nil {
				return err
			}
			base := packageBase(pkgs[0])

			dir := base
			if len(args) == 2 {
				dir = args[1]
			}
			if err := errs.ValidatePath(dir); err != nil {
				return err
			}

			client, err := c.newClient()
			if err != nil {
				return err
			}
			url := client.CloneURL(base)

			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			logger.Debug("cloning", "url", url, "dir", dir, "depth", depth)

			var progressOut io.Writer
			if logger.GetLevel() <= LogDebug {
				progressOut = cmd.ErrOrStderr()
			}

			spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Cloning %s...", base))
			spinner.Start()
			err = cloneRepo(ctx, url, dir, depth, progressOut)
			spinner.Stop()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			printSuccess(w, "Cloned %s", base)
			printFile(w, dir)
			return nil
		},
	}

	cmd.Flags().IntVar(&depth, "depth", 0, "create a shallow clone with this many commits (0 for full history)")

	return cmd
}

// cloneRepo clones url into dir, which must not exist. A partially written
// directory is removed on failure.
func cloneRepo(ctx context.Context, url, dir string, depth int, out io.Writer) error {
	if depth < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "--depth must not be negative")
	}
	if _, err := os.Stat(dir); err == nil {
		return errs.New(errs.ErrCodeInvalidPath, "%s already exists", dir)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return errs.Wrap(errs.ErrCodeInvalidPath, err, "stat %s", dir)
	}

	_, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:      url,
		Depth:    depth,
		Progress: out,
	})
	if err == nil {
		return nil
	}

	_ = os.RemoveAll(dir)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return errs.Wrap(errs.ErrCodeNetwork, err, "clone %s", url)
}
