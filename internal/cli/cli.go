package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/aurclient/internal/config"
	"github.com/matzehuels/aurclient/pkg/buildinfo"
	"github.com/matzehuels/aurclient/pkg/integrations/aur"
	"github.com/matzehuels/aurclient/pkg/observability"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used in help text and completions.
const appName = "aurclient"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// The config file is loaded before any subcommand runs.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "aurclient queries the Arch User Repository",
		Long:         `aurclient searches the Arch User Repository, shows package details, and resolves or clones package git repositories.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.cfg = cfg
			observability.SetHTTPHooks(logHooks{})
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			c.Logger.Debug("loaded config", "aur_url", cfg.AURURL, "timeout", cfg.Timeout.Duration)
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/aurclient/config.toml)")

	root.AddCommand(c.searchCommand())
	root.AddCommand(c.infoCommand())
	root.AddCommand(c.cloneURLCommand())
	root.AddCommand(c.cloneCommand())
	root.AddCommand(c.depsCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Client Factory
// =============================================================================

// newClient builds an AUR client from the loaded configuration.
func (c *CLI) newClient() (*aur.Client, error) {
	return aur.NewClient(c.cfg.ClientOptions()...)
}
