// Package config loads the aurclient configuration file.
//
// The file is TOML and entirely optional:
//
//	aur_url    = "https://aur.archlinux.org/"
//	timeout    = "10s"
//	user_agent = "my-helper/1.0"
//
// It is looked up at $XDG_CONFIG_HOME/aurclient/config.toml, falling back to
// ~/.config/aurclient/config.toml.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/aurclient/pkg/errors"
	"github.com/matzehuels/aurclient/pkg/integrations"
	"github.com/matzehuels/aurclient/pkg/integrations/aur"
)

const (
	appName  = "aurclient"
	fileName = "config.toml"

	defaultTimeout = 10 * time.Second
)

// Config holds the user-tunable settings of the CLI.
type Config struct {
	AURURL    string   `toml:"aur_url"`
	Timeout   Duration `toml:"timeout"`
	UserAgent string   `toml:"user_agent"`
}

// Duration is a time.Duration written as a Go duration string ("15s").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		AURURL:  aur.DefaultBaseURL,
		Timeout: Duration{defaultTimeout},
	}
}

// DefaultPath returns the XDG location of the config file.
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}

// Load reads the config file at path over the defaults. An empty path means
// [DefaultPath], which may be absent. An explicitly named file must exist.
// Unknown keys and invalid values are reported as INVALID_CONFIG.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return cfg, errs.Wrap(errs.ErrCodeInvalidConfig, err, "read %s", path)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return cfg, errs.New(errs.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if cfg.Timeout.Duration < 0 {
		return cfg, errs.New(errs.ErrCodeInvalidConfig, "%s: timeout must not be negative", path)
	}
	return cfg, nil
}

// ClientOptions translates the configuration into AUR client options.
func (c Config) ClientOptions() []aur.Option {
	opts := []aur.Option{
		aur.WithHTTPClient(integrations.NewHTTPClientWithTimeout(c.Timeout.Duration)),
	}
	if c.AURURL != "" {
		opts = append(opts, aur.WithBaseURL(c.AURURL))
	}
	if c.UserAgent != "" {
		opts = append(opts, aur.WithUserAgent(c.UserAgent))
	}
	return opts
}
