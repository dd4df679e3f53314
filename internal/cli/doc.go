// Package cli implements the aurclient command-line interface.
//
// # Commands
//
//   - search: Search the AUR by name, description or another field
//   - info: Show the full record of one or more packages
//   - clone-url: Print git clone URLs without contacting the AUR
//   - clone: Clone the git repository of a package
//   - deps: Draw direct dependencies as DOT or SVG
//
// # Configuration
//
// Settings are read from $XDG_CONFIG_HOME/aurclient/config.toml, or the file
// named by --config. See [config.Load].
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// traces every HTTP request made to the AUR. Loggers are passed through
// context.Context.
package cli
