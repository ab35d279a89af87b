// Package cli implements the nestgraph command-line interface.
package cli

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/nestgraph/pkg/buildinfo"
	"github.com/matzehuels/nestgraph/pkg/cache"
	"github.com/matzehuels/nestgraph/pkg/model"
	"github.com/matzehuels/nestgraph/pkg/netio"
	"github.com/matzehuels/nestgraph/pkg/network"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "nestgraph"

	// catalogueFile is the model catalogue looked up in the config directory.
	catalogueFile = "models.toml"
)

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

	// modelsPath overrides the catalogue lookup when set (--models).
	modelsPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "nestgraph edits and converts spiking neural network graphs",
		Long:         `nestgraph loads network descriptions of populations, stimulators and recorders, keeps their connections and recording selections consistent, and emits them for storage or for the simulation engine.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.modelsPath, "models", "", "model catalogue file (toml, yaml or json)")

	root.AddCommand(c.convertCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.modelsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Registry and Network Loading
// =============================================================================

// registry resolves the model catalogue: --models, then the user's config
// directory, then the embedded defaults.
func (c *CLI) registry() (*model.MapRegistry, error) {
	if c.modelsPath != "" {
		return model.ReadFile(c.modelsPath)
	}
	if dir, err := configDir(); err == nil {
		path := filepath.Join(dir, catalogueFile)
		if _, err := os.Stat(path); err == nil {
			c.Logger.Debug("using model catalogue", "path", path)
			return model.ReadFile(path)
		}
	}
	return model.Default(), nil
}

// loadNetwork hydrates the network stored at path and warns about model
// references the catalogue cannot resolve.
func (c *CLI) loadNetwork(path string) (*network.Network, error) {
	reg, err := c.registry()
	if err != nil {
		return nil, err
	}
	net, err := netio.ImportNetwork(path, reg, network.WithLogger(c.Logger))
	if err != nil {
		return nil, err
	}
	for _, p := range net.Problems() {
		c.Logger.Warn("unresolved model", "err", p)
	}
	return net, nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/nestgraph/).
func cacheDir() (string, error) {
	return xdgDir("XDG_CACHE_HOME", ".cache")
}

// configDir returns the config directory using XDG standard (~/.config/nestgraph/).
func configDir() (string, error) {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

func xdgDir(env, fallback string) (string, error) {
	if base := os.Getenv(env); base != "" {
		return filepath.Join(base, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if home == "" {
		return "", errors.New("no home directory")
	}
	return filepath.Join(home, fallback, appName), nil
}
