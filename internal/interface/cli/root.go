// Package cli implements the brickshop command line interface.
package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/am24/brickshop/internal/app"
	"github.com/am24/brickshop/internal/app/config"
	"github.com/am24/brickshop/internal/infrastructure/di"
)

// globalContainer holds the wired dependencies for all commands
var globalContainer *di.Container

func NewRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "brickshop",
		Short:         "Brickshop CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load configuration before any command runs
			// Priority: config.yaml > BRICKSHOP_HOME > defaults
			home := os.Getenv("BRICKSHOP_HOME")
			if home == "" {
				userHome, err := os.UserHomeDir()
				if err != nil {
					userHome = "."
				}
				home = filepath.Join(userHome, ".brickshop")
			}

			cfg, err := config.Load(afero.NewOsFs(), home)
			if err != nil {
				// Continue with defaults if loading fails
				app.GetLogger().Warn("load config failed, using defaults: %v", err)
				cfg = config.Default(home)
			}

			if err := os.MkdirAll(home, 0o755); err != nil {
				return err
			}

			container, err := di.NewContainer(cfg)
			if err != nil {
				return err
			}
			globalContainer = container
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if globalContainer != nil {
				return globalContainer.Close()
			}
			return nil
		},
		RunE: func(c *cobra.Command, _ []string) error { return c.Help() },
	}
	cmd.AddCommand(newLoginCmd())
	cmd.AddCommand(newRegisterCmd())
	cmd.AddCommand(newLogoutCmd())
	cmd.AddCommand(newStatusCmd())
	cmd.AddCommand(newCatalogCmd())
	cmd.AddCommand(newCartCmd())
	cmd.AddCommand(newWishlistCmd())
	cmd.AddCommand(newOrdersCmd())
	cmd.AddCommand(newVersionCmd())
	return cmd
}
