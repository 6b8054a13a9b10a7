package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eringen/storefront"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// NewRootCommand builds the storefront CLI.
func NewRootCommand() *cobra.Command {
	var configFile string

	rootCmd := &cobra.Command{
		Use:   "storefront",
		Short: "Repair shop storefront and content dashboard",
		Long: `storefront serves a repair shop's public site and the dashboard used to
edit its contact details and service catalog.

Configuration comes from environment variables, optionally layered over a
YAML file given with --config.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (optional)")

	load := func() (storefront.Config, error) {
		return storefront.LoadConfig(configFile)
	}

	rootCmd.AddCommand(newServeCommand(load))
	rootCmd.AddCommand(newExportCommand(load))
	rootCmd.AddCommand(newImportCommand(load))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

type configLoader func() (storefront.Config, error)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the storefront version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "storefront %s\n", version)
		},
	}
}
