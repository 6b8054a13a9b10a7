package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eringen/storefront/content"
	"github.com/eringen/storefront/kv"
)

// openStore opens the configured content backend and loads its snapshot.
func openStore(cmd *cobra.Command, load configLoader) (*content.Store, kv.Backend, error) {
	cfg, err := load()
	if err != nil {
		return nil, nil, err
	}
	backend, err := kv.Open(cfg.Backend, cfg.DatabasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open content backend: %w", err)
	}
	store, err := content.NewStore(backend)
	if err != nil {
		backend.Close()
		return nil, nil, err
	}
	store.Load(cmd.Context())
	return store, backend, nil
}

// formatFor picks the snapshot format from the flag, then the file extension.
func formatFor(flag, path string) string {
	if flag != "" {
		return flag
	}
	if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext == content.FormatTOML {
		return content.FormatTOML
	}
	return content.FormatJSON
}

func newExportCommand(load configLoader) *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the site config and service catalog to a file or stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, backend, err := openStore(cmd, load)
			if err != nil {
				return err
			}
			defer backend.Close()

			if out == "" {
				return content.EncodeSnapshot(cmd.OutOrStdout(), store.Snapshot(), formatFor(format, out))
			}
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			if err := content.EncodeSnapshot(f, store.Snapshot(), formatFor(format, out)); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("close %s: %w", out, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "json or toml (default from --out extension, else json)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}

func newImportCommand(load configLoader) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the site config and service catalog from a snapshot file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open %s: %w", path, err)
			}
			defer f.Close()

			snap, err := content.DecodeSnapshot(f, formatFor(format, path))
			if err != nil {
				return err
			}

			store, backend, err := openStore(cmd, load)
			if err != nil {
				return err
			}
			defer backend.Close()

			if err := store.Replace(cmd.Context(), snap); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d services for %q\n", len(snap.Services), snap.Config.ShopName)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "json or toml (default from file extension)")
	return cmd
}
