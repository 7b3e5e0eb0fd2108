package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"romdex/internal/catalog"
	"romdex/internal/config"
	"romdex/internal/fileutil"
)

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage DAT catalogs",
	}

	catalogCmd.AddCommand(newCatalogAddCommand(ctx))
	catalogCmd.AddCommand(newCatalogListCommand(ctx))
	catalogCmd.AddCommand(newCatalogStatsCommand(ctx))

	return catalogCmd
}

func newCatalogAddCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add <file>...",
		Short: "Copy DAT files into the catalog directory",
		Long: `Validate one or more DAT files and copy them into the configured catalog
directory, where scan, rename, and lookup pick them up. A file that fails to
parse is rejected and not copied.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			store := catalog.NewStore(logger)
			for _, arg := range args {
				source, err := config.ExpandPath(strings.TrimSpace(arg))
				if err != nil {
					return fmt.Errorf("resolve %q: %w", arg, err)
				}
				if !store.LoadSource(source) {
					printStatus(out, filepath.Base(source), statusError, "not a readable DAT file")
					return fmt.Errorf("catalog source %q did not parse", source)
				}
				target := filepath.Join(cfg.Paths.CatalogDir, filepath.Base(source))
				if _, err := os.Stat(target); err == nil {
					printStatus(out, filepath.Base(source), statusWarn, "already present, skipping")
					continue
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("check catalog target %q: %w", target, err)
				}
				if err := fileutil.CopyFile(source, target); err != nil {
					return fmt.Errorf("copy catalog %q: %w", source, err)
				}
				printStatus(out, filepath.Base(source), statusOK, "added")
			}
			return nil
		},
	}
}

func newCatalogListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List catalog files in the catalog directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			entries, err := os.ReadDir(cfg.Paths.CatalogDir)
			if err != nil {
				return fmt.Errorf("read catalog directory %q: %w", cfg.Paths.CatalogDir, err)
			}

			out := cmd.OutOrStdout()
			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				if entry.IsDir() {
					continue
				}
				ext := strings.ToLower(filepath.Ext(entry.Name()))
				if ext != ".dat" && ext != ".xml" {
					continue
				}
				info, err := entry.Info()
				size := ""
				if err == nil {
					size = fmt.Sprintf("%d", info.Size())
				}
				rows = append(rows, []string{entry.Name(), size})
			}
			if len(rows) == 0 {
				printStatus(out, "Catalogs", statusWarn, fmt.Sprintf("none in %s", cfg.Paths.CatalogDir))
				return nil
			}
			fmt.Fprintln(out, renderListing(
				[]tableColumn{column("File"), numericColumn("Bytes")},
				rows,
			))
			return nil
		},
	}
}

func newCatalogStatsCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show entry and hash counts for the loaded catalogs",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, count, err := ctx.loadCatalogs()
			if err != nil {
				return err
			}
			stats := store.Stats()
			if jsonOutput {
				return writeJSON(cmd, stats)
			}

			out := cmd.OutOrStdout()
			if count == 0 {
				printStatus(out, "Catalogs", statusWarn, "none loaded")
				return nil
			}

			names := make([]string, 0, len(stats.PerCatalog))
			for name := range stats.PerCatalog {
				names = append(names, name)
			}
			sort.Strings(names)

			rows := make([][]string, 0, len(names))
			for _, name := range names {
				cs := stats.PerCatalog[name]
				rows = append(rows, []string{
					name,
					fmt.Sprintf("%d", cs.Entries),
					fmt.Sprintf("%d", cs.UniqueMD5),
					fmt.Sprintf("%d", cs.UniqueSHA1),
					fmt.Sprintf("%d", cs.UniqueCRC32),
				})
			}
			fmt.Fprintln(out, renderListing(
				[]tableColumn{column("Catalog"), numericColumn("Entries"), numericColumn("MD5"), numericColumn("SHA1"), numericColumn("CRC32")},
				rows,
			))
			printStatus(out, "Total", statusInfo,
				fmt.Sprintf("%d entries across %d catalogs", stats.TotalEntries, stats.Catalogs))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit statistics as JSON on stdout")
	return cmd
}
