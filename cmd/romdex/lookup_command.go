package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"romdex/internal/config"
	"romdex/internal/identify"
)

func newLookupCommand(ctx *commandContext) *cobra.Command {
	var (
		byName     bool
		limit      int
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "lookup <file|name>",
		Short: "Identify a single file or search catalogs by name",
		Long: `Look up one ROM. With a file argument the file is checksummed and matched
against the loaded catalogs. With --name the argument is treated as a search
query against every catalog's name index instead.

Examples:
  romdex lookup ~/roms/game.smc
  romdex lookup --name "Super Game"
  romdex lookup --name --limit 5 mario`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			identifier, warn, err := buildIdentifier(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if warn != "" && !jsonOutput {
				printStatus(out, "Catalogs", statusWarn, warn)
			}

			if byName {
				query := strings.TrimSpace(strings.Join(args, " "))
				return runNameLookup(cmd, identifier, query, limit, jsonOutput)
			}
			if len(args) != 1 {
				return fmt.Errorf("file lookup takes exactly one path (got %d)", len(args))
			}
			path, err := config.ExpandPath(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("resolve path: %w", err)
			}
			if _, err := os.Stat(path); err != nil {
				return fmt.Errorf("inspect %q: %w", path, err)
			}

			result := identifier.Identify(path)
			if jsonOutput {
				return writeJSON(cmd, result)
			}
			printLookupResult(cmd, result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&byName, "name", false, "Search catalogs by name instead of identifying a file")
	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum name matches to show")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the result as JSON on stdout")
	return cmd
}

func runNameLookup(cmd *cobra.Command, identifier *identify.Identifier, query string, limit int, jsonOutput bool) error {
	if query == "" {
		return fmt.Errorf("name query is required")
	}
	matches := identifier.FindByName(query)
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	if jsonOutput {
		return writeJSON(cmd, matches)
	}

	out := cmd.OutOrStdout()
	if len(matches) == 0 {
		printStatus(out, "Matches", statusWarn, fmt.Sprintf("none for %q", query))
		return nil
	}
	rows := make([][]string, 0, len(matches))
	for _, match := range matches {
		rows = append(rows, []string{
			match.Entry.Name,
			match.Entry.Catalog,
			confidenceCell(match.Confidence),
			match.Entry.Description,
		})
	}
	fmt.Fprintln(out, renderListing(
		[]tableColumn{column("Name"), column("Catalog"), numericColumn("Confidence"), column("Description")},
		rows,
	))
	return nil
}

func printLookupResult(cmd *cobra.Command, result identify.Result) {
	out := cmd.OutOrStdout()

	if result.Status == identify.StatusError {
		printStatus(out, "File", statusError, result.Message)
		return
	}

	printStatus(out, "File", statusInfo, result.FileName)
	components := identify.ParseName(result.FileName)
	printStatus(out, "Title", statusInfo, components.Title)
	if components.Region != "" {
		printStatus(out, "Region", statusInfo, components.Region)
	}
	if components.Version != "" {
		printStatus(out, "Version", statusInfo, components.Version)
	}
	if len(components.Attributes) != 0 {
		printStatus(out, "Attributes", statusInfo, strings.Join(components.Attributes, ", "))
	}
	if standardized := identify.StandardizedName(components, filepath.Ext(result.FileName)); standardized != result.FileName {
		printStatus(out, "Standardized", statusInfo, standardized)
	}
	printStatus(out, "Size", statusInfo, fmt.Sprintf("%d bytes", result.Fingerprint.Size))
	printStatus(out, "MD5", statusInfo, result.Fingerprint.MD5)
	printStatus(out, "SHA1", statusInfo, result.Fingerprint.SHA1)
	printStatus(out, "CRC32", statusInfo, result.Fingerprint.CRC32)

	if !result.Identified {
		printStatus(out, "Match", statusWarn, "no catalog entry")
		return
	}
	printStatus(out, "Match", statusOK,
		fmt.Sprintf("%s (%.2f) in %s", result.MatchType, result.MatchConfidence, result.Entry.Catalog))
	printStatus(out, "Canonical name", statusInfo, result.CorrectName)
	if result.NameMatches {
		printStatus(out, "Filename", statusOK, "already correct")
	} else {
		printStatus(out, "Filename", statusWarn, "differs from canonical name")
	}
}
