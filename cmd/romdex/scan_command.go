package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"romdex/internal/config"
	"romdex/internal/history"
	"romdex/internal/identify"
	"romdex/internal/report"
	"romdex/internal/services"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var (
		recursive  bool
		jsonOutput bool
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "scan <directory>",
		Short: "Identify every ROM file in a directory",
		Long: `Scan a directory for ROM files, compute their checksums, and match each
file against the loaded DAT catalogs. The summary reports how many files were
identified and how many already carry their canonical names.

Examples:
  romdex scan ~/roms
  romdex scan --recursive ~/roms
  romdex scan --json ~/roms > results.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("recursive") {
				recursive = cfg.Scan.Recursive
			}

			dir, err := config.ExpandPath(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("resolve scan directory: %w", err)
			}

			identifier, warn, err := buildIdentifier(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if warn != "" && !jsonOutput {
				printStatus(out, "Catalogs", statusWarn, warn)
			}

			results, err := identifier.IdentifyDirectory(cmd.Context(), dir, recursive)
			if err != nil {
				return fmt.Errorf("scan %q: %w", dir, err)
			}
			rep := identify.BuildReport(results)

			recordScanRun(ctx, "scan", dir, rep)

			if outputPath != "" {
				if err := report.SaveJSON(outputPath, rep); err != nil {
					return err
				}
				if !jsonOutput {
					fmt.Fprintf(out, "Wrote report to %s\n", outputPath)
				}
			}
			if jsonOutput {
				return writeJSON(cmd, rep)
			}

			printScanTable(cmd, rep)
			printScanSummary(cmd, rep)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Scan subdirectories as well")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the full report as JSON on stdout")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the JSON report to a file")
	return cmd
}

// buildIdentifier loads catalogs and wires an identifier. The warning string
// is non-empty when the store came up empty.
func buildIdentifier(ctx *commandContext) (*identify.Identifier, string, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, "", err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return nil, "", err
	}
	store, count, err := ctx.loadCatalogs()
	if err != nil {
		return nil, "", err
	}
	warn := ""
	if count == 0 {
		warn = fmt.Sprintf("no DAT catalogs loaded from %s (use 'romdex catalog add')", cfg.Paths.CatalogDir)
	}
	return identify.NewIdentifier(cfg, store, logger), warn, nil
}

// recordScanRun persists the run to the history store. History failures never
// fail the scan itself.
func recordScanRun(ctx *commandContext, command, root string, rep identify.Report) {
	store, err := ctx.openHistory()
	if err != nil {
		logHistoryFailure(ctx, context.Background(), "open history store", err)
		return
	}
	defer store.Close()

	runCtx := context.Background()
	runID, err := store.BeginRun(runCtx, command, root, false)
	if err != nil {
		logHistoryFailure(ctx, runCtx, "begin history run", err)
		return
	}
	runCtx = services.WithRunID(runCtx, runID)
	for _, result := range rep.Results {
		record := scanFileRecord(runID, result)
		if err := store.RecordFile(runCtx, record); err != nil {
			logHistoryFailure(ctx, runCtx, "record history file", err)
			return
		}
	}
	if err := store.FinishRun(runCtx, runID, rep.Total, rep.Identified, 0); err != nil {
		logHistoryFailure(ctx, runCtx, "finish history run", err)
	}
}

func logHistoryFailure(ctx *commandContext, runCtx context.Context, operation string, err error) {
	logger, lerr := ctx.ensureLogger()
	if lerr != nil || logger == nil {
		return
	}
	fields := []zap.Field{zap.String("operation", operation), zap.Error(err)}
	if runID, ok := services.RunIDFromContext(runCtx); ok {
		fields = append(fields, zap.String("run_id", runID))
	}
	logger.Warn("history recording skipped", fields...)
}

func printScanTable(cmd *cobra.Command, rep identify.Report) {
	if rep.Total == 0 {
		return
	}
	rows := make([][]string, 0, len(rep.Results))
	for _, result := range rep.Results {
		rows = append(rows, []string{
			result.FileName,
			scanOutcome(result),
			string(result.MatchType),
			confidenceCell(result.MatchConfidence),
			result.CorrectName,
		})
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderListing(
		[]tableColumn{column("File"), column("Outcome"), column("Match"), numericColumn("Confidence"), column("Canonical Name")},
		rows,
	))
}

func scanOutcome(result identify.Result) string {
	switch {
	case result.Status == identify.StatusError:
		return "error"
	case !result.Identified:
		return "unknown"
	case result.NameMatches:
		return "correct"
	default:
		return "misnamed"
	}
}

func printScanSummary(cmd *cobra.Command, rep identify.Report) {
	out := cmd.OutOrStdout()

	printStatus(out, "Files", statusInfo, fmt.Sprintf("%d scanned", rep.Total))
	identifiedKind := statusOK
	if rep.Total > 0 && rep.Identified < rep.Total {
		identifiedKind = statusWarn
	}
	printStatus(out, "Identified", identifiedKind,
		fmt.Sprintf("%d of %d (%.1f%%)", rep.Identified, rep.Total, rep.IdentificationRate*100))
	if rep.Identified > 0 {
		namedKind := statusOK
		if rep.CorrectNames < rep.Identified {
			namedKind = statusWarn
		}
		printStatus(out, "Correct names", namedKind,
			fmt.Sprintf("%d of %d (%.1f%%)", rep.CorrectNames, rep.Identified, rep.CorrectNameRate*100))
	}
}

func scanFileRecord(runID string, result identify.Result) history.FileRecord {
	return history.FileRecord{
		RunID:       runID,
		FilePath:    result.FilePath,
		Identified:  result.Identified,
		MatchType:   string(result.MatchType),
		Confidence:  result.MatchConfidence,
		CorrectName: result.CorrectName,
		Renamed:     false,
		Status:      result.Status,
		Message:     result.Message,
	}
}
