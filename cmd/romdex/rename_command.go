package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"romdex/internal/config"
	"romdex/internal/history"
	"romdex/internal/rename"
	"romdex/internal/report"
	"romdex/internal/services"
)

func newRenameCommand(ctx *commandContext) *cobra.Command {
	var (
		recursive  bool
		dryRun     bool
		backup     bool
		backupDir  string
		jsonOutput bool
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "rename <directory>",
		Short: "Rename ROM files to their canonical catalog names",
		Long: `Identify every ROM file in a directory and rename the identified ones to
the name their catalog entry records. Existing files are never overwritten; a
rename whose target exists is reported as a collision and the source is left
untouched.

Use --dry-run to preview renames without touching any file, and --backup to
copy the originals aside before renaming.

Examples:
  romdex rename --dry-run ~/roms
  romdex rename --backup ~/roms
  romdex rename --recursive --backup-dir /mnt/safe ~/roms`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("recursive") {
				recursive = cfg.Scan.Recursive
			}
			if !cmd.Flags().Changed("dry-run") {
				dryRun = cfg.Rename.DryRun
			}
			if !cmd.Flags().Changed("backup") {
				backup = cfg.Rename.Backup
			}

			dir, err := config.ExpandPath(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("resolve rename directory: %w", err)
			}

			identifier, warn, err := buildIdentifier(ctx)
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if warn != "" && !jsonOutput {
				printStatus(out, "Catalogs", statusWarn, warn)
			}

			renamer := rename.NewRenamer(cfg, identifier, logger)

			if backup && !dryRun {
				dest := strings.TrimSpace(backupDir)
				if dest == "" {
					dest = rename.DefaultBackupDir(dir)
				} else if dest, err = config.ExpandPath(dest); err != nil {
					return fmt.Errorf("resolve backup directory: %w", err)
				}
				if !renamer.Backup(dir, dest) {
					return fmt.Errorf("backup to %q failed, aborting rename", dest)
				}
				if !jsonOutput {
					printStatus(out, "Backup", statusOK, dest)
				}
			}

			results, err := renamer.RenameDirectory(cmd.Context(), dir, recursive, dryRun)
			if err != nil {
				return fmt.Errorf("rename %q: %w", dir, err)
			}
			rep := rename.BuildReport(results)

			recordRenameRun(ctx, dir, dryRun, rep)

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

			printRenameTable(cmd, rep)
			printRenameSummary(cmd, rep, dryRun)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Rename in subdirectories as well")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Preview renames without changing any file")
	cmd.Flags().BoolVar(&backup, "backup", false, "Copy ROM files aside before renaming")
	cmd.Flags().StringVar(&backupDir, "backup-dir", "", "Backup destination (defaults to <directory>_backup)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the full report as JSON on stdout")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the JSON report to a file")
	return cmd
}

func recordRenameRun(ctx *commandContext, root string, dryRun bool, rep rename.Report) {
	store, err := ctx.openHistory()
	if err != nil {
		logHistoryFailure(ctx, context.Background(), "open history store", err)
		return
	}
	defer store.Close()

	runCtx := context.Background()
	runID, err := store.BeginRun(runCtx, "rename", root, dryRun)
	if err != nil {
		logHistoryFailure(ctx, runCtx, "begin history run", err)
		return
	}
	runCtx = services.WithRunID(runCtx, runID)
	renamed := 0
	for _, result := range rep.Results {
		if result.Renamed && !result.DryRun {
			renamed++
		}
		record := history.FileRecord{
			RunID:       runID,
			FilePath:    result.FilePath,
			Identified:  result.Identification.Identified,
			MatchType:   string(result.Identification.MatchType),
			Confidence:  result.Identification.MatchConfidence,
			CorrectName: result.NewName,
			Renamed:     result.Renamed && !result.DryRun,
			Status:      result.Status,
			Message:     result.Message,
		}
		if err := store.RecordFile(runCtx, record); err != nil {
			logHistoryFailure(ctx, runCtx, "record history file", err)
			return
		}
	}
	if err := store.FinishRun(runCtx, runID, rep.Total, rep.Identified, renamed); err != nil {
		logHistoryFailure(ctx, runCtx, "finish history run", err)
	}
}

func printRenameTable(cmd *cobra.Command, rep rename.Report) {
	if rep.Total == 0 {
		return
	}
	rows := make([][]string, 0, len(rep.Results))
	for _, result := range rep.Results {
		rows = append(rows, []string{
			result.Identification.FileName,
			renameOutcome(result),
			result.NewName,
			result.Message,
		})
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderListing(
		[]tableColumn{column("File"), column("Outcome"), column("New Name"), column("Detail")},
		rows,
	))
}

func renameOutcome(result rename.Result) string {
	switch {
	case result.Status == rename.StatusError:
		return "error"
	case !result.Identification.Identified:
		return "unknown"
	case result.NameMatches:
		return "correct"
	case result.Renamed && result.DryRun:
		return "would rename"
	case result.Renamed:
		return "renamed"
	default:
		return "skipped"
	}
}

func printRenameSummary(cmd *cobra.Command, rep rename.Report, dryRun bool) {
	out := cmd.OutOrStdout()

	printStatus(out, "Files", statusInfo, fmt.Sprintf("%d processed", rep.Total))
	printStatus(out, "Identified", statusInfo, fmt.Sprintf("%d of %d", rep.Identified, rep.Total))
	label := "Renamed"
	if dryRun {
		label = "Would rename"
	}
	printStatus(out, label, statusOK, fmt.Sprintf("%d", rep.Renamed))
	if rep.AlreadyCorrect > 0 {
		printStatus(out, "Already correct", statusOK, fmt.Sprintf("%d", rep.AlreadyCorrect))
	}
}
