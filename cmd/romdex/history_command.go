package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"romdex/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect past scan and rename runs",
	}

	historyCmd.AddCommand(newHistoryListCommand(ctx))
	historyCmd.AddCommand(newHistoryShowCommand(ctx))

	return historyCmd
}

func newHistoryListCommand(ctx *commandContext) *cobra.Command {
	var (
		limit      int
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openHistory()
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, runs)
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				printStatus(out, "History", statusInfo, "no runs recorded")
				return nil
			}
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					run.ID,
					run.Command,
					run.Root,
					formatRunTime(run.StartedAt),
					fmt.Sprintf("%d", run.Total),
					fmt.Sprintf("%d", run.Identified),
					fmt.Sprintf("%d", run.Renamed),
					formatDryRun(run.DryRun),
				})
			}
			fmt.Fprintln(out, renderListing(
				[]tableColumn{
					column("Run"), column("Command"), column("Root"), column("Started"),
					numericColumn("Files"), numericColumn("Identified"), numericColumn("Renamed"), column("Dry Run"),
				},
				rows,
			))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum runs to list")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit runs as JSON on stdout")
	return cmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show the per-file outcomes of one run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runID := strings.TrimSpace(args[0])
			if runID == "" {
				return fmt.Errorf("run id is required")
			}

			store, err := ctx.openHistory()
			if err != nil {
				return err
			}
			defer store.Close()

			files, err := store.RunFiles(cmd.Context(), runID)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, files)
			}

			out := cmd.OutOrStdout()
			if len(files) == 0 {
				printStatus(out, "Run", statusWarn, fmt.Sprintf("no files recorded for %s", runID))
				return nil
			}
			rows := make([][]string, 0, len(files))
			for _, file := range files {
				rows = append(rows, []string{
					file.FilePath,
					historyOutcome(file),
					file.MatchType,
					confidenceCell(file.Confidence),
					file.CorrectName,
				})
			}
			fmt.Fprintln(out, renderListing(
				[]tableColumn{column("File"), column("Outcome"), column("Match"), numericColumn("Confidence"), column("Canonical Name")},
				rows,
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit file records as JSON on stdout")
	return cmd
}

func historyOutcome(file history.FileRecord) string {
	switch {
	case file.Status == "error":
		return "error"
	case file.Renamed:
		return "renamed"
	case !file.Identified:
		return "unknown"
	default:
		return "identified"
	}
}

func formatRunTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

func formatDryRun(dryRun bool) string {
	if dryRun {
		return "yes"
	}
	return ""
}
