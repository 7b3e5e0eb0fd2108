package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"romdex/internal/config"
	"romdex/internal/identify"
	"romdex/internal/report"
)

func newReportCommand(ctx *commandContext) *cobra.Command {
	var (
		recursive  bool
		formatFlag string
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "report <directory>",
		Short: "Write an identification report for a directory",
		Long: `Identify every ROM file in a directory and write the results as a report.
JSON suits further tooling, HTML gives a browsable summary, and CSV loads into
a spreadsheet.

Examples:
  romdex report ~/roms
  romdex report --format html --output roms.html ~/roms
  romdex report --format csv ~/roms > roms.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("recursive") {
				recursive = cfg.Scan.Recursive
			}

			format, err := report.ParseFormat(formatFlag)
			if err != nil {
				return err
			}

			dir, err := config.ExpandPath(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("resolve report directory: %w", err)
			}

			identifier, warn, err := buildIdentifier(ctx)
			if err != nil {
				return err
			}
			if warn != "" {
				printStatus(cmd.ErrOrStderr(), "Catalogs", statusWarn, warn)
			}

			results, err := identifier.IdentifyDirectory(cmd.Context(), dir, recursive)
			if err != nil {
				return fmt.Errorf("identify %q: %w", dir, err)
			}
			rep := identify.BuildReport(results)

			recordScanRun(ctx, "report", dir, rep)

			if outputPath == "" {
				return writeReport(cmd.OutOrStdout(), format, rep)
			}

			target, err := config.ExpandPath(outputPath)
			if err != nil {
				return fmt.Errorf("resolve output path: %w", err)
			}
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}
			file, err := os.Create(target)
			if err != nil {
				return fmt.Errorf("create report file: %w", err)
			}
			defer file.Close()
			if err := writeReport(file, format, rep); err != nil {
				return err
			}
			if err := file.Close(); err != nil {
				return fmt.Errorf("flush report file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s report to %s\n", format, target)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Report on subdirectories as well")
	cmd.Flags().StringVarP(&formatFlag, "format", "f", string(report.FormatJSON), "Report format: json, html, or csv")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the report to a file instead of stdout")
	return cmd
}

func writeReport(w io.Writer, format report.Format, rep identify.Report) error {
	switch format {
	case report.FormatHTML:
		return report.WriteHTML(w, rep)
	case report.FormatCSV:
		return report.WriteCSV(w, rep.Results)
	default:
		return report.WriteJSON(w, rep)
	}
}
