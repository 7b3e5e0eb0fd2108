package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"romdex/internal/config"
	"romdex/internal/rename"
)

func newBackupCommand(ctx *commandContext) *cobra.Command {
	var destination string

	cmd := &cobra.Command{
		Use:   "backup <directory>",
		Short: "Copy a directory's ROM files to a backup location",
		Long: `Copy every ROM file under a directory into a backup destination, preserving
the directory layout and file modification times. Non-ROM files are skipped.

Examples:
  romdex backup ~/roms
  romdex backup --dest /mnt/safe/roms ~/roms`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			dir, err := config.ExpandPath(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("resolve backup source: %w", err)
			}
			dest := strings.TrimSpace(destination)
			if dest == "" {
				dest = rename.DefaultBackupDir(dir)
			} else if dest, err = config.ExpandPath(dest); err != nil {
				return fmt.Errorf("resolve backup destination: %w", err)
			}

			renamer := rename.NewRenamer(cfg, nil, logger)
			out := cmd.OutOrStdout()
			if !renamer.Backup(dir, dest) {
				printStatus(out, "Backup", statusError, dest)
				return fmt.Errorf("backup of %q to %q failed", dir, dest)
			}
			printStatus(out, "Backup", statusOK, dest)
			return nil
		},
	}

	cmd.Flags().StringVarP(&destination, "dest", "d", "", "Backup destination (defaults to <directory>_backup)")
	return cmd
}
