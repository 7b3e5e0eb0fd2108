package rename

import (
	"io/fs"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"romdex/internal/fileutil"
	"romdex/internal/identify"
)

// DefaultBackupDir returns the backup root used when none is given.
func DefaultBackupDir(dir string) string {
	return strings.TrimSuffix(dir, string(filepath.Separator)) + "_backup"
}

// Backup recursively copies every recognized ROM file under dir into a
// mirrored tree below backupDir, preserving relative paths and file metadata.
// The first I/O failure stops the walk and returns false; copies already made
// stay in place.
func (r *Renamer) Backup(dir, backupDir string) bool {
	if backupDir == "" {
		backupDir = DefaultBackupDir(dir)
	}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !identify.IsROMFile(path) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		return fileutil.CopyFilePreserving(path, filepath.Join(backupDir, rel))
	})
	if err != nil {
		r.logger.Error("backup failed",
			zap.String("dir", dir),
			zap.String("backup_dir", backupDir),
			zap.Error(err),
		)
		return false
	}

	r.logger.Info("backup completed", zap.String("dir", dir), zap.String("backup_dir", backupDir))
	return true
}
