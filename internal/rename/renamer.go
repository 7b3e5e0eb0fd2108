package rename

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"go.uber.org/zap"

	"romdex/internal/catalog"
	"romdex/internal/config"
	"romdex/internal/identify"
	"romdex/internal/services"
)

// LockFileName is the per-directory lock taken during real rename runs.
const LockFileName = ".romdex.lock"

// Result statuses mirror the identification package.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Result is the outcome of one rename attempt.
type Result struct {
	FilePath       string          `json:"file_path"`
	NewPath        string          `json:"new_path,omitempty"`
	NewName        string          `json:"new_name,omitempty"`
	Renamed        bool            `json:"renamed"`
	DryRun         bool            `json:"dry_run"`
	NameMatches    bool            `json:"name_matches"`
	Status         string          `json:"status"`
	Message        string          `json:"message,omitempty"`
	Identification identify.Result `json:"identification"`
}

// Report aggregates a batch of rename results.
type Report struct {
	Total              int      `json:"total"`
	Identified         int      `json:"identified"`
	IdentificationRate float64  `json:"identification_rate"`
	Renamed            int      `json:"renamed"`
	AlreadyCorrect     int      `json:"already_correct"`
	Results            []Result `json:"results"`
}

// Renamer derives canonical filenames from identification results and applies
// them with a never-clobber policy.
type Renamer struct {
	identifier *identify.Identifier
	cfg        *config.Config
	logger     *zap.Logger
}

// NewRenamer constructs a renamer on top of the given identifier.
func NewRenamer(cfg *config.Config, identifier *identify.Identifier, logger *zap.Logger) *Renamer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renamer{
		identifier: identifier,
		cfg:        cfg,
		logger:     logger.With(zap.String("component", "renamer")),
	}
}

// DeriveName picks the canonical filename for a matched entry: the entry's
// literal name, else its description with the original extension. An empty
// return is a hard failure for that file, never a silent skip.
func DeriveName(entry *catalog.Entry, originalPath string) string {
	if entry == nil {
		return ""
	}
	if entry.Name != "" {
		return entry.Name
	}
	if entry.Description != "" {
		// The description is used verbatim; tag order inside it is the
		// catalog author's call, not ours.
		return entry.Description + filepath.Ext(originalPath)
	}
	return ""
}

// Rename identifies the file and moves it to its canonical name within the
// same directory. Failures come back as error results, not faults.
func (r *Renamer) Rename(path string, dryRun bool) Result {
	result := Result{FilePath: path, DryRun: dryRun, Status: StatusSuccess}

	identification := r.identifier.Identify(path)
	result.Identification = identification
	if !identification.Identified {
		result.Status = StatusError
		result.Message = fmt.Sprintf("could not identify: %s", path)
		return result
	}

	newName := DeriveName(identification.Entry, path)
	if newName == "" {
		result.Status = StatusError
		result.Message = fmt.Sprintf("no canonical name derivable for: %s", path)
		return result
	}
	result.NewName = newName

	currentName := filepath.Base(path)
	if currentName == newName {
		result.NameMatches = true
		result.Message = "already has the correct name"
		return result
	}

	newPath := filepath.Join(filepath.Dir(path), newName)
	result.NewPath = newPath

	if dryRun {
		// Renamed reports the intended outcome; nothing is touched.
		result.Renamed = true
		result.Message = fmt.Sprintf("would rename to %s", newName)
		r.logger.Info("dry-run rename", zap.String("from", path), zap.String("to", newPath))
		return result
	}

	if _, err := os.Stat(newPath); err == nil {
		result.Status = StatusError
		result.Message = fmt.Sprintf("destination already exists: %s", newPath)
		r.logger.Warn("rename collision", zap.String("from", path), zap.String("to", newPath))
		return result
	}

	if err := os.MkdirAll(filepath.Dir(newPath), 0o755); err != nil {
		result.Status = StatusError
		result.Message = fmt.Sprintf("prepare destination: %v", err)
		return result
	}
	if err := os.Rename(path, newPath); err != nil {
		result.Status = StatusError
		result.Message = fmt.Sprintf("rename rejected: %v", err)
		r.logger.Warn("rename failed", zap.String("from", path), zap.String("to", newPath), zap.Error(err))
		return result
	}

	result.Renamed = true
	result.Message = fmt.Sprintf("renamed to %s", newName)
	r.logger.Info("renamed", zap.String("from", path), zap.String("to", newPath))
	return result
}

// RenameDirectory identifies every recognized ROM file under dir and renames
// each one. Real runs hold a lock file in dir so concurrent romdex processes
// serialize; renames themselves run sequentially to keep the never-clobber
// check race-free within the process.
func (r *Renamer) RenameDirectory(ctx context.Context, dir string, recursive, dryRun bool) ([]Result, error) {
	if !dryRun {
		lock := flock.New(filepath.Join(dir, LockFileName))
		locked, err := lock.TryLock()
		if err != nil {
			return nil, services.Wrap(services.ErrIO, "rename", "acquire lock", dir, err)
		}
		if !locked {
			return nil, services.Wrap(services.ErrCollision, "rename", "acquire lock", fmt.Sprintf("another rename is already running in %s", dir), nil)
		}
		defer func() {
			_ = lock.Unlock()
		}()
	}

	identifications, err := r.identifier.IdentifyDirectory(ctx, dir, recursive)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(identifications))
	for _, identification := range identifications {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		results = append(results, r.Rename(identification.FilePath, dryRun))
	}
	return results, nil
}

// BuildReport computes aggregate counts over a rename batch.
func BuildReport(results []Result) Report {
	report := Report{Total: len(results), Results: results}
	for _, result := range results {
		if result.Identification.Identified {
			report.Identified++
		}
		if result.Renamed {
			report.Renamed++
		}
		if result.NameMatches {
			report.AlreadyCorrect++
		}
	}
	if report.Total > 0 {
		report.IdentificationRate = float64(report.Identified) / float64(report.Total)
	}
	return report
}
