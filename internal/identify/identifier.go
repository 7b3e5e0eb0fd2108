package identify

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"romdex/internal/catalog"
	"romdex/internal/checksum"
	"romdex/internal/config"
	"romdex/internal/services"
)

// Identifier resolves files against a catalog store.
type Identifier struct {
	store  *catalog.Store
	cfg    *config.Config
	logger *zap.Logger
}

// NewIdentifier constructs an identifier bound to the given store.
func NewIdentifier(cfg *config.Config, store *catalog.Store, logger *zap.Logger) *Identifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Identifier{
		store:  store,
		cfg:    cfg,
		logger: logger.With(zap.String("component", "identifier")),
	}
}

// Identify resolves a single file. Validation and read failures come back as
// an error-status result; a file the catalogs do not cover is a success with
// Identified=false.
func (i *Identifier) Identify(path string) Result {
	result := Result{
		FilePath: path,
		FileName: filepath.Base(path),
		Status:   StatusSuccess,
	}

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		result.Status = StatusError
		result.Message = fmt.Sprintf("not a file: %s", path)
		return result
	}
	if !IsROMFile(path) {
		result.Status = StatusError
		result.Message = fmt.Sprintf("not a ROM file: %s", path)
		return result
	}

	fp, err := checksum.Compute(path)
	if err != nil {
		i.logger.Warn("fingerprint computation failed", zap.String("path", path), zap.Error(err))
		result.Status = StatusError
		result.Message = fmt.Sprintf("unreadable file: %v", err)
		return result
	}
	result.Fingerprint = fp

	entry, matchType, confidence, ok := i.store.FindByFingerprint(fp)
	if !ok {
		i.logger.Debug("no catalog coverage", zap.String("path", path))
		return result
	}

	result.Identified = true
	result.Entry = &entry
	result.MatchType = matchType
	result.MatchConfidence = confidence
	result.CorrectName = entry.Name
	// Byte-exact comparison: differing case or spacing counts as a mismatch.
	result.NameMatches = result.FileName == entry.Name

	i.logger.Debug("file identified",
		zap.String("path", path),
		zap.String("catalog", entry.Catalog),
		zap.String("match_type", string(matchType)),
		zap.Float64("confidence", confidence),
	)
	return result
}

// IdentifyDirectory identifies every recognized ROM file under dir. Files are
// processed across a bounded worker pool; results come back in discovery
// order, one per candidate file, regardless of individual failures.
func (i *Identifier) IdentifyDirectory(ctx context.Context, dir string, recursive bool) ([]Result, error) {
	paths, err := collectROMFiles(dir, recursive)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, nil
	}

	workers := 1
	if i.cfg != nil {
		workers = i.cfg.ResolvedWorkers()
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	results := make([]Result, len(paths))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = i.Identify(paths[idx])
			}
		}()
	}

	for idx := range paths {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return results[:idx], ctx.Err()
		case jobs <- idx:
		}
	}
	close(jobs)
	wg.Wait()

	return results, nil
}

// FindByName exposes interactive name lookup. It is never consulted during
// identification.
func (i *Identifier) FindByName(query string) []catalog.NameMatch {
	return i.store.FindByName(query)
}

func collectROMFiles(dir string, recursive bool) ([]string, error) {
	root, err := os.Stat(dir)
	if err != nil {
		marker := services.ErrIO
		if os.IsNotExist(err) {
			marker = services.ErrNotFound
		}
		return nil, services.Wrap(marker, "identify", "scan directory", dir, err)
	}
	if !root.IsDir() {
		return nil, services.Wrap(services.ErrValidation, "identify", "scan directory", fmt.Sprintf("%s is not a directory", dir), nil)
	}

	var paths []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees are skipped, not fatal.
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if !recursive && path != dir {
				return fs.SkipDir
			}
			return nil
		}
		if IsROMFile(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, services.Wrap(services.ErrIO, "identify", "scan directory", dir, err)
	}
	return paths, nil
}
