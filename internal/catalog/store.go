package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/text/cases"

	"romdex/internal/checksum"
	"romdex/internal/services"
)

// Store owns the loaded catalogs. It is created explicitly and passed to the
// engines that need it; loads take the write lock while lookups share the
// read lock, so identification may run concurrently once loading is done.
type Store struct {
	mu     sync.RWMutex
	logger *zap.Logger

	catalogs map[string]*Catalog
	order    []string
	loaded   map[string]struct{}
}

// NewStore constructs an empty catalog store.
func NewStore(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		logger:   logger.With(zap.String("component", "catalog")),
		catalogs: make(map[string]*Catalog),
		loaded:   make(map[string]struct{}),
	}
}

// LoadSource parses one DAT source and commits it. Loading a source that was
// already loaded is a no-op success. Parse and read failures are logged and
// reported as false without touching catalogs loaded earlier.
func (s *Store) LoadSource(path string) bool {
	if err := s.loadSource(path); err != nil {
		s.logger.Error("load catalog source failed", zap.String("source", path), zap.Error(err))
		return false
	}
	return true
}

func (s *Store) loadSource(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return services.Wrap(services.ErrIO, "catalog", "load source", "resolve path", err)
	}

	s.mu.RLock()
	_, already := s.loaded[abs]
	s.mu.RUnlock()
	if already {
		s.logger.Debug("catalog source already loaded", zap.String("source", abs))
		return nil
	}

	name, entries, err := parseSource(abs)
	if err != nil {
		marker := services.ErrParse
		if os.IsNotExist(err) {
			marker = services.ErrIO
		}
		return services.Wrap(marker, "catalog", "load source", abs, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, already := s.loaded[abs]; already {
		return nil
	}
	cat, ok := s.catalogs[name]
	if !ok {
		cat = newCatalog(name)
		s.catalogs[name] = cat
		s.order = append(s.order, name)
	}
	for _, entry := range entries {
		cat.insert(entry)
	}
	s.loaded[abs] = struct{}{}

	s.logger.Info("catalog source loaded",
		zap.String("source", abs),
		zap.String("catalog", name),
		zap.Int("entries", len(entries)),
	)
	return nil
}

// LoadDirectory loads every recognized source file directly inside dir and
// returns the number of successful loads. Failed sources are logged and
// skipped; the walk never aborts.
func (s *Store) LoadDirectory(dir string) int {
	items, err := os.ReadDir(dir)
	if err != nil {
		s.logger.Error("read catalog directory failed", zap.String("dir", dir), zap.Error(err))
		return 0
	}

	count := 0
	for _, item := range items {
		if item.IsDir() || !recognizedSource(item.Name()) {
			continue
		}
		if s.LoadSource(filepath.Join(dir, item.Name())) {
			count++
		}
	}
	return count
}

// FindByFingerprint resolves a fingerprint against every loaded catalog in a
// fixed priority order: MD5, then SHA-1, then CRC32. Catalogs are scanned in
// load order within each hash type, so ties across catalogs resolve to the
// catalog loaded first. An empty hash field is never used as a lookup key.
func (s *Store) FindByFingerprint(fp checksum.Fingerprint) (Entry, MatchType, float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lookups := []struct {
		key        string
		matchType  MatchType
		confidence float64
		index      func(*Catalog) map[string]*Entry
	}{
		{strings.ToLower(fp.MD5), MatchMD5, ConfidenceMD5, func(c *Catalog) map[string]*Entry { return c.md5 }},
		{strings.ToLower(fp.SHA1), MatchSHA1, ConfidenceSHA1, func(c *Catalog) map[string]*Entry { return c.sha1 }},
		{strings.ToLower(fp.CRC32), MatchCRC32, ConfidenceCRC32, func(c *Catalog) map[string]*Entry { return c.crc32 }},
	}

	for _, lookup := range lookups {
		if lookup.key == "" {
			continue
		}
		for _, name := range s.order {
			if entry, ok := lookup.index(s.catalogs[name])[lookup.key]; ok {
				return *entry, lookup.matchType, lookup.confidence, true
			}
		}
	}
	return Entry{}, "", 0, false
}

// NameMatch is one hit from a name search.
type NameMatch struct {
	Entry      Entry   `json:"entry"`
	Confidence float64 `json:"confidence"`
}

// FindByName searches every catalog's name index for entries whose name
// contains the query, case-insensitively. Confidence scales with how much of
// the candidate name the query covers and never reaches the hash range.
// Results are sorted by descending confidence; equal scores keep catalog load
// order, then entry order within a catalog.
func (s *Store) FindByName(query string) []NameMatch {
	folder := cases.Fold()
	folded := folder.String(query)
	if folded == "" {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []NameMatch
	for _, name := range s.order {
		for _, entry := range s.catalogs[name].order {
			candidate := folder.String(entry.Name)
			if !strings.Contains(candidate, folded) {
				continue
			}
			confidence := float64(len(folded)) / float64(max(len(folded), len(candidate)))
			if confidence > MaxNameConfidence {
				confidence = MaxNameConfidence
			}
			matches = append(matches, NameMatch{Entry: *entry, Confidence: confidence})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Confidence > matches[j].Confidence
	})
	return matches
}

// Catalogs returns the loaded catalog names in load order.
func (s *Store) Catalogs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Stats aggregates entry and unique-hash counts across the loaded catalogs.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{
		Catalogs:   len(s.catalogs),
		PerCatalog: make(map[string]CatalogStats, len(s.catalogs)),
	}
	for _, name := range s.order {
		cat := s.catalogs[name]
		stats.TotalEntries += cat.Len()
		stats.PerCatalog[name] = CatalogStats{
			Entries:     cat.Len(),
			UniqueMD5:   len(cat.md5),
			UniqueCRC32: len(cat.crc32),
			UniqueSHA1:  len(cat.sha1),
		}
	}
	return stats
}

// String renders a short human summary, used by debug logging.
func (s *Stats) String() string {
	return fmt.Sprintf("%d catalogs, %d entries", s.Catalogs, s.TotalEntries)
}
