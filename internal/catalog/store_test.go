package catalog_test

import (
	"path/filepath"
	"testing"

	"romdex/internal/catalog"
	"romdex/internal/checksum"
	"romdex/internal/logging"
	"romdex/internal/testsupport"
)

const (
	md5One  = "11111111111111111111111111111111"
	sha1One = "1111111111111111111111111111111111111111"
	crcOne  = "11111111"
)

func newStoreWithSource(t *testing.T, header string, games ...testsupport.DATGame) (*catalog.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.dat")
	testsupport.WriteDAT(t, path, header, games...)
	store := catalog.NewStore(logging.NewNop())
	if !store.LoadSource(path) {
		t.Fatalf("LoadSource(%s) failed", path)
	}
	return store, path
}

func gameOne() testsupport.DATGame {
	return testsupport.DATGame{
		Name:        "Game One",
		Description: "Game One (USA)",
		Roms: []testsupport.DATRom{{
			Name: "game1.nes",
			Size: "32768",
			CRC:  crcOne,
			MD5:  md5One,
			SHA1: sha1One,
		}},
	}
}

func TestLoadSourceIdempotent(t *testing.T) {
	store, path := newStoreWithSource(t, "Test", gameOne())

	before := store.Stats()
	if !store.LoadSource(path) {
		t.Fatal("second load should succeed")
	}
	after := store.Stats()
	if before.TotalEntries != after.TotalEntries {
		t.Fatalf("second load changed entry count: %d -> %d", before.TotalEntries, after.TotalEntries)
	}
	if after.PerCatalog["Test"].UniqueMD5 != 1 {
		t.Fatalf("unexpected md5 count: %+v", after.PerCatalog["Test"])
	}
}

func TestLoadSourceMalformedLeavesCatalogsIntact(t *testing.T) {
	store, _ := newStoreWithSource(t, "Test", gameOne())

	brokenPath := filepath.Join(t.TempDir(), "broken.dat")
	testsupport.WriteFile(t, brokenPath, []byte("<datafile><game>"))
	if store.LoadSource(brokenPath) {
		t.Fatal("expected malformed load to fail")
	}

	stats := store.Stats()
	if stats.Catalogs != 1 || stats.TotalEntries != 1 {
		t.Fatalf("existing catalog corrupted: %+v", stats)
	}
}

func TestLoadSourceMissingFile(t *testing.T) {
	store := catalog.NewStore(logging.NewNop())
	if store.LoadSource(filepath.Join(t.TempDir(), "missing.dat")) {
		t.Fatal("expected missing source to fail")
	}
}

func TestLoadDirectorySkipsUnrecognized(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteDAT(t, filepath.Join(dir, "one.dat"), "One", gameOne())
	testsupport.WriteDAT(t, filepath.Join(dir, "two.xml"), "Two", gameOne())
	testsupport.WriteFile(t, filepath.Join(dir, "notes.txt"), []byte("not a dat"))
	testsupport.WriteFile(t, filepath.Join(dir, "broken.dat"), []byte("<datafile>"))

	store := catalog.NewStore(logging.NewNop())
	if got := store.LoadDirectory(dir); got != 2 {
		t.Fatalf("LoadDirectory = %d, want 2", got)
	}
}

func TestFindByFingerprintPriority(t *testing.T) {
	// The MD5 of one entry collides with nothing; a second entry is only
	// reachable through CRC32. A fingerprint carrying both must resolve via
	// MD5 with full confidence.
	store, _ := newStoreWithSource(t, "Test",
		gameOne(),
		testsupport.DATGame{
			Name: "Game Two",
			Roms: []testsupport.DATRom{{Name: "game2.nes", CRC: "22222222"}},
		},
	)

	fp := checksum.Fingerprint{MD5: md5One, CRC32: "22222222", Size: 1}
	entry, matchType, confidence, ok := store.FindByFingerprint(fp)
	if !ok {
		t.Fatal("expected a match")
	}
	if matchType != catalog.MatchMD5 {
		t.Fatalf("match type = %q", matchType)
	}
	if confidence != 1.0 {
		t.Fatalf("confidence = %v", confidence)
	}
	if entry.Name != "game1.nes" {
		t.Fatalf("entry = %q", entry.Name)
	}
}

func TestFindByFingerprintFallbackOrder(t *testing.T) {
	store, _ := newStoreWithSource(t, "Test", gameOne())

	sha1Only := checksum.Fingerprint{MD5: "ffffffffffffffffffffffffffffffff", SHA1: sha1One, Size: 1}
	_, matchType, confidence, ok := store.FindByFingerprint(sha1Only)
	if !ok || matchType != catalog.MatchSHA1 || confidence != 0.99 {
		t.Fatalf("sha1 fallback: ok=%v type=%q conf=%v", ok, matchType, confidence)
	}

	crcOnly := checksum.Fingerprint{CRC32: crcOne, Size: 1}
	_, matchType, confidence, ok = store.FindByFingerprint(crcOnly)
	if !ok || matchType != catalog.MatchCRC32 || confidence != 0.95 {
		t.Fatalf("crc fallback: ok=%v type=%q conf=%v", ok, matchType, confidence)
	}
}

func TestFindByFingerprintZeroNeverMatches(t *testing.T) {
	store, _ := newStoreWithSource(t, "Test", gameOne())

	if _, _, _, ok := store.FindByFingerprint(checksum.Fingerprint{}); ok {
		t.Fatal("zero fingerprint must not match")
	}
}

func TestFindByFingerprintNoCoverage(t *testing.T) {
	store, _ := newStoreWithSource(t, "Test", gameOne())

	fp := checksum.Fingerprint{MD5: "00000000000000000000000000000000", CRC32: "00000000", Size: 9}
	if _, _, _, ok := store.FindByFingerprint(fp); ok {
		t.Fatal("expected no match")
	}
}

func TestFindByFingerprintTieBreaksByLoadOrder(t *testing.T) {
	dir := t.TempDir()
	shared := testsupport.DATGame{
		Name: "Shared",
		Roms: []testsupport.DATRom{{Name: "first.nes", MD5: md5One}},
	}
	testsupport.WriteDAT(t, filepath.Join(dir, "a.dat"), "First Catalog", shared)
	shared.Roms[0].Name = "second.nes"
	testsupport.WriteDAT(t, filepath.Join(dir, "b.dat"), "Second Catalog", shared)

	store := catalog.NewStore(logging.NewNop())
	if !store.LoadSource(filepath.Join(dir, "a.dat")) || !store.LoadSource(filepath.Join(dir, "b.dat")) {
		t.Fatal("load fixtures")
	}

	entry, _, _, ok := store.FindByFingerprint(checksum.Fingerprint{MD5: md5One, Size: 1})
	if !ok {
		t.Fatal("expected match")
	}
	if entry.Catalog != "First Catalog" || entry.Name != "first.nes" {
		t.Fatalf("tie should resolve to first loaded catalog, got %q/%q", entry.Catalog, entry.Name)
	}
}

func TestFindByNameSubstring(t *testing.T) {
	store, _ := newStoreWithSource(t, "Test",
		testsupport.DATGame{Name: "One", Roms: []testsupport.DATRom{{Name: "game1.nes"}}},
		testsupport.DATGame{Name: "Two", Roms: []testsupport.DATRom{{Name: "game2.nes"}}},
		testsupport.DATGame{Name: "Other", Roms: []testsupport.DATRom{{Name: "unrelated.bin"}}},
	)

	matches := store.FindByName("game")
	if len(matches) != 2 {
		t.Fatalf("matches = %d", len(matches))
	}
	for _, match := range matches {
		if match.Confidence >= catalog.MaxNameConfidence {
			t.Fatalf("name confidence %v must stay below %v", match.Confidence, catalog.MaxNameConfidence)
		}
	}
}

func TestFindByNameCaseInsensitive(t *testing.T) {
	store, _ := newStoreWithSource(t, "Test",
		testsupport.DATGame{Name: "One", Roms: []testsupport.DATRom{{Name: "Super Game (USA).sfc"}}},
	)

	if matches := store.FindByName("super game"); len(matches) != 1 {
		t.Fatalf("case-insensitive search failed: %d matches", len(matches))
	}
}

func TestFindByNameConfidenceCapped(t *testing.T) {
	store, _ := newStoreWithSource(t, "Test",
		testsupport.DATGame{Name: "One", Roms: []testsupport.DATRom{{Name: "abc"}}},
	)

	matches := store.FindByName("abc")
	if len(matches) != 1 {
		t.Fatalf("matches = %d", len(matches))
	}
	// Full-length query over an identical candidate would score 1.0; the cap
	// keeps it at the name ceiling.
	if matches[0].Confidence != catalog.MaxNameConfidence {
		t.Fatalf("confidence = %v", matches[0].Confidence)
	}
}

func TestFindByNameSortedByConfidence(t *testing.T) {
	store, _ := newStoreWithSource(t, "Test",
		testsupport.DATGame{Name: "Long", Roms: []testsupport.DATRom{{Name: "game with a much longer name.nes"}}},
		testsupport.DATGame{Name: "Short", Roms: []testsupport.DATRom{{Name: "game.nes"}}},
	)

	matches := store.FindByName("game")
	if len(matches) != 2 {
		t.Fatalf("matches = %d", len(matches))
	}
	if matches[0].Entry.Name != "game.nes" {
		t.Fatalf("expected shorter candidate first, got %q", matches[0].Entry.Name)
	}
	if matches[0].Confidence < matches[1].Confidence {
		t.Fatal("matches not sorted by descending confidence")
	}
}

func TestStatsAggregation(t *testing.T) {
	store, _ := newStoreWithSource(t, "Test",
		gameOne(),
		testsupport.DATGame{Name: "NoHash", Roms: []testsupport.DATRom{{Name: "bare.nes"}}},
	)

	stats := store.Stats()
	if stats.Catalogs != 1 {
		t.Fatalf("catalogs = %d", stats.Catalogs)
	}
	if stats.TotalEntries != 2 {
		t.Fatalf("total entries = %d", stats.TotalEntries)
	}
	per := stats.PerCatalog["Test"]
	if per.Entries != 2 || per.UniqueMD5 != 1 || per.UniqueCRC32 != 1 || per.UniqueSHA1 != 1 {
		t.Fatalf("per-catalog stats: %+v", per)
	}
}
