package rename_test

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"romdex/internal/catalog"
	"romdex/internal/identify"
	"romdex/internal/logging"
	"romdex/internal/rename"
	"romdex/internal/testsupport"
)

func md5Hex(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}

func newRenamer(t *testing.T, games ...testsupport.DATGame) *rename.Renamer {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	store := catalog.NewStore(logging.NewNop())
	if len(games) > 0 {
		path := filepath.Join(cfg.Paths.CatalogDir, "fixture.dat")
		testsupport.WriteDAT(t, path, "Fixture", games...)
		if !store.LoadSource(path) {
			t.Fatal("load fixture catalog")
		}
	}
	identifier := identify.NewIdentifier(cfg, store, logging.NewNop())
	return rename.NewRenamer(cfg, identifier, logging.NewNop())
}

func catalogFor(payload []byte, romName string) testsupport.DATGame {
	return testsupport.DATGame{
		Name:        "Game",
		Description: "Game (USA)",
		Roms:        []testsupport.DATRom{{Name: romName, MD5: md5Hex(payload)}},
	}
}

func TestRenameAppliesCanonicalName(t *testing.T) {
	payload := []byte("rename payload")
	renamer := newRenamer(t, catalogFor(payload, "Game (USA).nes"))

	dir := t.TempDir()
	path := filepath.Join(dir, "wrong name.nes")
	testsupport.WriteFile(t, path, payload)

	result := renamer.Rename(path, false)
	if result.Status != rename.StatusSuccess || !result.Renamed {
		t.Fatalf("result = %+v", result)
	}
	if result.NewName != "Game (USA).nes" {
		t.Fatalf("new name = %q", result.NewName)
	}
	if _, err := os.Stat(filepath.Join(dir, "Game (USA).nes")); err != nil {
		t.Fatalf("renamed file missing: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("original still present: %v", err)
	}
}

func TestRenameUnidentified(t *testing.T) {
	renamer := newRenamer(t)

	path := filepath.Join(t.TempDir(), "unknown.nes")
	testsupport.WriteFile(t, path, []byte("nobody knows me"))

	result := renamer.Rename(path, false)
	if result.Status != rename.StatusError || result.Renamed {
		t.Fatalf("result = %+v", result)
	}
}

func TestRenameAlreadyCorrect(t *testing.T) {
	payload := []byte("already correct")
	renamer := newRenamer(t, catalogFor(payload, "Game (USA).nes"))

	path := filepath.Join(t.TempDir(), "Game (USA).nes")
	testsupport.WriteFile(t, path, payload)

	result := renamer.Rename(path, false)
	if result.Status != rename.StatusSuccess {
		t.Fatalf("status = %q (%s)", result.Status, result.Message)
	}
	if result.Renamed {
		t.Fatal("no rename should happen")
	}
	if !result.NameMatches {
		t.Fatal("expected name_matches")
	}
}

func TestRenameNeverClobbers(t *testing.T) {
	payload := []byte("collision source")
	renamer := newRenamer(t, catalogFor(payload, "Game (USA).nes"))

	dir := t.TempDir()
	src := filepath.Join(dir, "duplicate.nes")
	occupied := filepath.Join(dir, "Game (USA).nes")
	testsupport.WriteFile(t, src, payload)
	testsupport.WriteFile(t, occupied, []byte("different content already here"))

	result := renamer.Rename(src, false)
	if result.Status != rename.StatusError || result.Renamed {
		t.Fatalf("result = %+v", result)
	}

	// Both files untouched.
	if got := testsupport.ReadFile(t, src); !bytes.Equal(got, payload) {
		t.Fatal("source mutated")
	}
	if got := testsupport.ReadFile(t, occupied); !bytes.Equal(got, []byte("different content already here")) {
		t.Fatal("destination clobbered")
	}
}

func TestRenameDryRunTouchesNothing(t *testing.T) {
	payload := []byte("dry run payload")
	renamer := newRenamer(t, catalogFor(payload, "Game (USA).nes"))

	dir := t.TempDir()
	path := filepath.Join(dir, "wrong.nes")
	testsupport.WriteFile(t, path, payload)

	result := renamer.Rename(path, true)
	if result.Status != rename.StatusSuccess {
		t.Fatalf("status = %q", result.Status)
	}
	// Renamed=true signals "would be renamed" in dry-run mode.
	if !result.Renamed || !result.DryRun {
		t.Fatalf("result = %+v", result)
	}
	if got := testsupport.ReadFile(t, path); !bytes.Equal(got, payload) {
		t.Fatal("dry run mutated the file")
	}
	if _, err := os.Stat(filepath.Join(dir, "Game (USA).nes")); !os.IsNotExist(err) {
		t.Fatal("dry run created the destination")
	}
}

func TestDeriveNameFallsBackToDescription(t *testing.T) {
	entry := &catalog.Entry{Description: "Game (USA)"}
	if got := rename.DeriveName(entry, "/roms/old.sfc"); got != "Game (USA).sfc" {
		t.Fatalf("derived = %q", got)
	}
	// multi-tag descriptions keep their tag order byte for byte
	entry = &catalog.Entry{Description: "Game, The (USA) (Rev 1)"}
	if got := rename.DeriveName(entry, "/roms/old.sfc"); got != "Game, The (USA) (Rev 1).sfc" {
		t.Fatalf("derived = %q", got)
	}
	if got := rename.DeriveName(&catalog.Entry{}, "/roms/old.sfc"); got != "" {
		t.Fatalf("expected empty derivation, got %q", got)
	}
	if got := rename.DeriveName(nil, "x"); got != "" {
		t.Fatalf("nil entry derived %q", got)
	}
}

func TestRenameDirectory(t *testing.T) {
	payloadA := []byte("directory payload a")
	payloadB := []byte("directory payload b")
	renamer := newRenamer(t,
		catalogFor(payloadA, "Game A.nes"),
		testsupport.DATGame{
			Name: "B",
			Roms: []testsupport.DATRom{{Name: "Game B.nes", MD5: md5Hex(payloadB)}},
		},
	)

	dir := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(dir, "a.nes"), payloadA)
	testsupport.WriteFile(t, filepath.Join(dir, "Game B.nes"), payloadB)
	testsupport.WriteFile(t, filepath.Join(dir, "stranger.gb"), []byte("unknown"))

	results, err := renamer.RenameDirectory(context.Background(), dir, true, false)
	if err != nil {
		t.Fatalf("RenameDirectory: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("results = %d", len(results))
	}

	report := rename.BuildReport(results)
	if report.Renamed != 1 || report.AlreadyCorrect != 1 || report.Identified != 2 {
		t.Fatalf("report = %+v", report)
	}
	if _, err := os.Stat(filepath.Join(dir, "Game A.nes")); err != nil {
		t.Fatalf("expected renamed file: %v", err)
	}
}

func TestBackupMirrorsTree(t *testing.T) {
	renamer := newRenamer(t)

	dir := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(dir, "top.nes"), []byte("top"))
	testsupport.WriteFile(t, filepath.Join(dir, "sub", "deep.gb"), []byte("deep"))
	testsupport.WriteFile(t, filepath.Join(dir, "skip.txt"), []byte("not a rom"))

	backupDir := filepath.Join(t.TempDir(), "backup")
	if !renamer.Backup(dir, backupDir) {
		t.Fatal("Backup returned false")
	}

	if got := testsupport.ReadFile(t, filepath.Join(backupDir, "top.nes")); !bytes.Equal(got, []byte("top")) {
		t.Fatal("top-level copy wrong")
	}
	if got := testsupport.ReadFile(t, filepath.Join(backupDir, "sub", "deep.gb")); !bytes.Equal(got, []byte("deep")) {
		t.Fatal("nested copy wrong")
	}
	if _, err := os.Stat(filepath.Join(backupDir, "skip.txt")); !os.IsNotExist(err) {
		t.Fatal("non-ROM file copied")
	}
}

func TestBackupMissingDirectory(t *testing.T) {
	renamer := newRenamer(t)
	if renamer.Backup(filepath.Join(t.TempDir(), "ghost"), "") {
		t.Fatal("expected failure for missing directory")
	}
}

func TestDefaultBackupDir(t *testing.T) {
	if got := rename.DefaultBackupDir("/roms/library"); got != "/roms/library_backup" {
		t.Fatalf("DefaultBackupDir = %q", got)
	}
}
