package fileutil_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"romdex/internal/fileutil"
)

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")
	payload := []byte("copy me")
	if err := os.WriteFile(src, payload, 0o644); err != nil {
		t.Fatalf("write src: %v", err)
	}

	if err := fileutil.CopyFile(src, dst); err != nil {
		t.Fatalf("CopyFile: %v", err)
	}
	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read dst: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("dst content = %q", got)
	}
}

func TestCopyFilePreserving(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.nes")
	dst := filepath.Join(dir, "nested", "dst.nes")
	if err := os.WriteFile(src, []byte("rom"), 0o600); err != nil {
		t.Fatalf("write src: %v", err)
	}
	stamp := time.Date(2020, 6, 1, 12, 0, 0, 0, time.UTC)
	if err := os.Chtimes(src, stamp, stamp); err != nil {
		t.Fatalf("chtimes src: %v", err)
	}

	if err := fileutil.CopyFilePreserving(src, dst); err != nil {
		t.Fatalf("CopyFilePreserving: %v", err)
	}

	info, err := os.Stat(dst)
	if err != nil {
		t.Fatalf("stat dst: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("mode = %v", info.Mode().Perm())
	}
	if !info.ModTime().Equal(stamp) {
		t.Fatalf("mtime = %v", info.ModTime())
	}
}

func TestCopyFileMissingSource(t *testing.T) {
	dir := t.TempDir()
	if err := fileutil.CopyFile(filepath.Join(dir, "nope"), filepath.Join(dir, "dst")); err == nil {
		t.Fatal("expected error for missing source")
	}
}
