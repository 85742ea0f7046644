package published

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadIndexesConformingFolders(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"2023-01-02-first", "2024-06-07-second"} {
		if err := os.Mkdir(filepath.Join(dir, name), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}
	// Non-conforming entries are skipped.
	if err := os.Mkdir(filepath.Join(dir, "drafts"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "2025-01-01-file"), nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	snapshot, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if snapshot.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", snapshot.Len())
	}
	if !snapshot.Has("first") || !snapshot.Has("second") {
		t.Fatalf("expected slugs indexed")
	}
	folder, ok := snapshot.Lookup("first")
	if !ok || folder != "2023-01-02-first" {
		t.Fatalf("unexpected lookup result %q %v", folder, ok)
	}
}

func TestLoadMissingDirectory(t *testing.T) {
	snapshot, err := Load(filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if snapshot.Len() != 0 {
		t.Fatalf("expected empty snapshot, got %d entries", snapshot.Len())
	}
	if snapshot.Has("anything") {
		t.Fatalf("expected no slugs")
	}
}
