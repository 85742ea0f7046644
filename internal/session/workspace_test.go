package session

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWorkspaceWriteAndResolve(t *testing.T) {
	ws := NewWorkspace(t.TempDir())

	rel, err := ws.WriteNote("sess-1", "my-note", []byte("content"))
	if err != nil {
		t.Fatalf("WriteNote: %v", err)
	}
	if rel != filepath.Join("notes", "my-note.md") {
		t.Fatalf("unexpected relative path %q", rel)
	}

	abs, err := ws.Resolve("sess-1", rel)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "content" {
		t.Fatalf("unexpected content %q", data)
	}
}

func TestWorkspaceRejectsEscapingPaths(t *testing.T) {
	ws := NewWorkspace(t.TempDir())
	if _, err := ws.Resolve("sess-1", "../outside"); err == nil {
		t.Fatalf("expected path escape to be rejected")
	}
	if _, err := ws.Resolve("sess-1", "../../etc/passwd"); err == nil {
		t.Fatalf("expected path escape to be rejected")
	}
}

func TestWorkspaceRemove(t *testing.T) {
	root := t.TempDir()
	ws := NewWorkspace(root)

	if _, err := ws.WriteArchive("sess-1", "abc-file.html", []byte("x")); err != nil {
		t.Fatalf("WriteArchive: %v", err)
	}
	if !ws.Exists("sess-1") {
		t.Fatalf("expected session dir to exist")
	}
	if err := ws.Remove("sess-1"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if ws.Exists("sess-1") {
		t.Fatalf("expected session dir removed")
	}
	// Removing a missing session is not an error.
	if err := ws.Remove("sess-1"); err != nil {
		t.Fatalf("Remove twice: %v", err)
	}
}

func TestWorkspaceArchiveNaming(t *testing.T) {
	ws := NewWorkspace(t.TempDir())
	rel, err := ws.WriteArchive("s", "0123456789ab-page.html", []byte("x"))
	if err != nil {
		t.Fatalf("WriteArchive: %v", err)
	}
	if !strings.HasPrefix(rel, "archives"+string(filepath.Separator)) {
		t.Fatalf("unexpected path %q", rel)
	}
}
