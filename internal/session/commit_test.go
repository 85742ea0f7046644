package session

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCommitRequiresReadiness(t *testing.T) {
	env := newTestEnv(t)
	id := env.createSession(t)

	// No main document.
	env.addNote(t, id, "a.md", "---\ntitle: A\n---\n\nBody.\n", false)
	if _, err := env.svc.Commit(context.Background(), id); !IsPreconditionFailed(err) {
		t.Fatalf("expected precondition failure without main, got %v", err)
	}

	// Pending note.
	env.addNote(t, id, "a.md", "---\ntitle: A\n---\n\nSee [[B]].\n", true)
	if _, err := env.svc.Commit(context.Background(), id); !IsPreconditionFailed(err) {
		t.Fatalf("expected precondition failure with pending note, got %v", err)
	}

	// Unresolved archive.
	env.addNote(t, id, "b.md", "---\ntitle: B\n---\n\n[x](http://example.com/z)\n", false)
	if _, err := env.svc.Commit(context.Background(), id); !IsPreconditionFailed(err) {
		t.Fatalf("expected precondition failure with unresolved archive, got %v", err)
	}

	env.addArchive(t, id, "http://example.com/z", "z.html", []byte("snap"))
	if _, err := env.svc.Commit(context.Background(), id); err != nil {
		t.Fatalf("expected commit to succeed once ready, got %v", err)
	}
}

func TestCommitUnknownSession(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.svc.Commit(context.Background(), "missing"); !IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestCommitEndToEnd(t *testing.T) {
	env := newTestEnv(t)
	id := env.createSession(t)

	env.addNote(t, id, "a.md",
		"---\ntitle: A\n---\n\nSee [[B]] and [Example](http://example.com).\n", true)
	env.addNote(t, id, "b.md", "---\ntitle: B\n---\n\nBody of B.\n", false)
	summary := env.addArchive(t, id, "http://example.com", "example.html", []byte("<html>snapshot</html>"))
	if !summary.Ready {
		t.Fatalf("session should be ready before commit")
	}

	result, err := env.svc.Commit(context.Background(), id)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success")
	}
	if len(result.Folders) != 2 ||
		result.Folders[0] != "2024-05-01-a" ||
		result.Folders[1] != "2024-05-01-b" {
		t.Fatalf("unexpected folders %v", result.Folders)
	}

	// Document A: wiki link rewritten to B's permalink, external link
	// rewritten to the relocated archive copy.
	docA := readFile(t, filepath.Join(env.published, "2024-05-01-a", "index.md"))
	if !strings.Contains(docA, "[B](/2024/05/01/b/)") {
		t.Fatalf("wiki link not rewritten:\n%s", docA)
	}
	archiveName := ArchiveID("http://example.com") + "-example.html"
	if !strings.Contains(docA, "[Example](/2024-05-01-a/archives/"+archiveName+")") {
		t.Fatalf("external link not rewritten:\n%s", docA)
	}
	if !strings.Contains(docA, "title: A") || !strings.Contains(docA, "slug: a") {
		t.Fatalf("front matter missing fields:\n%s", docA)
	}
	if !strings.HasSuffix(docA, "\n") {
		t.Fatalf("document must end with newline")
	}

	// Relocated archive copy carries the original payload.
	copied := readFile(t, filepath.Join(env.published, "2024-05-01-a", "archives", archiveName))
	if copied != "<html>snapshot</html>" {
		t.Fatalf("unexpected archive content %q", copied)
	}

	// Document B has no archives directory of its own.
	if _, err := os.Stat(filepath.Join(env.published, "2024-05-01-b", "archives")); !os.IsNotExist(err) {
		t.Fatalf("expected no archives dir for b")
	}

	// Session storage is gone.
	if _, err := os.Stat(filepath.Join(env.workspace, id)); !os.IsNotExist(err) {
		t.Fatalf("expected session workspace removed")
	}
	if _, err := env.svc.GetSession(context.Background(), id); !IsNotFound(err) {
		t.Fatalf("expected session record removed, got %v", err)
	}
}

func TestCommitRewritesPublishedTargets(t *testing.T) {
	env := newTestEnv(t)
	mustMkdir(t, env.published, "2020-02-02-existing")
	id := env.createSession(t)

	env.addNote(t, id, "a.md", "---\ntitle: A\n---\n\nSee [[Existing|the old post]].\n", true)

	result, err := env.svc.Commit(context.Background(), id)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if len(result.Folders) != 1 {
		t.Fatalf("unexpected folders %v", result.Folders)
	}

	doc := readFile(t, filepath.Join(env.published, result.Folders[0], "index.md"))
	if !strings.Contains(doc, "[the old post](/2020/02/02/existing/)") {
		t.Fatalf("published target not resolved via folder name:\n%s", doc)
	}
}

func TestCommitSharedArchiveCopiedPerPost(t *testing.T) {
	env := newTestEnv(t)
	id := env.createSession(t)

	env.addNote(t, id, "a.md", "---\ntitle: A\n---\n\n[one](http://example.com/shared)\n", true)
	env.addNote(t, id, "b.md", "---\ntitle: B\n---\n\n[two](http://example.com/shared)\n", false)
	env.addArchive(t, id, "http://example.com/shared", "shared.html", []byte("payload"))

	if _, err := env.svc.Commit(context.Background(), id); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	name := ArchiveID("http://example.com/shared") + "-shared.html"
	for _, folder := range []string{"2024-05-01-a", "2024-05-01-b"} {
		path := filepath.Join(env.published, folder, "archives", name)
		if readFile(t, path) != "payload" {
			t.Fatalf("expected per-post archive copy at %s", path)
		}
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}
