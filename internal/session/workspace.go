package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	notesSubdir    = "notes"
	archivesSubdir = "archives"
)

// Workspace manages session working storage: one directory per session
// holding the raw uploaded notes and archive payloads until commit or
// abandonment. All paths handed out are relative to the session directory
// so stored state survives a workspace relocation.
type Workspace struct {
	root string
}

// NewWorkspace returns a workspace rooted at dir.
func NewWorkspace(dir string) *Workspace {
	return &Workspace{root: dir}
}

// Root returns the workspace root directory.
func (w *Workspace) Root() string {
	return w.root
}

// WriteNote stores the raw uploaded content for a note and returns its
// workspace-relative path.
func (w *Workspace) WriteNote(sessionID, slug string, content []byte) (string, error) {
	rel := filepath.Join(notesSubdir, slug+".md")
	if err := w.write(sessionID, rel, content); err != nil {
		return "", err
	}
	return rel, nil
}

// WriteArchive stores an archive payload under the given file name and
// returns its workspace-relative path.
func (w *Workspace) WriteArchive(sessionID, name string, data []byte) (string, error) {
	rel := filepath.Join(archivesSubdir, name)
	if err := w.write(sessionID, rel, data); err != nil {
		return "", err
	}
	return rel, nil
}

// Resolve maps a workspace-relative path back to an absolute one, refusing
// paths that escape the session directory.
func (w *Workspace) Resolve(sessionID, rel string) (string, error) {
	return w.safeJoin(sessionID, rel)
}

// Remove deletes a session's entire working-storage tree.
func (w *Workspace) Remove(sessionID string) error {
	dir := filepath.Join(w.root, sessionID)
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("workspace: remove %s: %w", sessionID, err)
	}
	return nil
}

// Exists reports whether the session directory is present on disk.
func (w *Workspace) Exists(sessionID string) bool {
	info, err := os.Stat(filepath.Join(w.root, sessionID))
	return err == nil && info.IsDir()
}

func (w *Workspace) write(sessionID, rel string, data []byte) error {
	path, err := w.safeJoin(sessionID, rel)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("workspace: prepare %s: %w", rel, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("workspace: write %s: %w", rel, err)
	}
	return nil
}

// safeJoin resolves rel against the session directory and validates the
// result stays within it.
func (w *Workspace) safeJoin(sessionID, rel string) (string, error) {
	base, err := filepath.Abs(filepath.Join(w.root, sessionID))
	if err != nil {
		return "", fmt.Errorf("workspace: resolve session dir: %w", err)
	}
	path, err := filepath.Abs(filepath.Join(base, filepath.FromSlash(rel)))
	if err != nil {
		return "", fmt.Errorf("workspace: resolve %s: %w", rel, err)
	}
	if path != base && !strings.HasPrefix(path, base+string(filepath.Separator)) {
		return "", fmt.Errorf("workspace: path %s escapes session storage", rel)
	}
	return path, nil
}
