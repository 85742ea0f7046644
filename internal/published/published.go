// Package published reads the permanent store's directory listing and
// builds an index from slug to folder name. The snapshot is read-only
// external state: it is rebuilt fresh for every session operation because
// documents can be published through the direct CRUD path between calls.
package published

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-noteimport/internal/permalink"
)

// Snapshot indexes the published documents present at load time. Folder
// names that do not follow the `YYYY-MM-DD-slug` convention are ignored.
type Snapshot struct {
	folders map[string]string
}

// Load reads dir once and indexes every conforming folder name. A missing
// directory yields an empty snapshot, not an error.
func Load(dir string) (*Snapshot, error) {
	snapshot := &Snapshot{folders: map[string]string{}}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return snapshot, nil
		}
		return nil, fmt.Errorf("published: read store %s: %w", dir, err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, slug, ok := permalink.ParseFolderName(entry.Name()); ok {
			snapshot.folders[slug] = entry.Name()
		}
	}
	return snapshot, nil
}

// Has reports whether a document with the given slug is already published.
func (s *Snapshot) Has(slug string) bool {
	_, ok := s.folders[slug]
	return ok
}

// Lookup returns the folder name for a published slug.
func (s *Snapshot) Lookup(slug string) (string, bool) {
	folder, ok := s.folders[slug]
	return folder, ok
}

// Len returns the number of indexed documents.
func (s *Snapshot) Len() int {
	return len(s.folders)
}
