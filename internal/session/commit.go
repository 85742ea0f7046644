package session

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"

	"github.com/goliatone/go-noteimport/internal/links"
	"github.com/goliatone/go-noteimport/internal/notes"
	"github.com/goliatone/go-noteimport/internal/permalink"
	"github.com/goliatone/go-noteimport/internal/published"
	"github.com/goliatone/go-noteimport/pkg/interfaces"
)

const documentFilename = "index.md"

// Commit converts every session document into a permanent stored document:
// archives are relocated under each destination, links are rewritten to
// their resolved addresses, and the session's working storage is deleted
// after the full loop completes.
//
// The loop is not atomic across documents: a mid-loop failure can leave
// some destinations written while the session record and workspace remain
// intact, so the caller can retry the commit.
func (s *Service) Commit(ctx context.Context, sessionID string) (*interfaces.CommitResult, error) {
	unlock := s.locks.acquire(sessionID)
	defer unlock()

	sess, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	pub, err := s.loadPublished()
	if err != nil {
		return nil, err
	}

	summary := summarize(sess, pub)
	if !summary.Ready {
		return nil, wrapPrecondition(readinessError(summary), "session is not ready to commit")
	}

	folders := make([]string, 0, len(sess.Notes))
	for _, slug := range sortedKeys(sess.Notes) {
		note := sess.Notes[slug]
		folder := permalink.FolderName(note.Date, slug)
		if err := s.publishNote(sess, note, folder, pub); err != nil {
			return nil, wrapStorage(err, "publish note")
		}
		folders = append(folders, folder)
	}

	if err := s.workspace.Remove(sess.ID); err != nil {
		return nil, wrapStorage(err, "remove session storage")
	}
	if err := s.store.Delete(ctx, sess.ID); err != nil {
		return nil, wrapStorage(err, "remove session record")
	}

	s.logger.Info("session committed",
		"session_id", sess.ID,
		"notes", len(folders))

	return &interfaces.CommitResult{Success: true, Folders: folders}, nil
}

func (s *Service) publishNote(sess *Session, note *Note, folder string, pub *published.Snapshot) error {
	destDir := filepath.Join(s.publishedDir, folder)

	served, err := s.relocateArchives(sess, note, folder, destDir)
	if err != nil {
		return err
	}

	body := rewriteBody(sess, note, pub, served)

	meta := cloneMeta(note.Meta)
	meta["title"] = note.Title
	meta["slug"] = note.Slug
	meta["date"] = note.Date
	meta["tags"] = notes.NormalizeTags(meta["tags"])

	out, err := notes.Serialize(meta, body)
	if err != nil {
		return fmt.Errorf("serialize %s: %w", note.Slug, err)
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("prepare destination %s: %w", folder, err)
	}
	if err := os.WriteFile(filepath.Join(destDir, documentFilename), out, 0o644); err != nil {
		return fmt.Errorf("write document %s: %w", folder, err)
	}
	return nil
}

// relocateArchives copies each resolved archive this note depends on into
// the destination's archives/ subdirectory and returns archive id -> served
// URL for the relocated copies.
func (s *Service) relocateArchives(sess *Session, note *Note, folder, destDir string) (map[string]string, error) {
	served := map[string]string{}

	for _, id := range sortedKeys(note.Dependencies.Archives) {
		archive := sess.Archives[id]
		if archive == nil || !archive.Resolved {
			continue
		}

		src, err := s.workspace.Resolve(sess.ID, archive.FilePath)
		if err != nil {
			return nil, err
		}

		name := id + "-" + archive.Filename
		archiveDir := filepath.Join(destDir, "archives")
		if err := os.MkdirAll(archiveDir, 0o755); err != nil {
			return nil, fmt.Errorf("prepare archives dir %s: %w", folder, err)
		}
		if err := copyFile(src, filepath.Join(archiveDir, name)); err != nil {
			return nil, fmt.Errorf("relocate archive %s: %w", id, err)
		}

		served[id] = "/" + folder + "/archives/" + url.PathEscape(name)
	}

	return served, nil
}

// rewriteBody replaces wiki links with standard hyperlinks to resolved
// permalinks, and external links with links to their relocated archive
// copies. Targets that are unexpectedly unresolved degrade to plain text
// (wiki) or stay untouched (external); neither is normally reachable after
// the readiness check.
func rewriteBody(sess *Session, note *Note, pub *published.Snapshot, served map[string]string) string {
	body := links.ReplaceWikiLinks(note.Body, func(link links.WikiLink) (string, bool) {
		if target, ok := sess.Notes[link.TargetSlug]; ok {
			return markdownLink(link.Alias, permalink.Permalink(target.Date, target.Slug)), true
		}
		if folder, ok := pub.Lookup(link.TargetSlug); ok {
			if date, slug, parsed := permalink.ParseFolderName(folder); parsed {
				return markdownLink(link.Alias, permalink.Permalink(date, slug)), true
			}
		}
		return link.Alias, true
	})

	return links.ReplaceExternalLinks(body, func(link links.ExternalLink) (string, bool) {
		target, ok := served[ArchiveID(link.URL)]
		if !ok {
			return "", false
		}
		return markdownLink(link.Text, target), true
	})
}

func markdownLink(text, target string) string {
	return "[" + text + "](" + target + ")"
}

func readinessError(summary *interfaces.SessionSummary) error {
	if summary.MainSlug == "" {
		return fmt.Errorf("%w: no main document designated", ErrNotReady)
	}
	return fmt.Errorf("%w: %d pending notes, %d unresolved archives",
		ErrNotReady, len(summary.PendingNotes), len(summary.PendingArchives))
}

func cloneMeta(meta map[string]any) map[string]any {
	out := make(map[string]any, len(meta)+4)
	for key, value := range meta {
		out[key] = value
	}
	return out
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
