package session

import (
	"sort"

	"github.com/goliatone/go-noteimport/internal/published"
	"github.com/goliatone/go-noteimport/pkg/interfaces"
)

// summarize derives the client-facing snapshot from session state and a
// fresh published-store snapshot. It performs no mutation; slices are
// sorted so output is stable across calls.
func summarize(sess *Session, pub *published.Snapshot) *interfaces.SessionSummary {
	summary := &interfaces.SessionSummary{
		SessionID:       sess.ID,
		MainSlug:        sess.MainSlug,
		Notes:           []interfaces.NoteStatus{},
		PendingNotes:    []interfaces.PendingNoteStatus{},
		PendingArchives: []interfaces.PendingArchiveStatus{},
	}

	for _, slug := range sortedKeys(sess.Notes) {
		note := sess.Notes[slug]
		status := interfaces.NoteStatus{
			Slug:            note.Slug,
			Title:           note.Title,
			IsMain:          note.IsMain,
			MissingNotes:    []interfaces.MissingNote{},
			MissingArchives: []interfaces.MissingArchive{},
		}

		for _, target := range sortedKeys(note.Dependencies.Notes) {
			if _, ok := sess.Notes[target]; ok {
				continue
			}
			if pub.Has(target) {
				continue
			}
			status.MissingNotes = append(status.MissingNotes, interfaces.MissingNote{
				Slug:  target,
				Alias: note.Dependencies.Notes[target].Alias,
			})
		}

		for _, id := range sortedKeys(note.Dependencies.Archives) {
			archive := sess.Archives[id]
			if archive != nil && archive.Resolved {
				continue
			}
			status.MissingArchives = append(status.MissingArchives, interfaces.MissingArchive{
				ID:   id,
				Text: note.Dependencies.Archives[id],
			})
		}

		summary.Notes = append(summary.Notes, status)
	}

	for _, slug := range sortedKeys(sess.PendingNotes) {
		pending := sess.PendingNotes[slug]
		summary.PendingNotes = append(summary.PendingNotes, interfaces.PendingNoteStatus{
			Slug:         slug,
			TargetTitle:  pending.TargetTitle,
			ReferencedBy: append([]string(nil), pending.ReferencedBy...),
		})
	}

	unresolved := 0
	for _, id := range sortedKeys(sess.Archives) {
		archive := sess.Archives[id]
		if archive.Resolved {
			continue
		}
		unresolved++
		summary.PendingArchives = append(summary.PendingArchives, interfaces.PendingArchiveStatus{
			ID:           id,
			URL:          archive.URL,
			ReferencedBy: append([]string(nil), archive.ReferencedBy...),
		})
	}

	summary.Ready = len(sess.PendingNotes) == 0 &&
		unresolved == 0 &&
		sess.MainSlug != ""

	return summary
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
