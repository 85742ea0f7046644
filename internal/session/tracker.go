package session

import (
	"github.com/goliatone/go-noteimport/internal/links"
	"github.com/goliatone/go-noteimport/internal/published"
)

// trackDependencies updates the session's pending-dependency and archive
// registries from a note's extracted links. The session is mutated in
// place; persisting it afterwards is the caller's responsibility.
func trackDependencies(sess *Session, note *Note, wikiLinks []links.WikiLink, externalLinks []links.ExternalLink, pub *published.Snapshot) {
	for _, link := range wikiLinks {
		if link.TargetSlug == "" {
			continue
		}

		// Last occurrence wins for a given target within one document.
		note.Dependencies.Notes[link.TargetSlug] = NoteDependency{
			Alias:       link.Alias,
			TargetTitle: link.TargetTitle,
		}

		if _, ok := sess.Notes[link.TargetSlug]; ok {
			continue
		}
		if pub.Has(link.TargetSlug) {
			continue
		}

		pending := sess.PendingNotes[link.TargetSlug]
		if pending == nil {
			pending = &PendingNote{TargetTitle: link.TargetTitle}
			sess.PendingNotes[link.TargetSlug] = pending
		}
		pending.ReferencedBy = appendUnique(pending.ReferencedBy, note.Slug)
	}

	for _, link := range externalLinks {
		id := ArchiveID(link.URL)
		if id == "" {
			continue
		}

		archive := sess.Archives[id]
		if archive == nil {
			archive = &Archive{ID: id, URL: link.URL}
			sess.Archives[id] = archive
		}
		archive.ReferencedBy = appendUnique(archive.ReferencedBy, note.Slug)

		note.Dependencies.Archives[id] = link.Text
	}
}
