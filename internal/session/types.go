// Package session implements the note-import orchestrator: a session graph
// that accumulates interlinked documents and archived web pages across
// independent requests, tracks unsatisfied cross-references, and converts
// the whole batch into permanently stored, link-resolved documents once
// every reference is satisfied.
package session

import "time"

// Session is the root aggregate. It owns every note, archive, and pending
// reference until the session is committed or abandoned.
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	MainSlug  string    `json:"main_slug,omitempty"`

	// Notes maps slug to document. Two distinct titles that slugize to the
	// same identifier silently overwrite one another; this matches the
	// upstream publishing pipeline and is a documented limitation.
	Notes        map[string]*Note        `json:"notes"`
	Archives     map[string]*Archive     `json:"archives"`
	PendingNotes map[string]*PendingNote `json:"pending_notes"`
}

// Note is one imported document.
type Note struct {
	Slug  string         `json:"slug"`
	Title string         `json:"title"`
	Date  string         `json:"date"` // ISO-8601 instant
	Meta  map[string]any `json:"meta"`
	Body  string         `json:"body"`

	// File is the workspace-relative location of the raw uploaded content.
	File   string `json:"file"`
	IsMain bool   `json:"is_main"`

	// Dependencies are retained even after their targets resolve: the
	// commit phase needs alias and link text to rewrite the body.
	Dependencies Dependencies `json:"dependencies"`
}

// Dependencies records every reference a note makes, keyed by target.
type Dependencies struct {
	Notes    map[string]NoteDependency `json:"notes"`
	Archives map[string]string         `json:"archives"` // archive id -> link text
}

// NoteDependency captures how a cross-reference was written in the source
// document.
type NoteDependency struct {
	Alias       string `json:"alias"`
	TargetTitle string `json:"target_title"`
}

// Archive is one externally-archived web page, content-addressed by its
// source URL so identical URLs collapse to a single entry.
type Archive struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	Resolved bool   `json:"resolved"`

	// Filename and FilePath are set once the snapshot is supplied.
	Filename string `json:"filename,omitempty"`
	FilePath string `json:"file_path,omitempty"` // workspace-relative

	ReferencedBy []string `json:"referenced_by"`
}

// PendingNote is the placeholder for a document that has been referenced
// but not yet supplied.
type PendingNote struct {
	// TargetTitle is the first title under which the document was referenced.
	TargetTitle  string   `json:"target_title"`
	ReferencedBy []string `json:"referenced_by"`
}

// NewSession initializes an empty session with the given identifier.
func NewSession(id string, createdAt time.Time) *Session {
	return &Session{
		ID:           id,
		CreatedAt:    createdAt,
		Notes:        map[string]*Note{},
		Archives:     map[string]*Archive{},
		PendingNotes: map[string]*PendingNote{},
	}
}

// normalizeSession reinstates empty maps after a serialization round trip
// so callers never index into nil.
func normalizeSession(sess *Session) *Session {
	if sess == nil {
		return nil
	}
	if sess.Notes == nil {
		sess.Notes = map[string]*Note{}
	}
	if sess.Archives == nil {
		sess.Archives = map[string]*Archive{}
	}
	if sess.PendingNotes == nil {
		sess.PendingNotes = map[string]*PendingNote{}
	}
	for _, note := range sess.Notes {
		if note.Dependencies.Notes == nil {
			note.Dependencies.Notes = map[string]NoteDependency{}
		}
		if note.Dependencies.Archives == nil {
			note.Dependencies.Archives = map[string]string{}
		}
	}
	return sess
}

func newDependencies() Dependencies {
	return Dependencies{
		Notes:    map[string]NoteDependency{},
		Archives: map[string]string{},
	}
}

func appendUnique(list []string, value string) []string {
	for _, existing := range list {
		if existing == value {
			return list
		}
	}
	return append(list, value)
}
