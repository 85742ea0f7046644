package interfaces

import "context"

// AddNoteRequest registers one markdown document with an import session.
type AddNoteRequest struct {
	SessionID string `json:"session_id"`
	Filename  string `json:"filename"`
	Content   string `json:"content"`
	IsMain    bool   `json:"is_main,omitempty"`
}

// AddArchiveRequest supplies the archived snapshot of an external web page
// that a session document referenced. Data carries the file payload encoded
// as base64, optionally wrapped in a data URI.
type AddArchiveRequest struct {
	SessionID string `json:"session_id"`
	SourceURL string `json:"source_url"`
	Filename  string `json:"filename"`
	Data      string `json:"data"`
}

// MissingNote identifies an unsatisfied cross-reference of a single note.
type MissingNote struct {
	Slug  string `json:"slug"`
	Alias string `json:"alias"`
}

// MissingArchive identifies an unresolved external-page reference of a
// single note.
type MissingArchive struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// NoteStatus is the per-document slice of a session summary.
type NoteStatus struct {
	Slug            string           `json:"slug"`
	Title           string           `json:"title"`
	IsMain          bool             `json:"is_main"`
	MissingNotes    []MissingNote    `json:"missing_notes"`
	MissingArchives []MissingArchive `json:"missing_archives"`
}

// PendingNoteStatus reports a document that has been referenced but not yet
// supplied to the session.
type PendingNoteStatus struct {
	Slug         string   `json:"slug"`
	TargetTitle  string   `json:"target_title"`
	ReferencedBy []string `json:"referenced_by"`
}

// PendingArchiveStatus reports an external page awaiting its snapshot.
type PendingArchiveStatus struct {
	ID           string   `json:"id"`
	URL          string   `json:"url"`
	ReferencedBy []string `json:"referenced_by"`
}

// SessionSummary is the read-only, client-facing snapshot returned by every
// session operation. Ready reports commit eligibility: no pending notes,
// every archive resolved, and a main document designated.
type SessionSummary struct {
	SessionID       string                 `json:"session_id"`
	MainSlug        string                 `json:"main_slug,omitempty"`
	Notes           []NoteStatus           `json:"notes"`
	PendingNotes    []PendingNoteStatus    `json:"pending_notes"`
	PendingArchives []PendingArchiveStatus `json:"pending_archives"`
	Ready           bool                   `json:"ready"`
}

// CommitResult reports the destination folders created by a commit.
type CommitResult struct {
	Success bool     `json:"success"`
	Folders []string `json:"folders"`
}

// ImportService exposes the session workflows consumed by transport layers.
type ImportService interface {
	CreateSession(ctx context.Context) (string, error)
	AddNote(ctx context.Context, req AddNoteRequest) (*SessionSummary, error)
	AddArchive(ctx context.Context, req AddArchiveRequest) (*SessionSummary, error)
	GetSession(ctx context.Context, sessionID string) (*SessionSummary, error)
	Commit(ctx context.Context, sessionID string) (*CommitResult, error)
	Abandon(ctx context.Context, sessionID string) error
	RenderPreview(ctx context.Context, sessionID, slug string) ([]byte, error)
}
