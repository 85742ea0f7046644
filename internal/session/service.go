package session

import (
	"context"
	"encoding/base64"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/goliatone/go-noteimport/internal/links"
	"github.com/goliatone/go-noteimport/internal/logging"
	"github.com/goliatone/go-noteimport/internal/notes"
	"github.com/goliatone/go-noteimport/internal/permalink"
	"github.com/goliatone/go-noteimport/internal/published"
	"github.com/goliatone/go-noteimport/pkg/interfaces"
)

const fallbackTitle = "Untitled"

// ServiceConfig encapsulates the dependencies of the import service.
type ServiceConfig struct {
	Store        Store
	Workspace    *Workspace
	PublishedDir string
	Logger       interfaces.Logger
	Renderer     *notes.Renderer

	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time
}

// Service orchestrates import sessions. Operations against the same session
// id are serialized through a per-session lock; different sessions proceed
// concurrently.
type Service struct {
	store        Store
	workspace    *Workspace
	publishedDir string
	renderer     *notes.Renderer
	logger       interfaces.Logger
	now          func() time.Time
	locks        lockRegistry
}

// NewService builds an import service from the supplied configuration.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Store == nil {
		return nil, ErrStoreRequired
	}
	if cfg.Workspace == nil {
		return nil, ErrWorkspaceRequired
	}
	if strings.TrimSpace(cfg.PublishedDir) == "" {
		return nil, ErrPublishedDirMissing
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	renderer := cfg.Renderer
	if renderer == nil {
		renderer = notes.NewRenderer()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Service{
		store:        cfg.Store,
		workspace:    cfg.Workspace,
		publishedDir: cfg.PublishedDir,
		renderer:     renderer,
		logger:       logger,
		now:          now,
	}, nil
}

// CreateSession allocates a fresh session, persists its empty state, and
// returns the identifier.
func (s *Service) CreateSession(ctx context.Context) (string, error) {
	sess := NewSession(uuid.NewString(), s.now().UTC())
	if err := s.store.Create(ctx, sess); err != nil {
		return "", wrapStorage(err, "create session")
	}
	s.logger.Info("session created", "session_id", sess.ID)
	return sess.ID, nil
}

// AddNote registers one markdown document with the session, updates the
// dependency registries, persists, and returns a fresh summary.
func (s *Service) AddNote(ctx context.Context, req interfaces.AddNoteRequest) (*interfaces.SessionSummary, error) {
	if err := validateAddNote(req); err != nil {
		return nil, wrapValidation(err, "add note validation failed")
	}

	unlock := s.locks.acquire(req.SessionID)
	defer unlock()

	sess, err := s.loadSession(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}
	pub, err := s.loadPublished()
	if err != nil {
		return nil, err
	}

	doc, err := notes.Parse([]byte(req.Content), s.now().UTC())
	if err != nil {
		return nil, wrapValidation(err, "note content could not be parsed")
	}

	slug := permalink.Slugize(doc.Title)
	if slug == "" {
		slug = permalink.RandomSlug()
	}
	title := doc.Title
	if title == "" {
		title = fallbackTitle
	}

	file, err := s.workspace.WriteNote(sess.ID, slug, []byte(req.Content))
	if err != nil {
		return nil, wrapStorage(err, "store note content")
	}

	meta := doc.Meta
	meta["tags"] = notes.NormalizeTags(meta["tags"])

	note := &Note{
		Slug:         slug,
		Title:        title,
		Date:         doc.Date.UTC().Format(time.RFC3339),
		Meta:         meta,
		Body:         doc.Body,
		File:         file,
		IsMain:       req.IsMain,
		Dependencies: newDependencies(),
	}

	if req.IsMain {
		for _, existing := range sess.Notes {
			existing.IsMain = false
		}
		sess.MainSlug = slug
	}

	sess.Notes[slug] = note
	delete(sess.PendingNotes, slug)

	trackDependencies(sess, note,
		links.ExtractWikiLinks(doc.Body),
		links.ExtractExternalLinks(doc.Body),
		pub)

	if err := s.store.Save(ctx, sess); err != nil {
		return nil, wrapStorage(err, "persist session")
	}

	s.logger.Debug("note added",
		"session_id", sess.ID,
		"slug", slug,
		"is_main", req.IsMain,
		"pending_notes", len(sess.PendingNotes))

	return summarize(sess, pub), nil
}

// AddArchive supplies the snapshot of an external page referenced by a
// session document. Archives may only be supplied in response to a real
// reference.
func (s *Service) AddArchive(ctx context.Context, req interfaces.AddArchiveRequest) (*interfaces.SessionSummary, error) {
	if err := validateAddArchive(req); err != nil {
		return nil, wrapValidation(err, "add archive validation failed")
	}

	unlock := s.locks.acquire(req.SessionID)
	defer unlock()

	sess, err := s.loadSession(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}

	id := ArchiveID(req.SourceURL)
	archive, ok := sess.Archives[id]
	if !ok {
		return nil, wrapValidation(
			fmt.Errorf("%w: %s", ErrArchiveNotRequested, req.SourceURL),
			"archive was not requested")
	}

	data, err := decodeArchiveData(req.Data)
	if err != nil {
		return nil, wrapValidation(err, "archive payload could not be decoded")
	}

	name := id + "-" + filepath.Base(req.Filename)
	path, err := s.workspace.WriteArchive(sess.ID, name, data)
	if err != nil {
		return nil, wrapStorage(err, "store archive payload")
	}

	archive.Resolved = true
	archive.Filename = filepath.Base(req.Filename)
	archive.FilePath = path

	if err := s.store.Save(ctx, sess); err != nil {
		return nil, wrapStorage(err, "persist session")
	}

	pub, err := s.loadPublished()
	if err != nil {
		return nil, err
	}

	s.logger.Debug("archive resolved",
		"session_id", sess.ID,
		"archive_id", id,
		"url", req.SourceURL)

	return summarize(sess, pub), nil
}

// GetSession returns the current summary without mutating state.
func (s *Service) GetSession(ctx context.Context, sessionID string) (*interfaces.SessionSummary, error) {
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
	return summarize(sess, pub), nil
}

// Abandon removes the stored session record and its working storage.
func (s *Service) Abandon(ctx context.Context, sessionID string) error {
	unlock := s.locks.acquire(sessionID)
	defer unlock()

	if err := s.store.Delete(ctx, sessionID); err != nil {
		return wrapNotFound(err, "session not found")
	}
	if err := s.workspace.Remove(sessionID); err != nil {
		return wrapStorage(err, "remove session storage")
	}
	s.logger.Info("session abandoned", "session_id", sessionID)
	return nil
}

// RenderPreview renders a stored note's body to HTML for client preview.
func (s *Service) RenderPreview(ctx context.Context, sessionID, slug string) ([]byte, error) {
	unlock := s.locks.acquire(sessionID)
	defer unlock()

	sess, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	note, ok := sess.Notes[slug]
	if !ok {
		return nil, wrapNotFound(fmt.Errorf("%w: %s", ErrNoteNotFound, slug), "note not found")
	}
	return s.renderer.Render([]byte(note.Body))
}

func (s *Service) loadSession(ctx context.Context, id string) (*Session, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, wrapNotFound(err, "session not found")
		}
		return nil, wrapStorage(err, "load session")
	}
	return sess, nil
}

func (s *Service) loadPublished() (*published.Snapshot, error) {
	pub, err := published.Load(s.publishedDir)
	if err != nil {
		return nil, wrapStorage(err, "read published store")
	}
	return pub, nil
}

func validateAddNote(req interfaces.AddNoteRequest) error {
	errs := validation.Errors{}
	if strings.TrimSpace(req.SessionID) == "" {
		errs["session_id"] = validation.NewError("noteimport.add_note.session_id_required", "session_id is required")
	}
	if strings.TrimSpace(req.Filename) == "" {
		errs["filename"] = validation.NewError("noteimport.add_note.filename_required", "filename is required")
	}
	if strings.TrimSpace(req.Content) == "" {
		errs["content"] = validation.NewError("noteimport.add_note.content_required", "content is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateAddArchive(req interfaces.AddArchiveRequest) error {
	errs := validation.Errors{}
	if strings.TrimSpace(req.SessionID) == "" {
		errs["session_id"] = validation.NewError("noteimport.add_archive.session_id_required", "session_id is required")
	}
	if strings.TrimSpace(req.SourceURL) == "" {
		errs["source_url"] = validation.NewError("noteimport.add_archive.source_url_required", "source_url is required")
	}
	if strings.TrimSpace(req.Filename) == "" {
		errs["filename"] = validation.NewError("noteimport.add_archive.filename_required", "filename is required")
	}
	if strings.TrimSpace(req.Data) == "" {
		errs["data"] = validation.NewError("noteimport.add_archive.data_required", "data is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// decodeArchiveData accepts raw base64 or a data-URI-prefixed payload.
func decodeArchiveData(data string) ([]byte, error) {
	payload := strings.TrimSpace(data)
	if strings.HasPrefix(payload, "data:") {
		idx := strings.Index(payload, "base64,")
		if idx < 0 {
			return nil, ErrArchiveDataInvalid
		}
		payload = payload[idx+len("base64,"):]
	}
	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArchiveDataInvalid, err)
	}
	return decoded, nil
}

// lockRegistry hands out one mutex per session id so operations against the
// same session never interleave. Entries are never evicted; session ids are
// short-lived and bounded by session volume.
type lockRegistry struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (r *lockRegistry) acquire(id string) func() {
	r.mu.Lock()
	if r.locks == nil {
		r.locks = map[string]*sync.Mutex{}
	}
	lock, ok := r.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		r.locks[id] = lock
	}
	r.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

var _ interfaces.ImportService = (*Service)(nil)
