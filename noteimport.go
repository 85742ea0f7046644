package noteimport

import (
	"context"

	"github.com/goliatone/go-noteimport/internal/di"
	"github.com/goliatone/go-noteimport/pkg/interfaces"
)

// ImportService exports the session orchestration contract for consumers of
// the noteimport package.
type ImportService = interfaces.ImportService

// AddNoteRequest exports the note ingestion request DTO.
type AddNoteRequest = interfaces.AddNoteRequest

// AddArchiveRequest exports the archive upload request DTO.
type AddArchiveRequest = interfaces.AddArchiveRequest

// SessionSummary exports the session status report.
type SessionSummary = interfaces.SessionSummary

// NoteStatus exports the per-note status entry.
type NoteStatus = interfaces.NoteStatus

// MissingNote exports the unsatisfied cross-reference entry.
type MissingNote = interfaces.MissingNote

// MissingArchive exports the unresolved external-reference entry.
type MissingArchive = interfaces.MissingArchive

// PendingNoteStatus exports the missing-note status entry.
type PendingNoteStatus = interfaces.PendingNoteStatus

// PendingArchiveStatus exports the unresolved-archive status entry.
type PendingArchiveStatus = interfaces.PendingArchiveStatus

// CommitResult exports the commit outcome report.
type CommitResult = interfaces.CommitResult

// Option re-exports container options for callers wiring their own
// dependencies.
type Option = di.Option

// WithStore overrides the configured session store.
var WithStore = di.WithStore

// WithBunDB reuses an existing bun handle for session records.
var WithBunDB = di.WithBunDB

// WithLoggerProvider overrides the default logging provider.
var WithLoggerProvider = di.WithLoggerProvider

// WithClock overrides the time source used when stamping notes.
var WithClock = di.WithClock

// Module represents the top level import runtime façade.
type Module struct {
	container *di.Container
}

// New constructs an import module using the provided configuration and
// optional dependency overrides.
func New(ctx context.Context, cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(ctx, cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying wiring for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Sessions returns the configured import session service.
func (m *Module) Sessions() ImportService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.ImportService()
}

// Close releases resources owned by the module, such as the session database.
func (m *Module) Close() error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Close()
}
