package session

import (
	"context"
	"fmt"
	"time"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewBunStoreWithSchema creates the backing table if needed and returns the
// store. Convenience for hosts that do not run migrations separately.
func NewBunStoreWithSchema(ctx context.Context, db *bun.DB) (*BunStore, error) {
	if err := EnsureSchema(ctx, db); err != nil {
		return nil, fmt.Errorf("session store: ensure schema: %w", err)
	}
	return NewBunStore(db), nil
}

// Store persists session aggregates as whole records keyed by session id.
// Save overwrites prior content; there is no merge and no optimistic
// concurrency check. The service serializes operations per session id on
// top of this contract.
type Store interface {
	Create(ctx context.Context, sess *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, sess *Session) error
	Delete(ctx context.Context, id string) error
}

// BunStore is the sqlite-backed Store.
type BunStore struct {
	repo repository.Repository[*Record]
}

// NewBunStore builds a Store on top of the given bun database.
func NewBunStore(db *bun.DB) *BunStore {
	return &BunStore{repo: NewSessionRepository(db)}
}

func (s *BunStore) Create(ctx context.Context, sess *Session) error {
	uid, err := uuid.Parse(sess.ID)
	if err != nil {
		return fmt.Errorf("session store: invalid id %q: %w", sess.ID, err)
	}
	record := &Record{
		ID:        uid,
		State:     sess,
		CreatedAt: sess.CreatedAt,
		UpdatedAt: sess.CreatedAt,
	}
	if _, err := s.repo.Create(ctx, record); err != nil {
		return fmt.Errorf("session store: create %s: %w", sess.ID, err)
	}
	return nil
}

func (s *BunStore) Get(ctx context.Context, id string) (*Session, error) {
	record, err := s.getRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	return normalizeSession(record.State), nil
}

func (s *BunStore) Save(ctx context.Context, sess *Session) error {
	record, err := s.getRecord(ctx, sess.ID)
	if err != nil {
		return err
	}
	record.State = sess
	record.UpdatedAt = time.Now().UTC()
	if _, err := s.repo.Update(ctx, record); err != nil {
		return fmt.Errorf("session store: save %s: %w", sess.ID, err)
	}
	return nil
}

func (s *BunStore) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if err := s.repo.Delete(ctx, &Record{ID: uid}); err != nil {
		return fmt.Errorf("session store: delete %s: %w", id, err)
	}
	return nil
}

func (s *BunStore) getRecord(ctx context.Context, id string) (*Record, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	record, err := s.repo.GetByID(ctx, uid.String())
	if err != nil {
		return nil, mapStoreError(err, id)
	}
	if record == nil || record.State == nil {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return record, nil
}

func mapStoreError(err error, id string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return fmt.Errorf("session store: %s: %w", id, err)
}

var _ Store = (*BunStore)(nil)
