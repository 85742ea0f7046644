package session

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

var (
	ErrSessionNotFound     = errors.New("session: not found")
	ErrNoteNotFound        = errors.New("session: note not found")
	ErrArchiveNotRequested = errors.New("session: archive was not requested")
	ErrArchiveDataInvalid  = errors.New("session: archive payload is not valid base64")
	ErrNotReady            = errors.New("session: not ready to commit")
	ErrStoreRequired       = errors.New("session: store is required")
	ErrWorkspaceRequired   = errors.New("session: workspace is required")
	ErrPublishedDirMissing = errors.New("session: published directory is required")
)

const (
	codeNotFound           = "IMPORT_SESSION_NOT_FOUND"
	codeValidationFailed   = "IMPORT_VALIDATION_FAILED"
	codePreconditionFailed = "IMPORT_SESSION_NOT_READY"
	codeStorageFailure     = "IMPORT_STORAGE_FAILURE"
)

func wrapNotFound(err error, msg string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryNotFound, msg).
		WithTextCode(codeNotFound)
}

func wrapValidation(err error, msg string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, msg).
		WithTextCode(codeValidationFailed)
}

func wrapPrecondition(err error, msg string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryConflict, msg).
		WithTextCode(codePreconditionFailed)
}

func wrapStorage(err error, msg string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryExternal, msg).
		WithTextCode(codeStorageFailure)
}

// IsNotFound reports whether err represents a missing session or note.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, ErrNoteNotFound) ||
		goerrors.IsCategory(err, goerrors.CategoryNotFound)
}

// IsPreconditionFailed reports whether err represents a commit attempted
// before the session was ready.
func IsPreconditionFailed(err error) bool {
	return errors.Is(err, ErrNotReady) ||
		goerrors.IsCategory(err, goerrors.CategoryConflict)
}

// IsValidation reports whether err represents rejected input.
func IsValidation(err error) bool {
	return goerrors.IsCategory(err, goerrors.CategoryValidation)
}
