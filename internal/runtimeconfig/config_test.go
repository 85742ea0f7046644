package runtimeconfig

import (
	"errors"
	"testing"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config must validate, got %v", err)
	}
}

func TestValidateRequiresDirectories(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Workspace.Dir = "  "
	if err := cfg.Validate(); !errors.Is(err, ErrWorkspaceDirRequired) {
		t.Fatalf("expected workspace error, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.Published.Dir = ""
	if err := cfg.Validate(); !errors.Is(err, ErrPublishedDirRequired) {
		t.Fatalf("expected published error, got %v", err)
	}
}

func TestValidateStorage(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Storage.Provider = "etcd"
	if err := cfg.Validate(); !errors.Is(err, ErrStorageProviderUnknown) {
		t.Fatalf("expected provider error, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.Storage.DSN = ""
	if err := cfg.Validate(); !errors.Is(err, ErrStorageDSNRequired) {
		t.Fatalf("expected dsn error, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.Storage.Provider = "memory"
	cfg.Storage.DSN = ""
	if err := cfg.Validate(); err != nil {
		t.Fatalf("memory provider must not require a dsn, got %v", err)
	}
}

func TestValidateLogging(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Level = "loud"
	if err := cfg.Validate(); !errors.Is(err, ErrLoggingLevelInvalid) {
		t.Fatalf("expected level error, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); !errors.Is(err, ErrLoggingFormatInvalid) {
		t.Fatalf("expected format error, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.Logging.Level = ""
	cfg.Logging.Format = ""
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty logging options are allowed, got %v", err)
	}
}

func TestNormalizedProviderDefaultsToBun(t *testing.T) {
	if got := (StorageConfig{}).NormalizedProvider(); got != "bun" {
		t.Fatalf("expected bun, got %q", got)
	}
	if got := (StorageConfig{Provider: " Memory "}).NormalizedProvider(); got != "memory" {
		t.Fatalf("expected memory, got %q", got)
	}
}
