package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
)

var ErrWorkspaceDirRequired = errors.New("noteimport config: workspace directory is required")
var ErrPublishedDirRequired = errors.New("noteimport config: published directory is required")
var ErrStorageProviderUnknown = errors.New("noteimport config: storage provider is invalid")
var ErrStorageDSNRequired = errors.New("noteimport config: storage dsn is required for the bun provider")
var ErrLoggingLevelInvalid = errors.New("noteimport config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("noteimport config: logging format is invalid")

// Config aggregates runtime bindings for the import module.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	Workspace WorkspaceConfig
	Published PublishedConfig
	Storage   StorageConfig
	Logging   LoggingConfig
}

// WorkspaceConfig locates per-session working storage.
type WorkspaceConfig struct {
	Dir string
}

// PublishedConfig locates the permanent post store.
type PublishedConfig struct {
	Dir string
}

// StorageConfig selects the session record backend.
type StorageConfig struct {
	Provider string
	DSN      string
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Level     string
	Format    string
	AddSource bool
}

// DefaultConfig returns opinionated defaults for a local import workflow.
func DefaultConfig() Config {
	return Config{
		Workspace: WorkspaceConfig{
			Dir: "workspace",
		},
		Published: PublishedConfig{
			Dir: "published",
		},
		Storage: StorageConfig{
			Provider: "bun",
			DSN:      "file:noteimport.db?cache=shared&_fk=1",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Workspace.Dir) == "" {
		return ErrWorkspaceDirRequired
	}
	if strings.TrimSpace(cfg.Published.Dir) == "" {
		return ErrPublishedDirRequired
	}
	provider := normalizeProvider(cfg.Storage.Provider)
	if !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, cfg.Storage.Provider)
	}
	if provider == "bun" && strings.TrimSpace(cfg.Storage.DSN) == "" {
		return ErrStorageDSNRequired
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
		return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
	}
	return nil
}

// NormalizedProvider reports the effective storage provider name.
func (cfg StorageConfig) NormalizedProvider() string {
	return normalizeProvider(cfg.Provider)
}

func normalizeProvider(provider string) string {
	provider = strings.ToLower(strings.TrimSpace(provider))
	if provider == "" {
		return "bun"
	}
	return provider
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "bun", "memory":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
