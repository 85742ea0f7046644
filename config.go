package noteimport

import "github.com/goliatone/go-noteimport/internal/runtimeconfig"

var (
	ErrWorkspaceDirRequired   = runtimeconfig.ErrWorkspaceDirRequired
	ErrPublishedDirRequired   = runtimeconfig.ErrPublishedDirRequired
	ErrStorageProviderUnknown = runtimeconfig.ErrStorageProviderUnknown
	ErrStorageDSNRequired     = runtimeconfig.ErrStorageDSNRequired
	ErrLoggingLevelInvalid    = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid   = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config          = runtimeconfig.Config
	WorkspaceConfig = runtimeconfig.WorkspaceConfig
	PublishedConfig = runtimeconfig.PublishedConfig
	StorageConfig   = runtimeconfig.StorageConfig
	LoggingConfig   = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
