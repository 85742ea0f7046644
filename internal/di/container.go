package di

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/goliatone/go-noteimport/internal/logging"
	"github.com/goliatone/go-noteimport/internal/logging/gologger"
	"github.com/goliatone/go-noteimport/internal/notes"
	"github.com/goliatone/go-noteimport/internal/runtimeconfig"
	"github.com/goliatone/go-noteimport/internal/session"
	"github.com/goliatone/go-noteimport/pkg/interfaces"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// Container wires module dependencies and owns the ones it creates.
type Container struct {
	Config runtimeconfig.Config

	store     session.Store
	workspace *session.Workspace
	renderer  *notes.Renderer
	provider  interfaces.LoggerProvider
	now       func() time.Time

	db     *bun.DB
	ownsDB bool

	importSvc *session.Service
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithStore overrides the configured session store.
func WithStore(store session.Store) Option {
	return func(c *Container) {
		c.store = store
	}
}

// WithBunDB reuses an existing bun handle instead of opening one from the DSN.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.db = db
	}
}

// WithLoggerProvider overrides the default logging provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.provider = provider
	}
}

// WithClock overrides the time source used when stamping notes.
func WithClock(now func() time.Time) Option {
	return func(c *Container) {
		c.now = now
	}
}

// NewContainer validates the configuration and builds the import service with
// its backing store, workspace, and logger.
func NewContainer(ctx context.Context, cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		opt(c)
	}

	if c.provider == nil {
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
		})
		if err != nil {
			return nil, err
		}
		c.provider = provider
	}

	if err := os.MkdirAll(cfg.Workspace.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("di: create workspace dir: %w", err)
	}
	if err := os.MkdirAll(cfg.Published.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("di: create published dir: %w", err)
	}

	if c.store == nil {
		if err := c.configureStore(ctx); err != nil {
			return nil, err
		}
	}

	c.workspace = session.NewWorkspace(cfg.Workspace.Dir)
	if c.renderer == nil {
		c.renderer = notes.NewRenderer()
	}

	svc, err := session.NewService(session.ServiceConfig{
		Store:        c.store,
		Workspace:    c.workspace,
		PublishedDir: cfg.Published.Dir,
		Logger:       logging.SessionLogger(c.provider),
		Renderer:     c.renderer,
		Now:          c.now,
	})
	if err != nil {
		c.closeDB()
		return nil, err
	}
	c.importSvc = svc

	return c, nil
}

func (c *Container) configureStore(ctx context.Context) error {
	switch c.Config.Storage.NormalizedProvider() {
	case "memory":
		c.store = session.NewMemoryStore()
		return nil
	default:
		if c.db == nil {
			sqldb, err := sql.Open("sqlite3", c.Config.Storage.DSN)
			if err != nil {
				return fmt.Errorf("di: open session database: %w", err)
			}
			c.db = bun.NewDB(sqldb, sqlitedialect.New())
			c.ownsDB = true
		}
		store, err := session.NewBunStoreWithSchema(ctx, c.db)
		if err != nil {
			c.closeDB()
			return err
		}
		c.store = store
		return nil
	}
}

// ImportService returns the configured import session service.
func (c *Container) ImportService() *session.Service {
	return c.importSvc
}

// Store exposes the session store for advanced integrations.
func (c *Container) Store() session.Store {
	return c.store
}

// DB exposes the bun handle backing the session store, if any.
func (c *Container) DB() *bun.DB {
	return c.db
}

// LoggerProvider exposes the active logging provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.provider
}

// Close releases resources the container opened itself.
func (c *Container) Close() error {
	return c.closeDB()
}

func (c *Container) closeDB() error {
	if !c.ownsDB || c.db == nil {
		return nil
	}
	db := c.db
	c.db = nil
	c.ownsDB = false
	return db.Close()
}
