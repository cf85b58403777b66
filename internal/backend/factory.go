package backend

import (
	"context"
	"fmt"
	"log/slog"

	"spaarpot/internal/contracts/memory"
	"spaarpot/internal/storage"
)

// DefaultFactory implements the Factory interface.
type DefaultFactory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{logger: logger}
}

// CreateRepository implements Factory.CreateRepository.
func (f *DefaultFactory) CreateRepository(_ context.Context, cfg Config) (*Result, error) {
	if !cfg.Kind.IsValid() {
		return nil, fmt.Errorf("invalid backend kind: %s", cfg.Kind)
	}

	switch cfg.Kind {
	case SQLiteKind:
		return f.createSQLite(cfg)
	case MemoryKind:
		return f.createMemory()
	case AutoKind:
		result, err := f.createSQLite(cfg)
		if err != nil {
			// Durable storage is preferred, never required. The app
			// stays usable on a memory repository for the session.
			f.logger.Warn("SQLite unavailable, falling back to memory repository",
				"db_path", cfg.SQLiteDBPath,
				"error", err)
			return f.createMemory()
		}
		return result, nil
	default:
		return nil, fmt.Errorf("unsupported backend kind: %s", cfg.Kind)
	}
}

func (f *DefaultFactory) createSQLite(cfg Config) (*Result, error) {
	if cfg.SQLiteDBPath == "" {
		return nil, fmt.Errorf("sqlite database path is required")
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("initialize sqlite repository: %w", err)
	}

	f.logger.Info("Initialized SQLite repository", "db_path", cfg.SQLiteDBPath)

	return &Result{
		Repo:    repo,
		Cleanup: repo.Close,
		Kind:    SQLiteKind,
	}, nil
}

func (f *DefaultFactory) createMemory() (*Result, error) {
	f.logger.Info("Initialized memory repository")

	return &Result{
		Repo: memory.New(),
		Kind: MemoryKind,
	}, nil
}
