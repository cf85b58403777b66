package backend

import (
	"context"

	"spaarpot/internal/contracts"
)

// Kind selects which contract repository implementation to run.
type Kind string

const (
	// AutoKind tries durable storage first and falls back to memory
	// when it is unavailable.
	AutoKind   Kind = "auto"
	SQLiteKind Kind = "sqlite"
	MemoryKind Kind = "memory"
)

func (k Kind) String() string {
	return string(k)
}

func (k Kind) IsValid() bool {
	switch k {
	case AutoKind, SQLiteKind, MemoryKind:
		return true
	default:
		return false
	}
}

// Kinds returns all valid backend kinds.
func Kinds() []Kind {
	return []Kind{AutoKind, SQLiteKind, MemoryKind}
}

// CleanupFunc releases resources held by a repository.
type CleanupFunc func() error

// Result is a constructed repository plus its optional cleanup and the
// kind that actually got created, which differs from the requested kind
// after a fallback.
type Result struct {
	Repo    contracts.Repository
	Cleanup CleanupFunc
	Kind    Kind
}

// Factory creates contract repositories based on configuration.
type Factory interface {
	CreateRepository(ctx context.Context, cfg Config) (*Result, error)
}

// Config holds repository creation settings.
type Config struct {
	Kind         Kind
	SQLiteDBPath string
}
