package backend

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"spaarpot/internal/core"
)

func TestCreateRepositoryMemory(t *testing.T) {
	f := NewFactory(nil)
	result, err := f.CreateRepository(context.Background(), Config{Kind: MemoryKind})
	if err != nil {
		t.Fatalf("CreateRepository() error: %v", err)
	}
	if result.Kind != MemoryKind {
		t.Errorf("kind = %s", result.Kind)
	}
	if result.Repo == nil {
		t.Fatal("no repository returned")
	}
	if result.Cleanup != nil {
		t.Error("memory repository should not need cleanup")
	}
}

func TestCreateRepositorySQLite(t *testing.T) {
	f := NewFactory(nil)
	result, err := f.CreateRepository(context.Background(), Config{
		Kind:         SQLiteKind,
		SQLiteDBPath: filepath.Join(t.TempDir(), "spaarpot.db"),
	})
	if err != nil {
		t.Fatalf("CreateRepository() error: %v", err)
	}
	defer result.Cleanup()

	if result.Kind != SQLiteKind {
		t.Errorf("kind = %s", result.Kind)
	}
	if _, err := result.Repo.Add(context.Background(), core.NewContractInput{
		Name: "Huur", AccountNumber: "NL91ABNA0417164300",
	}); err != nil {
		t.Errorf("Add() through sqlite repo error: %v", err)
	}
}

func TestCreateRepositorySQLiteRequiresPath(t *testing.T) {
	f := NewFactory(nil)
	if _, err := f.CreateRepository(context.Background(), Config{Kind: SQLiteKind}); err == nil {
		t.Error("expected error for missing db path")
	}
}

func TestCreateRepositoryAutoFallsBackToMemory(t *testing.T) {
	// A regular file where the db directory should go makes sqlite
	// setup fail, which auto mode must survive.
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	f := NewFactory(nil)
	result, err := f.CreateRepository(context.Background(), Config{
		Kind:         AutoKind,
		SQLiteDBPath: filepath.Join(blocker, "sub", "spaarpot.db"),
	})
	if err != nil {
		t.Fatalf("CreateRepository() error: %v", err)
	}
	if result.Kind != MemoryKind {
		t.Errorf("kind = %s, want memory fallback", result.Kind)
	}
}

func TestCreateRepositoryInvalidKind(t *testing.T) {
	f := NewFactory(nil)
	if _, err := f.CreateRepository(context.Background(), Config{Kind: "postgres"}); err == nil {
		t.Error("expected error for invalid kind")
	}
}
