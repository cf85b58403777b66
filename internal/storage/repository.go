package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"spaarpot/internal/contracts"
	"spaarpot/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteRepository persists contracts as JSON documents keyed by id.
// The merge semantics live in core; storage only reads, merges and
// writes back inside a transaction.
type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db, now: time.Now}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Add implements contracts.Repository.
func (r *SQLiteRepository) Add(ctx context.Context, in core.NewContractInput) (core.Contract, error) {
	in = in.Normalized()
	if err := in.Validate(); err != nil {
		return core.Contract{}, err
	}

	now := r.now()
	c := core.Contract{
		ID:            uuid.NewString(),
		Name:          in.Name,
		AccountNumber: in.AccountNumber,
		Description:   in.Description,
		CreatedAt:     now,
		Obligations:   core.MergeObligations(in.Obligations, nil, now),
	}

	data, err := json.Marshal(c)
	if err != nil {
		return core.Contract{}, fmt.Errorf("marshal contract: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO contracts (id, name, data, created_at) VALUES (?, ?, ?, ?)`,
		c.ID, c.Name, string(data), c.CreatedAt)
	if err != nil {
		return core.Contract{}, fmt.Errorf("insert contract: %w", err)
	}

	slog.InfoContext(ctx, "Contract saved to SQLite",
		"id", c.ID,
		"name", c.Name,
		"obligations", len(c.Obligations))

	return c, nil
}

// List implements contracts.Repository. The query orders by creation
// so equal names stay in insertion order under the stable name sort.
func (r *SQLiteRepository) List(ctx context.Context) ([]core.Contract, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT data FROM contracts ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query contracts: %w", err)
	}
	defer rows.Close()

	var out []core.Contract
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan contract: %w", err)
		}
		var c core.Contract
		if err := json.Unmarshal([]byte(data), &c); err != nil {
			return nil, fmt.Errorf("unmarshal contract: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contracts: %w", err)
	}
	contracts.SortByName(out)
	return out, nil
}

// Get implements contracts.Repository.
func (r *SQLiteRepository) Get(ctx context.Context, id string) (core.Contract, error) {
	var data string
	err := r.db.QueryRowContext(ctx, `SELECT data FROM contracts WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Contract{}, contracts.ErrNotFound
	}
	if err != nil {
		return core.Contract{}, fmt.Errorf("get contract: %w", err)
	}

	var c core.Contract
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		return core.Contract{}, fmt.Errorf("unmarshal contract: %w", err)
	}
	return c, nil
}

// Update implements contracts.Repository. The stored contract is read
// and merged inside one transaction so concurrent updates cannot drop
// rate history.
func (r *SQLiteRepository) Update(ctx context.Context, id string, in core.NewContractInput) (core.Contract, error) {
	in = in.Normalized()
	if err := in.Validate(); err != nil {
		return core.Contract{}, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return core.Contract{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var data string
	err = tx.QueryRowContext(ctx, `SELECT data FROM contracts WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Contract{}, contracts.ErrNotFound
	}
	if err != nil {
		return core.Contract{}, fmt.Errorf("get contract: %w", err)
	}

	var c core.Contract
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		return core.Contract{}, fmt.Errorf("unmarshal contract: %w", err)
	}

	c.Name = in.Name
	c.AccountNumber = in.AccountNumber
	c.Description = in.Description
	c.Obligations = core.MergeObligations(in.Obligations, c.Obligations, r.now())

	updated, err := json.Marshal(c)
	if err != nil {
		return core.Contract{}, fmt.Errorf("marshal contract: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE contracts SET name = ?, data = ? WHERE id = ?`,
		c.Name, string(updated), id); err != nil {
		return core.Contract{}, fmt.Errorf("update contract: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return core.Contract{}, fmt.Errorf("commit transaction: %w", err)
	}

	slog.InfoContext(ctx, "Contract updated in SQLite",
		"id", c.ID,
		"name", c.Name,
		"obligations", len(c.Obligations))

	return c, nil
}
