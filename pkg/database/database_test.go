package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/theEquinoxDev/LocalLoop/pkg/logger"
)

func TestIsPgCode(t *testing.T) {
	unique := &pgconn.PgError{Code: CodeUniqueViolation}
	tests := []struct {
		name string
		err  error
		code string
		want bool
	}{
		{"direct match", unique, CodeUniqueViolation, true},
		{"wrapped match", fmt.Errorf("insert user: %w", unique), CodeUniqueViolation, true},
		{"different code", unique, CodeCheckViolation, false},
		{"not a pg error", errors.New("boom"), CodeUniqueViolation, false},
		{"nil", nil, CodeUniqueViolation, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPgCode(tt.err, tt.code); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func testPostgres(t *testing.T) *Database {
	t.Helper()
	url := os.Getenv("DEFINITION_DATABASE_URL")
	if url == "" {
		t.Skip("DEFINITION_DATABASE_URL not set, skipping PostgreSQL integration test")
	}
	db, err := NewPool(context.Background(), url, logger.Nop())
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestWithTx_CommitAndRollback(t *testing.T) {
	d := testPostgres(t)
	ctx := context.Background()

	if _, err := d.DB().ExecContext(ctx, `CREATE TABLE IF NOT EXISTS tx_probe (v int)`); err != nil {
		t.Fatalf("create table: %v", err)
	}
	t.Cleanup(func() { _, _ = d.DB().ExecContext(context.Background(), `DROP TABLE tx_probe`) })

	if err := d.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO tx_probe VALUES (1)`)
		return err
	}); err != nil {
		t.Fatalf("commit tx: %v", err)
	}

	sentinel := errors.New("abort")
	err := d.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO tx_probe VALUES (2)`); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got %v", err)
	}

	var n int
	if err := d.DB().QueryRowContext(ctx, `SELECT count(*) FROM tx_probe`).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 committed row, got %d", n)
	}
}

func TestNewMongo_CreateIndexes(t *testing.T) {
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		t.Skip("MONGODB_URI not set, skipping MongoDB integration test")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	m, err := NewMongo(ctx, uri, "localloop_test_db")
	if err != nil {
		t.Fatalf("NewMongo: %v", err)
	}
	defer m.Close(ctx) //nolint:errcheck
	defer m.Database().Drop(ctx) //nolint:errcheck

	if err := m.CreateIndexes(ctx); err != nil {
		t.Fatalf("CreateIndexes: %v", err)
	}
	if err := m.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}
