// Package store persists extracted statements to Postgres for long-lived
// archives that outgrow a single CSV table.
package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/FACorreiaa/fatura-engine/internal/domain/ledger"
)

// DB is the slice of pgx the store needs. Both *pgxpool.Pool and the pgxmock
// pool satisfy it.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Store writes statements into the statements table.
type Store struct {
	db DB
}

// New creates a statement store over db.
func New(db DB) *Store {
	return &Store{db: db}
}

// ImportResult reports how many statements a database import actually added.
type ImportResult struct {
	Inserted int
	Skipped  int
}

const schema = `
CREATE TABLE IF NOT EXISTS statements (
	id               TEXT NOT NULL,
	source           TEXT NOT NULL,
	transaction_date DATE NOT NULL,
	payment_date     DATE,
	description      TEXT NOT NULL,
	amount_cents     BIGINT NOT NULL,
	category         TEXT NOT NULL DEFAULT '',
	location         TEXT NOT NULL DEFAULT '',
	dedup_hash       TEXT NOT NULL,
	imported_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (dedup_hash)
)`

// InitSchema creates the statements table when it does not exist yet.
func (s *Store) InitSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("creating statements table: %w", err)
	}
	return nil
}

const insertStatement = `
INSERT INTO statements (
	id, source, transaction_date, payment_date, description,
	amount_cents, category, location, dedup_hash
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (dedup_hash) DO NOTHING`

// ImportStatements inserts statements from one source document, skipping any
// whose content hash is already stored. Re-importing the same PDF is a no-op,
// mirroring the CSV merge behavior.
func (s *Store) ImportStatements(ctx context.Context, source string, statements []ledger.Statement) (ImportResult, error) {
	var result ImportResult
	for _, st := range statements {
		var paymentDate any
		if !st.PaymentDate.IsZero() {
			paymentDate = st.PaymentDate
		}

		tag, err := s.db.Exec(ctx, insertStatement,
			st.ID,
			source,
			st.TransactionDate,
			paymentDate,
			st.Description,
			st.Amount.Round(2).Shift(2).IntPart(),
			st.Category,
			st.Location,
			DedupHash(source, st),
		)
		if err != nil {
			return result, fmt.Errorf("inserting statement %q: %w", st.Description, err)
		}
		if tag.RowsAffected() == 0 {
			result.Skipped++
		} else {
			result.Inserted++
		}
	}
	return result, nil
}

// DedupHash fingerprints a statement by its content rather than its assigned
// ID, which shifts when rows are merged or re-sorted.
func DedupHash(source string, st ledger.Statement) string {
	parts := []string{
		source,
		st.TransactionDate.Format("2006-01-02"),
		st.Description,
		fmt.Sprintf("%d", st.Amount.Round(2).Shift(2).IntPart()),
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}
