package repository

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"mbbank-monitor/internal/model"
)

// ArchiveRepository keeps an append-only record of every confirmed new
// transaction in sqlite, for audit and local daily totals
type ArchiveRepository struct {
	db *sql.DB
}

// NewArchiveRepository opens (and if needed initializes) the archive database
func NewArchiveRepository(dbPath string) (*ArchiveRepository, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Create table if not exists
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS transactions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			ref_no TEXT NOT NULL,
			transaction_date TEXT NOT NULL,
			posting_date TEXT NOT NULL,
			credit_amount INTEGER NOT NULL,
			description TEXT NOT NULL,
			transaction_type TEXT NOT NULL,
			observed_at DATETIME NOT NULL,
			UNIQUE(ref_no, transaction_date)
		);

		CREATE INDEX IF NOT EXISTS idx_observed_at ON transactions(observed_at);
	`)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &ArchiveRepository{db: db}, nil
}

// Close closes database connection
func (r *ArchiveRepository) Close() error {
	return r.db.Close()
}

// Save records a confirmed transaction. Re-observing the same
// (ref_no, transaction_date) pair is a no-op.
func (r *ArchiveRepository) Save(tx *model.Transaction, observedAt time.Time) error {
	_, err := r.db.Exec(`
		INSERT OR IGNORE INTO transactions
			(ref_no, transaction_date, posting_date, credit_amount, description, transaction_type, observed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, tx.RefNo, tx.TransactionDate, tx.PostingDate, tx.CreditAmount.Value(),
		tx.Description, tx.TransactionType, observedAt)
	return err
}

// DailyTotals returns the locally observed credit total and count for the
// calendar day containing t
func (r *ArchiveRepository) DailyTotals(t time.Time) (int64, int, error) {
	dayStart := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	var total sql.NullInt64
	var count int
	err := r.db.QueryRow(`
		SELECT SUM(credit_amount), COUNT(*) FROM transactions
		WHERE observed_at >= ? AND observed_at < ?
	`, dayStart, dayEnd).Scan(&total, &count)
	if err != nil {
		return 0, 0, err
	}
	return total.Int64, count, nil
}

// Count returns the total number of archived transactions
func (r *ArchiveRepository) Count() (int64, error) {
	var count int64
	err := r.db.QueryRow(`SELECT COUNT(*) FROM transactions`).Scan(&count)
	return count, err
}
