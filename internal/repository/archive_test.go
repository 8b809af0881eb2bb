package repository

import (
	"path/filepath"
	"testing"
	"time"

	"mbbank-monitor/internal/model"
)

func newTestArchive(t *testing.T) *ArchiveRepository {
	t.Helper()
	archive, err := NewArchiveRepository(filepath.Join(t.TempDir(), "transactions.db"))
	if err != nil {
		t.Fatalf("NewArchiveRepository() error = %v", err)
	}
	t.Cleanup(func() { archive.Close() })
	return archive
}

func TestArchiveSaveAndTotals(t *testing.T) {
	archive := newTestArchive(t)
	day := time.Date(2025, time.March, 14, 10, 0, 0, 0, time.Local)

	txs := []model.Transaction{
		{RefNo: "A", TransactionDate: "14/03/2025 09:00:00", CreditAmount: "1000"},
		{RefNo: "B", TransactionDate: "14/03/2025 10:00:00", CreditAmount: "2000"},
	}
	for i := range txs {
		if err := archive.Save(&txs[i], day); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	total, count, err := archive.DailyTotals(day)
	if err != nil {
		t.Fatalf("DailyTotals() error = %v", err)
	}
	if total != 3000 || count != 2 {
		t.Errorf("DailyTotals() = (%d, %d), want (3000, 2)", total, count)
	}

	// Other days stay empty
	total, count, err = archive.DailyTotals(day.AddDate(0, 0, 1))
	if err != nil {
		t.Fatal(err)
	}
	if total != 0 || count != 0 {
		t.Errorf("next day totals = (%d, %d), want (0, 0)", total, count)
	}
}

func TestArchiveIgnoresDuplicates(t *testing.T) {
	archive := newTestArchive(t)
	day := time.Date(2025, time.March, 14, 10, 0, 0, 0, time.Local)

	tx := model.Transaction{RefNo: "A", TransactionDate: "14/03/2025 09:00:00", CreditAmount: "1000"}
	if err := archive.Save(&tx, day); err != nil {
		t.Fatal(err)
	}
	if err := archive.Save(&tx, day.Add(time.Minute)); err != nil {
		t.Fatalf("re-saving the same identity must not error: %v", err)
	}

	count, err := archive.Count()
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("Count() = %d, want 1 (same identity archived once)", count)
	}
}
