package monitor

import (
	"time"

	"mbbank-monitor/internal/model"
)

const summaryDateLayout = "02-01-2006"

// Summarize aggregates one day's transactions into a DailySummary. It never
// fails: a fetch error produces a zeroed summary annotated with the error
// message, and missing credit amounts count as zero.
func Summarize(date time.Time, records []model.Transaction, fetchErr error) model.DailySummary {
	summary := model.DailySummary{
		Date: date.Format(summaryDateLayout),
	}

	if fetchErr != nil {
		summary.Err = fetchErr.Error()
		return summary
	}

	for _, tx := range records {
		summary.TotalCredit += tx.CreditAmount.Value()
	}
	summary.TransactionCount = len(records)

	return summary
}
