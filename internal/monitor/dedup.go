package monitor

import "mbbank-monitor/internal/model"

// IsNewTransaction reports whether current differs from the previously
// observed transaction. An absent previous always counts as new, and a
// difference in either RefNo or TransactionDate alone signals novelty.
func IsNewTransaction(current, previous *model.Transaction) bool {
	if previous == nil {
		return true
	}
	if current.RefNo != previous.RefNo {
		return true
	}
	if current.TransactionDate != previous.TransactionDate {
		return true
	}
	return false
}
