package model

import (
	"encoding/json"
	"strconv"
)

// AmountMissing is the placeholder the bank API uses for absent amounts.
const AmountMissing = Amount("N/A")

// Amount is a credit amount as the bank API returns it: a JSON number, a
// numeric string, or absent. The raw form is preserved for display; Value
// gives the numeric interpretation with missing amounts counted as zero.
type Amount string

// UnmarshalJSON accepts numbers, strings and null
func (a *Amount) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*a = AmountMissing
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" {
			*a = AmountMissing
		} else {
			*a = Amount(s)
		}
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*a = Amount(n.String())
	return nil
}

// MarshalJSON renders the amount in its raw string form
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(a))
}

// Value returns the numeric value of the amount, zero when missing or
// non-numeric
func (a Amount) Value() int64 {
	if a == "" || a == AmountMissing {
		return 0
	}
	v, err := strconv.ParseInt(string(a), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func (a Amount) String() string {
	if a == "" {
		return string(AmountMissing)
	}
	return string(a)
}

// Transaction represents a single entry in the account transaction history.
// Identity is the (RefNo, TransactionDate) pair.
type Transaction struct {
	PostingDate     string `json:"postingDate"`
	TransactionDate string `json:"transactionDate"`
	CreditAmount    Amount `json:"creditAmount"`
	Description     string `json:"description"`
	RefNo           string `json:"refNo"`
	TransactionType string `json:"transactionType"`
}

// TransactionHistory is the bank API response for a history query
type TransactionHistory struct {
	TransactionHistoryList []Transaction `json:"transactionHistoryList"`
}

// DailySummary aggregates one day's incoming transactions
type DailySummary struct {
	Date             string `json:"date"`
	TotalCredit      int64  `json:"total_credit"`
	TransactionCount int    `json:"transaction_count"`
	Err              string `json:"error,omitempty"`
}
