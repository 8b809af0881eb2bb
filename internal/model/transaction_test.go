package model

import (
	"encoding/json"
	"testing"
)

func TestAmountUnmarshal(t *testing.T) {
	tests := []struct {
		name      string
		payload   string
		want      Amount
		wantValue int64
	}{
		{"number", `{"creditAmount": 150000}`, "150000", 150000},
		{"numeric string", `{"creditAmount": "2000"}`, "2000", 2000},
		{"null", `{"creditAmount": null}`, AmountMissing, 0},
		{"empty string", `{"creditAmount": ""}`, AmountMissing, 0},
		{"missing field", `{}`, "", 0},
		{"placeholder", `{"creditAmount": "N/A"}`, AmountMissing, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tx Transaction
			if err := json.Unmarshal([]byte(tt.payload), &tx); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if tx.CreditAmount != tt.want {
				t.Errorf("CreditAmount = %q, want %q", tx.CreditAmount, tt.want)
			}
			if got := tx.CreditAmount.Value(); got != tt.wantValue {
				t.Errorf("Value() = %d, want %d", got, tt.wantValue)
			}
		})
	}
}

func TestAmountMarshalRoundTrip(t *testing.T) {
	tx := Transaction{
		RefNo:           "FT1",
		TransactionDate: "14/03/2025 10:00:00",
		CreditAmount:    "150000",
	}

	data, err := json.Marshal(tx)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var got Transaction
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got.CreditAmount != tx.CreditAmount || got.RefNo != tx.RefNo {
		t.Errorf("round trip = %+v, want %+v", got, tx)
	}
}

func TestTransactionHistoryDecode(t *testing.T) {
	payload := `{
		"transactionHistoryList": [
			{"refNo": "A", "transactionDate": "14/03/2025 10:00:00", "creditAmount": 1000},
			{"refNo": "B", "transactionDate": "14/03/2025 09:00:00", "creditAmount": "2000"}
		]
	}`

	var history TransactionHistory
	if err := json.Unmarshal([]byte(payload), &history); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(history.TransactionHistoryList) != 2 {
		t.Fatalf("len = %d, want 2", len(history.TransactionHistoryList))
	}
	if history.TransactionHistoryList[0].CreditAmount.Value() != 1000 {
		t.Errorf("first amount = %d, want 1000", history.TransactionHistoryList[0].CreditAmount.Value())
	}
}
