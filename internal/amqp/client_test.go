package amqp

import (
	"strings"
	"testing"
	"time"

	"moneybook/internal/core"
)

func TestTransactionAddedEventJSON(t *testing.T) {
	tx := core.Transaction{Date: "2025-08-15", Kind: core.Expense, Category: "Food", Amount: 150, Description: "Grocery"}
	event := NewTransactionAddedEvent(tx, 4)

	body, err := event.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(body), `"event":"transaction.added"`) || !strings.Contains(string(body), `"type":"expense"`) {
		t.Fatalf("unexpected body %s", body)
	}

	got, err := LedgerEventFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Transaction == nil || *got.Transaction != tx || got.Count != 4 {
		t.Fatalf("unexpected event %+v", got)
	}
	if time.Since(got.Timestamp) > time.Minute {
		t.Fatalf("unexpected timestamp %v", got.Timestamp)
	}
}

func TestLedgerSavedEventOmitsTransaction(t *testing.T) {
	body, err := NewLedgerSavedEvent(2, "transactions.json").ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(body), `"transaction"`) {
		t.Fatalf("saved event must not carry a transaction: %s", body)
	}
	got, err := LedgerEventFromJSON(body)
	if err != nil || got.Location != "transactions.json" || got.Count != 2 {
		t.Fatalf("unexpected event %+v (err=%v)", got, err)
	}
}

func TestLedgerEventFromJSONRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "{"},
		{"unknown event", `{"event":"ledger.deleted"}`},
		{"added without transaction", `{"event":"transaction.added","count":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LedgerEventFromJSON([]byte(tt.body)); err == nil {
				t.Errorf("LedgerEventFromJSON(%s) expected error", tt.body)
			}
		})
	}
}
