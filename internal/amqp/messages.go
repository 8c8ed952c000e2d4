package amqp

import (
	"encoding/json"
	"fmt"
	"time"

	"moneybook/internal/core"
)

// Event names, also used as the AMQP message type
const (
	EventTransactionAdded = "transaction.added"
	EventLedgerSaved      = "ledger.saved"
)

// LedgerEvent notifies listeners that the ledger changed.
// Transaction is set for EventTransactionAdded only.
type LedgerEvent struct {
	Event       string            `json:"event"`
	Transaction *core.Transaction `json:"transaction,omitempty"`
	Count       int               `json:"count"`
	Location    string            `json:"location,omitempty"`
	Timestamp   time.Time         `json:"timestamp"`
}

// NewTransactionAddedEvent creates the event for an appended transaction;
// count is the ledger size after the append.
func NewTransactionAddedEvent(t core.Transaction, count int) *LedgerEvent {
	return &LedgerEvent{
		Event:       EventTransactionAdded,
		Transaction: &t,
		Count:       count,
		Timestamp:   time.Now().UTC(),
	}
}

// NewLedgerSavedEvent creates the event for a completed save.
func NewLedgerSavedEvent(count int, location string) *LedgerEvent {
	return &LedgerEvent{
		Event:     EventLedgerSaved,
		Count:     count,
		Location:  location,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (e *LedgerEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// LedgerEventFromJSON decodes and checks an event body.
func LedgerEventFromJSON(data []byte) (*LedgerEvent, error) {
	var e LedgerEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	switch e.Event {
	case EventTransactionAdded:
		if e.Transaction == nil {
			return nil, fmt.Errorf("%s event without transaction", e.Event)
		}
	case EventLedgerSaved:
	default:
		return nil, fmt.Errorf("unknown event %q", e.Event)
	}
	return &e, nil
}
