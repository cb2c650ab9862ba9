package domain

import (
	"encoding/json"
	"time"
)

// Event types
const (
	EventTypeTransactionRecorded = "transaction.recorded"
	EventTypeTransactionUpdated  = "transaction.updated"
)

// Aggregate types
const (
	AggregateTypeTransaction = "transaction"
)

// OutboxEvent is an event stored alongside the write that produced it and
// relayed to the broker afterwards.
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       json.RawMessage
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// EntryPayload is an entry inside an event payload.
type EntryPayload struct {
	EntryID   string `json:"entry_id"`
	AccountID string `json:"account_id"`
	Amount    string `json:"amount"`
	Currency  string `json:"currency"`
}

// TransactionRecordedEvent payload
type TransactionRecordedEvent struct {
	TransactionID string         `json:"transaction_id"`
	Type          string         `json:"type"`
	Date          string         `json:"date"`
	Description   string         `json:"description,omitempty"`
	PayeeID       string         `json:"payee_id,omitempty"`
	CategoryID    string         `json:"category_id,omitempty"`
	Entries       []EntryPayload `json:"entries"`
}

// NewTransactionRecordedEvent builds the payload for t.
func NewTransactionRecordedEvent(t *Transaction) TransactionRecordedEvent {
	ev := TransactionRecordedEvent{
		TransactionID: t.ID(),
		Type:          string(t.Type()),
		Date:          t.Date().Format(DateLayout),
		Description:   t.Description(),
		PayeeID:       t.PayeeID(),
		CategoryID:    t.CategoryID(),
	}

	for _, e := range t.Entries() {
		ev.Entries = append(ev.Entries, EntryPayload{
			EntryID:   e.ID(),
			AccountID: e.AccountID(),
			Amount:    e.Amount().Amount().StringFixed(AmountScale),
			Currency:  e.Amount().Currency(),
		})
	}

	return ev
}

// NewTransactionOutboxEvent wraps the current state of t in an outbox event of eventType.
func NewTransactionOutboxEvent(id, eventType string, t *Transaction, at time.Time) (*OutboxEvent, error) {
	payload, err := json.Marshal(NewTransactionRecordedEvent(t))
	if err != nil {
		return nil, err
	}

	return &OutboxEvent{
		ID:            id,
		AggregateID:   t.ID(),
		AggregateType: AggregateTypeTransaction,
		EventType:     eventType,
		Payload:       payload,
		CreatedAt:     at,
	}, nil
}
