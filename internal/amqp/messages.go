package amqp

import (
	"encoding/json"
	"time"
)

// Record event actions.
const (
	ActionCreated = "created"
	ActionDeleted = "deleted"
)

// RecordEventMessage announces that a record was created or deleted. It
// carries only the ID and the affected month key; consumers that need the
// full record fetch it from the store. The month key is what cache
// invalidation keys on.
type RecordEventMessage struct {
	ID        string    `json:"id"`
	MonthKey  string    `json:"month_key"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

// NewRecordEventMessage builds an event for a record mutation.
func NewRecordEventMessage(id, monthKey, action string) *RecordEventMessage {
	return &RecordEventMessage{
		ID:        id,
		MonthKey:  monthKey,
		Action:    action,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *RecordEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// RecordEventMessageFromJSON parses a message from JSON bytes.
func RecordEventMessageFromJSON(data []byte) (*RecordEventMessage, error) {
	var msg RecordEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// SummaryNotificationMessage carries the rendered weekly-summary text for
// whatever delivers notifications downstream.
type SummaryNotificationMessage struct {
	Message   string    `json:"message"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	Timestamp time.Time `json:"timestamp"`
}

// ToJSON converts the message to JSON bytes.
func (m *SummaryNotificationMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}
