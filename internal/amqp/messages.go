package amqp

import (
	"encoding/json"
	"time"
)

// SyncCompletedMessage announces the outcome of a finished sync run so
// downstream consumers (analysis jobs, notifications) can react without
// polling the status endpoint.
type SyncCompletedMessage struct {
	Added        int       `json:"added"`
	Total        int       `json:"total"`
	UsedAccounts []string  `json:"usedAccounts"`
	CompletedAt  time.Time `json:"completedAt"`
}

// NewSyncCompletedMessage stamps a message with the current time.
func NewSyncCompletedMessage(added, total int, usedAccounts []string) *SyncCompletedMessage {
	return &SyncCompletedMessage{
		Added:        added,
		Total:        total,
		UsedAccounts: usedAccounts,
		CompletedAt:  time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *SyncCompletedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// SyncCompletedMessageFromJSON creates a message from JSON bytes.
func SyncCompletedMessageFromJSON(data []byte) (*SyncCompletedMessage, error) {
	var msg SyncCompletedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
