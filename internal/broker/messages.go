package broker

import (
	"encoding/json"
	"errors"
	"time"
)

// InvalidationMessage announces that a user's cached snapshot is stale.
type InvalidationMessage struct {
	UserID    string    `json:"user_id"`
	Origin    string    `json:"origin"`
	Timestamp time.Time `json:"timestamp"`
}

// NewInvalidationMessage creates a message for userID sent by origin.
func NewInvalidationMessage(userID, origin string) *InvalidationMessage {
	return &InvalidationMessage{
		UserID:    userID,
		Origin:    origin,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *InvalidationMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// InvalidationMessageFromJSON decodes a message. A message without a user ID
// is rejected.
func InvalidationMessageFromJSON(data []byte) (*InvalidationMessage, error) {
	var msg InvalidationMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.UserID == "" {
		return nil, errors.New("invalidation message has no user_id")
	}
	return &msg, nil
}
