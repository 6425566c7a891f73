package events

import (
	"encoding/json"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// TopicRosterChanged carries RosterChanged events.
const TopicRosterChanged = "roster.changed"

const (
	RosterActionAdded   = "added"
	RosterActionRemoved = "removed"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the topic the event is published on.
	EventType() string
	Timestamp() time.Time
}

// RosterChanged is emitted after a roster row is inserted or deleted.
type RosterChanged struct {
	UserID     uuid.UUID `json:"user_id"`
	Action     string    `json:"action"`
	PlayerName string    `json:"player_name,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (e RosterChanged) EventType() string {
	return TopicRosterChanged
}

func (e RosterChanged) Timestamp() time.Time {
	return e.OccurredAt
}

// ToMessage encodes an event as a watermill message with a fresh UUID.
func ToMessage(e Event) (*message.Message, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_type", e.EventType())
	return msg, nil
}

func DecodeRosterChanged(msg *message.Message) (RosterChanged, error) {
	var e RosterChanged
	err := json.Unmarshal(msg.Payload, &e)
	return e, err
}
