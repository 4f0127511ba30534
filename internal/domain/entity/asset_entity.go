package entity

import "time"

// Asset is a binary payload stored on the external media host.
type Asset struct {
	URL     string
	AssetID string
}

// Event types published for out-of-band consumers.
const (
	EventSongRequestCreated = "song_request.created"
	EventSongDeleted        = "song.deleted"
)

// Event is a domain event published to the message broker.
type Event struct {
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurred_at"`
	Data       map[string]any `json:"data,omitempty"`
}

func NewEvent(typ string, data map[string]any) Event {
	return Event{Type: typ, OccurredAt: time.Now().UTC(), Data: data}
}
