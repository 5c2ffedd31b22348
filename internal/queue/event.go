// Package queue defines the booking events exchanged over the message
// broker plus the publisher and the background consumer.
package queue

// Booking event actions.
const (
	ActionCreated = "created" // a new booking reserved a slot
	ActionMoved   = "moved"   // an existing booking changed rooms
)

// BookingEvent is published after a booking is successfully created or
// moved. It carries enough for downstream consumers to log or notify
// without querying the primary database.
type BookingEvent struct {
	Action     string `json:"action"`
	BookingID  uint64 `json:"booking_id"`
	UserID     uint64 `json:"user_id"`
	RoomID     uint64 `json:"room_id"`
	OccurredAt string `json:"occurred_at"`
}
