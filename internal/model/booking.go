package model

import "time"

// Booking links one user to one room. It is the only mutable entity owned
// by the booking engine: created through the capacity-guarded create path
// and mutated only by moving it to another room. A user is assumed to hold
// at most one active booking at a time.
type Booking struct {
	ID        uint64    // bookings.id
	UserID    uint64    // bookings.user_id
	RoomID    uint64    // bookings.room_id
	CreatedAt time.Time // bookings.created_at
	UpdatedAt time.Time // bookings.updated_at
}
