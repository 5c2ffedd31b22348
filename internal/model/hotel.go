package model

import "time"

// Hotel is a venue offering bookable rooms to event attendees.
type Hotel struct {
	ID        uint64    // hotels.id
	Name      string    // hotels.name
	Image     string    // hotels.image (URL)
	CreatedAt time.Time // hotels.created_at
	UpdatedAt time.Time // hotels.updated_at
}

// Room is a bookable unit with fixed capacity belonging to a hotel.
// Capacity is the maximum number of concurrent bookings the room admits;
// it is always a positive integer.
type Room struct {
	ID        uint64    // rooms.id
	HotelID   uint64    // rooms.hotel_id
	Name      string    // rooms.name
	Capacity  uint32    // rooms.capacity
	CreatedAt time.Time // rooms.created_at
	UpdatedAt time.Time // rooms.updated_at
}
