// Package repository defines sentinel error values shared across the
// individual repositories. Higher layers compare against these with
// errors.Is to translate storage outcomes into API responses; for example
// ErrNoVacancy becomes an HTTP 403 while ErrRoomNotFound becomes a 404.
package repository

import "errors"

// ErrRoomNotFound is returned when a room lookup fails.
var ErrRoomNotFound = errors.New("room not found")

// ErrHotelNotFound is returned when a hotel lookup fails.
var ErrHotelNotFound = errors.New("hotel not found")

// ErrBookingNotFound is returned when a user has no booking or a booking
// id does not exist.
var ErrBookingNotFound = errors.New("booking not found")

// ErrEnrollmentNotFound is returned when a user has no enrollment record.
var ErrEnrollmentNotFound = errors.New("enrollment not found")

// ErrTicketNotFound is returned when an enrollment has no ticket.
var ErrTicketNotFound = errors.New("ticket not found")

// ErrNoVacancy is returned when a room is at capacity. The reservation
// transaction detects this after acquiring the room row lock, so a caller
// losing a concurrent race observes this error rather than an overbooked
// room.
var ErrNoVacancy = errors.New("room has no vacancy")
