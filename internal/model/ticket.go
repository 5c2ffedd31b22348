package model

import "time"

// Ticket statuses as stored in tickets.status.
const (
	TicketStatusReserved = "RESERVED" // created but not paid yet
	TicketStatusPaid     = "PAID"     // payment confirmed
)

// TicketType is read-only reference data describing what a ticket grants.
// Remote ticket types attend online and never include hotel accommodation.
//
// Fields:
//
//	ID            – primary key identifier.
//	Name          – display name of the type.
//	PriceCents    – price in cents.
//	IsRemote      – true when the type is for online attendance.
//	IncludesHotel – true when the type grants hotel accommodation.
//	CreatedAt     – creation timestamp.
//	UpdatedAt     – last update timestamp.
type TicketType struct {
	ID            uint64    // ticket_types.id
	Name          string    // ticket_types.name
	PriceCents    uint32    // ticket_types.price_cents
	IsRemote      bool      // ticket_types.is_remote
	IncludesHotel bool      // ticket_types.includes_hotel
	CreatedAt     time.Time // ticket_types.created_at
	UpdatedAt     time.Time // ticket_types.updated_at
}

// Ticket is the proof of registration payment state for one enrollment.
// The Type field is populated by the repository via a join so eligibility
// rules can be evaluated without a second lookup.
type Ticket struct {
	ID           uint64     // tickets.id
	EnrollmentID uint64     // tickets.enrollment_id
	TicketTypeID uint64     // tickets.ticket_type_id
	Status       string     // tickets.status (RESERVED | PAID)
	Type         TicketType // joined from ticket_types
	CreatedAt    time.Time  // tickets.created_at
	UpdatedAt    time.Time  // tickets.updated_at
}
