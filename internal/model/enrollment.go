package model

import "time"

// Enrollment is a user's registration record for the event. A user has at
// most one enrollment, and an enrollment is required before any booking
// eligibility check can pass.
//
// Fields:
//
//	ID        – primary key identifier.
//	UserID    – owning user.
//	Name      – attendee name as registered.
//	Address   – postal address captured during enrollment (nil when the
//	            attendee has not completed the address step).
//	CreatedAt – creation timestamp.
//	UpdatedAt – last update timestamp.
type Enrollment struct {
	ID        uint64    // enrollments.id
	UserID    uint64    // enrollments.user_id
	Name      string    // enrollments.name
	Address   *Address  // joined from the addresses table
	CreatedAt time.Time // enrollments.created_at
	UpdatedAt time.Time // enrollments.updated_at
}

// Address holds the postal address attached to an enrollment.
type Address struct {
	ID           uint64 // addresses.id
	EnrollmentID uint64 // addresses.enrollment_id
	Street       string // addresses.street
	City         string // addresses.city
	State        string // addresses.state
	PostalCode   string // addresses.postal_code
}
