// Package service implements the booking engine: eligibility evaluation
// and orchestration of the capacity-guarded reservation paths. Storage is
// injected through narrow interfaces so the engine never touches an
// ambient database handle.
package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/iliyamo/event-hotel-booking/internal/model"
	"github.com/iliyamo/event-hotel-booking/internal/queue"
	"github.com/iliyamo/event-hotel-booking/internal/repository"
)

// ErrNotEligible is the single business-rule failure for booking
// mutations: missing enrollment, missing or unpaid ticket, remote ticket
// type, a type without hotel accommodation, or (on update) no existing
// booking to move. The boundary layer maps it to 403 without
// distinguishing the cause.
var ErrNotEligible = errors.New("user cannot book a room")

// ErrInvalidRoom is returned when the room id fails input validation
// before any business rule runs.
var ErrInvalidRoom = errors.New("invalid room id")

// EnrollmentStore is the slice of enrollment persistence the engine reads.
type EnrollmentStore interface {
	FindWithAddressByUserID(ctx context.Context, userID uint64) (*model.Enrollment, error)
}

// TicketStore is the slice of ticket persistence the engine reads.
type TicketStore interface {
	FindByEnrollmentID(ctx context.Context, enrollmentID uint64) (*model.Ticket, error)
}

// BookingStore owns physical booking storage. Create and Rebook must treat
// the occupancy check and the write as one atomic unit per room; the
// repository implementation does so with a room row lock held across
// count and write.
type BookingStore interface {
	FindByUserID(ctx context.Context, userID uint64) (*repository.BookingWithRoom, error)
	Create(ctx context.Context, userID, roomID uint64) (*model.Booking, error)
	Rebook(ctx context.Context, userID, roomID uint64) (*model.Booking, error)
}

// EventPublisher emits booking events after successful mutations.
// Publishing is best effort and never fails the request.
type EventPublisher interface {
	PublishBookingEvent(ctx context.Context, event queue.BookingEvent) error
}

// BookingService orchestrates eligibility and reservation for the three
// booking operations. Eligibility and capacity are re-checked on every
// mutating call: ticket status and room occupancy change between requests,
// so the engine always reflects current state rather than a session
// snapshot.
type BookingService struct {
	enrollments EnrollmentStore
	tickets     TicketStore
	bookings    BookingStore
	events      EventPublisher // nil disables event publishing
}

// NewBookingService constructs a BookingService. events may be nil when no
// broker is configured.
func NewBookingService(enrollments EnrollmentStore, tickets TicketStore, bookings BookingStore, events EventPublisher) *BookingService {
	if enrollments == nil || tickets == nil || bookings == nil {
		panic("nil store passed to NewBookingService")
	}
	return &BookingService{
		enrollments: enrollments,
		tickets:     tickets,
		bookings:    bookings,
		events:      events,
	}
}

// GetBooking returns the user's booking with room details, or
// repository.ErrBookingNotFound. It never mutates state.
func (s *BookingService) GetBooking(ctx context.Context, userID uint64) (*repository.BookingWithRoom, error) {
	return s.bookings.FindByUserID(ctx, userID)
}

// CreateBooking reserves a room slot for the user. Order of checks: input
// validation, eligibility, then the atomic room-capacity reservation.
// Failure kinds: ErrInvalidRoom, ErrNotEligible,
// repository.ErrRoomNotFound, repository.ErrNoVacancy.
func (s *BookingService) CreateBooking(ctx context.Context, userID, roomID uint64) (*model.Booking, error) {
	if roomID == 0 {
		return nil, ErrInvalidRoom
	}
	if _, err := s.checkEligibility(ctx, userID); err != nil {
		return nil, err
	}
	b, err := s.bookings.Create(ctx, userID, roomID)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, queue.ActionCreated, b)
	return b, nil
}

// UpdateBooking moves the user's existing booking to another room,
// re-validating eligibility and the destination's capacity. A user without
// a booking fails the business rules (ErrNotEligible), not lookup: the
// update path exists only for attendees who already reserved.
func (s *BookingService) UpdateBooking(ctx context.Context, userID, roomID uint64) (*model.Booking, error) {
	if roomID == 0 {
		return nil, ErrInvalidRoom
	}
	if _, err := s.checkEligibility(ctx, userID); err != nil {
		return nil, err
	}
	b, err := s.bookings.Rebook(ctx, userID, roomID)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return nil, ErrNotEligible
		}
		return nil, err
	}
	s.publish(ctx, queue.ActionMoved, b)
	return b, nil
}

// checkEligibility decides whether the user may book a hotel room:
// an enrollment must exist, its ticket must exist and be paid, and the
// ticket type must be in-person and include hotel accommodation. Any
// violation collapses into ErrNotEligible. The check is advisory and has
// no side effects.
func (s *BookingService) checkEligibility(ctx context.Context, userID uint64) (*model.Ticket, error) {
	enrollment, err := s.enrollments.FindWithAddressByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrEnrollmentNotFound) {
			return nil, ErrNotEligible
		}
		return nil, err
	}
	ticket, err := s.tickets.FindByEnrollmentID(ctx, enrollment.ID)
	if err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return nil, ErrNotEligible
		}
		return nil, err
	}
	if ticket.Status != model.TicketStatusPaid || ticket.Type.IsRemote || !ticket.Type.IncludesHotel {
		return nil, ErrNotEligible
	}
	return ticket, nil
}

// publish emits a booking event without ever failing the request.
func (s *BookingService) publish(ctx context.Context, action string, b *model.Booking) {
	if s.events == nil {
		return
	}
	ev := queue.BookingEvent{
		Action:     action,
		BookingID:  b.ID,
		UserID:     b.UserID,
		RoomID:     b.RoomID,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.events.PublishBookingEvent(ctx, ev); err != nil {
		log.Printf("booking-service: publish %s event for booking %d: %v", action, b.ID, err)
	}
}
