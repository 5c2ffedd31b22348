package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/event-hotel-booking/internal/model"
)

// EnrollmentRepo provides read access to enrollments. The booking engine
// only ever looks an enrollment up by user; enrollment creation belongs to
// the registration flow outside this service.
type EnrollmentRepo struct {
	db *sql.DB
}

// NewEnrollmentRepo constructs an EnrollmentRepo with the given DB handle.
func NewEnrollmentRepo(db *sql.DB) *EnrollmentRepo { return &EnrollmentRepo{db: db} }

// FindWithAddressByUserID returns the user's enrollment with its address
// joined in. The address may be nil when the attendee has not completed
// that step; the enrollment itself existing is what eligibility checks
// care about. ErrEnrollmentNotFound is returned when the user never
// enrolled.
func (r *EnrollmentRepo) FindWithAddressByUserID(ctx context.Context, userID uint64) (*model.Enrollment, error) {
	const q = `SELECT e.id, e.user_id, e.name, e.created_at, e.updated_at,
	                  a.id, a.street, a.city, a.state, a.postal_code
	           FROM enrollments e
	           LEFT JOIN addresses a ON a.enrollment_id = e.id
	           WHERE e.user_id = ?
	           LIMIT 1`
	var (
		e          model.Enrollment
		addrID     sql.NullInt64
		street     sql.NullString
		city       sql.NullString
		state      sql.NullString
		postalCode sql.NullString
	)
	err := r.db.QueryRowContext(ctx, q, userID).Scan(
		&e.ID, &e.UserID, &e.Name, &e.CreatedAt, &e.UpdatedAt,
		&addrID, &street, &city, &state, &postalCode,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, err
	}
	if addrID.Valid {
		e.Address = &model.Address{
			ID:           uint64(addrID.Int64),
			EnrollmentID: e.ID,
			Street:       street.String,
			City:         city.String,
			State:        state.String,
			PostalCode:   postalCode.String,
		}
	}
	return &e, nil
}
