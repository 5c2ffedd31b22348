package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/event-hotel-booking/internal/model"
)

// BookingRepo provides persistence for bookings, including the
// capacity-guarded reservation paths. Occupancy is derived by counting
// booking rows per room rather than kept as a counter, so every reserving
// method recounts inside the same transaction that performs the write.
//
// Concurrency: Create, Rebook and Upsert lock the target room row with
// SELECT ... FOR UPDATE before counting. Two concurrent reservations for
// the same room therefore serialize on the row lock; the loser re-reads
// the committed occupancy and fails with ErrNoVacancy instead of
// overbooking. Reservations for different rooms never contend.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// BookingWithRoom carries a booking together with its room details for
// display to the attendee.
type BookingWithRoom struct {
	Booking model.Booking
	Room    model.Room
}

// FindByUserID returns the user's booking with its room attached. At most
// one active booking per user is assumed; when several exist the oldest is
// returned deterministically. ErrBookingNotFound is returned when the user
// has none.
func (r *BookingRepo) FindByUserID(ctx context.Context, userID uint64) (*BookingWithRoom, error) {
	const q = `SELECT b.id, b.user_id, b.room_id, b.created_at, b.updated_at,
	                  r.id, r.hotel_id, r.name, r.capacity, r.created_at, r.updated_at
	           FROM bookings b
	           JOIN rooms r ON r.id = b.room_id
	           WHERE b.user_id = ?
	           ORDER BY b.id
	           LIMIT 1`
	var bw BookingWithRoom
	err := r.db.QueryRowContext(ctx, q, userID).Scan(
		&bw.Booking.ID, &bw.Booking.UserID, &bw.Booking.RoomID, &bw.Booking.CreatedAt, &bw.Booking.UpdatedAt,
		&bw.Room.ID, &bw.Room.HotelID, &bw.Room.Name, &bw.Room.Capacity, &bw.Room.CreatedAt, &bw.Room.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &bw, nil
}

// FindByRoomID returns all bookings referencing the given room, ordered by
// id. Occupancy is len(result); callers needing a race-free count must use
// the reserving methods instead, which count under the room row lock.
func (r *BookingRepo) FindByRoomID(ctx context.Context, roomID uint64) ([]model.Booking, error) {
	const q = `SELECT id, user_id, room_id, created_at, updated_at
	           FROM bookings WHERE room_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Booking
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(&b.ID, &b.UserID, &b.RoomID, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Create reserves a slot in the room for the user. The room row lock, the
// occupancy count and the insert run in one transaction: ErrRoomNotFound
// when the room does not exist, ErrNoVacancy when occupancy has reached
// capacity. On success the stored booking is returned with timestamps
// populated.
func (r *BookingRepo) Create(ctx context.Context, userID, roomID uint64) (*model.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	capacity, err := lockRoom(ctx, tx, roomID)
	if err != nil {
		return nil, err
	}
	occupancy, err := countRoomBookings(ctx, tx, roomID, 0)
	if err != nil {
		return nil, err
	}
	// Equal-to-capacity means full; strictly less admits one more.
	if occupancy >= int64(capacity) {
		return nil, ErrNoVacancy
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO bookings (user_id, room_id) VALUES (?, ?)`, userID, roomID)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	b, err := selectBookingTx(ctx, tx, uint64(id))
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return b, nil
}

// Rebook moves the user's existing booking to another room. The target
// room is locked and recounted excluding the booking being moved, so a
// user occupying a slot of the destination room does not block their own
// move. ErrBookingNotFound is returned when the user has no booking to
// move; room errors match Create.
func (r *BookingRepo) Rebook(ctx context.Context, userID, roomID uint64) (*model.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	capacity, err := lockRoom(ctx, tx, roomID)
	if err != nil {
		return nil, err
	}

	// Lock the booking row too so two moves of the same booking serialize.
	var bookingID uint64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM bookings WHERE user_id = ? ORDER BY id LIMIT 1 FOR UPDATE`,
		userID).Scan(&bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	occupancy, err := countRoomBookings(ctx, tx, roomID, bookingID)
	if err != nil {
		return nil, err
	}
	if occupancy >= int64(capacity) {
		return nil, ErrNoVacancy
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE bookings SET room_id = ? WHERE id = ?`, roomID, bookingID); err != nil {
		return nil, err
	}
	b, err := selectBookingTx(ctx, tx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return b, nil
}

// Upsert reserves a slot for the user in the room, reusing an existing
// booking when bookingID is non-zero and creating one otherwise. Both
// branches run under the same room row lock discipline as Create/Rebook.
func (r *BookingRepo) Upsert(ctx context.Context, bookingID, userID, roomID uint64) (*model.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	capacity, err := lockRoom(ctx, tx, roomID)
	if err != nil {
		return nil, err
	}
	occupancy, err := countRoomBookings(ctx, tx, roomID, bookingID)
	if err != nil {
		return nil, err
	}
	if occupancy >= int64(capacity) {
		return nil, ErrNoVacancy
	}

	if bookingID == 0 {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO bookings (user_id, room_id) VALUES (?, ?)`, userID, roomID)
		if err != nil {
			return nil, err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, err
		}
		bookingID = uint64(id)
	} else {
		// Verify the booking exists and belongs to the caller before
		// touching it. RowsAffected cannot distinguish "no such row" from
		// a same-room move, so ownership is checked with a locked read.
		var owner uint64
		err := tx.QueryRowContext(ctx,
			`SELECT user_id FROM bookings WHERE id = ? FOR UPDATE`, bookingID).Scan(&owner)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrBookingNotFound
			}
			return nil, err
		}
		if owner != userID {
			return nil, ErrBookingNotFound
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE bookings SET room_id = ? WHERE id = ?`, roomID, bookingID); err != nil {
			return nil, err
		}
	}

	b, err := selectBookingTx(ctx, tx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return b, nil
}

// lockRoom acquires an exclusive row lock on the room and returns its
// capacity. The lock is held until the surrounding transaction resolves,
// serializing all reservations targeting this room.
func lockRoom(ctx context.Context, tx *sql.Tx, roomID uint64) (uint32, error) {
	var capacity uint32
	err := tx.QueryRowContext(ctx,
		`SELECT capacity FROM rooms WHERE id = ? FOR UPDATE`, roomID).Scan(&capacity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrRoomNotFound
		}
		return 0, err
	}
	return capacity, nil
}

// countRoomBookings recomputes the room's occupancy inside the transaction.
// excludeID removes one booking from the count (the one being moved) and is
// ignored when zero.
func countRoomBookings(ctx context.Context, tx *sql.Tx, roomID, excludeID uint64) (int64, error) {
	var n int64
	var err error
	if excludeID == 0 {
		err = tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM bookings WHERE room_id = ?`, roomID).Scan(&n)
	} else {
		err = tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM bookings WHERE room_id = ? AND id <> ?`, roomID, excludeID).Scan(&n)
	}
	return n, err
}

// selectBookingTx reads a booking row back inside the transaction so the
// caller returns DB-populated timestamps.
func selectBookingTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Booking, error) {
	const q = `SELECT id, user_id, room_id, created_at, updated_at FROM bookings WHERE id = ?`
	var b model.Booking
	err := tx.QueryRowContext(ctx, q, id).Scan(&b.ID, &b.UserID, &b.RoomID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}
