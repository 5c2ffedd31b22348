package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/event-hotel-booking/internal/model"
)

// HotelRepo provides read access to hotels and their rooms for the public
// browse endpoints.
type HotelRepo struct {
	db *sql.DB
}

// NewHotelRepo constructs a HotelRepo with the given DB handle.
func NewHotelRepo(db *sql.DB) *HotelRepo { return &HotelRepo{db: db} }

// List returns all hotels ordered by id.
func (r *HotelRepo) List(ctx context.Context) ([]model.Hotel, error) {
	const q = `SELECT id, name, image, created_at, updated_at FROM hotels ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	hotels := make([]model.Hotel, 0)
	for rows.Next() {
		var h model.Hotel
		if err := rows.Scan(&h.ID, &h.Name, &h.Image, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, err
		}
		hotels = append(hotels, h)
	}
	return hotels, rows.Err()
}

// GetByID retrieves a single hotel. ErrHotelNotFound is returned when no
// row matches.
func (r *HotelRepo) GetByID(ctx context.Context, id uint64) (*model.Hotel, error) {
	const q = `SELECT id, name, image, created_at, updated_at FROM hotels WHERE id = ?`
	var h model.Hotel
	err := r.db.QueryRowContext(ctx, q, id).Scan(&h.ID, &h.Name, &h.Image, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHotelNotFound
		}
		return nil, err
	}
	return &h, nil
}

// RoomWithOccupancy pairs a room with its current booking count. The count
// is a snapshot for display; the authoritative check happens under lock in
// BookingRepo when a reservation is attempted.
type RoomWithOccupancy struct {
	Room      model.Room
	Occupancy int64
}

// ListRoomsByHotel returns the hotel's rooms with live occupancy, computed
// with a grouped left join so empty rooms report zero.
func (r *HotelRepo) ListRoomsByHotel(ctx context.Context, hotelID uint64) ([]RoomWithOccupancy, error) {
	const q = `SELECT r.id, r.hotel_id, r.name, r.capacity, r.created_at, r.updated_at,
	                  COUNT(b.id)
	           FROM rooms r
	           LEFT JOIN bookings b ON b.room_id = r.id
	           WHERE r.hotel_id = ?
	           GROUP BY r.id, r.hotel_id, r.name, r.capacity, r.created_at, r.updated_at
	           ORDER BY r.id`
	rows, err := r.db.QueryContext(ctx, q, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]RoomWithOccupancy, 0)
	for rows.Next() {
		var ro RoomWithOccupancy
		if err := rows.Scan(
			&ro.Room.ID, &ro.Room.HotelID, &ro.Room.Name, &ro.Room.Capacity,
			&ro.Room.CreatedAt, &ro.Room.UpdatedAt, &ro.Occupancy,
		); err != nil {
			return nil, err
		}
		out = append(out, ro)
	}
	return out, rows.Err()
}
