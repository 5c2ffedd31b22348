package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	lockRoomQ     = regexp.QuoteMeta(`SELECT capacity FROM rooms WHERE id = ? FOR UPDATE`)
	countQ        = regexp.QuoteMeta(`SELECT COUNT(*) FROM bookings WHERE room_id = ?`)
	countExclQ    = regexp.QuoteMeta(`SELECT COUNT(*) FROM bookings WHERE room_id = ? AND id <> ?`)
	insertQ       = regexp.QuoteMeta(`INSERT INTO bookings (user_id, room_id) VALUES (?, ?)`)
	selectByIDQ   = regexp.QuoteMeta(`SELECT id, user_id, room_id, created_at, updated_at FROM bookings WHERE id = ?`)
	ownBookingQ   = regexp.QuoteMeta(`SELECT id FROM bookings WHERE user_id = ? ORDER BY id LIMIT 1 FOR UPDATE`)
	moveBookingQ  = regexp.QuoteMeta(`UPDATE bookings SET room_id = ? WHERE id = ?`)
	findByUserQ   = regexp.QuoteMeta(`WHERE b.user_id = ?`)
	bookingOwnerQ = regexp.QuoteMeta(`SELECT user_id FROM bookings WHERE id = ? FOR UPDATE`)
)

func newMock(t *testing.T) (*BookingRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewBookingRepo(db), mock
}

func bookingRows(id, userID, roomID uint64) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "user_id", "room_id", "created_at", "updated_at"}).
		AddRow(id, userID, roomID, now, now)
}

func TestBookingRepoCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("locks room, counts, inserts, commits", func(t *testing.T) {
		repo, mock := newMock(t)

		mock.ExpectBegin()
		mock.ExpectQuery(lockRoomQ).WithArgs(uint64(10)).
			WillReturnRows(sqlmock.NewRows([]string{"capacity"}).AddRow(3))
		mock.ExpectQuery(countQ).WithArgs(uint64(10)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
		mock.ExpectExec(insertQ).WithArgs(uint64(7), uint64(10)).
			WillReturnResult(sqlmock.NewResult(42, 1))
		mock.ExpectQuery(selectByIDQ).WithArgs(uint64(42)).
			WillReturnRows(bookingRows(42, 7, 10))
		mock.ExpectCommit()

		b, err := repo.Create(ctx, 7, 10)
		require.NoError(t, err)
		assert.Equal(t, uint64(42), b.ID)
		assert.Equal(t, uint64(10), b.RoomID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("full room rolls back without inserting", func(t *testing.T) {
		repo, mock := newMock(t)

		mock.ExpectBegin()
		mock.ExpectQuery(lockRoomQ).WithArgs(uint64(10)).
			WillReturnRows(sqlmock.NewRows([]string{"capacity"}).AddRow(3))
		mock.ExpectQuery(countQ).WithArgs(uint64(10)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
		mock.ExpectRollback()

		_, err := repo.Create(ctx, 7, 10)
		assert.ErrorIs(t, err, ErrNoVacancy)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown room rolls back", func(t *testing.T) {
		repo, mock := newMock(t)

		mock.ExpectBegin()
		mock.ExpectQuery(lockRoomQ).WithArgs(uint64(99)).
			WillReturnRows(sqlmock.NewRows([]string{"capacity"}))
		mock.ExpectRollback()

		_, err := repo.Create(ctx, 7, 99)
		assert.ErrorIs(t, err, ErrRoomNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookingRepoRebook(t *testing.T) {
	ctx := context.Background()

	t.Run("counts destination excluding own booking", func(t *testing.T) {
		repo, mock := newMock(t)

		mock.ExpectBegin()
		mock.ExpectQuery(lockRoomQ).WithArgs(uint64(20)).
			WillReturnRows(sqlmock.NewRows([]string{"capacity"}).AddRow(1))
		mock.ExpectQuery(ownBookingQ).WithArgs(uint64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
		// Occupancy 0 once booking 42 is excluded, so the move fits even
		// though the room holds only one.
		mock.ExpectQuery(countExclQ).WithArgs(uint64(20), uint64(42)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectExec(moveBookingQ).WithArgs(uint64(20), uint64(42)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(selectByIDQ).WithArgs(uint64(42)).
			WillReturnRows(bookingRows(42, 7, 20))
		mock.ExpectCommit()

		b, err := repo.Rebook(ctx, 7, 20)
		require.NoError(t, err)
		assert.Equal(t, uint64(20), b.RoomID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no booking to move", func(t *testing.T) {
		repo, mock := newMock(t)

		mock.ExpectBegin()
		mock.ExpectQuery(lockRoomQ).WithArgs(uint64(20)).
			WillReturnRows(sqlmock.NewRows([]string{"capacity"}).AddRow(2))
		mock.ExpectQuery(ownBookingQ).WithArgs(uint64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectRollback()

		_, err := repo.Rebook(ctx, 7, 20)
		assert.ErrorIs(t, err, ErrBookingNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("full destination", func(t *testing.T) {
		repo, mock := newMock(t)

		mock.ExpectBegin()
		mock.ExpectQuery(lockRoomQ).WithArgs(uint64(20)).
			WillReturnRows(sqlmock.NewRows([]string{"capacity"}).AddRow(2))
		mock.ExpectQuery(ownBookingQ).WithArgs(uint64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
		mock.ExpectQuery(countExclQ).WithArgs(uint64(20), uint64(42)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
		mock.ExpectRollback()

		_, err := repo.Rebook(ctx, 7, 20)
		assert.ErrorIs(t, err, ErrNoVacancy)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookingRepoUpsert(t *testing.T) {
	ctx := context.Background()

	t.Run("creates when no booking id given", func(t *testing.T) {
		repo, mock := newMock(t)

		mock.ExpectBegin()
		mock.ExpectQuery(lockRoomQ).WithArgs(uint64(10)).
			WillReturnRows(sqlmock.NewRows([]string{"capacity"}).AddRow(3))
		mock.ExpectQuery(countQ).WithArgs(uint64(10)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectExec(insertQ).WithArgs(uint64(7), uint64(10)).
			WillReturnResult(sqlmock.NewResult(43, 1))
		mock.ExpectQuery(selectByIDQ).WithArgs(uint64(43)).
			WillReturnRows(bookingRows(43, 7, 10))
		mock.ExpectCommit()

		b, err := repo.Upsert(ctx, 0, 7, 10)
		require.NoError(t, err)
		assert.Equal(t, uint64(43), b.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("refuses a booking owned by another user", func(t *testing.T) {
		repo, mock := newMock(t)

		mock.ExpectBegin()
		mock.ExpectQuery(lockRoomQ).WithArgs(uint64(10)).
			WillReturnRows(sqlmock.NewRows([]string{"capacity"}).AddRow(3))
		mock.ExpectQuery(countExclQ).WithArgs(uint64(10), uint64(42)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(bookingOwnerQ).WithArgs(uint64(42)).
			WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(99))
		mock.ExpectRollback()

		_, err := repo.Upsert(ctx, 42, 7, 10)
		assert.ErrorIs(t, err, ErrBookingNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookingRepoFindByUserID(t *testing.T) {
	ctx := context.Background()

	t.Run("joins room details", func(t *testing.T) {
		repo, mock := newMock(t)

		now := time.Now()
		rows := sqlmock.NewRows([]string{
			"b.id", "b.user_id", "b.room_id", "b.created_at", "b.updated_at",
			"r.id", "r.hotel_id", "r.name", "r.capacity", "r.created_at", "r.updated_at",
		}).AddRow(42, 7, 10, now, now, 10, 3, "101", 4, now, now)
		mock.ExpectQuery(findByUserQ).WithArgs(uint64(7)).WillReturnRows(rows)

		bw, err := repo.FindByUserID(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, uint64(42), bw.Booking.ID)
		assert.Equal(t, "101", bw.Room.Name)
		assert.EqualValues(t, 4, bw.Room.Capacity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no booking", func(t *testing.T) {
		repo, mock := newMock(t)

		mock.ExpectQuery(findByUserQ).WithArgs(uint64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"b.id"}))

		_, err := repo.FindByUserID(ctx, 7)
		assert.ErrorIs(t, err, ErrBookingNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookingRepoFindByRoomID(t *testing.T) {
	ctx := context.Background()
	repo, mock := newMock(t)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "user_id", "room_id", "created_at", "updated_at"}).
		AddRow(1, 7, 10, now, now).
		AddRow(2, 8, 10, now, now)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM bookings WHERE room_id = ? ORDER BY id`)).
		WithArgs(uint64(10)).WillReturnRows(rows)

	out, err := repo.FindByRoomID(ctx, 10)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, uint64(7), out[0].UserID)
	assert.Equal(t, uint64(8), out[1].UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomRepoGetByID(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	repo := NewRoomRepo(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM rooms WHERE id = ?`)).WithArgs(uint64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "hotel_id", "name", "capacity", "created_at", "updated_at"}).
			AddRow(10, 3, "101", 4, now, now))

	room, err := repo.GetByID(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, "101", room.Name)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM rooms WHERE id = ?`)).WithArgs(uint64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	_, err = repo.GetByID(ctx, 99)
	assert.ErrorIs(t, err, ErrRoomNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
