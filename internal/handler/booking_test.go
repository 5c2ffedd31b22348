package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/event-hotel-booking/internal/model"
	"github.com/iliyamo/event-hotel-booking/internal/repository"
	"github.com/iliyamo/event-hotel-booking/internal/service"
)

type stubBookingService struct {
	getResult *repository.BookingWithRoom
	getErr    error
	mutResult *model.Booking
	mutErr    error

	gotUserID uint64
	gotRoomID uint64
}

func (s *stubBookingService) GetBooking(_ context.Context, userID uint64) (*repository.BookingWithRoom, error) {
	s.gotUserID = userID
	return s.getResult, s.getErr
}

func (s *stubBookingService) CreateBooking(_ context.Context, userID, roomID uint64) (*model.Booking, error) {
	s.gotUserID, s.gotRoomID = userID, roomID
	return s.mutResult, s.mutErr
}

func (s *stubBookingService) UpdateBooking(_ context.Context, userID, roomID uint64) (*model.Booking, error) {
	s.gotUserID, s.gotRoomID = userID, roomID
	return s.mutResult, s.mutErr
}

func newBookingCtx(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	// The JWT middleware stores the sub claim as float64.
	c.Set("user_id", float64(7))
	return c, rec
}

func TestBookingGet(t *testing.T) {
	t.Run("returns booking with room", func(t *testing.T) {
		stub := &stubBookingService{getResult: &repository.BookingWithRoom{
			Booking: model.Booking{ID: 42, UserID: 7, RoomID: 10},
			Room:    model.Room{ID: 10, HotelID: 3, Name: "101", Capacity: 4},
		}}
		h := NewBookingHandler(stub)

		c, rec := newBookingCtx(http.MethodGet, "/v1/booking", "")
		require.NoError(t, h.Get(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, uint64(7), stub.gotUserID)
		assert.Contains(t, rec.Body.String(), `"id":42`)
		assert.Contains(t, rec.Body.String(), `"name":"101"`)
	})

	t.Run("404 when user has no booking", func(t *testing.T) {
		h := NewBookingHandler(&stubBookingService{getErr: repository.ErrBookingNotFound})

		c, rec := newBookingCtx(http.MethodGet, "/v1/booking", "")
		require.NoError(t, h.Get(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("401 without authenticated user", func(t *testing.T) {
		h := NewBookingHandler(&stubBookingService{})

		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/v1/booking", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		require.NoError(t, h.Get(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestBookingCreate(t *testing.T) {
	cases := []struct {
		name     string
		svcErr   error
		wantCode int
	}{
		{"success", nil, http.StatusOK},
		{"invalid room id", service.ErrInvalidRoom, http.StatusBadRequest},
		{"not eligible", service.ErrNotEligible, http.StatusForbidden},
		{"room full", repository.ErrNoVacancy, http.StatusForbidden},
		{"room not found", repository.ErrRoomNotFound, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubBookingService{mutErr: tc.svcErr}
			if tc.svcErr == nil {
				stub.mutResult = &model.Booking{ID: 42, UserID: 7, RoomID: 10}
			}
			h := NewBookingHandler(stub)

			c, rec := newBookingCtx(http.MethodPost, "/v1/booking", `{"roomId":10}`)
			require.NoError(t, h.Create(c))

			assert.Equal(t, tc.wantCode, rec.Code)
			assert.Equal(t, uint64(10), stub.gotRoomID)
			if tc.svcErr == nil {
				assert.Contains(t, rec.Body.String(), `"booking_id":42`)
			}
		})
	}
}

func TestBookingUpdate(t *testing.T) {
	newUpdateCtx := func(bookingID, body string) (echo.Context, *httptest.ResponseRecorder) {
		c, rec := newBookingCtx(http.MethodPut, "/v1/booking/"+bookingID, body)
		c.SetParamNames("bookingId")
		c.SetParamValues(bookingID)
		return c, rec
	}

	t.Run("success", func(t *testing.T) {
		stub := &stubBookingService{mutResult: &model.Booking{ID: 42, UserID: 7, RoomID: 20}}
		h := NewBookingHandler(stub)

		c, rec := newUpdateCtx("42", `{"roomId":20}`)
		require.NoError(t, h.Update(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, uint64(20), stub.gotRoomID)
		assert.Contains(t, rec.Body.String(), `"booking_id":42`)
	})

	t.Run("rejects non-numeric booking id", func(t *testing.T) {
		h := NewBookingHandler(&stubBookingService{})

		c, rec := newUpdateCtx("abc", `{"roomId":20}`)
		require.NoError(t, h.Update(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects zero booking id", func(t *testing.T) {
		h := NewBookingHandler(&stubBookingService{})

		c, rec := newUpdateCtx("0", `{"roomId":20}`)
		require.NoError(t, h.Update(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects negative booking id", func(t *testing.T) {
		h := NewBookingHandler(&stubBookingService{})

		c, rec := newUpdateCtx("-1", `{"roomId":20}`)
		require.NoError(t, h.Update(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("403 when no booking to move", func(t *testing.T) {
		h := NewBookingHandler(&stubBookingService{mutErr: service.ErrNotEligible})

		c, rec := newUpdateCtx("42", `{"roomId":20}`)
		require.NoError(t, h.Update(c))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("404 when destination room missing", func(t *testing.T) {
		h := NewBookingHandler(&stubBookingService{mutErr: repository.ErrRoomNotFound})

		c, rec := newUpdateCtx("42", `{"roomId":99}`)
		require.NoError(t, h.Update(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
