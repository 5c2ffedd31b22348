package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-hotel-booking/internal/model"
	"github.com/iliyamo/event-hotel-booking/internal/repository"
	"github.com/iliyamo/event-hotel-booking/internal/service"
)

// bookingService is the slice of the engine the handler needs; tests
// substitute a stub.
type bookingService interface {
	GetBooking(ctx context.Context, userID uint64) (*repository.BookingWithRoom, error)
	CreateBooking(ctx context.Context, userID, roomID uint64) (*model.Booking, error)
	UpdateBooking(ctx context.Context, userID, roomID uint64) (*model.Booking, error)
}

// BookingHandler exposes the three booking endpoints.
type BookingHandler struct {
	svc bookingService
}

func NewBookingHandler(svc bookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

type bookingReq struct {
	RoomID uint64 `json:"roomId"`
}

type roomPart struct {
	ID       uint64 `json:"id"`
	HotelID  uint64 `json:"hotelId"`
	Name     string `json:"name"`
	Capacity uint32 `json:"capacity"`
}

type bookingResp struct {
	ID   uint64   `json:"id"`
	Room roomPart `json:"room"`
}

// Get returns the authenticated user's booking with its room, or 404.
func (h *BookingHandler) Get(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	bw, err := h.svc.GetBooking(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, bookingResp{
		ID: bw.Booking.ID,
		Room: roomPart{
			ID:       bw.Room.ID,
			HotelID:  bw.Room.HotelID,
			Name:     bw.Room.Name,
			Capacity: bw.Room.Capacity,
		},
	})
}

// Create reserves a room slot for the authenticated user.
func (h *BookingHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req bookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.svc.CreateBooking(ctx, uid, req.RoomID)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"booking_id": b.ID})
}

// Update moves the user's booking to another room. The path parameter must
// be a positive integer; the booking moved is the caller's own.
func (h *BookingHandler) Update(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookingID, err := strconv.ParseUint(c.Param("bookingId"), 10, 64)
	if err != nil || bookingID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var req bookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.svc.UpdateBooking(ctx, uid, req.RoomID)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"booking_id": b.ID})
}

// bookingError maps engine failures to status codes: invalid input 400,
// business-rule violations (eligibility, full room) 403, unknown room 404.
func bookingError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidRoom):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	case errors.Is(err, service.ErrNotEligible):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "cannot book a room"})
	case errors.Is(err, repository.ErrNoVacancy):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "room is full"})
	case errors.Is(err, repository.ErrRoomNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed"})
	}
}
