package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-hotel-booking/internal/repository"
)

// HotelHandler serves the public hotel catalogue. Responses sit behind the
// Redis cache middleware, so reads stay cheap under load.
type HotelHandler struct {
	Hotels *repository.HotelRepo
}

func NewHotelHandler(h *repository.HotelRepo) *HotelHandler {
	return &HotelHandler{Hotels: h}
}

type hotelPart struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

type roomOccupancyPart struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	Capacity  uint32 `json:"capacity"`
	Occupancy int64  `json:"occupancy"`
}

// List returns all hotels.
func (h *HotelHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hotels, err := h.Hotels.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]hotelPart, 0, len(hotels))
	for _, ht := range hotels {
		out = append(out, hotelPart{ID: ht.ID, Name: ht.Name, Image: ht.Image})
	}
	return c.JSON(http.StatusOK, echo.Map{"hotels": out})
}

// ListRooms returns the rooms of one hotel with their current occupancy.
func (h *HotelHandler) ListRooms(c echo.Context) error {
	hotelID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || hotelID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Hotels.GetByID(ctx, hotelID); err != nil {
		if errors.Is(err, repository.ErrHotelNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	rooms, err := h.Hotels.ListRoomsByHotel(ctx, hotelID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]roomOccupancyPart, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, roomOccupancyPart{
			ID:        r.Room.ID,
			Name:      r.Room.Name,
			Capacity:  r.Room.Capacity,
			Occupancy: r.Occupancy,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"rooms": out})
}
