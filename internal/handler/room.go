package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/grupo05/coworking-space/internal/model"
	"github.com/grupo05/coworking-space/internal/repository"
)

// RoomHandler exposes the room directory.  Reads are public; writes are
// restricted to administrators by the route layer.
type RoomHandler struct {
	Rooms *repository.RoomRepo
}

// NewRoomHandler constructs a RoomHandler and panics if the repository is nil.
func NewRoomHandler(rooms *repository.RoomRepo) *RoomHandler {
	if rooms == nil {
		panic("nil repository passed to NewRoomHandler")
	}
	return &RoomHandler{Rooms: rooms}
}

type roomReq struct {
	Name     string `json:"name"`
	Capacity uint32 `json:"capacity"`
	Status   string `json:"status"`
}

func (b *roomReq) normalize() (string, []string) {
	var problems []string
	b.Name = strings.TrimSpace(b.Name)
	if b.Name == "" {
		problems = append(problems, "name is required")
	}
	if b.Capacity == 0 {
		problems = append(problems, "capacity must be positive")
	}
	status := strings.ToUpper(strings.TrimSpace(b.Status))
	if status == "" {
		status = model.RoomAvailable
	}
	if !model.ValidRoomStatus(status) {
		problems = append(problems, "unknown room status")
	}
	return status, problems
}

// Create handles POST /v1/rooms (admin only).
func (h *RoomHandler) Create(c echo.Context) error {
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	status, problems := req.normalize()
	if len(problems) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": strings.Join(problems, "; ")})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	room := &model.Room{Name: req.Name, Capacity: req.Capacity, Status: status}
	if err := h.Rooms.Create(ctx, room); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create room failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": room})
}

// List handles GET /v1/rooms (public).
func (h *RoomHandler) List(c echo.Context) error {
	rooms, err := h.Rooms.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list rooms failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": rooms})
}

// Get handles GET /v1/rooms/:id (public).
func (h *RoomHandler) Get(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	room, err := h.Rooms.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "fetch room failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": room})
}

// Update handles PUT /v1/rooms/:id (admin only).  Changing a room's
// status never touches existing reservations; it only gates future ones.
func (h *RoomHandler) Update(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	status, problems := req.normalize()
	if len(problems) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": strings.Join(problems, "; ")})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	room := &model.Room{ID: id, Name: req.Name, Capacity: req.Capacity, Status: status}
	if err := h.Rooms.Update(ctx, room); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update room failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": room})
}

// Delete handles DELETE /v1/rooms/:id (admin only).  Rooms still backing
// reservations refuse deletion with 409.
func (h *RoomHandler) Delete(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Rooms.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrRoomNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "room has reservations"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete room failed"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}
