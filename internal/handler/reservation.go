package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/grupo05/coworking-space/internal/booking"
)

// ReservationHandler translates HTTP requests into booking engine calls.
// All routes assume the JWT middleware already stashed user_id and role
// in the context; ownership rules are enforced by the engine, not here.
type ReservationHandler struct {
	Engine *booking.Engine
}

// NewReservationHandler constructs a ReservationHandler and panics if the
// engine is nil.
func NewReservationHandler(engine *booking.Engine) *ReservationHandler {
	if engine == nil {
		panic("nil engine passed to NewReservationHandler")
	}
	return &ReservationHandler{Engine: engine}
}

// reservationReq is the wire shape shared by create and update.  Dates
// arrive as strings so both RFC 3339 timestamps and plain dates work.
type reservationReq struct {
	UserID            uint64   `json:"user_id"`
	Status            string   `json:"status"`
	Description       string   `json:"description"`
	DateInit          string   `json:"date_init"`
	DateEnd           string   `json:"date_end"`
	RoomIDs           []uint64 `json:"room_ids"`
	ParticipantEmails []string `json:"participant_emails"`
}

// Create handles POST /v1/reservations.  Omitting user_id books for the
// caller; naming another user requires the ADMIN role.
func (h *ReservationHandler) Create(c echo.Context) error {
	ident, err := identityFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body reservationReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if body.UserID == 0 {
		body.UserID = ident.UserID
	}
	req := booking.CreateRequest{
		UserID:            body.UserID,
		Status:            body.Status,
		Description:       body.Description,
		RoomIDs:           body.RoomIDs,
		ParticipantEmails: body.ParticipantEmails,
	}
	// Unparseable dates stay zero; the engine reports them as required.
	req.DateInit, _ = parseTimestamp(body.DateInit)
	req.DateEnd, _ = parseTimestamp(body.DateEnd)

	res, err := h.Engine.Create(c.Request().Context(), &req, ident)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": res})
}

// Update handles PUT /v1/reservations/:id.  The owning user is immutable;
// every other field is replaced.
func (h *ReservationHandler) Update(c echo.Context) error {
	ident, err := identityFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	var body reservationReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req := booking.UpdateRequest{
		ID:          id,
		Status:      body.Status,
		Description: body.Description,
		RoomIDs:     body.RoomIDs,
	}
	req.DateInit, _ = parseTimestamp(body.DateInit)
	req.DateEnd, _ = parseTimestamp(body.DateEnd)

	res, err := h.Engine.Update(c.Request().Context(), &req, ident)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": res})
}

// Get handles GET /v1/reservations/:id.
func (h *ReservationHandler) Get(c echo.Context) error {
	ident, err := identityFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	res, err := h.Engine.Get(c.Request().Context(), id, ident)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": res})
}

// List handles GET /v1/reservations.  Administrators see everything,
// everyone else sees their own.
func (h *ReservationHandler) List(c echo.Context) error {
	ident, err := identityFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.Engine.List(c.Request().Context(), ident)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ListBetween handles GET /v1/reservations/between?start=...&end=...
// It reports every reservation overlapping the closed interval,
// regardless of rooms or owner.
func (h *ReservationHandler) ListBetween(c echo.Context) error {
	start, okStart := parseTimestamp(c.QueryParam("start"))
	end, okEnd := parseTimestamp(c.QueryParam("end"))
	if !okStart || !okEnd {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start and end query params are required"})
	}
	items, err := h.Engine.ListBetween(c.Request().Context(), start, end)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Delete handles DELETE /v1/reservations/:id.
func (h *ReservationHandler) Delete(c echo.Context) error {
	ident, err := identityFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	if err := h.Engine.Delete(c.Request().Context(), id, ident); err != nil {
		return engineError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteAllForUser handles DELETE /v1/users/:id/reservations.  Used for
// account cleanup before removing a user.  Deletions are per
// reservation, so a failure partway through leaves the earlier ones
// gone; re-running the call is safe.
func (h *ReservationHandler) DeleteAllForUser(c echo.Context) error {
	ident, err := identityFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	if err := h.Engine.DeleteAllForUser(c.Request().Context(), userID, ident); err != nil {
		return engineError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
