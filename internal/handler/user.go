package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/grupo05/coworking-space/internal/booking"
	"github.com/grupo05/coworking-space/internal/config"
	"github.com/grupo05/coworking-space/internal/model"
	"github.com/grupo05/coworking-space/internal/repository"
)

// UserHandler exposes administrative user management.  Creating a user
// here is the only way to mint an ADMIN account; removing one clears its
// reservations and sessions before the user row goes.
type UserHandler struct {
	Cfg    config.Config
	Users  UserStore
	Tokens TokenStore
	Engine *booking.Engine
}

// NewUserHandler constructs a UserHandler and panics on nil dependencies.
func NewUserHandler(cfg config.Config, users UserStore, tokens TokenStore, engine *booking.Engine) *UserHandler {
	if users == nil || tokens == nil || engine == nil {
		panic("nil dependency passed to NewUserHandler")
	}
	return &UserHandler{Cfg: cfg, Users: users, Tokens: tokens, Engine: engine}
}

// normalizeRole maps a requested role label onto the known set, falling
// back to USER for anything unrecognized.
func normalizeRole(requested string) string {
	if strings.ToUpper(strings.TrimSpace(requested)) == model.RoleAdmin {
		return model.RoleAdmin
	}
	return model.RoleUser
}

type createUserReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"` // USER | ADMIN
}

// Create handles POST /v1/users (admin only).  Unlike public
// registration this endpoint may assign the ADMIN role, and it returns
// the record without issuing tokens.
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/email/password required"})
	}
	role := normalizeRole(req.Role)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	uid, err := h.Users.Create(ctx, req.Username, req.Email, req.Password, role, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "username or email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"item": userPart{ID: uid, Username: req.Username, Email: req.Email, Role: role},
	})
}

// Delete handles DELETE /v1/users/:id (admin only).  Reservations are
// removed first so the foreign key on reservations.user_id cannot refuse
// the delete, then every refresh token is revoked.
func (h *UserHandler) Delete(c echo.Context) error {
	ident, err := identityFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	if _, err := h.Users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}
	if err := h.Engine.DeleteAllForUser(ctx, userID, ident); err != nil {
		return engineError(c, err)
	}
	if err := h.Tokens.RevokeAllForUser(ctx, userID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "revoke sessions failed"})
	}
	if err := h.Users.Delete(ctx, userID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "user still has dependent records"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete user failed"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}
