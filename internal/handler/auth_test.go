package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/grupo05/coworking-space/internal/config"
	"github.com/grupo05/coworking-space/internal/model"
)

type fakeUserStore struct {
	createdRole     string
	createdUsername string
	nextID          uint64
}

func (f *fakeUserStore) Create(ctx context.Context, username, email, password, role string, cost int) (uint64, error) {
	f.createdUsername = username
	f.createdRole = role
	f.nextID++
	return f.nextID, nil
}

func (f *fakeUserStore) GetByUsername(ctx context.Context, username string) (model.User, error) {
	return model.User{}, sql.ErrNoRows
}

func (f *fakeUserStore) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return model.User{}, sql.ErrNoRows
}

func (f *fakeUserStore) Delete(ctx context.Context, id uint64) error { return nil }

type fakeTokenStore struct{}

func (fakeTokenStore) StoreRefresh(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error {
	return nil
}
func (fakeTokenStore) ValidateRefresh(ctx context.Context, tokenHash string) (uint64, error) {
	return 0, sql.ErrNoRows
}
func (fakeTokenStore) RevokeByHash(ctx context.Context, tokenHash string) error      { return nil }
func (fakeTokenStore) RevokeAllForUser(ctx context.Context, userID uint64) error     { return nil }

func testAuthConfig() config.Config {
	return config.Config{
		JWTSecret:      "unit-test-secret",
		AccessTTLMin:   5,
		RefreshTTLDays: 1,
		BcryptCost:     4,
	}
}

func TestRegisterIgnoresRequestedRole(t *testing.T) {
	for _, requested := range []string{"ADMIN", "admin", "USER", "", "SUPERUSER"} {
		users := &fakeUserStore{}
		h := NewAuthHandler(testAuthConfig(), users, fakeTokenStore{})

		body := `{"username":"mallory","email":"mallory@example.com","password":"pw","role":"` + requested + `"}`
		e := echo.New()
		req := httptest.NewRequest(http.MethodPost, "/v1/auth/register", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		if err := h.Register(e.NewContext(req, rec)); err != nil {
			t.Fatalf("Register: %v", err)
		}
		if rec.Code != http.StatusCreated {
			t.Fatalf("requested role %q: status = %d, want 201", requested, rec.Code)
		}
		if users.createdRole != model.RoleUser {
			t.Fatalf("requested role %q: stored role = %q, want %q", requested, users.createdRole, model.RoleUser)
		}
		var resp struct {
			User struct {
				Role string `json:"role"`
			} `json:"user"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal response: %v", err)
		}
		if resp.User.Role != model.RoleUser {
			t.Fatalf("requested role %q: response role = %q, want %q", requested, resp.User.Role, model.RoleUser)
		}
	}
}

func TestAdminCreateUserAssignsRole(t *testing.T) {
	cases := []struct {
		requested string
		want      string
	}{
		{"ADMIN", model.RoleAdmin},
		{"admin", model.RoleAdmin},
		{"USER", model.RoleUser},
		{"", model.RoleUser},
		{"SUPERUSER", model.RoleUser},
	}
	for _, tc := range cases {
		users := &fakeUserStore{}
		h := &UserHandler{Cfg: testAuthConfig(), Users: users, Tokens: fakeTokenStore{}}

		body := `{"username":"ops","email":"ops@example.com","password":"pw","role":"` + tc.requested + `"}`
		e := echo.New()
		req := httptest.NewRequest(http.MethodPost, "/v1/users", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		if err := h.Create(e.NewContext(req, rec)); err != nil {
			t.Fatalf("Create: %v", err)
		}
		if rec.Code != http.StatusCreated {
			t.Fatalf("requested %q: status = %d, want 201", tc.requested, rec.Code)
		}
		if users.createdRole != tc.want {
			t.Fatalf("requested %q: stored role = %q, want %q", tc.requested, users.createdRole, tc.want)
		}
	}
}

func TestNormalizeRole(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"ADMIN", model.RoleAdmin},
		{" admin ", model.RoleAdmin},
		{"USER", model.RoleUser},
		{"", model.RoleUser},
		{"root", model.RoleUser},
	}
	for _, tc := range cases {
		if got := normalizeRole(tc.in); got != tc.want {
			t.Errorf("normalizeRole(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
