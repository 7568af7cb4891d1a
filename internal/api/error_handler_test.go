package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sweetshop/sweetshop-api/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "echo error passes through",
			err:        echo.NewHTTPError(http.StatusBadRequest, "invalid payload"),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "invalid payload",
		},
		{
			name:       "validation error",
			err:        domain.NewValidationError("price must be positive"),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "price must be positive",
		},
		{
			name:       "sweet not found",
			err:        domain.ErrSweetNotFound,
			wantStatus: http.StatusNotFound,
			wantMsg:    "sweet not found",
		},
		{
			name:       "insufficient stock",
			err:        domain.ErrInsufficientStock,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "insufficient quantity in stock",
		},
		{
			name:       "duplicate user",
			err:        domain.ErrUserExists,
			wantStatus: http.StatusConflict,
			wantMsg:    "user with this email already exists",
		},
		{
			name:       "invalid credentials",
			err:        domain.ErrInvalidCredentials,
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "invalid email or password",
		},
		{
			name:       "user not found is indistinguishable from bad password",
			err:        domain.ErrUserNotFound,
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "invalid email or password",
		},
		{
			name:       "unknown error hides details",
			err:        errors.New("pq: connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "internal server error",
		},
	}

	handler := NewHTTPErrorHandler(zerolog.Nop())

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler(tc.err, c)

			if rec.Code != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, rec.Code)
			}

			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json body: %v", err)
			}
			if resp.Error != tc.wantMsg {
				t.Fatalf("expected message %q, got %q", tc.wantMsg, resp.Error)
			}
		})
	}
}

func TestHTTPErrorHandler_CommittedResponse(t *testing.T) {
	handler := NewHTTPErrorHandler(zerolog.Nop())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = c.JSON(http.StatusOK, map[string]string{"ok": "true"})
	handler(errors.New("late failure"), c)

	// Once the response is committed the handler must not write again.
	if rec.Code != http.StatusOK {
		t.Fatalf("committed response overwritten, got %d", rec.Code)
	}
}
