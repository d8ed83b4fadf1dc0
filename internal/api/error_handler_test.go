package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/maisonlumiere/storefront-api/internal/core/domain"
)

func render(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	return rec.Code, resp["error"]
}

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		err      error
		wantCode int
		wantMsg  string
	}{
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid email or password"},
		{domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
		{domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
		{domain.ErrUserExists, http.StatusConflict, "email already registered"},
		{domain.ErrProductNotFound, http.StatusNotFound, "product not found"},
		{domain.ErrOrderNotFound, http.StatusNotFound, "order not found"},
		{domain.ErrCartItemNotFound, http.StatusNotFound, "cart item not found"},
		{domain.ErrEmptyCart, http.StatusUnprocessableEntity, "cart is empty"},
		{domain.ErrInsufficientStock, http.StatusConflict, "insufficient stock"},
		{domain.ErrInvalidTransition, http.StatusUnprocessableEntity, "invalid status transition"},
		{domain.ErrInvalidInput, http.StatusBadRequest, "invalid input"},
	}

	for _, tc := range cases {
		code, msg := render(t, tc.err)
		if code != tc.wantCode {
			t.Errorf("%v: expected %d, got %d", tc.err, tc.wantCode, code)
		}
		if msg != tc.wantMsg {
			t.Errorf("%v: expected message %q, got %q", tc.err, tc.wantMsg, msg)
		}
	}
}

func TestHTTPErrorHandler_WrappedDomainError(t *testing.T) {
	wrapped := fmt.Errorf("checkout: %w", domain.ErrInsufficientStock)
	code, _ := render(t, wrapped)
	if code != http.StatusConflict {
		t.Fatalf("expected wrapped error mapped to 409, got %d", code)
	}
}

func TestHTTPErrorHandler_EchoHTTPError(t *testing.T) {
	code, msg := render(t, echo.NewHTTPError(http.StatusTeapot, "short and stout"))
	if code != http.StatusTeapot {
		t.Fatalf("expected 418, got %d", code)
	}
	if msg != "short and stout" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestHTTPErrorHandler_UnexpectedError(t *testing.T) {
	code, msg := render(t, errors.New("mongo: socket closed"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if msg != "internal server error" {
		t.Fatalf("internals must not leak to clients, got %q", msg)
	}
}
