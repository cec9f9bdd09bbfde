package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/task-manager/internal/core/domain"
	"github.com/99minutos/task-manager/internal/core/ports"
)

// fakeIssuer accepts tokens of the form "valid:<user id>".
type fakeIssuer struct{}

func (fakeIssuer) Issue(identity ports.Identity) (string, error) {
	return "valid:" + identity.UserID, nil
}

func (fakeIssuer) Verify(token string) (ports.Identity, error) {
	id, ok := strings.CutPrefix(token, "valid:")
	if !ok || id == "" {
		return ports.Identity{}, errors.New("invalid token")
	}
	return ports.Identity{UserID: id}, nil
}

func runAuth(t *testing.T, header string) (called bool, userID string, err error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/task", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	handler := Auth(fakeIssuer{}, zerolog.Nop())(func(c echo.Context) error {
		called = true
		userID = UserID(c)
		return c.NoContent(http.StatusOK)
	})
	err = handler(c)
	return called, userID, err
}

func TestAuthMiddleware_RawToken(t *testing.T) {
	called, userID, err := runAuth(t, "valid:user_1")
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if userID != "user_1" {
		t.Fatalf("expected user_1 in context, got %q", userID)
	}
}

func TestAuthMiddleware_BearerPrefixTolerated(t *testing.T) {
	for _, header := range []string{"Bearer valid:user_1", "bearer valid:user_1", "  Bearer   valid:user_1 "} {
		_, userID, err := runAuth(t, header)
		if err != nil || userID != "user_1" {
			t.Fatalf("header %q: userID=%q err=%v", header, userID, err)
		}
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	called, _, err := runAuth(t, "")
	if called {
		t.Fatalf("should not reach next")
	}
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	for _, header := range []string{"not-a-token", "Bearer ", "Token valid:user_1"} {
		called, _, err := runAuth(t, header)
		if called {
			t.Fatalf("header %q: should not reach next", header)
		}
		if !errors.Is(err, domain.ErrUnauthenticated) {
			t.Fatalf("header %q: expected ErrUnauthenticated, got %v", header, err)
		}
	}
}

func TestUserID_OutsideGate(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	if got := UserID(c); got != "" {
		t.Fatalf("expected empty user id, got %q", got)
	}
}
