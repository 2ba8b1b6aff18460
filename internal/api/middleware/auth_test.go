package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tempsense/tracking-api/internal/core/domain"
	"github.com/tempsense/tracking-api/internal/core/service"
	"github.com/tempsense/tracking-api/internal/core/token"
)

const testSecret = "middleware-test-secret-0123456789abcdef"

func newGuard(t *testing.T) (*service.AccessGuard, *token.Codec) {
	t.Helper()
	codec, err := token.NewCodec([]byte(testSecret))
	if err != nil {
		t.Fatalf("codec: %v", err)
	}
	return service.NewAccessGuard(codec, nil, zerolog.Nop()), codec
}

func newRequest(authHeader string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func mustNotReach(t *testing.T) echo.HandlerFunc {
	return func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	guard, codec := newGuard(t)
	signed, err := codec.Issue("alice", domain.RoleAdmin, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	c, rec := newRequest("Bearer " + signed)

	called := false
	handler := Auth(guard)(func(c echo.Context) error {
		called = true
		identity, ok := IdentityFrom(c)
		if !ok {
			t.Fatalf("identity not set")
		}
		if identity.Subject != "alice" || identity.Role != domain.RoleAdmin {
			t.Fatalf("unexpected identity: %+v", identity)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_HeaderProblems(t *testing.T) {
	guard, _ := newGuard(t)

	for _, header := range []string{"", "Token abc", "Bearer", "Bearer   "} {
		c, _ := newRequest(header)
		err := Auth(guard)(mustNotReach(t))(c)

		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
			t.Fatalf("%q: expected 401 HTTPError, got %v", header, err)
		}
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	guard, codec := newGuard(t)
	expiredCodec, _ := token.NewCodec([]byte(testSecret), token.WithClock(func() time.Time {
		return time.Now().Add(-48 * time.Hour)
	}))
	expired, _ := expiredCodec.Issue("alice", domain.RoleAdmin, time.Hour)
	valid, _ := codec.Issue("alice", domain.RoleAdmin, time.Hour)
	otherCodec, _ := token.NewCodec([]byte("another-secret-of-sufficient-length-42"))
	foreign, _ := otherCodec.Issue("alice", domain.RoleAdmin, time.Hour)

	cases := map[string]string{
		"garbage":     "not-a-token",
		"expired":     expired,
		"wrong key":   foreign,
		"cut in half": valid[:len(valid)/2],
	}
	for name, tok := range cases {
		c, _ := newRequest("Bearer " + tok)
		err := Auth(guard)(mustNotReach(t))(c)
		if !errors.Is(err, domain.ErrUnauthenticated) {
			t.Fatalf("%s: expected ErrUnauthenticated, got %v", name, err)
		}
	}
}

func TestIdentityFrom_Missing(t *testing.T) {
	c, _ := newRequest("")
	if _, ok := IdentityFrom(c); ok {
		t.Fatal("expected no identity")
	}
	c.Set(identityKey, "not an identity")
	if _, ok := IdentityFrom(c); ok {
		t.Fatal("wrong type must not be accepted")
	}
}
