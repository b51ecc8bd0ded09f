package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"boutique/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

const testSecret = "middleware-secret"

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func TestAuthRequired(t *testing.T) {
	app := fiber.New()
	app.Get("/me", AuthRequired(services.NewAuthService(nil, testSecret)), func(c *fiber.Ctx) error {
		return c.SendString(UserID(c))
	})

	valid := signed(t, jwt.MapClaims{"user_id": "u-1", "username": "siti", "exp": time.Now().Add(time.Hour).Unix()})
	expired := signed(t, jwt.MapClaims{"user_id": "u-1", "exp": time.Now().Add(-time.Hour).Unix()})
	adminOnly := signed(t, jwt.MapClaims{"email": "a@b", "role": "admin", "exp": time.Now().Add(time.Hour).Unix()})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", fiber.StatusUnauthorized},
		{"wrong scheme", "Token " + valid, fiber.StatusUnauthorized},
		{"expired", "Bearer " + expired, fiber.StatusUnauthorized},
		{"admin token", "Bearer " + adminOnly, fiber.StatusUnauthorized},
		{"valid", "Bearer " + valid, fiber.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func newGate(t *testing.T) *services.AdminGate {
	t.Helper()
	gate, err := services.NewAdminGate(services.AdminConfig{
		Email:     "admin@example.com",
		Password:  "s3cret",
		JWTSecret: testSecret,
	})
	require.NoError(t, err)
	return gate
}

func TestAdminToken(t *testing.T) {
	gate := newGate(t)
	app := fiber.New()
	app.Get("/admin", AdminToken(gate), func(c *fiber.Ctx) error {
		id := c.Locals(LocalAdmin).(*services.AdminIdentity)
		return c.SendString(id.Email)
	})

	token, _, err := gate.Login("admin@example.com", "s3cret")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	userToken := signed(t, jwt.MapClaims{"user_id": "u-1", "exp": time.Now().Add(time.Hour).Unix()})
	req = httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAdminHeaders(t *testing.T) {
	gate := newGate(t)
	app := fiber.New()
	app.Post("/theme", AdminHeaders(gate), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	tests := []struct {
		name, email, password string
		status                int
	}{
		{"correct", "admin@example.com", "s3cret", fiber.StatusNoContent},
		{"wrong password", "admin@example.com", "nope", fiber.StatusUnauthorized},
		{"wrong email", "other@example.com", "s3cret", fiber.StatusUnauthorized},
		{"missing", "", "", fiber.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/theme", nil)
			if tt.email != "" {
				req.Header.Set(HeaderAdminEmail, tt.email)
				req.Header.Set(HeaderAdminPassword, tt.password)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestRateLimiter(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	l := NewRateLimiter(LoginLimit, LoginBurst)
	l.now = func() time.Time { return now }

	for i := 0; i < LoginBurst; i++ {
		assert.True(t, l.Allow("10.0.0.1"), "request %d within burst", i)
	}
	assert.False(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.2"), "other clients have their own bucket")

	now = now.Add(time.Second)
	assert.True(t, l.Allow("10.0.0.1"), "bucket refills over time")

	now = now.Add(10 * time.Minute)
	l.Allow("10.0.0.3")
	l.mu.Lock()
	_, kept := l.visitors["10.0.0.1"]
	l.mu.Unlock()
	assert.False(t, kept, "idle visitors are collected")
}

func TestRateLimiter_Handler(t *testing.T) {
	app := fiber.New()
	app.Post("/login", NewRateLimiter(rate.Limit(0.001), 1).Handler(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("POST", "/login", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("POST", "/login", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}
