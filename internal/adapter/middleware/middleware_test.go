package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akshitjain2004/EnvoSafe/internal/core/security"
)

type tokenTable map[string]string

func (t tokenTable) UserForToken(_ context.Context, hash string) (string, error) {
	id, ok := t[hash]
	if !ok {
		return "", errors.New("not found")
	}
	return id, nil
}

func TestProtected(t *testing.T) {
	token, hash, err := security.GenerateSessionToken()
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/me", Protected(tokenTable{hash: "u-1"}), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(UserIDKey).(string))
	})

	cases := []struct {
		header string
		status int
	}{
		{"", http.StatusUnauthorized},
		{"Token " + token, http.StatusUnauthorized},
		{"Bearer es_live_nope", http.StatusUnauthorized},
		{"Bearer " + token, http.StatusOK},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, tc.status, resp.StatusCode, tc.header)

		if tc.status == http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			assert.Equal(t, "u-1", string(body))
		}
	}
}

func TestAdminOnly(t *testing.T) {
	app := fiber.New()
	app.Post("/issue", AdminOnly("ops-secret"), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusCreated)
	})

	cases := []struct {
		header string
		status int
	}{
		{"", http.StatusUnauthorized},
		{"Bearer ", http.StatusUnauthorized},
		{"Bearer ops-secre", http.StatusUnauthorized},
		{"ops-secret", http.StatusUnauthorized},
		{"Bearer ops-secret", http.StatusCreated},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodPost, "/issue", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, tc.status, resp.StatusCode, tc.header)
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(0.001, 2)
	app := fiber.New()
	app.Use(rl.Handler())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })

	codes := []int{}
	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		codes = append(codes, resp.StatusCode)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimiterSweep(t *testing.T) {
	now := time.Now()
	rl := NewRateLimiter(1, 1)
	rl.now = func() time.Time { return now }

	rl.limiter("10.0.0.1")
	rl.limiter("10.0.0.2")

	now = now.Add(5 * time.Minute)
	rl.limiter("10.0.0.2")

	assert.Equal(t, 1, rl.Sweep(3*time.Minute))
	assert.Len(t, rl.visitors, 1)
}
