package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/steady/internal/db"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testSecretKey = "test-secret-key-with-at-least-32-characters"

type fixedClock struct {
	now time.Time
}

func (clock *fixedClock) Now() time.Time {
	return clock.now
}

type fixedRandomSource struct {
	value int
}

func (source *fixedRandomSource) Intn(int) int {
	return source.value
}

type testEnv struct {
	app      *fiber.App
	handler  *Handler
	clock    *fixedClock
	database *gorm.DB
}

func newTestEnv(t *testing.T, configure ...func(*HandlerOptions)) *testEnv {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "steady-api-test.db"))
	require.NoError(t, err)
	sqlDB, err := database.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	clock := &fixedClock{now: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}
	options := HandlerOptions{
		Clock:            clock,
		Random:           &fixedRandomSource{},
		PasswordHashCost: bcrypt.MinCost,
	}
	for _, apply := range configure {
		apply(&options)
	}

	handler, err := NewHandler(database, testSecretKey, time.UTC, options)
	require.NoError(t, err)

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	RegisterRoutes(app, handler)

	return &testEnv{app: app, handler: handler, clock: clock, database: database}
}

func (env *testEnv) request(t *testing.T, method string, path string, body any, cookie string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	request := httptest.NewRequest(method, path, reader)
	if body != nil {
		request.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if cookie != "" {
		request.Header.Set(fiber.HeaderCookie, cookie)
	}

	response, err := env.app.Test(request, -1)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = response.Body.Close()
	})
	return response
}

// registerAndLogin creates an account and returns the session cookie header value.
func (env *testEnv) registerAndLogin(t *testing.T, username string) string {
	t.Helper()

	response := env.request(t, http.MethodPost, "/api/auth/register", fiber.Map{
		"username": username,
		"password": "StrongPass1",
	}, "")
	require.Equal(t, http.StatusCreated, response.StatusCode)
	return sessionCookie(t, response)
}

func sessionCookie(t *testing.T, response *http.Response) string {
	t.Helper()

	for _, cookie := range response.Cookies() {
		if cookie.Name == authCookieName && cookie.Value != "" {
			return cookie.Name + "=" + cookie.Value
		}
	}
	t.Fatalf("expected %s cookie in response", authCookieName)
	return ""
}

func decodeJSON(t *testing.T, response *http.Response, target any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(response.Body).Decode(target))
}

func readBody(t *testing.T, response *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(response.Body)
	require.NoError(t, err)
	return strings.TrimSpace(string(body))
}
