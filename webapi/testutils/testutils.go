// Package testutils builds a fully wired HTTP app on SQLite for handler tests.
package testutils

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	infrarepo "github.com/amirasaad/fintrack/infra/repository"
	"github.com/amirasaad/fintrack/pkg/app"
	"github.com/amirasaad/fintrack/pkg/config"
	pkgtestutils "github.com/amirasaad/fintrack/pkg/testutils"
	"github.com/amirasaad/fintrack/webapi"
	"github.com/amirasaad/fintrack/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestApp bundles the HTTP app with what tests need to poke at it.
type TestApp struct {
	Fiber  *fiber.App
	App    *app.App
	DB     *gorm.DB
	Config *config.App
}

// Option tweaks the config before the app is built.
type Option func(cfg *config.App, deps *app.Deps)

// NewTestApp wires every service onto a private in-memory database.
func NewTestApp(t testing.TB, opts ...Option) *TestApp {
	t.Helper()
	db := pkgtestutils.NewTestDB(t)
	cfg := pkgtestutils.NewTestConfig()
	deps := &app.Deps{
		Uow:    infrarepo.NewUoW(db),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(cfg, deps)
	}
	a := app.New(deps, cfg)
	return &TestApp{Fiber: webapi.SetupApp(a), App: a, DB: db, Config: cfg}
}

// Request sends a JSON request. body may be nil, a string of raw JSON or
// any value to marshal. token, when set, is sent as a bearer token.
func (ta *TestApp) Request(t testing.TB, method, path string, body any, token string) *http.Response {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := ta.Fiber.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// Session is what a successful registration hands back.
type Session struct {
	UserID       string
	AccessToken  string
	RefreshToken string
}

// Register signs a user up through the API and returns its tokens.
func (ta *TestApp) Register(t testing.TB, email string) Session {
	t.Helper()
	resp := ta.Request(t, http.MethodPost, "/api/auth/register", map[string]string{
		"email":    email,
		"password": "password123",
		"name":     "Test User",
	}, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var data struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
		Tokens struct {
			AccessToken  string `json:"accessToken"`
			RefreshToken string `json:"refreshToken"`
		} `json:"tokens"`
	}
	Data(t, resp, &data)
	return Session{
		UserID:       data.User.ID,
		AccessToken:  data.Tokens.AccessToken,
		RefreshToken: data.Tokens.RefreshToken,
	}
}

// Data decodes the data field of a success envelope into out.
func Data(t testing.TB, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close() //nolint:errcheck
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

// Problem decodes a problem details body.
func Problem(t testing.TB, resp *http.Response) common.ProblemDetails {
	t.Helper()
	defer resp.Body.Close() //nolint:errcheck
	var pd common.ProblemDetails
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&pd))
	return pd
}
