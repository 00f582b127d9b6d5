package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/amirasaad/fintrack/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testJwt = &config.Jwt{AccessSecret: "secret", AccessExpiry: time.Minute}

type resolverFunc func(ctx context.Context, token *jwt.Token) (*dto.UserRead, error)

func (f resolverFunc) ResolveToken(ctx context.Context, token *jwt.Token) (*dto.UserRead, error) {
	return f(ctx, token)
}

func sign(t *testing.T, secret string, sub string, exp time.Time) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   sub,
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func newApp(resolver UserResolver) *fiber.App {
	app := fiber.New()
	app.Use(JwtProtected(testJwt, resolver))
	app.Get("/", func(c *fiber.Ctx) error {
		u, ok := CurrentUser(c)
		if !ok {
			return c.SendStatus(fiber.StatusTeapot)
		}
		return c.SendString(u.ID.String())
	})
	return app
}

func problemCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	var pd common.ProblemDetails
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&pd))
	return pd.Code
}

func request(t *testing.T, app *fiber.App, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestJwtProtected_Missing(t *testing.T) {
	app := newApp(resolverFunc(func(context.Context, *jwt.Token) (*dto.UserRead, error) {
		return nil, errors.New("resolver must not run without a token")
	}))
	resp := request(t, app, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", problemCode(t, resp))
}

func TestJwtProtected_InvalidTokens(t *testing.T) {
	app := newApp(resolverFunc(func(context.Context, *jwt.Token) (*dto.UserRead, error) {
		return nil, errors.New("unreachable")
	}))
	for name, token := range map[string]string{
		"garbage":      "not.a.jwt",
		"wrong secret": sign(t, "other", uuid.NewString(), time.Now().Add(time.Minute)),
		"expired":      sign(t, "secret", uuid.NewString(), time.Now().Add(-time.Minute)),
	} {
		t.Run(name, func(t *testing.T) {
			resp := request(t, app, token)
			assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
			assert.Equal(t, "INVALID_ACCESS_TOKEN", problemCode(t, resp))
		})
	}
}

func TestJwtProtected_ResolvesUser(t *testing.T) {
	id := uuid.New()
	app := newApp(resolverFunc(func(_ context.Context, token *jwt.Token) (*dto.UserRead, error) {
		sub, err := token.Claims.GetSubject()
		if err != nil || sub != id.String() {
			return nil, domain.ErrInvalidAccessToken
		}
		return &dto.UserRead{ID: id}, nil
	}))
	resp := request(t, app, sign(t, "secret", id.String(), time.Now().Add(time.Minute)))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestJwtProtected_DeletedUser(t *testing.T) {
	app := newApp(resolverFunc(func(context.Context, *jwt.Token) (*dto.UserRead, error) {
		return nil, domain.ErrUserNotFound
	}))
	resp := request(t, app, sign(t, "secret", uuid.NewString(), time.Now().Add(time.Minute)))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "USER_NOT_FOUND", problemCode(t, resp))
}

func TestJwtError_Invalid(t *testing.T) {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		return jwtError(c, errors.New("any other error"))
	})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
