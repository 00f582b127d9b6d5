package auth_test

import (
	"net/http"
	"testing"

	"github.com/amirasaad/fintrack/infra/repository/model"
	"github.com/amirasaad/fintrack/webapi/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type AuthHandlerSuite struct {
	suite.Suite
	ta *testutils.TestApp
}

func (s *AuthHandlerSuite) SetupTest() {
	s.ta = testutils.NewTestApp(s.T())
}

func (s *AuthHandlerSuite) post(path string, body any) *http.Response {
	return s.ta.Request(s.T(), http.MethodPost, path, body, "")
}

func (s *AuthHandlerSuite) TestRegister() {
	resp := s.post("/api/auth/register", map[string]string{
		"email": "alice@example.com", "password": "password123", "name": "Alice",
	})
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)

	var data struct {
		User struct {
			ID    string `json:"id"`
			Email string `json:"email"`
			Name  string `json:"name"`
		} `json:"user"`
		Tokens struct {
			AccessToken  string `json:"accessToken"`
			RefreshToken string `json:"refreshToken"`
		} `json:"tokens"`
	}
	testutils.Data(s.T(), resp, &data)
	s.Equal("alice@example.com", data.User.Email)
	s.Equal("Alice", data.User.Name)
	s.NotEmpty(data.Tokens.AccessToken)
	s.NotEmpty(data.Tokens.RefreshToken)

	var accounts int64
	s.Require().NoError(s.ta.DB.Model(&model.Account{}).Count(&accounts).Error)
	s.Equal(int64(1), accounts)
}

func (s *AuthHandlerSuite) TestRegister_Conflict() {
	s.ta.Register(s.T(), "bob@example.com")
	resp := s.post("/api/auth/register", map[string]string{
		"email": "bob@example.com", "password": "password123", "name": "Bob",
	})
	s.Equal(fiber.StatusConflict, resp.StatusCode)
	s.Equal("EMAIL_TAKEN", testutils.Problem(s.T(), resp).Code)
}

func (s *AuthHandlerSuite) TestRegister_Validation() {
	for name, body := range map[string]any{
		"bad email":      map[string]string{"email": "nope", "password": "password123", "name": "X"},
		"short password": map[string]string{"email": "x@example.com", "password": "short", "name": "X"},
		"missing name":   map[string]string{"email": "x@example.com", "password": "password123"},
		"malformed":      `{"email":`,
	} {
		s.Run(name, func() {
			resp := s.post("/api/auth/register", body)
			s.Equal(fiber.StatusBadRequest, resp.StatusCode)
			s.Equal("VALIDATION_FAILED", testutils.Problem(s.T(), resp).Code)
		})
	}
}

func (s *AuthHandlerSuite) TestLogin() {
	s.ta.Register(s.T(), "carol@example.com")

	resp := s.post("/api/auth/login", map[string]string{"email": "carol@example.com", "password": "password123"})
	s.Equal(fiber.StatusOK, resp.StatusCode)

	resp = s.post("/api/auth/login", map[string]string{"email": "carol@example.com", "password": "wrong-password"})
	s.Equal(fiber.StatusUnauthorized, resp.StatusCode)
	s.Equal("INVALID_CREDENTIALS", testutils.Problem(s.T(), resp).Code)

	resp = s.post("/api/auth/login", map[string]string{"email": "nobody@example.com", "password": "password123"})
	s.Equal(fiber.StatusUnauthorized, resp.StatusCode)
	s.Equal("INVALID_CREDENTIALS", testutils.Problem(s.T(), resp).Code)
}

func (s *AuthHandlerSuite) TestRefreshRotation() {
	session := s.ta.Register(s.T(), "dave@example.com")

	resp := s.post("/api/auth/refresh", map[string]string{"refreshToken": session.RefreshToken})
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	var data struct {
		Tokens struct {
			RefreshToken string `json:"refreshToken"`
		} `json:"tokens"`
	}
	testutils.Data(s.T(), resp, &data)
	s.NotEqual(session.RefreshToken, data.Tokens.RefreshToken)

	resp = s.post("/api/auth/refresh", map[string]string{"refreshToken": session.RefreshToken})
	s.Equal(fiber.StatusUnauthorized, resp.StatusCode)
	s.Equal("REFRESH_TOKEN_REVOKED", testutils.Problem(s.T(), resp).Code)

	resp = s.post("/api/auth/refresh", map[string]string{"refreshToken": "garbage"})
	s.Equal(fiber.StatusUnauthorized, resp.StatusCode)
	s.Equal("INVALID_REFRESH_TOKEN", testutils.Problem(s.T(), resp).Code)
}

func (s *AuthHandlerSuite) TestLogout() {
	session := s.ta.Register(s.T(), "erin@example.com")

	resp := s.post("/api/auth/logout", map[string]string{"refreshToken": session.RefreshToken})
	s.Equal(fiber.StatusNoContent, resp.StatusCode)
	resp = s.post("/api/auth/logout", map[string]string{"refreshToken": session.RefreshToken})
	s.Equal(fiber.StatusNoContent, resp.StatusCode)
	resp = s.post("/api/auth/logout", `{not json`)
	s.Equal(fiber.StatusNoContent, resp.StatusCode)

	resp = s.post("/api/auth/refresh", map[string]string{"refreshToken": session.RefreshToken})
	s.Equal(fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerSuite))
}

func TestMe(t *testing.T) {
	ta := testutils.NewTestApp(t)
	session := ta.Register(t, "frank@example.com")

	resp := ta.Request(t, http.MethodGet, "/api/me", nil, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = ta.Request(t, http.MethodGet, "/api/me", nil, session.AccessToken)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var me struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	testutils.Data(t, resp, &me)
	assert.Equal(t, session.UserID, me.ID)
	assert.Equal(t, "frank@example.com", me.Email)

	resp = ta.Request(t, http.MethodPatch, "/api/me", map[string]string{"name": "Franklin"}, session.AccessToken)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var updated struct {
		Name string `json:"name"`
	}
	testutils.Data(t, resp, &updated)
	assert.Equal(t, "Franklin", updated.Name)
}
