package auth

import (
	"log/slog"

	authsvc "github.com/amirasaad/fintrack/pkg/service/auth"
	"github.com/amirasaad/fintrack/webapi/common"
	"github.com/gofiber/fiber/v2"
)

func Routes(app fiber.Router, authSvc *authsvc.Service, logger *slog.Logger) {
	group := app.Group("/auth")
	group.Post("/register", Register(authSvc))
	group.Post("/login", Login(authSvc))
	group.Post("/refresh", Refresh(authSvc))
	group.Post("/logout", Logout(authSvc, logger))
}

// Register creates a user with a default account and starter categories.
// @Summary Register
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterInput true "Registration data"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Router /api/auth/register [post]
func Register(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[RegisterInput](c)
		if input == nil {
			return err
		}
		session, err := authSvc.Register(c.UserContext(), input.Email, input.Password, input.Name)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Registration failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Registered", SessionResponse{
			User:   ToUserResponse(session.User),
			Tokens: toTokensResponse(session.Tokens),
		})
	}
}

// Login handles user authentication and returns a token pair.
// @Summary User login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginInput true "Login credentials"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 429 {object} common.ProblemDetails
// @Router /api/auth/login [post]
func Login(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[LoginInput](c)
		if input == nil {
			return err
		}
		session, err := authSvc.Login(c.UserContext(), input.Email, input.Password)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid email or password", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Success login", SessionResponse{
			User:   ToUserResponse(session.User),
			Tokens: toTokensResponse(session.Tokens),
		})
	}
}

// Refresh rotates a refresh token.
// @Summary Rotate refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshInput true "Refresh token"
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Router /api/auth/refresh [post]
func Refresh(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[RefreshInput](c)
		if input == nil {
			return err
		}
		tokens, err := authSvc.Refresh(c.UserContext(), input.RefreshToken)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Refresh failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Tokens refreshed", fiber.Map{
			"tokens": toTokensResponse(tokens),
		})
	}
}

// Logout revokes a refresh token. It always answers 204.
// @Summary Logout
// @Tags auth
// @Accept json
// @Param request body RefreshInput true "Refresh token"
// @Success 204
// @Router /api/auth/logout [post]
func Logout(authSvc *authsvc.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input RefreshInput
		if err := c.BodyParser(&input); err == nil && input.RefreshToken != "" {
			if err := authSvc.Logout(c.UserContext(), input.RefreshToken); err != nil {
				logger.Error("Logout failed", "error", err)
			}
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
