package user

import (
	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/amirasaad/fintrack/pkg/middleware"
	authsvc "github.com/amirasaad/fintrack/pkg/service/auth"
	usersvc "github.com/amirasaad/fintrack/pkg/service/user"
	authweb "github.com/amirasaad/fintrack/webapi/auth"
	"github.com/amirasaad/fintrack/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// UpdateMeInput is the body of PATCH /api/me. Name is the only mutable field.
type UpdateMeInput struct {
	Name string `json:"name" validate:"required,max=100"`
}

func Routes(app fiber.Router, userSvc *usersvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	protected := middleware.JwtProtected(cfg.Auth.Jwt, authSvc)
	app.Get("/me", protected, GetMe())
	app.Patch("/me", protected, UpdateMe(userSvc))
}

// GetMe returns the authenticated user.
// @Summary Current user
// @Tags users
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Router /api/me [get]
// @Security Bearer
func GetMe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, ok := middleware.CurrentUser(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "User found", authweb.ToUserResponse(u))
	}
}

// UpdateMe renames the authenticated user.
// @Summary Update current user
// @Tags users
// @Accept json
// @Produce json
// @Param request body UpdateMeInput true "User update data"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Router /api/me [patch]
// @Security Bearer
func UpdateMe(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, ok := middleware.CurrentUser(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
		}
		input, err := common.BindAndValidate[UpdateMeInput](c)
		if input == nil {
			return err
		}
		updated, err := userSvc.UpdateName(c.UserContext(), u.ID, input.Name)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't update user", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "User updated", authweb.ToUserResponse(updated))
	}
}
