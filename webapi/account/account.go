package account

import (
	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/middleware"
	accountsvc "github.com/amirasaad/fintrack/pkg/service/account"
	authsvc "github.com/amirasaad/fintrack/pkg/service/auth"
	"github.com/amirasaad/fintrack/webapi/common"
	"github.com/gofiber/fiber/v2"
)

func Routes(app fiber.Router, accountSvc *accountsvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	group := app.Group("/accounts", middleware.JwtProtected(cfg.Auth.Jwt, authSvc))
	group.Get("/", ListAccounts(accountSvc))
	group.Post("/", CreateAccount(accountSvc))
	group.Get("/:id", GetAccount(accountSvc))
	group.Patch("/:id", UpdateAccount(accountSvc))
	group.Delete("/:id", ArchiveAccount(accountSvc))
	group.Get("/:id/audit", AuditAccount(accountSvc))
}

// ListAccounts returns the user's accounts.
// @Summary List accounts
// @Tags accounts
// @Produce json
// @Success 200 {object} common.Response
// @Router /api/accounts [get]
// @Security Bearer
func ListAccounts(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, _ := middleware.CurrentUser(c)
		accounts, err := accountSvc.List(c.UserContext(), u.ID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list accounts", err)
		}
		out := make([]AccountResponse, 0, len(accounts))
		for _, a := range accounts {
			out = append(out, ToAccountResponse(a))
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Accounts fetched", out)
	}
}

// CreateAccount creates a new account for the authenticated user.
// @Summary Create a new account
// @Tags accounts
// @Accept json
// @Produce json
// @Param request body CreateAccountRequest true "Account details"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /api/accounts [post]
// @Security Bearer
func CreateAccount(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, _ := middleware.CurrentUser(c)
		input, err := common.BindAndValidate[CreateAccountRequest](c)
		if input == nil {
			return err
		}
		acc, err := accountSvc.Create(c.UserContext(), u.ID, accountsvc.CreateInput{
			Name:           input.Name,
			Type:           input.Type,
			Currency:       input.Currency,
			InitialBalance: input.InitialBalance,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to create account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Account created", ToAccountResponse(acc))
	}
}

// GetAccount returns one account.
// @Summary Get account
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/accounts/{id} [get]
// @Security Bearer
func GetAccount(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, _ := middleware.CurrentUser(c)
		id, ok, err := common.ParseUUIDParam(c, "id", domain.ErrAccountNotFound)
		if !ok {
			return err
		}
		acc, err := accountSvc.Get(c.UserContext(), u.ID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Account not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account fetched", ToAccountResponse(acc))
	}
}

// UpdateAccount applies a partial update.
// @Summary Update account
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param request body UpdateAccountRequest true "Fields to change"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/accounts/{id} [patch]
// @Security Bearer
func UpdateAccount(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, _ := middleware.CurrentUser(c)
		id, ok, err := common.ParseUUIDParam(c, "id", domain.ErrAccountNotFound)
		if !ok {
			return err
		}
		input, err := common.BindAndValidate[UpdateAccountRequest](c)
		if input == nil {
			return err
		}
		acc, err := accountSvc.Update(c.UserContext(), u.ID, id, accountsvc.UpdateInput{
			Name:       input.Name,
			Type:       input.Type,
			Currency:   input.Currency,
			IsArchived: input.IsArchived,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to update account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account updated", ToAccountResponse(acc))
	}
}

// ArchiveAccount archives an account. Its history is kept.
// @Summary Archive account
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/accounts/{id} [delete]
// @Security Bearer
func ArchiveAccount(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, _ := middleware.CurrentUser(c)
		id, ok, err := common.ParseUUIDParam(c, "id", domain.ErrAccountNotFound)
		if !ok {
			return err
		}
		acc, err := accountSvc.Archive(c.UserContext(), u.ID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to archive account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account archived", ToAccountResponse(acc))
	}
}

// AuditAccount reconciles the stored balance with the transaction history.
// @Summary Audit account balance
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/accounts/{id}/audit [get]
// @Security Bearer
func AuditAccount(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, _ := middleware.CurrentUser(c)
		id, ok, err := common.ParseUUIDParam(c, "id", domain.ErrAccountNotFound)
		if !ok {
			return err
		}
		audit, err := accountSvc.Audit(c.UserContext(), u.ID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Audit failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account audited", toAuditResponse(audit))
	}
}
