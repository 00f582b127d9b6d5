package transaction

import (
	"strings"
	"time"

	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/amirasaad/fintrack/pkg/middleware"
	authsvc "github.com/amirasaad/fintrack/pkg/service/auth"
	txsvc "github.com/amirasaad/fintrack/pkg/service/transaction"
	"github.com/amirasaad/fintrack/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

func Routes(app fiber.Router, txSvc *txsvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	group := app.Group("/transactions", middleware.JwtProtected(cfg.Auth.Jwt, authSvc))
	group.Get("/", ListTransactions(txSvc))
	group.Post("/", CreateTransaction(txSvc))
	group.Get("/:id", GetTransaction(txSvc))
	group.Patch("/:id", UpdateTransaction(txSvc))
	group.Delete("/:id", DeleteTransaction(txSvc))
}

// ListTransactions returns a filtered, sorted page of the user's transactions.
// @Summary List transactions
// @Tags transactions
// @Produce json
// @Param type query string false "INCOME, EXPENSE or TRANSFER"
// @Param accountId query string false "Source or destination account"
// @Param categoryId query string false "Category"
// @Param from query string false "Inclusive lower bound, RFC 3339 or YYYY-MM-DD"
// @Param to query string false "Inclusive upper bound, RFC 3339 or YYYY-MM-DD"
// @Param keyword query string false "Matches description or AI job id"
// @Param sortBy query string false "occurredAt or amount"
// @Param order query string false "asc or desc"
// @Param page query int false "1-based page"
// @Param pageSize query int false "Page size"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /api/transactions [get]
// @Security Bearer
func ListTransactions(txSvc *txsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, _ := middleware.CurrentUser(c)
		var raw ListQuery
		if err := c.QueryParser(&raw); err != nil {
			return common.ProblemDetailsJSON(c, "Invalid query", domain.ErrValidation, err.Error())
		}
		q, err := toListQuery(raw)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid query", err)
		}
		page, err := txSvc.List(c.UserContext(), u.ID, q)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list transactions", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transactions fetched", toPageResponse(page))
	}
}

// CreateTransaction records an income, expense or transfer and applies its
// balance effect.
// @Summary Create transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body CreateTransactionRequest true "Transaction"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Router /api/transactions [post]
// @Security Bearer
func CreateTransaction(txSvc *txsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, _ := middleware.CurrentUser(c)
		input, err := common.BindAndValidate[CreateTransactionRequest](c)
		if input == nil {
			return err
		}
		in, err := toCreateInput(input)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to create transaction", err)
		}
		tx, err := txSvc.Create(c.UserContext(), u.ID, in)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to create transaction", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Transaction created", ToTransactionResponse(tx))
	}
}

// GetTransaction returns one transaction.
// @Summary Get transaction
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/transactions/{id} [get]
// @Security Bearer
func GetTransaction(txSvc *txsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, _ := middleware.CurrentUser(c)
		id, ok, err := common.ParseUUIDParam(c, "id", domain.ErrTransactionNotFound)
		if !ok {
			return err
		}
		tx, err := txSvc.Get(c.UserContext(), u.ID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Transaction not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transaction fetched", ToTransactionResponse(tx))
	}
}

// UpdateTransaction edits a transaction, moving its balance effect when
// the type, amount or accounts change.
// @Summary Update transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param request body UpdateTransactionRequest true "Fields to change"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/transactions/{id} [patch]
// @Security Bearer
func UpdateTransaction(txSvc *txsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, _ := middleware.CurrentUser(c)
		id, ok, err := common.ParseUUIDParam(c, "id", domain.ErrTransactionNotFound)
		if !ok {
			return err
		}
		input, err := common.BindAndValidate[UpdateTransactionRequest](c)
		if input == nil {
			return err
		}
		in, err := toUpdateInput(input)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to update transaction", err)
		}
		tx, err := txSvc.Update(c.UserContext(), u.ID, id, in)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to update transaction", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transaction updated", ToTransactionResponse(tx))
	}
}

// DeleteTransaction removes a transaction and reverts its balance effect.
// @Summary Delete transaction
// @Tags transactions
// @Param id path string true "Transaction ID"
// @Success 204
// @Failure 404 {object} common.ProblemDetails
// @Router /api/transactions/{id} [delete]
// @Security Bearer
func DeleteTransaction(txSvc *txsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, _ := middleware.CurrentUser(c)
		id, ok, err := common.ParseUUIDParam(c, "id", domain.ErrTransactionNotFound)
		if !ok {
			return err
		}
		if err := txSvc.Delete(c.UserContext(), u.ID, id); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to delete transaction", err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// optionalID parses an optional id field. Empty strings count as absent;
// malformed ids cannot name an owned resource and report notFound.
func optionalID(s *string, notFound *domain.Error) (*uuid.UUID, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	id, err := uuid.Parse(strings.TrimSpace(*s))
	if err != nil {
		return nil, notFound
	}
	return &id, nil
}

func toCreateInput(r *CreateTransactionRequest) (txsvc.CreateInput, error) {
	in := txsvc.CreateInput{
		Type:        r.Type,
		Amount:      *r.Amount,
		Description: r.Description,
		Tags:        r.Tags,
		Attachments: r.Attachments,
		AIJobID:     r.AIJobID,
	}
	accountID, err := uuid.Parse(r.AccountID)
	if err != nil {
		return in, domain.ErrAccountNotFound
	}
	in.AccountID = accountID
	if in.ToAccountID, err = optionalID(r.ToAccountID, domain.ErrAccountNotFound); err != nil {
		return in, err
	}
	if in.CategoryID, err = optionalID(r.CategoryID, domain.ErrCategoryNotFound); err != nil {
		return in, err
	}
	if r.OccurredAt != nil {
		in.OccurredAt = *r.OccurredAt
	}
	return in, nil
}

func toUpdateInput(r *UpdateTransactionRequest) (txsvc.UpdateInput, error) {
	in := txsvc.UpdateInput{
		Type:        r.Type,
		Amount:      r.Amount,
		OccurredAt:  r.OccurredAt,
		Description: r.Description,
		Tags:        r.Tags,
		Attachments: r.Attachments,
		AIJobID:     r.AIJobID,
	}
	var err error
	if r.AccountID != nil {
		id, err := uuid.Parse(*r.AccountID)
		if err != nil {
			return in, domain.ErrAccountNotFound
		}
		in.AccountID = &id
	}
	if in.ToAccountID, err = optionalID(r.ToAccountID, domain.ErrAccountNotFound); err != nil {
		return in, err
	}
	if r.CategoryID.Set {
		id, err := optionalID(r.CategoryID.Value, domain.ErrCategoryNotFound)
		if err != nil {
			return in, err
		}
		if id == nil {
			in.CategoryID = dto.Null[uuid.UUID]()
		} else {
			in.CategoryID = dto.Some(*id)
		}
	}
	return in, nil
}

func toListQuery(raw ListQuery) (txsvc.ListQuery, error) {
	q := txsvc.ListQuery{
		Type:     strings.ToUpper(strings.TrimSpace(raw.Type)),
		Keyword:  strings.TrimSpace(raw.Keyword),
		SortBy:   raw.SortBy,
		Page:     raw.Page,
		PageSize: raw.PageSize,
	}
	switch strings.ToLower(raw.Order) {
	case "", "desc":
	case "asc":
		q.Ascending = true
	default:
		return q, invalid("order must be asc or desc")
	}
	var err error
	if q.AccountID, err = queryID(raw.AccountID, "accountId"); err != nil {
		return q, err
	}
	if q.CategoryID, err = queryID(raw.CategoryID, "categoryId"); err != nil {
		return q, err
	}
	if q.From, err = parseBound(raw.From, false); err != nil {
		return q, invalid("from must be RFC 3339 or YYYY-MM-DD")
	}
	if q.To, err = parseBound(raw.To, true); err != nil {
		return q, invalid("to must be RFC 3339 or YYYY-MM-DD")
	}
	return q, nil
}

func queryID(s, name string) (*uuid.UUID, error) {
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, invalid(name + " must be a UUID")
	}
	return &id, nil
}

// parseBound reads an RFC 3339 instant or a calendar date in UTC. A date
// used as an upper bound covers the whole day.
func parseBound(s string, upper bool) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, err
	}
	if upper {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

func invalid(msg string) error {
	return domain.NewError(domain.KindValidation, domain.ErrValidation.Code, msg)
}
