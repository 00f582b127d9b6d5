package category

import (
	"time"

	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/amirasaad/fintrack/pkg/middleware"
	authsvc "github.com/amirasaad/fintrack/pkg/service/auth"
	categorysvc "github.com/amirasaad/fintrack/pkg/service/category"
	"github.com/amirasaad/fintrack/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CreateCategoryRequest represents the request body for creating a category.
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,max=50"`
	Type string `json:"type" validate:"required"`
}

// RenameCategoryRequest represents the request body for renaming a category.
type RenameCategoryRequest struct {
	Name string `json:"name" validate:"required,max=50"`
}

// CategoryResponse is the public view of a category.
type CategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toResponse(c *dto.CategoryRead) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, Type: c.Type, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}

func Routes(app fiber.Router, categorySvc *categorysvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	group := app.Group("/categories", middleware.JwtProtected(cfg.Auth.Jwt, authSvc))
	group.Get("/", ListCategories(categorySvc))
	group.Post("/", CreateCategory(categorySvc))
	group.Patch("/:id", RenameCategory(categorySvc))
	group.Delete("/:id", DeleteCategory(categorySvc))
}

// ListCategories returns the user's categories ordered by type then name.
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {object} common.Response
// @Router /api/categories [get]
// @Security Bearer
func ListCategories(categorySvc *categorysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, _ := middleware.CurrentUser(c)
		cats, err := categorySvc.List(c.UserContext(), u.ID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list categories", err)
		}
		out := make([]CategoryResponse, 0, len(cats))
		for _, cat := range cats {
			out = append(out, toResponse(cat))
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Categories fetched", out)
	}
}

// CreateCategory adds a category.
// @Summary Create category
// @Tags categories
// @Accept json
// @Produce json
// @Param request body CreateCategoryRequest true "Category"
// @Success 201 {object} common.Response
// @Failure 409 {object} common.ProblemDetails
// @Router /api/categories [post]
// @Security Bearer
func CreateCategory(categorySvc *categorysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, _ := middleware.CurrentUser(c)
		input, err := common.BindAndValidate[CreateCategoryRequest](c)
		if input == nil {
			return err
		}
		cat, err := categorySvc.Create(c.UserContext(), u.ID, input.Name, input.Type)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to create category", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Category created", toResponse(cat))
	}
}

// RenameCategory changes a category's name.
// @Summary Rename category
// @Tags categories
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param request body RenameCategoryRequest true "New name"
// @Success 200 {object} common.Response
// @Router /api/categories/{id} [patch]
// @Security Bearer
func RenameCategory(categorySvc *categorysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, _ := middleware.CurrentUser(c)
		id, ok, err := common.ParseUUIDParam(c, "id", domain.ErrCategoryNotFound)
		if !ok {
			return err
		}
		input, err := common.BindAndValidate[RenameCategoryRequest](c)
		if input == nil {
			return err
		}
		cat, err := categorySvc.Rename(c.UserContext(), u.ID, id, input.Name)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to rename category", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Category renamed", toResponse(cat))
	}
}

// DeleteCategory removes a category. Transactions keep a null category.
// @Summary Delete category
// @Tags categories
// @Param id path string true "Category ID"
// @Success 204
// @Router /api/categories/{id} [delete]
// @Security Bearer
func DeleteCategory(categorySvc *categorysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, _ := middleware.CurrentUser(c)
		id, ok, err := common.ParseUUIDParam(c, "id", domain.ErrCategoryNotFound)
		if !ok {
			return err
		}
		if err := categorySvc.Delete(c.UserContext(), u.ID, id); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to delete category", err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
