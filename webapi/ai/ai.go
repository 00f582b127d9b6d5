package ai

import (
	"time"

	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/amirasaad/fintrack/pkg/middleware"
	"github.com/amirasaad/fintrack/pkg/money"
	authsvc "github.com/amirasaad/fintrack/pkg/service/auth"
	"github.com/amirasaad/fintrack/pkg/service/suggest"
	"github.com/amirasaad/fintrack/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ParseRequest carries the free text to turn into a draft.
type ParseRequest struct {
	Text string `json:"text" validate:"required,max=500"`
}

// SuggestionResponse is a transaction draft. Fields the parser could not
// infer are null.
type SuggestionResponse struct {
	Amount      *string   `json:"amount"`
	Type        *string   `json:"type"`
	OccurredAt  time.Time `json:"occurredAt"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	Confidence  float64   `json:"confidence"`
}

type JobResponse struct {
	ID         uuid.UUID           `json:"id"`
	Kind       string              `json:"kind"`
	Status     string              `json:"status"`
	Input      string              `json:"input"`
	Output     *SuggestionResponse `json:"output"`
	Error      *string             `json:"error"`
	Confidence float64             `json:"confidence"`
	CreatedAt  time.Time           `json:"createdAt"`
	UpdatedAt  time.Time           `json:"updatedAt"`
}

func toJobResponse(j *dto.SuggestionJob) JobResponse {
	resp := JobResponse{
		ID:         j.ID,
		Kind:       j.Kind,
		Status:     j.Status,
		Input:      j.Input,
		Error:      j.Error,
		Confidence: j.Confidence,
		CreatedAt:  j.CreatedAt,
		UpdatedAt:  j.UpdatedAt,
	}
	if s := j.Output; s != nil {
		out := &SuggestionResponse{
			Type:        s.Type,
			OccurredAt:  s.OccurredAt,
			Description: s.Description,
			Tags:        s.Tags,
			Confidence:  s.Confidence,
		}
		if out.Tags == nil {
			out.Tags = []string{}
		}
		if s.AmountCents != nil {
			amount := money.MinorUnitsToString(*s.AmountCents)
			out.Amount = &amount
		}
		resp.Output = out
	}
	return resp
}

func Routes(app fiber.Router, suggestSvc *suggest.Service, authSvc *authsvc.Service, cfg *config.App) {
	group := app.Group("/ai", middleware.JwtProtected(cfg.Auth.Jwt, authSvc))
	group.Post("/parse", ParseText(suggestSvc))
	group.Get("/jobs", ListJobs(suggestSvc))
}

// ParseText turns free text such as "午餐消费 35 元" into a transaction draft.
// Nothing is persisted to the ledger.
// @Summary Parse free text into a draft
// @Tags ai
// @Accept json
// @Produce json
// @Param request body ParseRequest true "Text"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /api/ai/parse [post]
// @Security Bearer
func ParseText(suggestSvc *suggest.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, _ := middleware.CurrentUser(c)
		input, err := common.BindAndValidate[ParseRequest](c)
		if input == nil {
			return err
		}
		job, err := suggestSvc.Parse(c.UserContext(), u.ID, input.Text)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't parse text", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Suggestion ready", toJobResponse(job))
	}
}

// ListJobs returns the user's suggestion jobs, newest first.
// @Summary List suggestion jobs
// @Tags ai
// @Produce json
// @Success 200 {object} common.Response
// @Router /api/ai/jobs [get]
// @Security Bearer
func ListJobs(suggestSvc *suggest.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, _ := middleware.CurrentUser(c)
		jobs, err := suggestSvc.Jobs(c.UserContext(), u.ID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list jobs", err)
		}
		out := make([]JobResponse, 0, len(jobs))
		for _, j := range jobs {
			out = append(out, toJobResponse(j))
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Jobs fetched", out)
	}
}
