// Package webapi provides the HTTP surface of the ledger. It is organized
// into sub-packages per resource:
// - auth: registration, login and token rotation
// - user: the current user's profile
// - account, category, transaction: the ledger itself
// - ai: free-text transaction drafts
package webapi

import (
	"errors"
	"strings"
	"time"

	_ "github.com/amirasaad/fintrack/docs"
	"github.com/amirasaad/fintrack/pkg/app"
	accountweb "github.com/amirasaad/fintrack/webapi/account"
	aiweb "github.com/amirasaad/fintrack/webapi/ai"
	authweb "github.com/amirasaad/fintrack/webapi/auth"
	categoryweb "github.com/amirasaad/fintrack/webapi/category"
	"github.com/amirasaad/fintrack/webapi/common"
	transactionweb "github.com/amirasaad/fintrack/webapi/transaction"
	userweb "github.com/amirasaad/fintrack/webapi/user"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
)

// SetupApp Initialize Fiber with custom configuration
func SetupApp(app *app.App) *fiber.App {
	fiberApp := fiber.New(fiber.Config{
		AppName: "fintrack",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	})
	fiberApp.Use(recover.New())
	fiberApp.Use(requestid.New())
	fiberApp.Use(cors.New())
	if !app.Config.IsTest() {
		fiberApp.Use(logger.New(logger.Config{
			Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
		}))
	}
	fiberApp.Get("/swagger/*", swagger.New(swagger.Config{
		TryItOutEnabled:      true,
		PersistAuthorization: true,
	}))

	// Health check endpoint
	fiberApp.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"time":   time.Now().UTC(),
			"env":    app.Config.Env,
		})
	})

	api := fiberApp.Group("/api")
	// Configure rate limiting middleware
	// Uses X-Forwarded-For header when behind a proxy
	// Falls back to X-Real-IP or direct IP if needed
	api.Use(limiter.New(limiter.Config{
		Max:          app.Config.RateLimit.MaxRequests,
		Expiration:   app.Config.RateLimit.Window,
		Storage:      app.Deps.RateLimitStorage,
		KeyGenerator: clientKey,
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(
				c,
				"Too Many Requests",
				errors.New("rate limit exceeded"),
				"rate limit exceeded",
				fiber.StatusTooManyRequests,
			)
		},
	}))

	authweb.Routes(api, app.AuthService, app.Deps.Logger)
	userweb.Routes(api, app.UserService, app.AuthService, app.Config)
	accountweb.Routes(api, app.AccountService, app.AuthService, app.Config)
	categoryweb.Routes(api, app.CategoryService, app.AuthService, app.Config)
	transactionweb.Routes(api, app.TransactionService, app.AuthService, app.Config)
	aiweb.Routes(api, app.SuggestService, app.AuthService, app.Config)

	fiberApp.Use(func(c *fiber.Ctx) error {
		return common.ProblemDetailsJSON(c, "Not Found", fiber.ErrNotFound, "route not found")
	})
	return fiberApp
}

// clientKey identifies the caller for rate limiting: the first
// X-Forwarded-For hop, then X-Real-IP, then the socket address.
func clientKey(c *fiber.Ctx) string {
	if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
		if commaIndex := strings.Index(forwardedFor, ","); commaIndex != -1 {
			return strings.TrimSpace(forwardedFor[:commaIndex])
		}
		return strings.TrimSpace(forwardedFor)
	}
	if realIP := c.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return c.IP()
}
