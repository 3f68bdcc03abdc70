// Package webapi provides the HTTP API of the insights engine.
// It is organized into sub-packages per resource:
// - insight: generated insights and the actions on them
// - budget: budgets and their status
// - transaction: imported transactions, summaries and bank sync
// - account: linked accounts and balance totals
package webapi

import (
	"errors"
	"strings"

	_ "github.com/amirasaad/spendwise/cmd/server/swagger" // swagger docs
	"github.com/amirasaad/spendwise/pkg/app"
	accountweb "github.com/amirasaad/spendwise/webapi/account"
	budgetweb "github.com/amirasaad/spendwise/webapi/budget"
	"github.com/amirasaad/spendwise/webapi/common"
	insightweb "github.com/amirasaad/spendwise/webapi/insight"
	transactionweb "github.com/amirasaad/spendwise/webapi/transaction"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
)

// SetupApp Initialize Fiber with custom configuration
func SetupApp(app *app.App) *fiber.App {
	fiberApp := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return common.ProblemDetailsJSON(c, fe.Message, nil, fe.Code)
			}
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	})
	fiberApp.Get("/swagger/*", swagger.New(swagger.Config{
		TryItOutEnabled:      true,
		PersistAuthorization: true,
	}))

	// Uses X-Forwarded-For header when behind a proxy
	fiberApp.Use(limiter.New(limiter.Config{
		Max:          app.Config.RateLimit.MaxRequests,
		Expiration:   app.Config.RateLimit.Window,
		KeyGenerator: clientIP,
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(
				c,
				"Too Many Requests",
				errors.New("rate limit exceeded"),
				fiber.StatusTooManyRequests,
			)
		},
	}))
	fiberApp.Use(recover.New())
	fiberApp.Use(logger.New())

	// Health check endpoint
	fiberApp.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Spendwise API is running")
	})

	jwt := app.Config.Auth.Jwt
	insightweb.InsightRoutes(fiberApp, app.InsightService, jwt)
	budgetweb.BudgetRoutes(fiberApp, app.BudgetService, jwt)
	transactionweb.TransactionRoutes(fiberApp, app.TransactionService, app.Reconciler, jwt)
	accountweb.AccountRoutes(fiberApp, app.AccountService, jwt)
	return fiberApp
}

// clientIP prefers the first X-Forwarded-For hop, then X-Real-IP.
func clientIP(c *fiber.Ctx) string {
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
