package account

import (
	"github.com/amirasaad/spendwise/pkg/config"
	"github.com/amirasaad/spendwise/pkg/middleware"
	accountsvc "github.com/amirasaad/spendwise/pkg/service/account"
	"github.com/amirasaad/spendwise/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

func AccountRoutes(app *fiber.App, svc *accountsvc.Service, cfg *config.Jwt) {
	protected := middleware.JwtProtected(cfg)
	app.Get("/accounts", protected, ListAccounts(svc))
	app.Get("/accounts/summary", protected, Summary(svc))
}

// ListAccounts returns the caller's linked accounts with their last synced balances.
// @Summary List accounts
// @Tags accounts
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Router /accounts [get]
// @Security Bearer
func ListAccounts(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.UserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		accounts, err := svc.List(c.Context(), userID)
		if err != nil {
			log.Errorf("Failed to list accounts: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to list accounts", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Accounts fetched", accounts)
	}
}

// Summary totals the caller's balances by account kind.
// @Summary Balance summary
// @Tags accounts
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Router /accounts/summary [get]
// @Security Bearer
func Summary(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.UserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		summary, err := svc.Summary(c.Context(), userID)
		if err != nil {
			log.Errorf("Failed to summarize accounts: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to summarize accounts", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account summary", summary)
	}
}
