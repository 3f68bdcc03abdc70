package transaction

import (
	"github.com/amirasaad/spendwise/pkg/config"
	"github.com/amirasaad/spendwise/pkg/middleware"
	txsvc "github.com/amirasaad/spendwise/pkg/service/transaction"
	"github.com/amirasaad/spendwise/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

func TransactionRoutes(app *fiber.App, svc *txsvc.Service, reconciler *txsvc.Reconciler, cfg *config.Jwt) {
	protected := middleware.JwtProtected(cfg)
	app.Get("/transactions", protected, ListTransactions(svc))
	app.Get("/transactions/summary", protected, Summary(svc))
	app.Post("/transactions/sync", protected, Sync(reconciler))
	app.Get("/transactions/:id", protected, GetTransaction(svc))
}

// ListTransactions returns one page of the caller's transactions.
// @Summary List transactions
// @Tags transactions
// @Produce json
// @Param account_id query string false "Account ID"
// @Param start_date query string false "First day (YYYY-MM-DD)"
// @Param end_date query string false "Last day (YYYY-MM-DD)"
// @Param category query string false "Primary category"
// @Param search query string false "Text matched against name and merchant"
// @Param skip query int false "Offset"
// @Param limit query int false "Page size (max 200)"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /transactions [get]
// @Security Bearer
func ListTransactions(svc *txsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.UserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		var q ListQuery
		if err := c.QueryParser(&q); err != nil {
			return common.ProblemDetailsJSON(c, "Invalid query", nil, err.Error(), fiber.StatusBadRequest)
		}
		filter, err := q.toFilter()
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid query", err)
		}
		txs, err := svc.List(c.Context(), userID, filter)
		if err != nil {
			log.Errorf("Failed to list transactions: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to list transactions", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transactions fetched", txs)
	}
}

// GetTransaction returns one transaction.
// @Summary Get transaction
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /transactions/{id} [get]
// @Security Bearer
func GetTransaction(svc *txsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.UserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, ok, err := common.IDParam(c)
		if !ok {
			return err
		}
		tx, err := svc.Get(c.Context(), userID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Transaction not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transaction found", tx)
	}
}

// Summary totals the caller's income and expenses.
// @Summary Transaction summary
// @Tags transactions
// @Produce json
// @Param period query string false "day, week, month, quarter or year" default(month)
// @Success 200 {object} common.Response
// @Router /transactions/summary [get]
// @Security Bearer
func Summary(svc *txsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.UserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		summary, err := svc.Summary(c.Context(), userID, c.Query("period", string(txsvc.PeriodMonth)))
		if err != nil {
			log.Errorf("Failed to summarize transactions: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to summarize transactions", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transaction summary", summary)
	}
}

// Sync imports recent transactions from every linked bank connection.
// @Summary Sync transactions
// @Description Failing connections are skipped; the counts cover the rest.
// @Tags transactions
// @Produce json
// @Success 200 {object} common.Response
// @Failure 500 {object} common.ProblemDetails
// @Router /transactions/sync [post]
// @Security Bearer
func Sync(reconciler *txsvc.Reconciler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.UserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		result, err := reconciler.Sync(c.Context(), userID)
		if err != nil {
			log.Errorf("Failed to sync transactions: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to sync transactions", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transactions synced", result)
	}
}
