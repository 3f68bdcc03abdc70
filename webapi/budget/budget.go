package budget

import (
	"github.com/amirasaad/spendwise/pkg/config"
	"github.com/amirasaad/spendwise/pkg/middleware"
	budgetsvc "github.com/amirasaad/spendwise/pkg/service/budget"
	"github.com/amirasaad/spendwise/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

func BudgetRoutes(app *fiber.App, svc *budgetsvc.Service, cfg *config.Jwt) {
	protected := middleware.JwtProtected(cfg)
	app.Get("/budgets", protected, ListBudgets(svc))
	app.Get("/budgets/status", protected, AllStatuses(svc))
	app.Get("/budgets/:id/status", protected, GetStatus(svc))
	app.Post("/budgets", protected, CreateBudget(svc))
	app.Patch("/budgets/:id", protected, UpdateBudget(svc))
	app.Delete("/budgets/:id", protected, DeleteBudget(svc))
}

// ListBudgets returns the caller's budgets.
// @Summary List budgets
// @Tags budgets
// @Produce json
// @Param active_only query bool false "Only active budgets"
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Router /budgets [get]
// @Security Bearer
func ListBudgets(svc *budgetsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.UserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		budgets, err := svc.List(c.Context(), userID, c.QueryBool("active_only", false))
		if err != nil {
			log.Errorf("Failed to list budgets: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to list budgets", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Budgets fetched", budgets)
	}
}

// AllStatuses evaluates every active budget against its current period.
// @Summary Status of all active budgets
// @Tags budgets
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Router /budgets/status [get]
// @Security Bearer
func AllStatuses(svc *budgetsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.UserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		statuses, err := svc.AllStatuses(c.Context(), userID)
		if err != nil {
			log.Errorf("Failed to evaluate budgets: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to evaluate budgets", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Budget statuses", statuses)
	}
}

// GetStatus evaluates one budget against its current period.
// @Summary Budget status
// @Tags budgets
// @Produce json
// @Param id path string true "Budget ID"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /budgets/{id}/status [get]
// @Security Bearer
func GetStatus(svc *budgetsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.UserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, ok, err := common.IDParam(c)
		if !ok {
			return err
		}
		status, err := svc.Status(c.Context(), userID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to evaluate budget", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Budget status", status)
	}
}

// CreateBudget adds a budget for a category.
// @Summary Create budget
// @Tags budgets
// @Accept json
// @Produce json
// @Param request body CreateBudgetRequest true "Budget"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /budgets [post]
// @Security Bearer
func CreateBudget(svc *budgetsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.UserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		input, err := common.BindAndValidate[CreateBudgetRequest](c)
		if input == nil {
			return err // error response already written
		}
		period := input.Period
		if period == "" {
			period = "monthly"
		}
		b, err := svc.Create(c.Context(), userID, budgetsvc.CreateInput{
			Category:       input.Category,
			Amount:         *input.Amount,
			Period:         period,
			AlertThreshold: input.AlertThreshold,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create budget", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Budget created", b)
	}
}

// UpdateBudget applies a partial update.
// @Summary Update budget
// @Tags budgets
// @Accept json
// @Produce json
// @Param id path string true "Budget ID"
// @Param request body UpdateBudgetRequest true "Fields to change"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /budgets/{id} [patch]
// @Security Bearer
func UpdateBudget(svc *budgetsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.UserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, ok, err := common.IDParam(c)
		if !ok {
			return err
		}
		input, err := common.BindAndValidate[UpdateBudgetRequest](c)
		if input == nil {
			return err // error response already written
		}
		b, err := svc.Update(c.Context(), userID, id, input.toPatch())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't update budget", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Budget updated", b)
	}
}

// DeleteBudget deactivates a budget.
// @Summary Delete budget
// @Description Soft delete: the budget is marked inactive
// @Tags budgets
// @Param id path string true "Budget ID"
// @Success 204
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /budgets/{id} [delete]
// @Security Bearer
func DeleteBudget(svc *budgetsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.UserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, ok, err := common.IDParam(c)
		if !ok {
			return err
		}
		if err := svc.Delete(c.Context(), userID, id); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't delete budget", err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
