package insight

import (
	"errors"
	"math"
	"strconv"

	"github.com/amirasaad/spendwise/pkg/config"
	"github.com/amirasaad/spendwise/pkg/middleware"
	insightsvc "github.com/amirasaad/spendwise/pkg/service/insight"
	"github.com/amirasaad/spendwise/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

func InsightRoutes(app *fiber.App, svc *insightsvc.Service, cfg *config.Jwt) {
	protected := middleware.JwtProtected(cfg)
	app.Get("/insights", protected, ListInsights(svc))
	app.Post("/insights/generate", protected, GenerateInsights(svc))
	app.Patch("/insights/:id/view", protected, MarkViewed(svc))
	app.Patch("/insights/:id/dismiss", protected, Dismiss(svc))
	app.Delete("/insights/:id", protected, DeleteInsight(svc))
}

// ListInsights returns the caller's active insights.
// @Summary List active insights
// @Description Non-dismissed, non-expired insights ordered by priority then recency
// @Tags insights
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Router /insights [get]
// @Security Bearer
func ListInsights(svc *insightsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.UserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		insights, err := svc.ListActive(c.Context(), userID)
		if err != nil {
			log.Errorf("Failed to list insights: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to list insights", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Insights fetched", insights)
	}
}

// GenerateInsights regenerates the caller's insights now.
// @Summary Generate insights
// @Description Replace undismissed insights with a fresh set. Limited per user per hour.
// @Tags insights
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 429 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /insights/generate [post]
// @Security Bearer
func GenerateInsights(svc *insightsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.UserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		insights, err := svc.GenerateOnDemand(c.Context(), userID)
		var limited *insightsvc.RateLimitError
		if errors.As(err, &limited) {
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(math.Ceil(limited.RetryAfter.Seconds()))))
			return common.ProblemDetailsJSON(c, "Too many generation requests", err)
		}
		if err != nil {
			log.Errorf("Failed to generate insights: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to generate insights", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Insights generated", insights)
	}
}

// MarkViewed flags one insight as viewed.
// @Summary Mark insight viewed
// @Tags insights
// @Produce json
// @Param id path string true "Insight ID"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /insights/{id}/view [patch]
// @Security Bearer
func MarkViewed(svc *insightsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.UserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, ok, err := common.IDParam(c)
		if !ok {
			return err
		}
		in, err := svc.MarkViewed(c.Context(), userID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to update insight", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Insight marked viewed", in)
	}
}

// Dismiss hides one insight; dismissed insights survive regeneration.
// @Summary Dismiss insight
// @Tags insights
// @Produce json
// @Param id path string true "Insight ID"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /insights/{id}/dismiss [patch]
// @Security Bearer
func Dismiss(svc *insightsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.UserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, ok, err := common.IDParam(c)
		if !ok {
			return err
		}
		in, err := svc.Dismiss(c.Context(), userID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to dismiss insight", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Insight dismissed", in)
	}
}

// DeleteInsight removes one insight.
// @Summary Delete insight
// @Tags insights
// @Param id path string true "Insight ID"
// @Success 204
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /insights/{id} [delete]
// @Security Bearer
func DeleteInsight(svc *insightsvc.Service) fiber.Handler {
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
			return common.ProblemDetailsJSON(c, "Failed to delete insight", err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
