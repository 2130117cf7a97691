package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/trackerhq/project-tracker/internal/auth"
	"github.com/trackerhq/project-tracker/internal/service"
)

// ReportsHandler exposes async report generation.
type ReportsHandler struct {
	reports *service.ReportService
}

// NewReportsHandler constructs the handler.
func NewReportsHandler(reports *service.ReportService) *ReportsHandler {
	return &ReportsHandler{reports: reports}
}

// Request handles POST /resources/reports/:projectId. The report is computed
// in the background; completion shows up on the dashboard feed.
func (h *ReportsHandler) Request(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)

	if err := h.reports.Request(c.UserContext(), c.Params("projectId"), principal.Name); err != nil {
		return err
	}
	return c.Status(http.StatusAccepted).JSON(fiber.Map{
		"data": fiber.Map{"status": "report requested"},
	})
}
