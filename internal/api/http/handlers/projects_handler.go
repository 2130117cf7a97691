package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/trackerhq/project-tracker/internal/api/dto"
	"github.com/trackerhq/project-tracker/internal/auth"
	"github.com/trackerhq/project-tracker/internal/domain"
	"github.com/trackerhq/project-tracker/internal/service"
)

// ProjectsHandler exposes project CRUD under the API prefix.
type ProjectsHandler struct {
	projects *service.ProjectService
}

// NewProjectsHandler constructs the handler.
func NewProjectsHandler(projects *service.ProjectService) *ProjectsHandler {
	return &ProjectsHandler{projects: projects}
}

// List handles GET /resources/projects?status=.
func (h *ProjectsHandler) List(c *fiber.Ctx) error {
	status := domain.ProjectStatus(c.Query("status"))

	projects, err := h.projects.List(c.UserContext(), status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromProjects(projects)})
}

// Get handles GET /resources/projects/:id.
func (h *ProjectsHandler) Get(c *fiber.Ctx) error {
	project, err := h.projects.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromProject(project)})
}

// Create handles POST /resources/projects.
func (h *ProjectsHandler) Create(c *fiber.Ctx) error {
	var req dto.ProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	principal, _ := auth.PrincipalFromContext(c)
	project := &domain.Project{
		Name:        req.Name,
		Description: req.Description,
		Status:      domain.ProjectStatus(req.Status),
		Deadline:    req.Deadline,
	}

	created, err := h.projects.Create(c.UserContext(), project, principal.Name)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.FromProject(created)})
}

// Update handles PUT /resources/projects/:id.
func (h *ProjectsHandler) Update(c *fiber.Ctx) error {
	var req dto.ProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	principal, _ := auth.PrincipalFromContext(c)
	project := &domain.Project{
		ID:          c.Params("id"),
		Name:        req.Name,
		Description: req.Description,
		Status:      domain.ProjectStatus(req.Status),
		Deadline:    req.Deadline,
	}

	updated, err := h.projects.Update(c.UserContext(), project, principal.Name)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromProject(updated)})
}

// Delete handles DELETE /resources/projects/:id.
func (h *ProjectsHandler) Delete(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)
	if err := h.projects.Delete(c.UserContext(), c.Params("id"), principal.Name); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
