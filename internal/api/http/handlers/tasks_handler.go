package handlers

import (
	"bytes"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/trackerhq/project-tracker/internal/api/dto"
	"github.com/trackerhq/project-tracker/internal/auth"
	"github.com/trackerhq/project-tracker/internal/batch"
	"github.com/trackerhq/project-tracker/internal/domain"
	"github.com/trackerhq/project-tracker/internal/service"
)

// TasksHandler exposes task endpoints nested under a project.
type TasksHandler struct {
	tasks    *service.TaskService
	importer *batch.TaskImporter
}

// NewTasksHandler constructs the handler.
func NewTasksHandler(tasks *service.TaskService, importer *batch.TaskImporter) *TasksHandler {
	return &TasksHandler{tasks: tasks, importer: importer}
}

// List handles GET /resources/projects/:id/tasks.
func (h *TasksHandler) List(c *fiber.Ctx) error {
	tasks, err := h.tasks.ListByProject(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromTasks(tasks)})
}

// Create handles POST /resources/projects/:id/tasks.
func (h *TasksHandler) Create(c *fiber.Ctx) error {
	var req dto.TaskRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	principal, _ := auth.PrincipalFromContext(c)
	task := &domain.Task{
		ProjectID: c.Params("id"),
		Title:     req.Title,
		Status:    domain.TaskStatus(req.Status),
	}

	created, err := h.tasks.Create(c.UserContext(), task, principal.Name)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.FromTask(created)})
}

// Import handles POST /resources/projects/:id/tasks/import. The body is CSV,
// one "title,status" row per task.
func (h *TasksHandler) Import(c *fiber.Ctx) error {
	body := c.Body()
	if len(bytes.TrimSpace(body)) == 0 {
		return fiber.NewError(http.StatusBadRequest, "empty import body")
	}

	principal, _ := auth.PrincipalFromContext(c)
	summary, err := h.importer.Run(c.UserContext(), c.Params("id"), bytes.NewReader(body), principal.Name)
	if err != nil {
		return err
	}
	return c.Status(http.StatusAccepted).JSON(fiber.Map{"data": summary})
}
