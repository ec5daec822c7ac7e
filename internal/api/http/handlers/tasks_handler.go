package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/student-portal/internal/api/dto"
	"github.com/spec-kit/student-portal/internal/auth"
	"github.com/spec-kit/student-portal/internal/service"
)

// TasksHandler exposes assignment and grading endpoints.
type TasksHandler struct {
	tasks *service.TaskService
}

// NewTasksHandler constructs handler.
func NewTasksHandler(tasks *service.TaskService) *TasksHandler {
	return &TasksHandler{tasks: tasks}
}

// Create handles POST /tasks (teacher). Assigns to every enrolled student.
func (h *TasksHandler) Create(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)

	var req dto.TaskCreateRequest
	if err := c.BodyParser(&req); err != nil || req.CourseID <= 0 {
		return fiber.NewError(http.StatusBadRequest, "course_id and title required")
	}

	task, err := h.tasks.Create(c.Context(), req.CourseID, identity.SubjectID, req.Title, req.Description)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": task})
}

// ListByCourse handles GET /tasks/course/:id.
func (h *TasksHandler) ListByCourse(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("id")
	if err != nil || courseID <= 0 {
		return fiber.NewError(http.StatusBadRequest, "invalid course id")
	}

	tasks, err := h.tasks.ListByCourse(c.Context(), courseID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": tasks})
}

// Mine handles GET /tasks/mine (student): assignments with grades.
func (h *TasksHandler) Mine(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	views, err := h.tasks.ListForStudent(c.Context(), identity.SubjectID)
	if err != nil {
		return err
	}

	out := make([]fiber.Map, 0, len(views))
	for _, view := range views {
		out = append(out, fiber.Map{
			"task":        view.Task,
			"grade":       view.Assignment.Grade,
			"graded_at":   view.Assignment.GradedAt,
			"assigned_at": view.Assignment.AssignedAt,
		})
	}
	return c.JSON(fiber.Map{"data": out})
}

// PostGrade handles POST /tasks/grade (teacher).
func (h *TasksHandler) PostGrade(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)

	var req dto.GradeRequest
	if err := c.BodyParser(&req); err != nil || req.TaskID <= 0 || req.StudentID <= 0 {
		return fiber.NewError(http.StatusBadRequest, "task_id, student_id, grade required")
	}

	if err := h.tasks.PostGrade(c.Context(), req.TaskID, req.StudentID, identity.SubjectID, req.Grade); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"graded": true}})
}
